// Package shift implements the row-shift bookkeeping used during row
// insertion: a cumulative offset map over original row numbers and the
// identity resolution of rows in the post-insertion layout.
//
// Original (pre-insertion) and result (post-insertion) row numbers are
// distinct types so a value cannot cross phases without going through
// Offsets or Resolve.
package shift

import "sort"

// OriginalRow is a 1-based row number in the pre-insertion layout.
type OriginalRow int

// ResultRow is a 1-based row number in the post-insertion layout.
type ResultRow int

// Table maps anchor rows to the number of rows inserted immediately after
// them. Keys are original row numbers; at most one entry per anchor.
type Table map[OriginalRow]int

// Offsets is the cumulative offset function derived from a Table: for every
// original row it answers how many rows were inserted strictly before it.
// Queries are O(log k) over the k anchors; no dense per-row table is built,
// so arbitrarily large row numbers are fine.
type Offsets struct {
	anchors []OriginalRow // ascending
	prefix  []int         // prefix[i] = rows inserted after anchors[0..i-1]
}

// BuildOffsets sorts the anchors of t and precomputes prefix sums of the
// inserted counts.
func BuildOffsets(t Table) *Offsets {
	anchors := make([]OriginalRow, 0, len(t))
	for a := range t {
		anchors = append(anchors, a)
	}
	sort.Slice(anchors, func(i, j int) bool { return anchors[i] < anchors[j] })

	prefix := make([]int, len(anchors)+1)
	for i, a := range anchors {
		prefix[i+1] = prefix[i] + t[a]
	}
	return &Offsets{anchors: anchors, prefix: prefix}
}

// At returns the cumulative offset for original row r: the number of rows
// inserted after anchors strictly below r. An anchor row is never shifted by
// its own insertion.
func (o *Offsets) At(r OriginalRow) int {
	i := sort.Search(len(o.anchors), func(i int) bool { return o.anchors[i] >= r })
	return o.prefix[i]
}

// Result converts an original row to its position in the post-insertion
// layout.
func (o *Offsets) Result(r OriginalRow) ResultRow {
	return ResultRow(int(r) + o.At(r))
}

// Total returns the total number of inserted rows across all anchors.
func (o *Offsets) Total() int {
	return o.prefix[len(o.prefix)-1]
}

// Anchors returns the anchor rows in ascending order. The slice is shared;
// callers must not modify it.
func (o *Offsets) Anchors() []OriginalRow {
	return o.anchors
}

// blockStart returns the result-layout row after which the inserted block for
// anchor index i begins: the anchor's own shifted position.
func (o *Offsets) blockStart(i int) int {
	return int(o.anchors[i]) + o.prefix[i]
}
