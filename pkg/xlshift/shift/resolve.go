package shift

import "sort"

// IdentityKind classifies a row of the post-insertion layout.
type IdentityKind int

const (
	// Unmapped means the row could not be attributed to an original row or
	// an insertion block. It signals an internal invariant violation and is
	// never an expected outcome.
	Unmapped IdentityKind = iota
	// Original means the row is an untouched original row, possibly moved.
	Original
	// Inserted means the row was created by an insertion and cloned from an
	// anchor row.
	Inserted
)

// RowIdentity is the resolved identity of a result-layout row.
type RowIdentity struct {
	Kind IdentityKind
	// Source is the original row for Original rows, or the anchor row the
	// inserted row was cloned from for Inserted rows.
	Source OriginalRow
	// Ordinal is the 1-based position within the inserted group; zero for
	// Original rows.
	Ordinal int
}

// Resolve determines whether target is an inserted row or a shifted original
// row. Both lookups are binary searches over the sorted anchor list.
//
// The inserted block for the i-th anchor a spans the half-open interval
// (a+offset(a), a+offset(a)+count(a)] in the result layout. Rows outside all
// blocks are reverse-mapped by solving r = target - offset and validating
// r + offset(r) == target.
func Resolve(target ResultRow, t Table, o *Offsets) RowIdentity {
	i := sort.Search(len(o.anchors), func(i int) bool {
		return o.blockStart(i) >= int(target)
	})

	// Candidate block: the last one starting below target.
	if i > 0 {
		a := o.anchors[i-1]
		start := o.blockStart(i - 1)
		if int(target) > start && int(target) <= start+t[a] {
			return RowIdentity{Kind: Inserted, Source: a, Ordinal: int(target) - start}
		}
	}

	// Not inserted: rows in (anchors[i-1], anchors[i]] all carry offset
	// prefix[i], so the original row is fixed by subtraction.
	r := int(target) - o.prefix[i]
	if r < 1 {
		return RowIdentity{Kind: Unmapped}
	}
	if i > 0 && OriginalRow(r) <= o.anchors[i-1] {
		// target falls in the gap left by the block after anchors[i-1];
		// well-formed tables never produce this.
		return RowIdentity{Kind: Unmapped}
	}
	return RowIdentity{Kind: Original, Source: OriginalRow(r)}
}
