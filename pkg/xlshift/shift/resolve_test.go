package shift

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveScenario(t *testing.T) {
	// {3:2, 5:1}: result layout is 1 2 3 [i i] 4 5 [i] 6 7 ...
	table := Table{3: 2, 5: 1}
	off := BuildOffsets(table)

	tests := []struct {
		target  ResultRow
		kind    IdentityKind
		source  OriginalRow
		ordinal int
	}{
		{1, Original, 1, 0},
		{2, Original, 2, 0},
		{3, Original, 3, 0},
		{4, Inserted, 3, 1},
		{5, Inserted, 3, 2},
		{6, Original, 4, 0},
		{7, Original, 5, 0},
		{8, Inserted, 5, 1},
		{9, Original, 6, 0},
		{10, Original, 7, 0},
	}
	for _, tt := range tests {
		id := Resolve(tt.target, table, off)
		assert.Equal(t, tt.kind, id.Kind, "row %d kind", tt.target)
		assert.Equal(t, tt.source, id.Source, "row %d source", tt.target)
		assert.Equal(t, tt.ordinal, id.Ordinal, "row %d ordinal", tt.target)
	}
}

func TestResolveRoundTrip(t *testing.T) {
	table := Table{2: 4, 7: 1, 9: 3}
	off := BuildOffsets(table)

	for target := ResultRow(1); target <= 30; target++ {
		id := Resolve(target, table, off)
		switch id.Kind {
		case Original:
			// r + offset(r) == target
			assert.Equal(t, target, off.Result(id.Source), "row %d", target)
		case Inserted:
			start := int(off.Result(id.Source))
			require.Greater(t, int(target), start, "row %d", target)
			require.LessOrEqual(t, int(target), start+table[id.Source], "row %d", target)
			assert.Equal(t, int(target)-start, id.Ordinal, "row %d", target)
		default:
			t.Fatalf("row %d resolved to Unmapped", target)
		}
	}
}

func TestResolveEveryResultRowMapsOnce(t *testing.T) {
	table := Table{1: 2, 3: 2, 4: 5}
	off := BuildOffsets(table)

	seenOriginal := map[OriginalRow]bool{}
	inserted := 0
	for target := ResultRow(1); target <= 20; target++ {
		id := Resolve(target, table, off)
		require.NotEqual(t, Unmapped, id.Kind, "row %d", target)
		if id.Kind == Original {
			assert.False(t, seenOriginal[id.Source], "original row %d claimed twice", id.Source)
			seenOriginal[id.Source] = true
		} else {
			inserted++
		}
	}
	assert.Equal(t, 9, inserted)
}

func TestResolveNoInsertions(t *testing.T) {
	table := Table{}
	off := BuildOffsets(table)
	id := Resolve(42, table, off)
	assert.Equal(t, Original, id.Kind)
	assert.Equal(t, OriginalRow(42), id.Source)
}

func TestResolveZeroRowUnmapped(t *testing.T) {
	table := Table{}
	off := BuildOffsets(table)
	id := Resolve(0, table, off)
	assert.Equal(t, Unmapped, id.Kind)
}

func TestResolveAdjacentAnchors(t *testing.T) {
	// Back-to-back anchors: layout 1 [i] 2 [i i] 3 ...
	table := Table{1: 1, 2: 2}
	off := BuildOffsets(table)

	assert.Equal(t, RowIdentity{Kind: Inserted, Source: 1, Ordinal: 1}, Resolve(2, table, off))
	assert.Equal(t, RowIdentity{Kind: Original, Source: 2}, Resolve(3, table, off))
	assert.Equal(t, RowIdentity{Kind: Inserted, Source: 2, Ordinal: 1}, Resolve(4, table, off))
	assert.Equal(t, RowIdentity{Kind: Inserted, Source: 2, Ordinal: 2}, Resolve(5, table, off))
	assert.Equal(t, RowIdentity{Kind: Original, Source: 3}, Resolve(6, table, off))
}
