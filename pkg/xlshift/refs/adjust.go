package refs

import (
	"strconv"
	"strings"
)

// AdjustRelative rewrites a formula cloned from sourceRow into destRow on the
// same sheet, adding destRow-sourceRow to the row component of every relative
// reference. References carrying a row- or column-absolute marker are left
// untouched; sheet qualifiers and column letters pass through unchanged.
//
//	AdjustRelative("SUM(A1:A10)", 5, 8) == "SUM(A4:A13)"
func AdjustRelative(formula string, sourceRow, destRow int) string {
	delta := destRow - sourceRow
	if delta == 0 {
		return formula
	}

	var b strings.Builder
	b.Grow(len(formula))
	i := 0
	for i < len(formula) {
		c := formula[i]
		if c != '$' && !isUpper(c) {
			b.WriteByte(c)
			i++
			continue
		}

		ref, ok := parseCellRef(formula, i)
		if !ok {
			// Not a reference; emit the marker or letter run verbatim so the
			// scan cannot re-enter it mid-token.
			j := i
			if formula[j] == '$' {
				j++
			}
			for j < len(formula) && isUpper(formula[j]) {
				j++
			}
			if j == i {
				j++
			}
			b.WriteString(formula[i:j])
			i = j
			continue
		}

		if ref.colAbs || ref.rowAbs {
			b.WriteString(formula[i:ref.end])
		} else {
			b.WriteString(ref.col)
			b.WriteString(strconv.Itoa(ref.row + delta))
		}
		i = ref.end
	}
	return b.String()
}
