package refs

import (
	"strconv"
	"strings"

	"github.com/sheetops/xlshift/pkg/xlshift/shift"
)

// RewriteFormula rewrites every reference qualified with the target sheet's
// name inside a formula body, moving relative row numbers by the cumulative
// offset so they keep pointing at the same logical row. References with an
// absolute-row marker are intentional and stay byte-identical, as does all
// unmatched text.
func RewriteFormula(formula, sheet string, off *shift.Offsets) string {
	return rewriteSheetRefs(formula, sheet, off)
}

// RewriteHyperlink rewrites a hyperlink target string ("#Sheet1!A5" or
// "Sheet1!A5") with the same matching logic as RewriteFormula; the leading
// anchor marker, if any, passes through untouched.
func RewriteHyperlink(target, sheet string, off *shift.Offsets) string {
	return rewriteSheetRefs(target, sheet, off)
}

// MatchesSheet reports whether text contains at least one reference
// qualified with the given sheet name. Used by the cross-reference scanner
// to capture sites before any mutation.
func MatchesSheet(text, sheet string) bool {
	for i := 0; i < len(text); i++ {
		qEnd, ok := qualifierAt(text, sheet, i)
		if !ok {
			continue
		}
		if _, ok := parseCellRef(text, qEnd); ok {
			return true
		}
	}
	return false
}

func rewriteSheetRefs(text, sheet string, off *shift.Offsets) string {
	var b strings.Builder
	b.Grow(len(text))
	i := 0
	for i < len(text) {
		qEnd, ok := qualifierAt(text, sheet, i)
		if !ok {
			b.WriteByte(text[i])
			i++
			continue
		}
		ref, ok := parseCellRef(text, qEnd)
		if !ok {
			// Qualifier without a following cell reference (e.g. a column
			// range like Sheet1!A:A) stays as-is.
			b.WriteString(text[i:qEnd])
			i = qEnd
			continue
		}

		b.WriteString(text[i:qEnd]) // qualifier, quoting preserved
		if ref.rowAbs {
			b.WriteString(text[qEnd:ref.end])
		} else {
			if ref.colAbs {
				b.WriteByte('$')
			}
			b.WriteString(ref.col)
			b.WriteString(strconv.Itoa(ref.row + off.At(shift.OriginalRow(ref.row))))
		}
		i = ref.end
	}
	return b.String()
}
