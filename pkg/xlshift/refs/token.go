// Package refs rewrites cell references inside formula bodies and hyperlink
// targets. Matching is done with a small hand-written tokenizer over the raw
// text: rewritten references are substituted in place and everything else is
// left byte-identical, including the sheet-qualifier quoting style and any
// absolute markers.
//
// The tokenizer recognizes references of the shape
//
//	['Sheet Name'|SheetName]!$?COL$?ROW
//
// for sheet-qualified matching, and bare $?COL$?ROW for relative adjustment.
// Text that merely resembles a reference (for example inside a string
// literal) can be matched too; that is an accepted limitation of textual
// rewriting, not a defect.
package refs

import "strconv"

func isUpper(b byte) bool { return b >= 'A' && b <= 'Z' }

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// isNameByte reports whether b could be part of a longer identifier, used to
// reject plain sheet-qualifier matches that start mid-word ("MySheet1!A1"
// must not match sheet "Sheet1").
func isNameByte(b byte) bool {
	return b == '_' || b == '.' || b == '\'' ||
		(b >= 'a' && b <= 'z') || isUpper(b) || isDigit(b)
}

// cellRef is a tokenized $?COL$?ROW reference.
type cellRef struct {
	colAbs bool
	col    string
	rowAbs bool
	row    int
	end    int // index just past the last row digit
}

// parseCellRef tokenizes a cell reference starting at text[i].
func parseCellRef(text string, i int) (cellRef, bool) {
	var ref cellRef
	j := i
	if j < len(text) && text[j] == '$' {
		ref.colAbs = true
		j++
	}
	colStart := j
	for j < len(text) && isUpper(text[j]) {
		j++
	}
	if j == colStart {
		return cellRef{}, false
	}
	ref.col = text[colStart:j]
	if j < len(text) && text[j] == '$' {
		ref.rowAbs = true
		j++
	}
	rowStart := j
	for j < len(text) && isDigit(text[j]) {
		j++
	}
	if j == rowStart {
		return cellRef{}, false
	}
	row, err := strconv.Atoi(text[rowStart:j])
	if err != nil || row < 1 {
		return cellRef{}, false
	}
	ref.row = row
	ref.end = j
	return ref, true
}

// qualifierAt reports whether text[i:] begins with a qualifier for the given
// sheet, in plain (Sheet1!) or quoted ('Sheet 1'!) form, and returns the
// index just past the '!'.
func qualifierAt(text, sheet string, i int) (int, bool) {
	if sheet == "" {
		return 0, false
	}
	// Quoted form.
	if text[i] == '\'' {
		j := i + 1 + len(sheet) // expected closing quote
		if j+1 < len(text) && text[i+1:j] == sheet && text[j] == '\'' && text[j+1] == '!' {
			return j + 2, true
		}
		return 0, false
	}
	// Plain form: must not start mid-identifier.
	if i > 0 && isNameByte(text[i-1]) {
		return 0, false
	}
	j := i + len(sheet)
	if j < len(text) && text[i:j] == sheet && text[j] == '!' {
		return j + 1, true
	}
	return 0, false
}
