// Package models defines the value types exchanged between the insertion
// pipeline stages.
package models

import "github.com/xuri/excelize/v2"

// RowPayload carries the caller-supplied values for one inserted row, aligned
// positionally with the configured key columns. All other columns are cloned
// from the anchor row.
type RowPayload []any

// InsertionRequest asks for a group of rows to be inserted immediately after
// an anchor row of the target sheet.
type InsertionRequest struct {
	// AnchorRow is the 1-based row number in the original (pre-insertion)
	// layout after which the new rows are spliced in.
	AnchorRow int `json:"anchor_row"`
	// Rows holds one payload per inserted row, in top-to-bottom order.
	Rows []RowPayload `json:"rows"`
}

// RefKind distinguishes the two places a cross-sheet reference can live.
type RefKind string

const (
	RefFormula   RefKind = "formula"
	RefHyperlink RefKind = "hyperlink"
)

// ReferenceSite is a cell on a non-target sheet whose formula or hyperlink
// target references the target sheet. Sites are captured once, before any
// mutation, so Text always holds pre-insertion row numbers.
type ReferenceSite struct {
	Sheet string
	Row   int
	Col   int
	Kind  RefKind
	// Text is the formula text or hyperlink target exactly as captured
	// during the scan.
	Text string
}

// RowSnapshot captures everything needed to stamp an anchor row's template
// onto an inserted row: height, per-column style records, formula text and
// hyperlink targets, plus the merged ranges intersecting the row.
//
// Style records are deep copies taken at capture time; mutating the workbook
// afterwards cannot alias them.
type RowSnapshot struct {
	// Row is the anchor's original (pre-insertion) row number.
	Row int
	// Height is the row height; zero means the sheet default.
	Height float64
	// Styles maps 1-based column number to the cell's style record
	// (font, fill, border, alignment, number format, protection).
	Styles map[int]*excelize.Style
	// Formulas maps 1-based column number to formula text, present only for
	// cells holding a formula.
	Formulas map[int]string
	// Hyperlinks maps 1-based column number to hyperlink target.
	Hyperlinks map[int]string
	// MergedRanges lists the merged-range strings ("A5:C5") intersecting the
	// row. Captured for callers; merges are not re-spanned across inserted
	// rows (see DESIGN.md).
	MergedRanges []string
	// MaxCol is the number of columns the snapshot covers.
	MaxCol int
}

// SheetProperties captures sheet-level presentation state: column widths,
// freeze panes and tab color. Reapplied verbatim after the splice.
type SheetProperties struct {
	// ColWidths maps column name ("A") to width for columns with an explicit
	// width.
	ColWidths map[string]float64
	// Panes is the frozen/split pane state, nil when the sheet has none.
	Panes *excelize.Panes
	// TabColorRGB is the sheet tab color, empty when unset.
	TabColorRGB string
}

// InsertedPosition reports one realized insertion in the post-insertion
// layout, as returned by the splice.
type InsertedPosition struct {
	// Row is the 1-based row number in the new layout.
	Row int `json:"row"`
	// SourceRow is the anchor row (original numbering) the row was cloned
	// from.
	SourceRow int `json:"source_row"`
}
