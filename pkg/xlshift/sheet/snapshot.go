// Package sheet implements the workbook-facing collaborators of the
// insertion pipeline: metadata snapshots, the cross-reference scanner, the
// bulk row splice and template reapplication. All functions operate on an
// already-open excelize file; none of them persists anything.
package sheet

import (
	"fmt"
	"strings"

	"github.com/tiendc/go-deepcopy"
	"github.com/xuri/excelize/v2"

	"github.com/sheetops/xlshift/pkg/xlshift/models"
)

// Dimensions returns the used row and column counts of a sheet. Cells that
// only anchor a hyperlink are counted too; they have no backing cell data,
// so the walk over rows alone would miss them.
func Dimensions(f *excelize.File, sheetName string) (maxRow, maxCol int, err error) {
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return 0, 0, fmt.Errorf("reading sheet %q: %w", sheetName, err)
	}
	maxRow = len(rows)
	for _, row := range rows {
		if len(row) > maxCol {
			maxCol = len(row)
		}
	}

	links, err := hyperlinkCells(f)
	if err != nil {
		return 0, 0, err
	}
	for _, cell := range links[sheetName] {
		col, row, err := excelize.CellNameToCoordinates(cell)
		if err != nil {
			continue
		}
		if row > maxRow {
			maxRow = row
		}
		if col > maxCol {
			maxCol = col
		}
	}
	return maxRow, maxCol, nil
}

// CaptureRow snapshots an anchor row before any mutation: height, per-column
// style records, formula text, hyperlink targets and intersecting merged
// ranges. Style records are deep-copied so later workbook edits cannot alias
// the snapshot.
func CaptureRow(f *excelize.File, sheetName string, row, maxCol int) (*models.RowSnapshot, error) {
	snap := &models.RowSnapshot{
		Row:        row,
		MaxCol:     maxCol,
		Styles:     make(map[int]*excelize.Style, maxCol),
		Formulas:   make(map[int]string),
		Hyperlinks: make(map[int]string),
	}

	height, err := f.GetRowHeight(sheetName, row)
	if err != nil {
		return nil, fmt.Errorf("reading height of row %d: %w", row, err)
	}
	snap.Height = height

	for col := 1; col <= maxCol; col++ {
		cell, err := excelize.CoordinatesToCellName(col, row)
		if err != nil {
			return nil, err
		}

		styleID, err := f.GetCellStyle(sheetName, cell)
		if err != nil {
			return nil, fmt.Errorf("reading style of %s: %w", cell, err)
		}
		style, err := f.GetStyle(styleID)
		if err != nil {
			return nil, fmt.Errorf("resolving style %d: %w", styleID, err)
		}
		var copied *excelize.Style
		if err := deepcopy.Copy(&copied, style); err != nil {
			return nil, fmt.Errorf("copying style of %s: %w", cell, err)
		}
		snap.Styles[col] = copied

		formula, err := f.GetCellFormula(sheetName, cell)
		if err != nil {
			return nil, fmt.Errorf("reading formula of %s: %w", cell, err)
		}
		if formula != "" {
			snap.Formulas[col] = formula
		}

		hasLink, target, err := f.GetCellHyperLink(sheetName, cell)
		if err != nil {
			return nil, fmt.Errorf("reading hyperlink of %s: %w", cell, err)
		}
		if hasLink && target != "" {
			snap.Hyperlinks[col] = target
		}
	}

	merged, err := f.GetMergeCells(sheetName)
	if err != nil {
		return nil, fmt.Errorf("reading merged ranges: %w", err)
	}
	for _, mc := range merged {
		_, startRow, err := excelize.CellNameToCoordinates(mc.GetStartAxis())
		if err != nil {
			continue
		}
		_, endRow, err := excelize.CellNameToCoordinates(mc.GetEndAxis())
		if err != nil {
			continue
		}
		if row >= startRow && row <= endRow {
			snap.MergedRanges = append(snap.MergedRanges, mc.GetStartAxis()+":"+mc.GetEndAxis())
		}
	}

	return snap, nil
}

// CaptureProperties records sheet-level presentation state: explicit column
// widths, pane freezes and the tab color.
func CaptureProperties(f *excelize.File, sheetName string, maxCol int) (*models.SheetProperties, error) {
	props := &models.SheetProperties{
		ColWidths: make(map[string]float64, maxCol),
	}

	for col := 1; col <= maxCol; col++ {
		name, err := excelize.ColumnNumberToName(col)
		if err != nil {
			return nil, err
		}
		width, err := f.GetColWidth(sheetName, name)
		if err != nil {
			return nil, fmt.Errorf("reading width of column %s: %w", name, err)
		}
		props.ColWidths[name] = width
	}

	panes, err := f.GetPanes(sheetName)
	if err == nil && (panes.Freeze || panes.Split) {
		props.Panes = &panes
	}

	sheetProps, err := f.GetSheetProps(sheetName)
	if err == nil && sheetProps.TabColorRGB != nil {
		props.TabColorRGB = *sheetProps.TabColorRGB
	}

	return props, nil
}

// ApplyProperties writes a captured SheetProperties back verbatim.
func ApplyProperties(f *excelize.File, sheetName string, props *models.SheetProperties) error {
	for name, width := range props.ColWidths {
		if err := f.SetColWidth(sheetName, name, name, width); err != nil {
			return fmt.Errorf("restoring width of column %s: %w", name, err)
		}
	}
	if props.Panes != nil {
		if err := f.SetPanes(sheetName, props.Panes); err != nil {
			return fmt.Errorf("restoring panes: %w", err)
		}
	}
	if props.TabColorRGB != "" {
		color := props.TabColorRGB
		if err := f.SetSheetProps(sheetName, &excelize.SheetPropsOptions{TabColorRGB: &color}); err != nil {
			return fmt.Errorf("restoring tab color: %w", err)
		}
	}
	return nil
}

// SetHyperlink writes a hyperlink, classifying workbook-internal locations
// ("Sheet1!A5", "#Sheet1!A5") versus external URLs.
func SetHyperlink(f *excelize.File, sheetName, cell, target string) error {
	linkType := "External"
	location := target
	switch {
	case strings.HasPrefix(target, "#"):
		location = target[1:]
		linkType = "Location"
	case strings.Contains(target, "!") && !strings.Contains(target, "://"):
		linkType = "Location"
	}
	return f.SetCellHyperLink(sheetName, cell, location, linkType)
}
