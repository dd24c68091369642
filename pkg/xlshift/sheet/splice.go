package sheet

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/sheetops/xlshift/pkg/xlshift/models"
	"github.com/sheetops/xlshift/pkg/xlshift/shift"
)

// Splice inserts the requested row groups into the target sheet. Every
// shifted original row is moved to its final position in one bottom-up pass,
// then each vacated block is filled with clones of its anchor row, with the
// key columns overwritten from the payloads. Returned positions are 1-based
// in the new layout, top to bottom.
//
// The splice carries values, formulas, styles, hyperlinks and row heights;
// formatting templates for the inserted rows are reapplied separately from
// snapshots. Hyperlinks on vacated cells are removed so a moved link never
// lingers at its old position.
func Splice(f *excelize.File, sheetName string, off *shift.Offsets,
	payloads map[shift.OriginalRow][]models.RowPayload, keyCols []int) ([]models.InsertedPosition, error) {

	maxRow, maxCol, err := Dimensions(f, sheetName)
	if err != nil {
		return nil, err
	}

	// Move originals bottom-up; offsets are monotonic, so once a row stops
	// moving every row above it is in place already.
	for row := maxRow; row >= 1; row-- {
		offset := off.At(shift.OriginalRow(row))
		if offset == 0 {
			break
		}
		if err := moveRow(f, sheetName, row, row+offset, maxCol); err != nil {
			return nil, err
		}
	}

	keySet := make(map[int]bool, len(keyCols))
	for _, col := range keyCols {
		keySet[col] = true
	}

	var positions []models.InsertedPosition
	for _, anchor := range off.Anchors() {
		// The anchor's content now sits at its shifted position; clones read
		// from there.
		home := int(off.Result(anchor))
		for i, payload := range payloads[anchor] {
			dst := home + 1 + i
			if err := cloneRow(f, sheetName, home, dst, maxCol, keySet); err != nil {
				return nil, err
			}
			for j, col := range keyCols {
				cell, err := excelize.CoordinatesToCellName(col, dst)
				if err != nil {
					return nil, err
				}
				if err := f.SetCellValue(sheetName, cell, payload[j]); err != nil {
					return nil, fmt.Errorf("writing key column %d of row %d: %w", col, dst, err)
				}
			}
			positions = append(positions, models.InsertedPosition{Row: dst, SourceRow: int(anchor)})
		}
	}

	return positions, nil
}

// moveRow relocates a row's cells; the source cells' hyperlinks are removed
// after the copy so the vacated row does not keep them.
func moveRow(f *excelize.File, sheetName string, src, dst, maxCol int) error {
	for col := 1; col <= maxCol; col++ {
		if err := copyCell(f, sheetName, col, src, dst, true, true); err != nil {
			return err
		}
	}
	return copyRowHeight(f, sheetName, src, dst)
}

// cloneRow copies a row like moveRow but leaves the key columns' content to
// the caller and the source row intact; key-column style still transfers.
func cloneRow(f *excelize.File, sheetName string, src, dst, maxCol int, keySet map[int]bool) error {
	for col := 1; col <= maxCol; col++ {
		if err := copyCell(f, sheetName, col, src, dst, !keySet[col], false); err != nil {
			return err
		}
	}
	return copyRowHeight(f, sheetName, src, dst)
}

// copyCell transfers style plus, when copyContent is set, the formula or
// typed value and any hyperlink of one cell to another on the same sheet.
// With clearSrcLink the source cell's hyperlink is removed once copied.
func copyCell(f *excelize.File, sheetName string, col, srcRow, dstRow int, copyContent, clearSrcLink bool) error {
	src, err := excelize.CoordinatesToCellName(col, srcRow)
	if err != nil {
		return err
	}
	dst, err := excelize.CoordinatesToCellName(col, dstRow)
	if err != nil {
		return err
	}

	styleID, err := f.GetCellStyle(sheetName, src)
	if err != nil {
		return fmt.Errorf("reading style of %s: %w", src, err)
	}
	if err := f.SetCellStyle(sheetName, dst, dst, styleID); err != nil {
		return fmt.Errorf("writing style of %s: %w", dst, err)
	}

	if !copyContent {
		return nil
	}

	formula, err := f.GetCellFormula(sheetName, src)
	if err != nil {
		return fmt.Errorf("reading formula of %s: %w", src, err)
	}
	if formula != "" {
		if err := f.SetCellFormula(sheetName, dst, formula); err != nil {
			return fmt.Errorf("writing formula of %s: %w", dst, err)
		}
	} else {
		// An empty formula string clears any stale formula at the
		// destination before the value lands.
		if err := f.SetCellFormula(sheetName, dst, ""); err != nil {
			return fmt.Errorf("clearing formula of %s: %w", dst, err)
		}
		value, err := typedValue(f, sheetName, src)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheetName, dst, value); err != nil {
			return fmt.Errorf("writing value of %s: %w", dst, err)
		}
	}

	hasLink, target, err := f.GetCellHyperLink(sheetName, src)
	if err != nil {
		return fmt.Errorf("reading hyperlink of %s: %w", src, err)
	}
	if hasLink && target != "" {
		if err := SetHyperlink(f, sheetName, dst, target); err != nil {
			return fmt.Errorf("writing hyperlink of %s: %w", dst, err)
		}
		if clearSrcLink {
			if err := f.SetCellHyperLink(sheetName, src, "", "None"); err != nil {
				return fmt.Errorf("removing hyperlink of %s: %w", src, err)
			}
		}
	}
	return nil
}

// typedValue reads a cell's raw value with its stored type so numbers and
// booleans survive the move instead of degrading to strings.
func typedValue(f *excelize.File, sheetName, cell string) (any, error) {
	raw, err := f.GetCellValue(sheetName, cell, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("reading value of %s: %w", cell, err)
	}
	if raw == "" {
		return nil, nil
	}
	cellType, err := f.GetCellType(sheetName, cell)
	if err != nil {
		return nil, fmt.Errorf("reading type of %s: %w", cell, err)
	}
	switch cellType {
	case excelize.CellTypeBool:
		return raw == "1" || strings.EqualFold(raw, "TRUE"), nil
	case excelize.CellTypeNumber, excelize.CellTypeDate, excelize.CellTypeUnset:
		if n, err := strconv.ParseFloat(raw, 64); err == nil {
			return n, nil
		}
		return raw, nil
	default:
		return raw, nil
	}
}

func copyRowHeight(f *excelize.File, sheetName string, src, dst int) error {
	height, err := f.GetRowHeight(sheetName, src)
	if err != nil {
		return fmt.Errorf("reading height of row %d: %w", src, err)
	}
	if err := f.SetRowHeight(sheetName, dst, height); err != nil {
		return fmt.Errorf("writing height of row %d: %w", dst, err)
	}
	return nil
}
