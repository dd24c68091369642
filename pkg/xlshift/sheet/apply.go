package sheet

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/sheetops/xlshift/pkg/xlshift/models"
	"github.com/sheetops/xlshift/pkg/xlshift/refs"
)

// ApplyRowSnapshot stamps an anchor row's template onto an inserted row:
// height, per-column styles, the anchor's non-key formulas with relative
// references shifted to the new slot, and the anchor's hyperlinks. Key
// columns keep the payload values the splice wrote; only their style is
// templated.
func ApplyRowSnapshot(f *excelize.File, sheetName string, snap *models.RowSnapshot, targetRow int, keyCols []int) error {
	if snap.Height > 0 {
		if err := f.SetRowHeight(sheetName, targetRow, snap.Height); err != nil {
			return fmt.Errorf("setting height of row %d: %w", targetRow, err)
		}
	}

	keySet := make(map[int]bool, len(keyCols))
	for _, col := range keyCols {
		keySet[col] = true
	}

	for col := 1; col <= snap.MaxCol; col++ {
		cell, err := excelize.CoordinatesToCellName(col, targetRow)
		if err != nil {
			return err
		}

		if style := snap.Styles[col]; style != nil {
			styleID, err := f.NewStyle(style)
			if err != nil {
				return fmt.Errorf("materializing style for %s: %w", cell, err)
			}
			if err := f.SetCellStyle(sheetName, cell, cell, styleID); err != nil {
				return fmt.Errorf("applying style to %s: %w", cell, err)
			}
		}

		if formula, ok := snap.Formulas[col]; ok && !keySet[col] {
			adjusted := refs.AdjustRelative(formula, snap.Row, targetRow)
			if err := f.SetCellFormula(sheetName, cell, adjusted); err != nil {
				return fmt.Errorf("applying formula to %s: %w", cell, err)
			}
		}

		if target, ok := snap.Hyperlinks[col]; ok {
			if err := SetHyperlink(f, sheetName, cell, target); err != nil {
				return fmt.Errorf("applying hyperlink to %s: %w", cell, err)
			}
		}
	}

	return nil
}
