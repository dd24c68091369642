package sheet

import (
	"fmt"
	"strings"

	"github.com/xuri/efp"
	"github.com/xuri/excelize/v2"

	"github.com/sheetops/xlshift/pkg/xlshift/models"
	"github.com/sheetops/xlshift/pkg/xlshift/refs"
)

// ScanCrossReferences collects formula and hyperlink cells on every sheet
// except the target that reference the target sheet. Formulas come from a
// walk over the cell data; hyperlink anchors are enumerated from the
// workbook package, since an anchor cell without text or formula never shows
// up in the cell data. It must run before any row insertion so the captured
// text still carries pre-insertion row numbers.
func ScanCrossReferences(f *excelize.File, targetSheet string) ([]models.ReferenceSite, error) {
	links, err := hyperlinkCells(f)
	if err != nil {
		return nil, err
	}

	var sites []models.ReferenceSite
	for _, sheetName := range f.GetSheetList() {
		if sheetName == targetSheet {
			continue
		}
		rows, err := f.GetRows(sheetName)
		if err != nil {
			return nil, fmt.Errorf("scanning sheet %q: %w", sheetName, err)
		}
		for rowIdx, row := range rows {
			for colIdx := range row {
				cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
				if err != nil {
					return nil, err
				}

				formula, err := f.GetCellFormula(sheetName, cell)
				if err != nil {
					return nil, fmt.Errorf("reading formula of %s!%s: %w", sheetName, cell, err)
				}
				if formula != "" && formulaReferencesSheet(formula, targetSheet) {
					sites = append(sites, models.ReferenceSite{
						Sheet: sheetName,
						Row:   rowIdx + 1,
						Col:   colIdx + 1,
						Kind:  models.RefFormula,
						Text:  formula,
					})
				}
			}
		}

		for _, cell := range links[sheetName] {
			col, rowNum, err := excelize.CellNameToCoordinates(cell)
			if err != nil {
				return nil, fmt.Errorf("resolving hyperlink anchor %s!%s: %w", sheetName, cell, err)
			}
			hasLink, target, err := f.GetCellHyperLink(sheetName, cell)
			if err != nil {
				return nil, fmt.Errorf("reading hyperlink of %s!%s: %w", sheetName, cell, err)
			}
			if hasLink && refs.MatchesSheet(target, targetSheet) {
				sites = append(sites, models.ReferenceSite{
					Sheet: sheetName,
					Row:   rowNum,
					Col:   col,
					Kind:  models.RefHyperlink,
					Text:  target,
				})
			}
		}
	}

	return sites, nil
}

// formulaReferencesSheet tokenizes the formula and looks for a range operand
// qualified with the target sheet. Tokenizing (rather than substring search)
// keeps sheet names inside string literals from producing reference sites.
func formulaReferencesSheet(formula, sheet string) bool {
	ps := efp.ExcelParser()
	for _, token := range ps.Parse(strings.TrimPrefix(formula, "=")) {
		if token.TType != efp.TokenTypeOperand || token.TSubType != efp.TokenSubTypeRange {
			continue
		}
		idx := strings.LastIndex(token.TValue, "!")
		if idx < 0 {
			continue
		}
		if strings.Trim(token.TValue[:idx], "'") == sheet {
			return true
		}
	}
	return false
}
