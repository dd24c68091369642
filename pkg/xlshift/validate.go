package xlshift

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/sheetops/xlshift/pkg/xlshift/models"
)

// validateRequests checks everything that can be checked without the
// workbook: key-column configuration, request structure, payload arity and
// anchor uniqueness. Failures leave no side effects.
func validateRequests(requests []models.InsertionRequest, keyCols []int) error {
	if len(keyCols) == 0 {
		return fmt.Errorf("%w: no key columns configured", ErrInvalidRequest)
	}
	for _, col := range keyCols {
		if col < 1 {
			return fmt.Errorf("%w: key column must be >= 1, got %d", ErrInvalidRequest, col)
		}
	}
	if len(requests) == 0 {
		return fmt.Errorf("%w: empty request list", ErrInvalidRequest)
	}

	seen := make(map[int]int, len(requests))
	for i, req := range requests {
		if req.AnchorRow < 1 {
			return &RequestError{Index: i, Err: fmt.Errorf("%w: anchor_row must be >= 1, got %d", ErrInvalidRequest, req.AnchorRow)}
		}
		if len(req.Rows) == 0 {
			return &RequestError{Index: i, Err: fmt.Errorf("%w: empty row group", ErrInvalidRequest)}
		}
		for j, payload := range req.Rows {
			if len(payload) != len(keyCols) {
				return &RequestError{Index: i, Err: fmt.Errorf("%w: row %d carries %d values for %d key columns",
					ErrInvalidRequest, j, len(payload), len(keyCols))}
			}
		}
		if prev, dup := seen[req.AnchorRow]; dup {
			return fmt.Errorf("%w: requests %d and %d both anchor at row %d",
				ErrAmbiguousShiftTable, prev, i, req.AnchorRow)
		}
		seen[req.AnchorRow] = i
	}
	return nil
}

// validateSheet checks that the target sheet exists; the error lists the
// available sheets to locate the offending input.
func validateSheet(f *excelize.File, sheetName string) error {
	idx, err := f.GetSheetIndex(sheetName)
	if err != nil || idx < 0 {
		return fmt.Errorf("%w: %q (available: %s)", ErrUnknownSheet, sheetName, strings.Join(f.GetSheetList(), ", "))
	}
	return nil
}

// validateAnchors checks that every anchor row lies within the target
// sheet's used range.
func validateAnchors(requests []models.InsertionRequest, sheetName string, maxRow int) error {
	for i, req := range requests {
		if req.AnchorRow > maxRow {
			return &RequestError{Index: i, Err: fmt.Errorf("%w: row %d is beyond the last used row %d of %q",
				ErrUnknownAnchorRow, req.AnchorRow, maxRow, sheetName)}
		}
	}
	return nil
}
