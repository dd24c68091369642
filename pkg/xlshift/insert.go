package xlshift

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/sheetops/xlshift/pkg/xlshift/models"
	"github.com/sheetops/xlshift/pkg/xlshift/refs"
	"github.com/sheetops/xlshift/pkg/xlshift/sheet"
	"github.com/sheetops/xlshift/pkg/xlshift/shift"
)

// Result summarizes a completed insertion run.
type Result struct {
	// Inserted lists the realized insertion positions, top to bottom.
	Inserted []models.InsertedPosition
	// UpdatedReferences counts cross-sheet reference sites whose text
	// actually changed.
	UpdatedReferences int
}

// InsertRows inserts the requested row groups into the named sheet of the
// workbook at path and writes the result to outputPath. The input file is
// never written; nothing is persisted unless the whole pipeline succeeds.
//
// The pipeline is strictly sequential: validate, snapshot anchor templates
// and sheet properties, scan cross-sheet references, splice the rows in,
// resolve every result row's identity and stamp templates onto inserted
// rows, rewrite the captured references, save.
func InsertRows(path, sheetName string, requests []models.InsertionRequest, outputPath string, opts Options) (*Result, error) {
	opts = opts.withDefaults()
	log := opts.Logger

	if err := validateRequests(requests, opts.KeyColumns); err != nil {
		return nil, err
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	if err := validateSheet(f, sheetName); err != nil {
		return nil, err
	}
	maxRow, maxCol, err := sheet.Dimensions(f, sheetName)
	if err != nil {
		return nil, err
	}
	if err := validateAnchors(requests, sheetName, maxRow); err != nil {
		return nil, err
	}
	log.Debug().Str("sheet", sheetName).Int("rows", maxRow).Int("cols", maxCol).Msg("validated input")

	// Snapshot anchor templates and sheet properties before any mutation.
	snapshots := make(map[shift.OriginalRow]*models.RowSnapshot, len(requests))
	for _, req := range requests {
		snap, err := sheet.CaptureRow(f, sheetName, req.AnchorRow, maxCol)
		if err != nil {
			return nil, fmt.Errorf("capturing template of row %d: %w", req.AnchorRow, err)
		}
		snapshots[shift.OriginalRow(req.AnchorRow)] = snap
	}
	props, err := sheet.CaptureProperties(f, sheetName, maxCol)
	if err != nil {
		return nil, err
	}
	log.Debug().Int("templates", len(snapshots)).Msg("captured anchor templates")

	// Capture reference sites while row numbers are still pre-insertion.
	sites, err := sheet.ScanCrossReferences(f, sheetName)
	if err != nil {
		return nil, err
	}
	log.Debug().Int("sites", len(sites)).Msg("captured cross-sheet reference sites")

	table := make(shift.Table, len(requests))
	payloads := make(map[shift.OriginalRow][]models.RowPayload, len(requests))
	for _, req := range requests {
		anchor := shift.OriginalRow(req.AnchorRow)
		table[anchor] = len(req.Rows)
		payloads[anchor] = req.Rows
	}
	offsets := shift.BuildOffsets(table)

	positions, err := sheet.Splice(f, sheetName, offsets, payloads, opts.KeyColumns)
	if err != nil {
		return nil, fmt.Errorf("splicing rows: %w", err)
	}
	log.Debug().Int("inserted", len(positions)).Msg("spliced rows")

	// Every row of the new layout must resolve; inserted rows get their
	// anchor's template stamped on.
	resultMax := maxRow + offsets.Total()
	for row := 1; row <= resultMax; row++ {
		identity := shift.Resolve(shift.ResultRow(row), table, offsets)
		switch identity.Kind {
		case shift.Inserted:
			snap := snapshots[identity.Source]
			if snap == nil {
				return nil, fmt.Errorf("%w: no template for anchor row %d", ErrIdentityResolution, identity.Source)
			}
			if err := sheet.ApplyRowSnapshot(f, sheetName, snap, row, opts.KeyColumns); err != nil {
				return nil, err
			}
		case shift.Original:
			// Moved in place by the splice; nothing to reapply.
		default:
			return nil, fmt.Errorf("%w: result row %d maps to no original row or insertion block", ErrIdentityResolution, row)
		}
	}

	if err := sheet.ApplyProperties(f, sheetName, props); err != nil {
		return nil, err
	}

	updated := 0
	for _, site := range sites {
		changed, err := rewriteSite(f, sheetName, site, offsets)
		if err != nil {
			return nil, err
		}
		if changed {
			updated++
		}
	}
	log.Debug().Int("updated", updated).Msg("rewrote cross-sheet references")

	if err := f.SaveAs(outputPath); err != nil {
		return nil, fmt.Errorf("saving %s: %w", outputPath, err)
	}
	log.Info().
		Str("output", outputPath).
		Int("inserted", len(positions)).
		Int("updated_references", updated).
		Msg("insertion complete")

	return &Result{Inserted: positions, UpdatedReferences: updated}, nil
}

// rewriteSite rewrites one captured reference site against the offsets and
// reports whether its text changed.
func rewriteSite(f *excelize.File, targetSheet string, site models.ReferenceSite, offsets *shift.Offsets) (bool, error) {
	cell, err := excelize.CoordinatesToCellName(site.Col, site.Row)
	if err != nil {
		return false, err
	}
	if idx, err := f.GetSheetIndex(site.Sheet); err != nil || idx < 0 {
		return false, &RewriteError{Sheet: site.Sheet, Cell: cell,
			Err: fmt.Errorf("%w: sheet no longer exists", ErrReferenceRewrite)}
	}

	switch site.Kind {
	case models.RefFormula:
		rewritten := refs.RewriteFormula(site.Text, targetSheet, offsets)
		if rewritten == site.Text {
			return false, nil
		}
		if err := f.SetCellFormula(site.Sheet, cell, rewritten); err != nil {
			return false, &RewriteError{Sheet: site.Sheet, Cell: cell,
				Err: fmt.Errorf("%w: %v", ErrReferenceRewrite, err)}
		}
	case models.RefHyperlink:
		rewritten := refs.RewriteHyperlink(site.Text, targetSheet, offsets)
		if rewritten == site.Text {
			return false, nil
		}
		if err := sheet.SetHyperlink(f, site.Sheet, cell, rewritten); err != nil {
			return false, &RewriteError{Sheet: site.Sheet, Cell: cell,
				Err: fmt.Errorf("%w: %v", ErrReferenceRewrite, err)}
		}
	}
	return true, nil
}
