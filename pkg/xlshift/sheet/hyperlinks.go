package sheet

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/xuri/excelize/v2"
)

// The container reads hyperlinks per cell but offers no way to list the cells
// carrying one, and a hyperlink anchor needs no backing cell element, so a
// walk over cell data can miss it entirely. hyperlinkCells serializes the
// workbook and reads the anchors straight from each worksheet part.

type workbookPart struct {
	Sheets struct {
		Sheet []struct {
			Name string `xml:"name,attr"`
			ID   string `xml:"http://schemas.openxmlformats.org/officeDocument/2006/relationships id,attr"`
		} `xml:"sheet"`
	} `xml:"sheets"`
}

type relationshipsPart struct {
	Relationship []struct {
		ID     string `xml:"Id,attr"`
		Target string `xml:"Target,attr"`
	} `xml:"Relationship"`
}

type worksheetPart struct {
	Hyperlinks struct {
		Hyperlink []struct {
			Ref string `xml:"ref,attr"`
		} `xml:"hyperlink"`
	} `xml:"hyperlinks"`
}

// hyperlinkCells returns, per sheet name, the cells anchoring a hyperlink.
// Targets are not resolved here; callers read them through GetCellHyperLink.
func hyperlinkCells(f *excelize.File) (map[string][]string, error) {
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serializing workbook: %w", err)
	}
	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		return nil, fmt.Errorf("reading workbook package: %w", err)
	}

	parts := make(map[string][]byte, len(zr.File))
	for _, file := range zr.File {
		rc, err := file.Open()
		if err != nil {
			return nil, fmt.Errorf("opening package part %s: %w", file.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("reading package part %s: %w", file.Name, err)
		}
		parts[file.Name] = data
	}

	var wb workbookPart
	if err := xml.Unmarshal(parts["xl/workbook.xml"], &wb); err != nil {
		return nil, fmt.Errorf("parsing workbook part: %w", err)
	}
	var rels relationshipsPart
	if err := xml.Unmarshal(parts["xl/_rels/workbook.xml.rels"], &rels); err != nil {
		return nil, fmt.Errorf("parsing workbook relationships: %w", err)
	}
	targets := make(map[string]string, len(rels.Relationship))
	for _, rel := range rels.Relationship {
		targets[rel.ID] = rel.Target
	}

	cells := make(map[string][]string, len(wb.Sheets.Sheet))
	for _, sheet := range wb.Sheets.Sheet {
		part := parts[sheetPartPath(targets[sheet.ID])]
		if part == nil {
			continue
		}
		var ws worksheetPart
		if err := xml.Unmarshal(part, &ws); err != nil {
			return nil, fmt.Errorf("parsing worksheet part of %q: %w", sheet.Name, err)
		}
		for _, link := range ws.Hyperlinks.Hyperlink {
			// A range anchor is keyed by its first cell.
			cell, _, _ := strings.Cut(link.Ref, ":")
			cells[sheet.Name] = append(cells[sheet.Name], cell)
		}
	}
	return cells, nil
}

// sheetPartPath resolves a workbook-relative relationship target to its
// package path.
func sheetPartPath(target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(target, "/")
	}
	return path.Join("xl", target)
}
