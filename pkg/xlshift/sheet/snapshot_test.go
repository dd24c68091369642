package sheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestCaptureAndApplyRowSnapshot(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	for _, cell := range []string{"A1", "B1", "C1", "D1"} {
		require.NoError(t, f.SetCellValue("Sheet1", cell, "h"))
	}
	require.NoError(t, f.SetCellValue("Sheet1", "A2", "anchor"))
	require.NoError(t, f.SetCellValue("Sheet1", "B2", 1.5))
	require.NoError(t, f.SetCellFormula("Sheet1", "A2", "=B2+1"))
	require.NoError(t, f.SetCellFormula("Sheet1", "C2", "=A2*2"))
	require.NoError(t, f.SetCellValue("Sheet1", "D2", "docs"))
	require.NoError(t, f.SetCellHyperLink("Sheet1", "D2", "https://example.com/docs", "External"))
	require.NoError(t, f.SetRowHeight("Sheet1", 2, 28))

	styleID, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		NumFmt: 2,
	})
	require.NoError(t, err)
	require.NoError(t, f.SetCellStyle("Sheet1", "B2", "B2", styleID))

	snap, err := CaptureRow(f, "Sheet1", 2, 4)
	require.NoError(t, err)

	assert.Equal(t, 2, snap.Row)
	assert.InDelta(t, 28, snap.Height, 0.01)
	assert.Equal(t, "=B2+1", snap.Formulas[1])
	assert.Equal(t, "=A2*2", snap.Formulas[3])
	assert.Equal(t, "https://example.com/docs", snap.Hyperlinks[4])
	require.NotNil(t, snap.Styles[2])
	require.NotNil(t, snap.Styles[2].Font)
	assert.True(t, snap.Styles[2].Font.Bold)
	assert.Equal(t, 2, snap.Styles[2].NumFmt)

	// Column A is a key column here: payload value, no templated formula.
	require.NoError(t, ApplyRowSnapshot(f, "Sheet1", snap, 9, []int{1}))

	height, err := f.GetRowHeight("Sheet1", 9)
	require.NoError(t, err)
	assert.InDelta(t, 28, height, 0.01)

	formula, err := f.GetCellFormula("Sheet1", "C9")
	require.NoError(t, err)
	assert.Equal(t, "=A9*2", formula)

	formula, err = f.GetCellFormula("Sheet1", "A9")
	require.NoError(t, err)
	assert.Empty(t, formula)

	hasLink, target, err := f.GetCellHyperLink("Sheet1", "D9")
	require.NoError(t, err)
	assert.True(t, hasLink)
	assert.Equal(t, "https://example.com/docs", target)

	gotID, err := f.GetCellStyle("Sheet1", "B9")
	require.NoError(t, err)
	got, err := f.GetStyle(gotID)
	require.NoError(t, err)
	require.NotNil(t, got.Font)
	assert.True(t, got.Font.Bold)
}

func TestDimensionsIncludeHyperlinkOnlyCells(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, f.SetCellValue("Sheet1", "A1", "x"))

	maxRow, maxCol, err := Dimensions(f, "Sheet1")
	require.NoError(t, err)
	assert.Equal(t, 1, maxRow)
	assert.Equal(t, 1, maxCol)

	// A textless hyperlink below the last data row still widens the used
	// range, so the splice moves and re-anchors it like any other cell.
	require.NoError(t, f.SetCellHyperLink("Sheet1", "B5", "Sheet1!A1", "Location"))

	maxRow, maxCol, err = Dimensions(f, "Sheet1")
	require.NoError(t, err)
	assert.Equal(t, 5, maxRow)
	assert.Equal(t, 2, maxCol)
}

func TestCaptureRowMergedRanges(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, f.SetCellValue("Sheet1", "A5", "merged"))
	require.NoError(t, f.MergeCell("Sheet1", "A5", "B6"))

	snap, err := CaptureRow(f, "Sheet1", 5, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"A5:B6"}, snap.MergedRanges)

	snap, err = CaptureRow(f, "Sheet1", 4, 2)
	require.NoError(t, err)
	assert.Empty(t, snap.MergedRanges)
}

func TestCaptureAndApplyProperties(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, f.SetCellValue("Sheet1", "B1", "x"))
	require.NoError(t, f.SetColWidth("Sheet1", "B", "B", 22))
	require.NoError(t, f.SetPanes("Sheet1", &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}))
	color := "FF0000"
	require.NoError(t, f.SetSheetProps("Sheet1", &excelize.SheetPropsOptions{TabColorRGB: &color}))

	props, err := CaptureProperties(f, "Sheet1", 2)
	require.NoError(t, err)
	assert.InDelta(t, 22, props.ColWidths["B"], 0.01)
	require.NotNil(t, props.Panes)
	assert.True(t, props.Panes.Freeze)
	assert.Equal(t, "FF0000", props.TabColorRGB)

	require.NoError(t, ApplyProperties(f, "Sheet1", props))

	width, err := f.GetColWidth("Sheet1", "B")
	require.NoError(t, err)
	assert.InDelta(t, 22, width, 0.01)
}

func TestSetHyperlinkClassification(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	tests := []struct {
		cell   string
		target string
		want   string
	}{
		{"A1", "Sheet1!A5", "Sheet1!A5"},
		{"A2", "#Sheet1!A5", "Sheet1!A5"},
		{"A3", "https://example.com", "https://example.com"},
	}
	for _, tt := range tests {
		require.NoError(t, f.SetCellValue("Sheet1", tt.cell, "link"))
		require.NoError(t, SetHyperlink(f, "Sheet1", tt.cell, tt.target))
		hasLink, got, err := f.GetCellHyperLink("Sheet1", tt.cell)
		require.NoError(t, err)
		assert.True(t, hasLink, tt.cell)
		assert.Equal(t, tt.want, got, tt.cell)
	}
}
