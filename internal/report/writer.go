package report

import (
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const (
	sheetName   = "Sheet1"
	columnWidth = 20

	// Built-in excelize number formats.
	numFmtTwoDecimals = 2 // 0.00
	numFmtThousands   = 3 // #,##0
)

var thinBorder = []excelize.Border{
	{Type: "left", Color: "000000", Style: 1},
	{Type: "right", Color: "000000", Style: 1},
	{Type: "top", Color: "000000", Style: 1},
	{Type: "bottom", Color: "000000", Style: 1},
}

// WriteXLSX writes the header and rows as a styled workbook at path.
func WriteXLSX(path string, rows []Row) error {
	f := excelize.NewFile()
	defer f.Close()

	header := make([]any, len(Headers))
	for i, h := range Headers {
		header[i] = h
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return eris.Wrap(err, "report: write header")
	}

	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return eris.Wrap(err, "report: cell name")
		}
		values := []any(r)
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			return eris.Wrapf(err, "report: write row %d", i+1)
		}
	}

	if err := applyStyles(f, len(rows)); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return eris.Wrapf(err, "report: create directory for %s", path)
	}
	if err := f.SaveAs(path); err != nil {
		return eris.Wrapf(err, "report: save %s", path)
	}

	zap.L().Info("report written", zap.String("path", path), zap.Int("rows", len(rows)))
	return nil
}

func applyStyles(f *excelize.File, rowCount int) error {
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
			WrapText:   true,
		},
		Border: thinBorder,
	})
	if err != nil {
		return eris.Wrap(err, "report: header style")
	}
	bodyStyle, err := f.NewStyle(&excelize.Style{Border: thinBorder})
	if err != nil {
		return eris.Wrap(err, "report: body style")
	}
	currencyStyle, err := f.NewStyle(&excelize.Style{Border: thinBorder, NumFmt: numFmtThousands})
	if err != nil {
		return eris.Wrap(err, "report: currency style")
	}
	volumeStyle, err := f.NewStyle(&excelize.Style{Border: thinBorder, NumFmt: numFmtTwoDecimals})
	if err != nil {
		return eris.Wrap(err, "report: volume style")
	}

	lastCol, err := excelize.ColumnNumberToName(len(Headers))
	if err != nil {
		return eris.Wrap(err, "report: column name")
	}
	if err := f.SetColWidth(sheetName, "A", lastCol, columnWidth); err != nil {
		return eris.Wrap(err, "report: column width")
	}

	if err := setStyle(f, 1, 1, 1, len(Headers), headerStyle); err != nil {
		return err
	}
	if rowCount == 0 {
		return nil
	}

	last := rowCount + 1
	if err := setStyle(f, 2, 1, last, len(Headers), bodyStyle); err != nil {
		return err
	}
	if err := setStyle(f, 2, currencyColumns[0]+1, last, currencyColumns[1]+1, currencyStyle); err != nil {
		return err
	}
	return setStyle(f, 2, volumeColumns[0]+1, last, volumeColumns[1]+1, volumeStyle)
}

// setStyle styles the 1-based inclusive range (row1,col1)..(row2,col2).
func setStyle(f *excelize.File, row1, col1, row2, col2, style int) error {
	from, err := excelize.CoordinatesToCellName(col1, row1)
	if err != nil {
		return eris.Wrap(err, "report: cell name")
	}
	to, err := excelize.CoordinatesToCellName(col2, row2)
	if err != nil {
		return eris.Wrap(err, "report: cell name")
	}
	if err := f.SetCellStyle(sheetName, from, to, style); err != nil {
		return eris.Wrapf(err, "report: style %s:%s", from, to)
	}
	return nil
}
