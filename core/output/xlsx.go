package output

import (
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// XLSXFormatter writes one worksheet per table plus a summary sheet
type XLSXFormatter struct{}

// NewXLSXFormatter creates a spreadsheet formatter
func NewXLSXFormatter() *XLSXFormatter {
	return &XLSXFormatter{}
}

// Format returns the format type
func (f *XLSXFormatter) Format() Format { return FormatXLSX }

// ContentType returns the MIME type
func (f *XLSXFormatter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// Render writes the workbook
func (f *XLSXFormatter) Render(w io.Writer, report *Report) error {
	book := excelize.NewFile()
	defer book.Close()

	bold, err := book.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	first := true
	addSheet := func(name string) (string, error) {
		name = sheetName(name)
		if first {
			first = false
			return name, book.SetSheetName("Sheet1", name)
		}
		_, err := book.NewSheet(name)
		return name, err
	}

	for _, t := range report.Tables {
		sheet, err := addSheet(t.Name)
		if err != nil {
			return err
		}

		header := make([]interface{}, len(t.Columns))
		for i, col := range t.Columns {
			header[i] = col.Title
		}
		if err := book.SetSheetRow(sheet, "A1", &header); err != nil {
			return err
		}
		if err := book.SetRowStyle(sheet, 1, 1, bold); err != nil {
			return err
		}

		for r, row := range t.Rows {
			cells := make([]interface{}, len(row))
			for i, cell := range row {
				cells[i] = cellValue(cell, i < len(t.Columns) && t.Columns[i].Numeric)
			}
			ref, err := excelize.CoordinatesToCellName(1, r+2)
			if err != nil {
				return err
			}
			if err := book.SetSheetRow(sheet, ref, &cells); err != nil {
				return err
			}
		}

		if len(t.Columns) > 0 {
			last, err := excelize.ColumnNumberToName(len(t.Columns))
			if err != nil {
				return err
			}
			if err := book.SetColWidth(sheet, "A", last, 18); err != nil {
				return err
			}
		}
	}

	sheet, err := addSheet("Summary")
	if err != nil {
		return err
	}
	rows := [][]interface{}{
		{"Report", report.Title},
		{"Currency", string(report.Currency)},
	}
	if report.Metadata.RequestID != "" {
		rows = append(rows, []interface{}{"Request ID", report.Metadata.RequestID})
	}
	if report.Metadata.InputHash != "" {
		rows = append(rows, []interface{}{"Input hash", report.Metadata.InputHash})
	}
	for _, m := range report.Summary {
		rows = append(rows, []interface{}{m.Label, m.Value})
	}
	for r, row := range rows {
		ref, err := excelize.CoordinatesToCellName(1, r+1)
		if err != nil {
			return err
		}
		if err := book.SetSheetRow(sheet, ref, &row); err != nil {
			return err
		}
	}
	if err := book.SetColWidth(sheet, "A", "B", 24); err != nil {
		return err
	}

	return book.Write(w)
}

// cellValue writes numeric cells as numbers so spreadsheets can sum them
func cellValue(cell string, numeric bool) interface{} {
	if !numeric {
		return cell
	}
	if v, err := strconv.ParseFloat(cell, 64); err == nil {
		return v
	}
	return cell
}

// sheetName strips characters Excel rejects and truncates to 31 runes
func sheetName(name string) string {
	name = strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			return '-'
		}
		return r
	}, name)
	if runes := []rune(name); len(runes) > 31 {
		name = string(runes[:31])
	}
	return name
}
