package output

import (
	"encoding/csv"
	"io"
	"strings"
)

// CSVFormatter writes each table as a titled block of rows
type CSVFormatter struct{}

// NewCSVFormatter creates a CSV formatter
func NewCSVFormatter() *CSVFormatter {
	return &CSVFormatter{}
}

// Format returns the format type
func (f *CSVFormatter) Format() Format { return FormatCSV }

// ContentType returns the MIME type
func (f *CSVFormatter) ContentType() string { return "text/csv; charset=utf-8" }

// Render writes the tables followed by the summary
func (f *CSVFormatter) Render(w io.Writer, report *Report) error {
	var rows [][]string

	rows = append(rows, []string{strings.ToUpper(report.Title)})
	rows = append(rows, []string{"Currency", string(report.Currency)})
	rows = append(rows, []string{""})

	for _, t := range report.Tables {
		rows = append(rows, []string{strings.ToUpper(t.Name)})
		header := make([]string, len(t.Columns))
		for i, col := range t.Columns {
			header[i] = col.Title
		}
		rows = append(rows, header)
		rows = append(rows, t.Rows...)
		rows = append(rows, []string{""})
	}

	if len(report.Summary) > 0 {
		rows = append(rows, []string{"SUMMARY"})
		rows = append(rows, []string{"Metric", "Value"})
		for _, m := range report.Summary {
			rows = append(rows, []string{m.Label, m.Value})
		}
	}

	cw := csv.NewWriter(w)
	if err := cw.WriteAll(rows); err != nil {
		return err
	}
	return cw.Error()
}
