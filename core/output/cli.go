package output

import (
	"io"

	"aws-cost-calc/core/ui"
)

// CLIFormatter renders a report as terminal tables
type CLIFormatter struct {
	noColor bool
}

// NewCLIFormatter creates a CLI formatter
func NewCLIFormatter(noColor bool) *CLIFormatter {
	return &CLIFormatter{noColor: noColor}
}

// Format returns the format type
func (f *CLIFormatter) Format() Format { return FormatCLI }

// ContentType returns the MIME type
func (f *CLIFormatter) ContentType() string { return "text/plain; charset=utf-8" }

// Render writes the report's tables and summary box
func (f *CLIFormatter) Render(w io.Writer, report *Report) error {
	uw := ui.NewWriter(w, f.noColor)
	uw.Header(report.Title)

	for i, t := range report.Tables {
		if i > 0 {
			uw.Println("")
		}
		uw.SubHeader(t.Name)

		headers := make([]string, len(t.Columns))
		for c, col := range t.Columns {
			headers[c] = col.Title
		}
		table := uw.NewTable(headers...)
		for c, col := range t.Columns {
			if col.Numeric {
				table.SetAlign(c, ui.AlignRight)
			}
		}
		for _, row := range t.Rows {
			table.AddRow(row...)
		}
		table.Render()
	}

	if len(report.Summary) == 0 {
		return nil
	}

	summary := uw.NewCostSummary()
	for _, m := range report.Summary {
		if m.Label == "Total" {
			summary.Total = m.Value
			continue
		}
		summary.Add(m.Label, m.Value)
	}
	summary.Render()

	if report.Metadata.RequestID != "" {
		uw.Println("")
		uw.Info("request %s, input %s", report.Metadata.RequestID, shortHash(report.Metadata.InputHash))
	}
	return nil
}

func shortHash(h string) string {
	if len(h) > 12 {
		return h[:12]
	}
	return h
}
