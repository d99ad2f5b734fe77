package output

import (
	"fmt"
	"io"
	"strings"
)

// MarkdownFormatter renders GitHub-flavored markdown tables
type MarkdownFormatter struct{}

// NewMarkdownFormatter creates a markdown formatter
func NewMarkdownFormatter() *MarkdownFormatter {
	return &MarkdownFormatter{}
}

// Format returns the format type
func (f *MarkdownFormatter) Format() Format { return FormatMarkdown }

// ContentType returns the MIME type
func (f *MarkdownFormatter) ContentType() string { return "text/markdown; charset=utf-8" }

// Render writes the report
func (f *MarkdownFormatter) Render(w io.Writer, report *Report) error {
	var b strings.Builder

	fmt.Fprintf(&b, "## %s\n\n", report.Title)

	for _, t := range report.Tables {
		fmt.Fprintf(&b, "### %s\n\n", t.Name)

		titles := make([]string, len(t.Columns))
		aligns := make([]string, len(t.Columns))
		for i, col := range t.Columns {
			titles[i] = escapeCell(col.Title)
			aligns[i] = "---"
			if col.Numeric {
				aligns[i] = "---:"
			}
		}
		writeRow(&b, titles)
		writeRow(&b, aligns)
		for _, row := range t.Rows {
			cells := make([]string, len(t.Columns))
			for i := range cells {
				if i < len(row) {
					cells[i] = escapeCell(row[i])
				}
			}
			writeRow(&b, cells)
		}
		b.WriteString("\n")
	}

	if len(report.Summary) > 0 {
		b.WriteString("### Summary\n\n")
		for _, m := range report.Summary {
			if m.Label == "Total" {
				fmt.Fprintf(&b, "- **%s: %s**\n", m.Label, m.Value)
				continue
			}
			fmt.Fprintf(&b, "- %s: %s\n", m.Label, m.Value)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeRow(b *strings.Builder, cells []string) {
	b.WriteString("| " + strings.Join(cells, " | ") + " |\n")
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
