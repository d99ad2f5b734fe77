package output

import (
	"io"

	"github.com/goccy/go-json"
)

// JSONFormatter renders a report's params, result and summary as JSON
type JSONFormatter struct {
	indent string
}

// NewJSONFormatter creates an indented JSON formatter
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{indent: "  "}
}

// Format returns the format type
func (f *JSONFormatter) Format() Format { return FormatJSON }

// ContentType returns the MIME type
func (f *JSONFormatter) ContentType() string { return "application/json" }

// Render encodes the report
func (f *JSONFormatter) Render(w io.Writer, report *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", f.indent)
	return enc.Encode(report)
}
