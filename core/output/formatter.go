// Package output provides output formatting interfaces.
// This package produces human and machine-readable outputs.
package output

import (
	"io"
	"sort"
	"strings"
	"sync"

	"aws-cost-calc/internal/errors"
)

// Format represents output format type
type Format string

const (
	// FormatCLI is a human-readable CLI table
	FormatCLI Format = "cli"

	// FormatJSON is machine-readable JSON
	FormatJSON Format = "json"

	// FormatCSV is comma-separated tables
	FormatCSV Format = "csv"

	// FormatMarkdown is a markdown report
	FormatMarkdown Format = "markdown"

	// FormatXLSX is a spreadsheet with one sheet per table
	FormatXLSX Format = "xlsx"
)

// ParseFormat accepts a format name case-insensitively; "md" is markdown
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case FormatCLI, FormatJSON, FormatCSV, FormatMarkdown, FormatXLSX:
		return f, nil
	case "md":
		return FormatMarkdown, nil
	case "":
		return FormatCLI, nil
	default:
		return "", errors.NotFound("output format", s)
	}
}

// Formatter produces output in a specific format
type Formatter interface {
	// Format returns the format type
	Format() Format

	// ContentType is the MIME type of the rendered output
	ContentType() string

	// Render produces output for the given report
	Render(w io.Writer, report *Report) error
}

// Registry manages formatter registration
type Registry struct {
	mu         sync.RWMutex
	formatters map[Format]Formatter
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{formatters: make(map[Format]Formatter)}
}

// DefaultRegistry registers every built-in formatter
func DefaultRegistry(noColor bool) *Registry {
	r := NewRegistry()
	for _, f := range []Formatter{
		NewCLIFormatter(noColor),
		NewJSONFormatter(),
		NewCSVFormatter(),
		NewMarkdownFormatter(),
		NewXLSXFormatter(),
	} {
		// built-ins never collide
		_ = r.Register(f)
	}
	return r
}

// Register adds a formatter to the registry
func (r *Registry) Register(f Formatter) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.formatters[f.Format()]; exists {
		return errors.Newf(errors.TypeInternal, "formatter already registered: %s", f.Format())
	}
	r.formatters[f.Format()] = f
	return nil
}

// Get returns the formatter for a format
func (r *Registry) Get(format Format) (Formatter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, ok := r.formatters[format]
	if !ok {
		return nil, errors.NotFound("output format", string(format))
	}
	return f, nil
}

// Formats lists the registered formats, sorted
func (r *Registry) Formats() []Format {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Format, 0, len(r.formatters))
	for f := range r.formatters {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Render looks up the formatter for format and renders report to w
func (r *Registry) Render(w io.Writer, format Format, report *Report) error {
	f, err := r.Get(format)
	if err != nil {
		return err
	}
	if err := f.Render(w, report); err != nil {
		if _, ok := errors.As(err); ok {
			return err
		}
		return errors.Output("failed to render "+string(format)+" report", err)
	}
	return nil
}
