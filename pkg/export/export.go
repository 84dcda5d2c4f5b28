package export

import (
	"fmt"
	"strings"
)

// Format identifies an export encoding.
type Format string

const (
	FormatCSV Format = "csv"
	FormatPDF Format = "pdf"
)

// Dataset defines tabular export content. Rows are keyed by header.
type Dataset struct {
	Title   string
	Headers []string
	Rows    []map[string]string
}

// Renderer encodes a dataset.
type Renderer interface {
	Render(data Dataset) ([]byte, error)
	ContentType() string
	Extension() string
}

// For returns the renderer registered for the format.
func For(format Format) (Renderer, error) {
	switch Format(strings.ToLower(string(format))) {
	case FormatCSV, "":
		return NewCSVExporter(), nil
	case FormatPDF:
		return NewPDFExporter(), nil
	default:
		return nil, fmt.Errorf("unsupported export format %q", format)
	}
}

// Filename builds a download name such as enquiries-20250314.csv.
func Filename(resource, date string, r Renderer) string {
	return fmt.Sprintf("%s-%s.%s", resource, date, r.Extension())
}
