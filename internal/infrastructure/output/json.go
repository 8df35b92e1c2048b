package output

import (
	"encoding/json"
	"io"

	"github.com/reglet-dev/stitch/internal/application/dto"
)

// JSONFormatter formats quotes as JSON.
type JSONFormatter struct {
	writer io.Writer
	indent bool
}

// NewJSONFormatter creates a new JSON formatter.
// If indent is true, the output will be pretty-printed with indentation.
func NewJSONFormatter(w io.Writer, indent bool) *JSONFormatter {
	return &JSONFormatter{
		writer: w,
		indent: indent,
	}
}

// Format writes the quote as JSON.
func (f *JSONFormatter) Format(quote *dto.QuoteResponse) error {
	encoder := json.NewEncoder(f.writer)
	if f.indent {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(quote)
}
