package output

import (
	"io"

	"github.com/goccy/go-yaml"

	"github.com/reglet-dev/stitch/internal/application/dto"
)

// YAMLFormatter formats quotes as YAML.
type YAMLFormatter struct {
	writer io.Writer
}

// NewYAMLFormatter creates a new YAML formatter.
func NewYAMLFormatter(w io.Writer) *YAMLFormatter {
	return &YAMLFormatter{writer: w}
}

// Format writes the quote as YAML.
func (f *YAMLFormatter) Format(quote *dto.QuoteResponse) error {
	encoder := yaml.NewEncoder(f.writer, yaml.Indent(2))

	if err := encoder.Encode(quote); err != nil {
		return err
	}

	return encoder.Close()
}
