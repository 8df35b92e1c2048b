package output

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/reglet-dev/stitch/internal/application/dto"
)

const (
	colorReset = "\033[0m"
	colorRed   = "\033[31m"
	colorGreen = "\033[32m"
	colorGray  = "\033[90m"
	colorBold  = "\033[1m"
)

// TableFormatter formats quotes as a human-readable table.
type TableFormatter struct {
	writer      io.Writer
	EnableColor bool
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(w io.Writer) *TableFormatter {
	return &TableFormatter{
		writer:      w,
		EnableColor: true, // Default to true, caller can disable
	}
}

// colorize returns the string wrapped in ANSI color codes if enabled.
func (f *TableFormatter) colorize(text, code string) string {
	if !f.EnableColor {
		return text
	}
	return code + text + colorReset
}

// Format writes the quote as a table.
//
//nolint:errcheck // Table formatting errors are non-critical (best-effort terminal output)
func (f *TableFormatter) Format(q *dto.QuoteResponse) error {
	rule := f.colorize(strings.Repeat("─", 60), colorGray)

	fmt.Fprintln(f.writer, rule)
	fmt.Fprintf(f.writer, "Subject: %s (%s)\n", f.colorize(q.Subject, colorBold), q.Mode)
	fmt.Fprintf(f.writer, "Enabled: %t\n", q.Enabled)
	fmt.Fprintf(f.writer, "Preview: %q\n", q.PreviewText)
	for _, k := range sortedKeys(q.Style) {
		fmt.Fprintf(f.writer, "  %-12s %s\n", k+":", q.Style[k])
	}

	status := f.colorize("valid", colorGreen)
	if !q.Valid {
		status = f.colorize("invalid: "+q.InvalidReason, colorRed)
		if q.InvalidGroup != "" {
			status = f.colorize(fmt.Sprintf("invalid: %s (%s)", q.InvalidReason, q.InvalidGroup), colorRed)
		}
	}
	fmt.Fprintf(f.writer, "Status:  %s\n", status)
	fmt.Fprintf(f.writer, "Price:   %s\n", f.colorize(q.Price, colorBold))
	fmt.Fprintln(f.writer, rule)

	if len(q.Lines) == 0 {
		fmt.Fprintln(f.writer, "No addon lines.")
	} else {
		fmt.Fprintln(f.writer, f.colorize("Addon lines:", colorBold))
		for _, l := range q.Lines {
			fmt.Fprintf(f.writer, "  %-10s %-12s variant=%s qty=%d parent=%s\n", l.Group, l.Value, l.VariantID, l.Quantity, l.Parent)
		}
	}

	for _, k := range sortedKeys(q.Properties) {
		fmt.Fprintf(f.writer, "%s: %s\n", k, q.Properties[k])
	}
	fmt.Fprintln(f.writer, rule)
	return nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
