package main

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/reglet-dev/stitch/internal/application/ports"
	"github.com/reglet-dev/stitch/internal/domain/entities"
	"github.com/reglet-dev/stitch/internal/infrastructure/output"
)

// CommonOptions contains the personalization flags shared by quote, configure
// and retrofit.
type CommonOptions struct {
	// Output
	Format string

	// Personalization
	Text    string
	Options []string

	// Execution
	Timeout  time.Duration
	Quantity int

	Enabled bool
}

// DefaultCommonOptions returns sensible defaults.
func DefaultCommonOptions() CommonOptions {
	return CommonOptions{
		Format:   "table",
		Timeout:  30 * time.Second,
		Quantity: 1,
	}
}

// RegisterFlags adds common flags to a cobra command.
func (opts *CommonOptions) RegisterFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&opts.Text, "text", opts.Text,
		"Personalization text (implies --enabled unless it is set explicitly)")
	cmd.Flags().StringArrayVar(&opts.Options, "option", opts.Options,
		"Option selection as group=value (repeatable)")
	cmd.Flags().BoolVar(&opts.Enabled, "enabled", opts.Enabled,
		"Turn personalization on or off")
	cmd.Flags().IntVar(&opts.Quantity, "quantity", opts.Quantity,
		"Quantity of the product")

	cmd.Flags().DurationVar(&opts.Timeout, "timeout", opts.Timeout,
		"Global timeout for cart operations (0 to disable)")
	cmd.Flags().StringVar(&opts.Format, "format", opts.Format,
		"Output format: "+strings.Join(output.NewFormatterFactory().SupportedFormats(), ", "))
}

// ApplyToContext applies timeout to context.
func (opts *CommonOptions) ApplyToContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if opts.Timeout > 0 {
		return context.WithTimeout(ctx, opts.Timeout)
	}
	return ctx, func() {}
}

// ValidateFlags validates common options.
func (opts *CommonOptions) ValidateFlags() error {
	supported := output.NewFormatterFactory().SupportedFormats()
	if !slices.Contains(supported, opts.Format) {
		return fmt.Errorf("invalid format: %s (valid: %s)", opts.Format, strings.Join(supported, ", "))
	}
	if opts.Quantity <= 0 {
		return fmt.Errorf("invalid quantity: %d", opts.Quantity)
	}
	_, err := opts.ParseOptions()
	return err
}

// ParseOptions splits the --option flags into group/value pairs.
func (opts *CommonOptions) ParseOptions() (map[string]string, error) {
	selections := make(map[string]string, len(opts.Options))
	for _, raw := range opts.Options {
		group, value, ok := strings.Cut(raw, "=")
		group, value = strings.TrimSpace(group), strings.TrimSpace(value)
		if !ok || group == "" || value == "" {
			return nil, fmt.Errorf("invalid option %q: expected group=value", raw)
		}
		selections[group] = value
	}
	return selections, nil
}

// fieldWriter is the write side of the form fields plus the quantity input.
type fieldWriter interface {
	ports.FieldBindings
	SetQuantity(q int)
}

// WriteFields copies the flags the user actually set into the form fields,
// leaving the others at whatever the store wrote back. Every --option must
// name a group and value of the catalog; the form only carries catalog groups,
// so anything else would be dropped without a trace.
func (opts *CommonOptions) WriteFields(cmd *cobra.Command, catalog *entities.Catalog, fields fieldWriter) error {
	selections, err := opts.ParseOptions()
	if err != nil {
		return err
	}
	for group, value := range selections {
		if _, err := catalog.Lookup(group, value); err != nil {
			return fmt.Errorf("invalid --option: %w", err)
		}
	}

	flags := cmd.Flags()
	if flags.Changed("text") {
		fields.WriteText(opts.Text)
	}
	for group, value := range selections {
		fields.WriteSelection(group, value)
	}
	switch {
	case flags.Changed("enabled"):
		fields.WriteEnabled(opts.Enabled)
	case flags.Changed("text") && strings.TrimSpace(opts.Text) != "":
		fields.WriteEnabled(true)
	}
	fields.SetQuantity(opts.Quantity)
	return nil
}

// HasPersonalizationFlags reports whether any personalization flag was set.
func HasPersonalizationFlags(cmd *cobra.Command) bool {
	flags := cmd.Flags()
	return flags.Changed("text") || flags.Changed("option") || flags.Changed("enabled")
}
