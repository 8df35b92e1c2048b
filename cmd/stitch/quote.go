package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reglet-dev/stitch/internal/application/services"
	"github.com/reglet-dev/stitch/internal/domain/entities"
	"github.com/reglet-dev/stitch/internal/domain/values"
	"github.com/reglet-dev/stitch/internal/infrastructure/bindings"
	"github.com/reglet-dev/stitch/internal/infrastructure/container"
	"github.com/reglet-dev/stitch/internal/infrastructure/output"
)

var quoteOpts = DefaultCommonOptions()

// quoteCmd prices and validates a personalization without touching the cart.
var quoteCmd = &cobra.Command{
	Use:   "quote",
	Short: "Price and validate a personalization",
	Long: `Evaluate a personalization against the catalog and print its price,
validity, preview style and the cart lines it would produce.

Examples:
  stitch quote --catalog embroidery.yaml --text Ava --option color=Gold --option font=Script
  stitch quote --text Ava --format json`,
	Args: cobra.NoArgs,
	RunE: withContainer(func(cc *CommandContext, cmd *cobra.Command, _ []string) error {
		if err := quoteOpts.ValidateFlags(); err != nil {
			return err
		}

		product, _ := cmd.Flags().GetString("product")
		subject, err := values.NewSubjectID(product)
		if err != nil {
			return err
		}

		fields := bindings.NewFields()
		cfgr, err := cc.Container.NewConfigurator(container.ConfiguratorOptions{
			Quantity: fields,
			Subject:  entities.Subject{ID: subject},
			Mode:     values.ModePrePurchase,
		})
		if err != nil {
			return err
		}
		defer cfgr.Disclosure.Detach()

		cfgr.Store.Mount(cc.Context, fields)
		if err := quoteOpts.WriteFields(cmd, cfgr.Store.Catalog(), fields); err != nil {
			return err
		}
		if err := cfgr.Store.Capture(cc.Context, fields); err != nil {
			return err
		}

		return renderQuote(cmd, cc.Container, cfgr.Store, quoteOpts.Format)
	}),
}

func init() {
	rootCmd.AddCommand(quoteCmd)

	quoteOpts.RegisterFlags(quoteCmd)
	quoteCmd.Flags().String("product", "preview", "Product identifier the personalization belongs to")
}

// renderQuote writes the store state in the requested format.
func renderQuote(cmd *cobra.Command, c *container.Container, store *services.ConfigurationStore, format string) error {
	formatter, err := output.NewFormatterFactory().Create(format, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	if err := formatter.Format(services.BuildQuote(store, c.Money())); err != nil {
		return fmt.Errorf("failed to write quote: %w", err)
	}
	return nil
}
