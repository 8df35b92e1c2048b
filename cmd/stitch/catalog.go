package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reglet-dev/stitch/internal/infrastructure/config"
	"github.com/reglet-dev/stitch/internal/infrastructure/money"
	"github.com/reglet-dev/stitch/internal/infrastructure/system"
	"github.com/reglet-dev/stitch/internal/infrastructure/validation"
)

// catalogCmd groups catalog maintenance commands.
var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Work with option catalogs",
}

// catalogValidateCmd checks a catalog without loading the rest of the application.
var catalogValidateCmd = &cobra.Command{
	Use:   "validate <catalog.yaml>",
	Short: "Validate an option catalog",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		validator, err := validation.NewSchemaValidator()
		if err != nil {
			return err
		}
		loaded, err := config.NewCatalogLoader(validator).LoadCatalog(args[0])
		if err != nil {
			return err
		}

		formatter := money.MustNewFormatter(system.DefaultCurrency, system.DefaultLocale)
		meta := loaded.Catalog.Metadata()
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "✓ %s %s is valid\n", meta.Name, meta.Version)
		for _, g := range loaded.Catalog.Groups() {
			fmt.Fprintf(out, "  %s:", g.Name)
			for _, v := range g.Values {
				if v.Materializes() {
					fmt.Fprintf(out, " %s(+%s)", v.Value, formatter.Format(v.PriceDelta))
					continue
				}
				fmt.Fprintf(out, " %s", v.Value)
			}
			fmt.Fprintln(out)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(catalogCmd)
	catalogCmd.AddCommand(catalogValidateCmd)
}
