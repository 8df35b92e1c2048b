package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/reglet-dev/stitch/internal/application/dto"
	"github.com/reglet-dev/stitch/internal/domain/entities"
	"github.com/reglet-dev/stitch/internal/domain/values"
	"github.com/reglet-dev/stitch/internal/infrastructure/bindings"
	"github.com/reglet-dev/stitch/internal/infrastructure/container"
)

var retrofitOpts = DefaultCommonOptions()

// retrofitCmd is the cart page flow: apply a saved personalization to a line
// that is already in the cart.
var retrofitCmd = &cobra.Command{
	Use:   "retrofit",
	Short: "Apply a personalization to an existing cart line",
	Long: `Restore the personalization saved during 'stitch configure' and apply it
to a cart line: the line's properties are rewritten and the priced addons are
added as children of the line. Both requests must succeed.

Personalization flags edit the restored configuration before it is applied.

Examples:
  stitch retrofit --session 0b9f... --product 123 --line 456:abc --quantity 2`,
	Args: cobra.NoArgs,
	PreRunE: func(_ *cobra.Command, _ []string) error {
		if viper.GetString("session") == "" {
			return fmt.Errorf("--session is required to restore a personalization")
		}
		return retrofitOpts.ValidateFlags()
	},
	RunE: withContainer(func(cc *CommandContext, cmd *cobra.Command, _ []string) error {
		product, _ := cmd.Flags().GetString("product")
		lineKey, _ := cmd.Flags().GetString("line")
		subject, err := values.NewSubjectID(product)
		if err != nil {
			return err
		}
		line, err := values.NewLineReference(lineKey)
		if err != nil {
			return err
		}

		fields := bindings.NewFields()
		button := bindings.NewButton()
		cfgr, err := cc.Container.NewConfigurator(container.ConfiguratorOptions{
			Quantity: fields,
			Submit:   button,
			Subject:  entities.Subject{ID: subject, Line: line},
			Mode:     values.ModePostPurchase,
		})
		if err != nil {
			return err
		}
		defer cfgr.Disclosure.Detach()

		cfgr.Store.Mount(cc.Context, fields)
		cfgr.Disclosure.Sync()
		if err := retrofitOpts.WriteFields(cmd, cfgr.Store.Catalog(), fields); err != nil {
			return err
		}
		if err := cfgr.Store.Capture(cc.Context, fields); err != nil {
			return err
		}

		if err := renderQuote(cmd, cc.Container, cfgr.Store, retrofitOpts.Format); err != nil {
			return err
		}

		if memCart := cc.Container.DryRunCart(); memCart != nil {
			memCart.Seed(dto.CartLine{Key: line.String(), VariantID: product, Quantity: retrofitOpts.Quantity})
		}

		ctx, cancel := retrofitOpts.ApplyToContext(cc.Context)
		defer cancel()

		cart, err := cfgr.Composer.Retrofit(ctx)
		if err != nil {
			return err
		}
		printCart(cmd.OutOrStdout(), cart)
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(retrofitCmd)

	retrofitOpts.RegisterFlags(retrofitCmd)
	retrofitCmd.Flags().String("product", "", "Product identifier of the cart line")
	retrofitCmd.Flags().String("line", "", "Key of the cart line to personalize")
	//nolint:errcheck // flags are registered above
	retrofitCmd.MarkFlagRequired("product")
	//nolint:errcheck // flags are registered above
	retrofitCmd.MarkFlagRequired("line")
}
