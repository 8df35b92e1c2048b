package main

import (
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/reglet-dev/stitch/internal/application/dto"
	"github.com/reglet-dev/stitch/internal/domain/entities"
	"github.com/reglet-dev/stitch/internal/domain/values"
	"github.com/reglet-dev/stitch/internal/infrastructure/bindings"
	"github.com/reglet-dev/stitch/internal/infrastructure/container"
)

var (
	configureOpts = DefaultCommonOptions()
	showPreview   bool
)

// configureCmd is the product page flow: personalize, then add the product
// and its addons to the cart in one request.
var configureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Personalize a product and add it to the cart",
	Long: `Personalize a product before purchase. Without personalization flags and
on a terminal, an interactive form is shown.

Every change is saved to the session, so the personalization can be applied
later to the cart line with 'stitch retrofit --session <id>'. With --variant
the product is added to the cart together with its personalization addons.

Examples:
  stitch configure --product 123 --text Ava --option color=Gold --variant 456
  stitch configure --product 123 --session 0b9f... --dry-run`,
	Args: cobra.NoArgs,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		if viper.GetString("session") == "" {
			viper.Set("session", uuid.NewString())
		}
		return configureOpts.ValidateFlags()
	},
	RunE: withContainer(func(cc *CommandContext, cmd *cobra.Command, _ []string) error {
		product, _ := cmd.Flags().GetString("product")
		variant, _ := cmd.Flags().GetString("variant")
		subject, err := values.NewSubjectID(product)
		if err != nil {
			return err
		}

		form := bindings.NewTerminalForm(cc.Container.Catalog(), cc.Container.Money())
		button := bindings.NewButton()
		cfgr, err := cc.Container.NewConfigurator(container.ConfiguratorOptions{
			Quantity: form,
			Preview:  bindings.NewPreviewPane(previewWriter(cmd)),
			Submit:   button,
			Subject:  entities.Subject{ID: subject},
			Mode:     values.ModePrePurchase,
			OnDisclosure: func(open bool) {
				cc.Logger.Debug("personalization panel", "open", open)
			},
		})
		if err != nil {
			return err
		}
		defer cfgr.Disclosure.Detach()

		cfgr.Store.Mount(cc.Context, form)
		if HasPersonalizationFlags(cmd) || !bindings.IsInteractive() {
			if err := configureOpts.WriteFields(cmd, cfgr.Store.Catalog(), form); err != nil {
				return err
			}
		} else if err := form.Run(cc.Context); err != nil {
			return err
		}
		if err := cfgr.Store.Capture(cc.Context, form); err != nil {
			return err
		}

		if err := renderQuote(cmd, cc.Container, cfgr.Store, configureOpts.Format); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "session: %s\n", cc.Container.Session())

		if variant == "" {
			return nil
		}
		if !button.Enabled() {
			return fmt.Errorf("cannot add to cart: personalization is incomplete")
		}

		ctx, cancel := configureOpts.ApplyToContext(cc.Context)
		defer cancel()

		cart, err := cfgr.Purchase.AddToCart(ctx, variant)
		if err != nil {
			return err
		}
		printCart(cmd.OutOrStdout(), cart)
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(configureCmd)

	configureOpts.RegisterFlags(configureCmd)
	configureCmd.Flags().String("product", "", "Product identifier")
	configureCmd.Flags().String("variant", "", "Variant to add to the cart (omit to only save the personalization)")
	configureCmd.Flags().BoolVar(&showPreview, "show-preview", false, "Print every preview update")
	//nolint:errcheck // flag is registered above
	configureCmd.MarkFlagRequired("product")
}

func previewWriter(cmd *cobra.Command) io.Writer {
	if showPreview {
		return cmd.ErrOrStderr()
	}
	return nil
}

//nolint:errcheck // best-effort terminal output
func printCart(w io.Writer, cart *dto.CartSnapshot) {
	if cart == nil {
		return
	}
	fmt.Fprintf(w, "Cart %s: %d item(s)\n", cart.Token, cart.ItemCount)
	for _, l := range cart.Items {
		fmt.Fprintf(w, "  %-16s variant=%s qty=%d\n", l.Key, l.VariantID, l.Quantity)
	}
}
