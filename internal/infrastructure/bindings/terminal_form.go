package bindings

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/reglet-dev/stitch/internal/application/ports"
	"github.com/reglet-dev/stitch/internal/domain/entities"
)

// TerminalForm renders the personalization fields as an interactive
// terminal form. Values are kept in the embedded Fields, so the form can be
// pre-filled through the write-backs before it is shown.
type TerminalForm struct {
	*Fields
	catalog *entities.Catalog
	money   ports.MoneyFormatter
}

// NewTerminalForm creates a form for a catalog.
func NewTerminalForm(catalog *entities.Catalog, money ports.MoneyFormatter) *TerminalForm {
	return &TerminalForm{
		Fields:  NewFields(),
		catalog: catalog,
		money:   money,
	}
}

// IsInteractive checks if stdin is a terminal.
func IsInteractive() bool {
	fileInfo, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}

// Run shows the form and stores the answers in the fields.
func (t *TerminalForm) Run(ctx context.Context) error {
	enabled := t.ReadEnabled()
	text := t.ReadText()
	qty, _ := t.Quantity(ctx)
	quantity := strconv.Itoa(max(qty, 1))

	selections := make(map[string]*string)
	groups := t.catalog.Groups()
	selects := make([]huh.Field, 0, len(groups))
	for _, g := range groups {
		current, _ := t.ReadSelection(g.Name)
		value := current
		selections[g.Name] = &value

		options := make([]huh.Option[string], 0, len(g.Values))
		for _, v := range g.Values {
			options = append(options, huh.NewOption(t.label(v), v.Value))
		}
		selects = append(selects, huh.NewSelect[string]().
			Title(strings.ToUpper(g.Name[:1])+g.Name[1:]).
			Options(options...).
			Value(&value))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Add personalization?").
				Value(&enabled),
			huh.NewInput().
				Title("Name").
				Value(&text),
			huh.NewInput().
				Title("Quantity").
				Value(&quantity).
				Validate(func(s string) error {
					n, err := strconv.Atoi(strings.TrimSpace(s))
					if err != nil || n <= 0 {
						return fmt.Errorf("quantity must be a positive number")
					}
					return nil
				}),
		),
		huh.NewGroup(selects...),
	)
	if err := form.RunWithContext(ctx); err != nil {
		return fmt.Errorf("personalization form: %w", err)
	}

	n, _ := strconv.Atoi(strings.TrimSpace(quantity))
	t.SetQuantity(n)
	t.WriteEnabled(enabled)
	t.WriteText(text)
	for name, v := range selections {
		t.WriteSelection(name, *v)
	}
	return nil
}

func (t *TerminalForm) label(v entities.OptionValue) string {
	if !v.PriceDelta.IsPositive() || t.money == nil {
		return v.Value
	}
	return fmt.Sprintf("%s (+%s)", v.Value, t.money.Format(v.PriceDelta))
}
