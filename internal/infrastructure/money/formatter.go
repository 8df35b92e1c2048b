// Package money formats amounts for display using CLDR currency data.
package money

import (
	"fmt"
	"math"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/reglet-dev/stitch/internal/application/ports"
	"github.com/reglet-dev/stitch/internal/domain/values"
)

// Ensure interface compliance
var _ ports.MoneyFormatter = (*Formatter)(nil)

// Formatter renders minor-unit amounts in one currency and locale.
type Formatter struct {
	unit    currency.Unit
	printer *message.Printer
	scale   int
}

// NewFormatter creates a formatter for an ISO 4217 code and a BCP 47 locale.
func NewFormatter(code, locale string) (*Formatter, error) {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return nil, fmt.Errorf("invalid currency %q: %w", code, err)
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("invalid locale %q: %w", locale, err)
	}
	scale, _ := currency.Standard.Rounding(unit)
	return &Formatter{
		unit:    unit,
		printer: message.NewPrinter(tag),
		scale:   scale,
	}, nil
}

// MustNewFormatter creates a Formatter or panics
func MustNewFormatter(code, locale string) *Formatter {
	f, err := NewFormatter(code, locale)
	if err != nil {
		panic(err)
	}
	return f
}

// Format renders the amount with its currency symbol.
func (f *Formatter) Format(amount values.Money) string {
	major := float64(amount.Cents()) / math.Pow10(f.scale)
	return f.printer.Sprint(currency.Symbol(f.unit.Amount(major)))
}

// Currency returns the ISO code.
func (f *Formatter) Currency() string {
	return f.unit.String()
}
