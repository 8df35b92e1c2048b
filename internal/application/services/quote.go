package services

import (
	"github.com/reglet-dev/stitch/internal/application/dto"
	"github.com/reglet-dev/stitch/internal/application/ports"
)

// BuildQuote projects the store state into a response for rendering.
// A nil formatter falls back to the plain decimal form of the price.
func BuildQuote(store *ConfigurationStore, money ports.MoneyFormatter) *dto.QuoteResponse {
	cfg := store.Configuration()
	derived := store.Derived()
	inst := store.Instance()

	price := derived.Price.String()
	if money != nil {
		price = money.Format(derived.Price)
	}

	lines := make([]dto.QuoteLine, 0, len(derived.Plan.Lines))
	for _, l := range derived.Plan.Lines {
		parent := l.Parent.Product.String()
		if l.Parent.IsLine() {
			parent = l.Parent.Line.String()
		}
		lines = append(lines, dto.QuoteLine{
			VariantID: l.VariantID,
			Group:     l.Group,
			Value:     l.Value,
			Parent:    parent,
			Quantity:  l.Quantity,
		})
	}

	return &dto.QuoteResponse{
		Properties:    derived.Plan.Properties,
		Style:         derived.Preview.Style,
		Subject:       inst.Subject.ID.String(),
		Mode:          inst.Mode.String(),
		Lifecycle:     string(store.Lifecycle()),
		Price:         price,
		InvalidReason: string(derived.Validity.Reason),
		InvalidGroup:  derived.Validity.Group,
		PreviewText:   derived.Preview.Text,
		Lines:         lines,
		PriceCents:    derived.Price.Cents(),
		Valid:         derived.Validity.Valid,
		Enabled:       cfg.Enabled,
	}
}
