package services

import (
	"github.com/reglet-dev/stitch/internal/domain/entities"
	"github.com/reglet-dev/stitch/internal/domain/values"
)

func testCatalog() *entities.Catalog {
	return entities.MustNewCatalog(entities.CatalogMetadata{Name: "embroidery", Version: "1.0.0"}, []entities.OptionGroup{
		{Name: "color", Values: []entities.OptionValue{
			{Value: "Navy", IsColorKind: true},
			{Value: "Gold", PriceDelta: 150, RemoteVariantID: "40001", IsColorKind: true},
		}},
		{Name: "font", Values: []entities.OptionValue{
			{Value: "Block"},
			{Value: "Script", PriceDelta: 200, RemoteVariantID: "40010"},
		}},
	})
}

func personalized(text, color, font string) entities.Configuration {
	return entities.Configuration{
		Text:       text,
		Enabled:    true,
		Selections: entities.Selections{"color": color, "font": font},
	}
}

func preInstance() entities.Instance {
	return entities.Instance{
		Subject:   entities.Subject{ID: values.MustNewSubjectID("prod-1")},
		Mode:      values.ModePrePurchase,
		BasePrice: 500,
	}
}
