// Package services contains stateless domain services: pricing, validation,
// addon planning, preview mapping and the configuration reducer.
package services

import (
	"github.com/reglet-dev/stitch/internal/domain/entities"
	"github.com/reglet-dev/stitch/internal/domain/values"
)

// ComputeTotalPrice returns the add-on price of a configuration.
//
// Business Rule:
// - no text, no charge (selections alone never cost anything)
// - otherwise base price plus the delta of every selected value
func ComputeTotalPrice(cfg entities.Configuration, catalog *entities.Catalog, base values.Money) values.Money {
	if !cfg.HasText() {
		return values.Zero
	}

	total := base
	for _, g := range catalog.Groups() {
		chosen, ok := cfg.Selections[g.Name]
		if !ok {
			continue
		}
		if v, found := g.Find(chosen); found {
			total = total.Add(v.PriceDelta)
		}
	}
	return total
}
