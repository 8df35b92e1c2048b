package services

import (
	"github.com/reglet-dev/stitch/internal/domain/entities"
	"github.com/reglet-dev/stitch/internal/domain/values"
)

// Validate evaluates whether a configuration may be submitted.
// A disabled configuration is always valid: nothing was requested.
// Groups are checked in declaration order so the reported group is stable.
func Validate(cfg entities.Configuration, catalog *entities.Catalog) entities.Validity {
	if !cfg.Enabled {
		return entities.Validity{Valid: true}
	}

	if !cfg.HasText() {
		return entities.Validity{Reason: values.ReasonMissingName}
	}

	for _, g := range catalog.Groups() {
		chosen, ok := cfg.Selections[g.Name]
		if !ok {
			return entities.Validity{Reason: values.ReasonMissingOption, Group: g.Name}
		}
		if _, found := g.Find(chosen); !found {
			return entities.Validity{Reason: values.ReasonMissingOption, Group: g.Name}
		}
	}

	return entities.Validity{Valid: true}
}
