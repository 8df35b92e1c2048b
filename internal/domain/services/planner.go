package services

import (
	"strconv"
	"strings"

	"github.com/reglet-dev/stitch/internal/domain/entities"
)

// BuildAddonPlan projects a configuration onto cart lines and properties.
// The plan is empty whenever personalization is off or the configuration is invalid.
// Lines carry quantity 1; the composer stamps the live parent quantity at submission.
func BuildAddonPlan(cfg entities.Configuration, catalog *entities.Catalog, validity entities.Validity, parent entities.ParentLinkage) entities.AddonPlan {
	if !cfg.Enabled || !validity.Valid {
		return entities.AddonPlan{}
	}

	chosen := make([]string, 0, len(cfg.Selections))
	var lines []entities.AddonLine
	for _, g := range catalog.Groups() {
		name, ok := cfg.Selections[g.Name]
		if !ok {
			continue
		}
		v, found := g.Find(name)
		if !found {
			continue
		}
		chosen = append(chosen, v.Value)
		if !v.Materializes() {
			continue
		}
		lines = append(lines, entities.AddonLine{
			VariantID: v.RemoteVariantID,
			Quantity:  1,
			Parent:    parent,
			Group:     g.Name,
			Value:     v.Value,
		})
	}

	return entities.AddonPlan{
		Lines: lines,
		Properties: map[string]string{
			entities.PropertyEmbroideryName: Summary(cfg.Text, chosen),
		},
	}
}

// Summary renders the Embroidery Name property: the quoted text followed by
// the chosen values in catalog order, comma separated, e.g. "Ava", Gold, Script
func Summary(text string, chosen []string) string {
	parts := make([]string, 0, len(chosen)+1)
	parts = append(parts, strconv.Quote(strings.TrimSpace(text)))
	parts = append(parts, chosen...)
	return strings.Join(parts, ", ")
}
