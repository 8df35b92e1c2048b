package services

import (
	"maps"

	"github.com/reglet-dev/stitch/internal/domain/entities"
)

// Style properties understood by preview renderers.
const (
	StyleTextColor  = "text-color"
	StyleFontFamily = "font-family"
)

// DefaultPreviewMapping maps option groups to the style property they drive.
var DefaultPreviewMapping = map[string]string{
	"color": StyleTextColor,
	"font":  StyleFontFamily,
}

// PreviewMapper turns selections into preview style deltas.
// Groups missing from the mapping do not affect the preview.
type PreviewMapper struct {
	mapping map[string]string
}

// NewPreviewMapper creates a mapper from DefaultPreviewMapping plus overrides.
func NewPreviewMapper(overrides map[string]string) *PreviewMapper {
	mapping := maps.Clone(DefaultPreviewMapping)
	maps.Copy(mapping, overrides)
	return &PreviewMapper{mapping: mapping}
}

// Map computes the preview for a configuration.
// Color-kind values always drive the text color.
func (m *PreviewMapper) Map(cfg entities.Configuration, catalog *entities.Catalog) entities.Preview {
	style := make(map[string]string)
	for _, g := range catalog.Groups() {
		chosen, ok := cfg.Selections[g.Name]
		if !ok {
			continue
		}
		v, found := g.Find(chosen)
		if !found {
			continue
		}
		if v.IsColorKind {
			style[StyleTextColor] = v.Value
			continue
		}
		if prop, mapped := m.mapping[g.Name]; mapped {
			style[prop] = v.Value
		}
	}
	return entities.Preview{Text: cfg.Text, Style: style}
}
