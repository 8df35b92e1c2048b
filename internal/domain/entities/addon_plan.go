package entities

import (
	"maps"
	"slices"

	"github.com/reglet-dev/stitch/internal/domain/values"
)

// PropertyEmbroideryName is the line property carrying the personalization summary.
const PropertyEmbroideryName = "Embroidery Name"

// ParentLinkage connects an addon line to what it customizes.
// Exactly one of Product or Line is set.
type ParentLinkage struct {
	Product values.SubjectID
	Line    values.LineReference
}

// IsLine reports whether the parent is an existing cart line.
func (p ParentLinkage) IsLine() bool {
	return !p.Line.IsEmpty()
}

// AddonLine is a cart line produced by a priced option.
type AddonLine struct {
	Parent    ParentLinkage
	VariantID string
	Group     string
	Value     string
	Quantity  int
}

// AddonPlan is the cart-facing projection of a configuration.
type AddonPlan struct {
	Properties map[string]string
	Lines      []AddonLine
}

// IsEmpty reports whether the plan has neither lines nor properties.
func (p AddonPlan) IsEmpty() bool {
	return len(p.Lines) == 0 && len(p.Properties) == 0
}

// WithQuantity returns a copy whose lines all carry quantity q.
func (p AddonPlan) WithQuantity(q int) AddonPlan {
	out := AddonPlan{
		Properties: maps.Clone(p.Properties),
		Lines:      make([]AddonLine, len(p.Lines)),
	}
	for i, l := range p.Lines {
		l.Quantity = q
		out.Lines[i] = l
	}
	return out
}

// Equal reports whether both plans are identical.
func (p AddonPlan) Equal(other AddonPlan) bool {
	return maps.Equal(p.Properties, other.Properties) && slices.Equal(p.Lines, other.Lines)
}
