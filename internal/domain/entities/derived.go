package entities

import (
	"maps"

	"github.com/reglet-dev/stitch/internal/domain/values"
)

// Validity is the Validation Engine result.
type Validity struct {
	Reason values.InvalidReason
	Group  string // set when Reason is ReasonMissingOption
	Valid  bool
}

// Preview is the live preview projection: the text and its style properties.
type Preview struct {
	Style map[string]string
	Text  string
}

// Equal reports whether two previews are identical.
func (p Preview) Equal(other Preview) bool {
	return p.Text == other.Text && maps.Equal(p.Style, other.Style)
}

// Derived bundles every value recomputed after a mutation.
type Derived struct {
	Plan     AddonPlan
	Preview  Preview
	Validity Validity
	Price    values.Money
}
