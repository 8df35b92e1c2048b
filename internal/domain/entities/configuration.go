package entities

import (
	"maps"
	"strings"

	"github.com/reglet-dev/stitch/internal/domain/values"
)

// Selections maps option group name to the chosen value name.
// Iteration order is taken from the catalog, never from the map.
type Selections map[string]string

// Clone returns an independent copy.
func (s Selections) Clone() Selections {
	if s == nil {
		return Selections{}
	}
	return maps.Clone(s)
}

// Equal reports whether both selections hold the same entries.
func (s Selections) Equal(other Selections) bool {
	return maps.Equal(s, other)
}

// Configuration is the raw, user-controlled personalization state.
type Configuration struct {
	Selections Selections
	Text       string
	Enabled    bool
}

// NewConfiguration returns a disabled configuration with the catalog defaults selected.
func NewConfiguration(catalog *Catalog) Configuration {
	return Configuration{
		Selections: catalog.Defaults(),
	}
}

// HasText reports whether personalization text was entered.
func (c Configuration) HasText() bool {
	return strings.TrimSpace(c.Text) != ""
}

// Clone returns a deep copy.
func (c Configuration) Clone() Configuration {
	c.Selections = c.Selections.Clone()
	return c
}

// Equal reports whether two configurations are identical.
func (c Configuration) Equal(other Configuration) bool {
	return c.Text == other.Text && c.Enabled == other.Enabled && c.Selections.Equal(other.Selections)
}

// Subject is what a configurator instance personalizes.
// Line is only set in post-purchase mode.
type Subject struct {
	ID   values.SubjectID
	Line values.LineReference
}

// Instance holds the immutable parameters of one configurator instance.
type Instance struct {
	Subject   Subject
	Mode      values.Mode
	BasePrice values.Money
}
