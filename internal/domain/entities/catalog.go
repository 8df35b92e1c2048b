// Package entities contains domain entities for the personalization model.
// These are pure domain types with NO infrastructure dependencies.
package entities

import (
	"fmt"
	"strings"

	"github.com/reglet-dev/stitch/internal/domain/values"
)

// OptionValue is a single choice within an option group.
type OptionValue struct {
	Value           string       `yaml:"value" json:"value"`
	RemoteVariantID string       `yaml:"remote_variant_id" json:"remote_variant_id"`
	PriceDelta      values.Money `yaml:"price_delta" json:"price_delta"`
	IsColorKind     bool         `yaml:"is_color_kind,omitempty" json:"is_color_kind,omitempty"`
}

// Materializes reports whether selecting this value produces its own cart line.
// Zero and negative priced values only affect preview and properties.
func (v OptionValue) Materializes() bool {
	return v.PriceDelta.IsPositive()
}

// OptionGroup is a named, ordered list of option values.
type OptionGroup struct {
	Name   string        `yaml:"name" json:"name"`
	Values []OptionValue `yaml:"values" json:"values"`
}

// Find returns the option value with the given name.
func (g OptionGroup) Find(value string) (OptionValue, bool) {
	for _, v := range g.Values {
		if v.Value == value {
			return v, true
		}
	}
	return OptionValue{}, false
}

// CatalogMetadata describes a catalog document.
type CatalogMetadata struct {
	Name        string `yaml:"name" json:"name"`
	Version     string `yaml:"version" json:"version"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

// Catalog is the static set of option groups declared at mount.
// It is read-only once constructed.
//
// Invariants Enforced:
// - at least one group, each with at least one value
// - group names are unique, value names are unique within a group
// - declaration order is preserved
type Catalog struct {
	metadata CatalogMetadata
	groups   []OptionGroup
	index    map[string]int
}

// NewCatalog validates the groups and builds a Catalog.
func NewCatalog(metadata CatalogMetadata, groups []OptionGroup) (*Catalog, error) {
	if len(groups) == 0 {
		return nil, fmt.Errorf("catalog must declare at least one option group")
	}

	index := make(map[string]int, len(groups))
	copied := make([]OptionGroup, 0, len(groups))
	for i, g := range groups {
		name := strings.TrimSpace(g.Name)
		if name == "" {
			return nil, fmt.Errorf("option group %d has no name", i)
		}
		if _, dup := index[name]; dup {
			return nil, fmt.Errorf("duplicate option group: %s", name)
		}
		if len(g.Values) == 0 {
			return nil, fmt.Errorf("option group %s has no values", name)
		}

		seen := make(map[string]bool, len(g.Values))
		vals := make([]OptionValue, len(g.Values))
		for j, v := range g.Values {
			if v.Value == "" {
				return nil, fmt.Errorf("option group %s: value %d is empty", name, j)
			}
			if seen[v.Value] {
				return nil, fmt.Errorf("option group %s: duplicate value %s", name, v.Value)
			}
			if v.Materializes() && v.RemoteVariantID == "" {
				return nil, fmt.Errorf("option group %s: priced value %s needs a remote variant id", name, v.Value)
			}
			seen[v.Value] = true
			vals[j] = v
		}

		index[name] = i
		copied = append(copied, OptionGroup{Name: name, Values: vals})
	}

	return &Catalog{metadata: metadata, groups: copied, index: index}, nil
}

// MustNewCatalog creates a Catalog or panics
func MustNewCatalog(metadata CatalogMetadata, groups []OptionGroup) *Catalog {
	c, err := NewCatalog(metadata, groups)
	if err != nil {
		panic(err)
	}
	return c
}

// Metadata returns the catalog metadata.
func (c *Catalog) Metadata() CatalogMetadata {
	return c.metadata
}

// Groups returns the option groups in declaration order.
func (c *Catalog) Groups() []OptionGroup {
	out := make([]OptionGroup, len(c.groups))
	copy(out, c.groups)
	return out
}

// GroupNames returns group names in declaration order.
func (c *Catalog) GroupNames() []string {
	names := make([]string, len(c.groups))
	for i, g := range c.groups {
		names[i] = g.Name
	}
	return names
}

// Group returns the group with the given name.
func (c *Catalog) Group(name string) (OptionGroup, bool) {
	i, ok := c.index[name]
	if !ok {
		return OptionGroup{}, false
	}
	return c.groups[i], true
}

// Lookup resolves a group/value pair against the catalog.
func (c *Catalog) Lookup(group, value string) (OptionValue, error) {
	g, ok := c.Group(group)
	if !ok {
		return OptionValue{}, &UnknownOptionError{Group: group, Value: value, Err: ErrUnknownGroup}
	}
	v, ok := g.Find(value)
	if !ok {
		return OptionValue{}, &UnknownOptionError{Group: group, Value: value, Err: ErrUnknownValue}
	}
	return v, nil
}

// Defaults returns the first value of every group.
func (c *Catalog) Defaults() Selections {
	sel := make(Selections, len(c.groups))
	for _, g := range c.groups {
		sel[g.Name] = g.Values[0].Value
	}
	return sel
}
