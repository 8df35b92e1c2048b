package services

import (
	"github.com/reglet-dev/stitch/internal/domain/entities"
)

// Mutation is a discrete user-driven change to a configuration.
type Mutation interface {
	// Name identifies the mutation in logs.
	Name() string
}

// SetText replaces the personalization text.
type SetText struct{ Text string }

// SetEnabled toggles personalization on or off.
type SetEnabled struct{ Enabled bool }

// SelectOption chooses a value within a group.
type SelectOption struct{ Group, Value string }

// Rehydrate replaces the configuration with a restored one.
type Rehydrate struct{ Configuration entities.Configuration }

// Reset returns the configuration to the catalog defaults, disabled and without text.
type Reset struct{}

func (SetText) Name() string      { return "set_text" }
func (SetEnabled) Name() string   { return "set_enabled" }
func (SelectOption) Name() string { return "select_option" }
func (Rehydrate) Name() string    { return "rehydrate" }
func (Reset) Name() string        { return "reset" }

// Reduce applies a mutation and returns the next configuration.
// The input is never modified. Selections outside the catalog are rejected,
// and restored configurations are sanitized against it.
func Reduce(catalog *entities.Catalog, cfg entities.Configuration, m Mutation) (entities.Configuration, error) {
	next := cfg.Clone()

	switch ev := m.(type) {
	case SetText:
		next.Text = ev.Text
	case SetEnabled:
		next.Enabled = ev.Enabled
	case SelectOption:
		if _, err := catalog.Lookup(ev.Group, ev.Value); err != nil {
			return cfg, err
		}
		next.Selections[ev.Group] = ev.Value
	case Rehydrate:
		next = sanitize(catalog, ev.Configuration)
	case Reset:
		next = entities.NewConfiguration(catalog)
	}

	return next, nil
}

// sanitize drops unknown groups or values and fills missing groups with defaults.
func sanitize(catalog *entities.Catalog, restored entities.Configuration) entities.Configuration {
	out := entities.Configuration{
		Text:       restored.Text,
		Enabled:    restored.Enabled,
		Selections: catalog.Defaults(),
	}
	for group, value := range restored.Selections {
		if _, err := catalog.Lookup(group, value); err == nil {
			out.Selections[group] = value
		}
	}
	return out
}

// Derive recomputes price, validity, addon plan and preview from a configuration.
// It is a pure function: equal inputs yield equal outputs.
func Derive(cfg entities.Configuration, catalog *entities.Catalog, inst entities.Instance, mapper *PreviewMapper) entities.Derived {
	validity := Validate(cfg, catalog)
	return entities.Derived{
		Price:    ComputeTotalPrice(cfg, catalog, inst.BasePrice),
		Validity: validity,
		Plan:     BuildAddonPlan(cfg, catalog, validity, ParentFor(inst)),
		Preview:  mapper.Map(cfg, catalog),
	}
}

// ParentFor returns the parent linkage for an instance's addon lines:
// the existing cart line in post-purchase mode, the product otherwise.
func ParentFor(inst entities.Instance) entities.ParentLinkage {
	if inst.Mode.Rehydrates() && !inst.Subject.Line.IsEmpty() {
		return entities.ParentLinkage{Line: inst.Subject.Line}
	}
	return entities.ParentLinkage{Product: inst.Subject.ID}
}
