// Package services contains application use cases: the configuration store,
// the cart composer, the purchase flow and the disclosure sync.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/reglet-dev/stitch/internal/application/ports"
	"github.com/reglet-dev/stitch/internal/domain/entities"
	"github.com/reglet-dev/stitch/internal/domain/events"
	domainservices "github.com/reglet-dev/stitch/internal/domain/services"
	"github.com/reglet-dev/stitch/internal/domain/values"
)

// StoreOptions configures a ConfigurationStore.
// Catalog and Instance are required; every collaborator is optional.
type StoreOptions struct {
	Catalog   *entities.Catalog
	Mapper    *domainservices.PreviewMapper
	Snapshots ports.SnapshotRepository
	Events    ports.EventPublisher
	Preview   ports.PreviewRenderer
	Submit    ports.SubmitControl
	Logger    *slog.Logger
	Instance  entities.Instance
}

// ConfigurationStore owns the live configuration of one configurator instance.
// Every mutation recomputes price, validity, addon plan and preview
// synchronously, so derived values are never stale.
type ConfigurationStore struct {
	catalog   *entities.Catalog
	mapper    *domainservices.PreviewMapper
	snapshots ports.SnapshotRepository
	events    ports.EventPublisher
	preview   ports.PreviewRenderer
	submit    ports.SubmitControl
	logger    *slog.Logger
	instance  entities.Instance

	mu        sync.Mutex
	cfg       entities.Configuration
	derived   entities.Derived
	lifecycle values.Lifecycle
	onToggle  func(enabled bool)
}

// NewConfigurationStore creates a store populated with the catalog defaults.
func NewConfigurationStore(opts StoreOptions) (*ConfigurationStore, error) {
	if opts.Catalog == nil {
		return nil, fmt.Errorf("configuration store requires a catalog")
	}
	if err := opts.Instance.Mode.Validate(); err != nil {
		return nil, err
	}
	if opts.Instance.Subject.ID.IsEmpty() {
		return nil, fmt.Errorf("configuration store requires a subject id")
	}
	if opts.Instance.Mode == values.ModePostPurchase && opts.Instance.Subject.Line.IsEmpty() {
		return nil, fmt.Errorf("post-purchase configuration requires a line reference")
	}
	if opts.Mapper == nil {
		opts.Mapper = domainservices.NewPreviewMapper(nil)
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	s := &ConfigurationStore{
		catalog:   opts.Catalog,
		mapper:    opts.Mapper,
		snapshots: opts.Snapshots,
		events:    opts.Events,
		preview:   opts.Preview,
		submit:    opts.Submit,
		logger:    opts.Logger.With("subject", opts.Instance.Subject.ID.String(), "mode", opts.Instance.Mode.String()),
		instance:  opts.Instance,
		cfg:       entities.NewConfiguration(opts.Catalog),
		lifecycle: values.LifecycleIdle,
	}
	s.derived = domainservices.Derive(s.cfg, s.catalog, s.instance, s.mapper)
	return s, nil
}

// Mount reflects the initial state into the bound fields. In post-purchase
// mode the snapshot saved by the product page is restored first.
func (s *ConfigurationStore) Mount(ctx context.Context, fields ports.FieldBindings) {
	if s.instance.Mode.Rehydrates() && s.snapshots != nil {
		if restored, ok := s.snapshots.Load(s.instance.Subject.ID); ok {
			s.apply(ctx, domainservices.Rehydrate{Configuration: restored}, false)
			s.logger.Debug("configuration rehydrated")
		}
	}

	if fields != nil {
		s.WriteBack(fields)
	}
	s.pushDerived(s.Derived())
}

// WriteBack reflects the current configuration into the bound fields.
func (s *ConfigurationStore) WriteBack(fields ports.FieldBindings) {
	cfg := s.Configuration()
	fields.WriteText(cfg.Text)
	fields.WriteEnabled(cfg.Enabled)
	for _, name := range s.catalog.GroupNames() {
		if v, ok := cfg.Selections[name]; ok {
			fields.WriteSelection(name, v)
		}
	}
}

// Capture reads the bound fields and dispatches a mutation for every field that
// differs from the current configuration.
func (s *ConfigurationStore) Capture(ctx context.Context, fields ports.FieldBindings) error {
	cfg := s.Configuration()

	if text := fields.ReadText(); text != cfg.Text {
		if err := s.SetText(ctx, text); err != nil {
			return err
		}
	}
	for _, name := range s.catalog.GroupNames() {
		value, ok := fields.ReadSelection(name)
		if !ok || value == cfg.Selections[name] {
			continue
		}
		if err := s.SelectOption(ctx, name, value); err != nil {
			return err
		}
	}
	if enabled := fields.ReadEnabled(); enabled != cfg.Enabled {
		if err := s.SetEnabled(ctx, enabled); err != nil {
			return err
		}
	}
	return nil
}

// SetText updates the personalization text.
func (s *ConfigurationStore) SetText(ctx context.Context, text string) error {
	return s.Dispatch(ctx, domainservices.SetText{Text: text})
}

// SetEnabled switches personalization on or off.
func (s *ConfigurationStore) SetEnabled(ctx context.Context, enabled bool) error {
	return s.Dispatch(ctx, domainservices.SetEnabled{Enabled: enabled})
}

// SelectOption chooses a value in a group.
func (s *ConfigurationStore) SelectOption(ctx context.Context, group, value string) error {
	return s.Dispatch(ctx, domainservices.SelectOption{Group: group, Value: value})
}

// Dispatch applies a mutation and pushes the recomputed state outward.
// A rejected mutation leaves the configuration untouched.
func (s *ConfigurationStore) Dispatch(ctx context.Context, m domainservices.Mutation) error {
	return s.apply(ctx, m, true)
}

// Discard drops the live configuration after a successful cart mutation.
// The reset state is not persisted, so the saved snapshot survives.
func (s *ConfigurationStore) Discard(ctx context.Context) {
	_ = s.apply(ctx, domainservices.Reset{}, false)
	s.logger.Debug("configuration discarded")
}

func (s *ConfigurationStore) apply(ctx context.Context, m domainservices.Mutation, persist bool) error {
	s.mu.Lock()
	next, err := domainservices.Reduce(s.catalog, s.cfg, m)
	if err != nil {
		s.mu.Unlock()
		s.logger.Debug("mutation rejected", "event", m.Name(), "error", err)
		return fmt.Errorf("%s: %w", m.Name(), err)
	}
	s.cfg = next
	s.lifecycle = values.LifecycleLive
	s.derived = domainservices.Derive(s.cfg, s.catalog, s.instance, s.mapper)
	cfg := s.cfg.Clone()
	derived := s.derived
	lifecycle := s.lifecycle
	s.mu.Unlock()

	s.logger.Debug("mutation applied",
		"event", m.Name(),
		"state", lifecycle,
		"valid", derived.Validity.Valid,
		"price", derived.Price.Cents(),
		"addon_lines", len(derived.Plan.Lines))

	if s.preview != nil {
		s.preview.RenderPreview(derived.Preview)
	}
	if persist && s.instance.Mode.Persists() && s.snapshots != nil {
		s.snapshots.Save(s.instance.Subject.ID, cfg)
	}
	if s.submit != nil {
		s.submit.SetEnabled(derived.Validity.Valid)
	}
	if persist {
		s.notify(ctx, m)
	}
	if ev, ok := m.(domainservices.SetEnabled); ok {
		s.mu.Lock()
		hook := s.onToggle
		s.mu.Unlock()
		if hook != nil {
			hook(ev.Enabled)
		}
	}
	return nil
}

// OnToggle registers the instance's own listener for enabled changes. Unlike
// the published toggle event it never fires for another instance. The
// returned func removes the listener.
func (s *ConfigurationStore) OnToggle(fn func(enabled bool)) (remove func()) {
	s.mu.Lock()
	s.onToggle = fn
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		s.onToggle = nil
		s.mu.Unlock()
	}
}

func (s *ConfigurationStore) pushDerived(derived entities.Derived) {
	if s.preview != nil {
		s.preview.RenderPreview(derived.Preview)
	}
	if s.submit != nil {
		s.submit.SetEnabled(derived.Validity.Valid)
	}
}

func (s *ConfigurationStore) notify(ctx context.Context, m domainservices.Mutation) {
	if s.events == nil {
		return
	}
	switch ev := m.(type) {
	case domainservices.SetEnabled:
		s.events.Publish(ctx, events.Toggled{Enabled: ev.Enabled, Context: s.instance.Mode})
	case domainservices.SelectOption:
		s.events.Publish(ctx, events.OptionChanged{Group: ev.Group, Value: ev.Value, Context: s.instance.Mode})
	}
}

// Configuration returns a copy of the current configuration.
func (s *ConfigurationStore) Configuration() entities.Configuration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg.Clone()
}

// Derived returns the values computed from the current configuration.
func (s *ConfigurationStore) Derived() entities.Derived {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.derived
}

// Plan returns the current addon plan.
func (s *ConfigurationStore) Plan() entities.AddonPlan {
	return s.Derived().Plan
}

// Lifecycle returns the bookkeeping state.
func (s *ConfigurationStore) Lifecycle() values.Lifecycle {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lifecycle
}

// Instance returns the immutable instance parameters.
func (s *ConfigurationStore) Instance() entities.Instance {
	return s.instance
}

// Catalog returns the catalog the store was mounted with.
func (s *ConfigurationStore) Catalog() *entities.Catalog {
	return s.catalog
}
