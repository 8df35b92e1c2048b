package services

import (
	"context"
	"log/slog"
	"sync"
)

// DisclosureSync keeps an expandable disclosure (accordion) and the enabled
// flag in step. Opening enables personalization, closing disables it; a
// toggle coming from elsewhere (the enable checkbox) moves the disclosure.
type DisclosureSync struct {
	store  *ConfigurationStore
	logger *slog.Logger

	mu          sync.Mutex
	open        bool
	detach      func()
	onChange    func(open bool)
}

// NewDisclosureSync creates a sync bound to a store. onChange, if set, is
// called whenever the disclosure should visually open or close.
func NewDisclosureSync(store *ConfigurationStore, onChange func(open bool), logger *slog.Logger) *DisclosureSync {
	if logger == nil {
		logger = slog.Default()
	}
	return &DisclosureSync{
		store:    store,
		logger:   logger,
		open:     store.Configuration().Enabled,
		onChange: onChange,
	}
}

// Attach hooks into the store so that changes made through the enable
// checkbox are mirrored by the disclosure. Only this instance's toggles move
// it; the shared event bus is left to external listeners.
func (d *DisclosureSync) Attach() {
	d.detach = d.store.OnToggle(d.mirror)
}

// Detach stops listening.
func (d *DisclosureSync) Detach() {
	if d.detach != nil {
		d.detach()
		d.detach = nil
	}
}

// Open expands the disclosure and enables personalization.
func (d *DisclosureSync) Open(ctx context.Context) error {
	return d.toggle(ctx, true)
}

// Close collapses the disclosure and disables personalization. The addon plan
// becomes empty immediately, so a pending retrofit has nothing stale to apply.
func (d *DisclosureSync) Close(ctx context.Context) error {
	return d.toggle(ctx, false)
}

// Sync moves the disclosure to match the store, e.g. after a rehydration
// that did not publish a toggle.
func (d *DisclosureSync) Sync() {
	d.mirror(d.store.Configuration().Enabled)
}

// IsOpen reports the disclosure state.
func (d *DisclosureSync) IsOpen() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.open
}

func (d *DisclosureSync) toggle(ctx context.Context, open bool) error {
	d.mirror(open)
	if d.store.Configuration().Enabled == open {
		return nil
	}
	return d.store.SetEnabled(ctx, open)
}

func (d *DisclosureSync) mirror(open bool) {
	d.mu.Lock()
	changed := d.open != open
	d.open = open
	d.mu.Unlock()

	if changed {
		d.logger.Debug("disclosure toggled", "open", open)
		if d.onChange != nil {
			d.onChange(open)
		}
	}
}
