// Package bindings provides FieldBindings implementations: plain in-memory
// fields and an interactive terminal form.
package bindings

import (
	"context"
	"fmt"
	"sync"

	"github.com/reglet-dev/stitch/internal/application/ports"
)

// Ensure interface compliance
var (
	_ ports.FieldBindings  = (*Fields)(nil)
	_ ports.QuantitySource = (*Fields)(nil)
)

// Fields holds raw form values in memory. It does no validation.
type Fields struct {
	selections map[string]string
	text       string
	quantity   int
	enabled    bool
	mu         sync.RWMutex
}

// NewFields creates empty fields with quantity 1.
func NewFields() *Fields {
	return &Fields{selections: make(map[string]string), quantity: 1}
}

func (f *Fields) ReadText() string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.text
}

func (f *Fields) ReadEnabled() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.enabled
}

func (f *Fields) ReadSelection(group string) (string, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	v, ok := f.selections[group]
	return v, ok
}

func (f *Fields) WriteText(text string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.text = text
}

func (f *Fields) WriteEnabled(enabled bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.enabled = enabled
}

func (f *Fields) WriteSelection(group, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.selections[group] = value
}

// SetQuantity sets the quantity field.
func (f *Fields) SetQuantity(q int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.quantity = q
}

// Quantity returns the quantity field at the time of the call.
func (f *Fields) Quantity(_ context.Context) (int, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.quantity <= 0 {
		return 0, fmt.Errorf("invalid quantity: %d", f.quantity)
	}
	return f.quantity, nil
}
