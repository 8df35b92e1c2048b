package bindings

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/reglet-dev/stitch/internal/application/ports"
	"github.com/reglet-dev/stitch/internal/domain/entities"
)

// Ensure interface compliance
var (
	_ ports.SubmitControl   = (*Button)(nil)
	_ ports.PreviewRenderer = (*PreviewPane)(nil)
)

// Button records the state of a submit control.
type Button struct {
	lastError string
	enabled   bool
	loading   bool
	mu        sync.Mutex
}

// NewButton creates a disabled, idle button.
func NewButton() *Button {
	return &Button{}
}

func (b *Button) SetEnabled(enabled bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.enabled = enabled
}

func (b *Button) SetLoading(loading bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.loading = loading
	if loading {
		b.lastError = ""
	}
}

func (b *Button) ShowError(message string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lastError = message
}

// Enabled reports whether the button can be clicked.
func (b *Button) Enabled() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.enabled
}

// Loading reports whether a submission is in progress.
func (b *Button) Loading() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.loading
}

// LastError returns the message shown to the user, if any.
func (b *Button) LastError() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastError
}

// PreviewPane keeps the latest preview and optionally echoes it to a writer.
type PreviewPane struct {
	out     io.Writer
	current entities.Preview
	renders int
	mu      sync.Mutex
}

// NewPreviewPane creates a pane. out may be nil.
func NewPreviewPane(out io.Writer) *PreviewPane {
	return &PreviewPane{out: out}
}

func (p *PreviewPane) RenderPreview(preview entities.Preview) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.current = preview
	p.renders++
	if p.out != nil {
		//nolint:errcheck // best-effort terminal output
		fmt.Fprintf(p.out, "preview: %q %s\n", preview.Text, formatStyle(preview.Style))
	}
}

// Current returns the last rendered preview.
func (p *PreviewPane) Current() entities.Preview {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}

// Renders returns how many times the preview was pushed.
func (p *PreviewPane) Renders() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.renders
}

func formatStyle(style map[string]string) string {
	keys := make([]string, 0, len(style))
	for k := range style {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+style[k])
	}
	return "[" + strings.Join(parts, " ") + "]"
}
