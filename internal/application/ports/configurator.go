package ports

import (
	"context"
	"errors"

	"github.com/reglet-dev/stitch/internal/application/dto"
	"github.com/reglet-dev/stitch/internal/domain/entities"
	"github.com/reglet-dev/stitch/internal/domain/events"
	"github.com/reglet-dev/stitch/internal/domain/values"
)

// FieldBindings is the I/O boundary over the rendered form fields.
// Reads capture raw input; writes are only used for rehydration.
type FieldBindings interface {
	ReadText() string
	ReadEnabled() bool
	// ReadSelection returns the selected value of a group, or false when none is selected.
	ReadSelection(group string) (string, bool)

	WriteText(text string)
	WriteEnabled(enabled bool)
	WriteSelection(group, value string)
}

// QuantitySource reports the current quantity of the parent item or line.
// It is read at submission time, never cached.
type QuantitySource interface {
	Quantity(ctx context.Context) (int, error)
}

// CartService is the remote cart. Implementations must report both transport
// failures and error bodies as errors.
type CartService interface {
	Add(ctx context.Context, req dto.AddRequest) (*dto.CartSnapshot, error)
	Change(ctx context.Context, req dto.ChangeRequest) (*dto.CartSnapshot, error)
}

var (
	// ErrQuotaExceeded is returned by SessionStorage when a write would exceed its quota.
	ErrQuotaExceeded = errors.New("session storage quota exceeded")
	// ErrStorageDisabled is returned by every call on disabled SessionStorage.
	ErrStorageDisabled = errors.New("session storage is disabled")
)

// SessionStorage is ephemeral, session-scoped key/value storage.
type SessionStorage interface {
	GetItem(key string) (string, bool, error)
	SetItem(key, value string) error
	RemoveItem(key string) error
}

// SnapshotRepository persists configuration snapshots per subject.
// It is best-effort: failures are logged by the implementation, never returned.
type SnapshotRepository interface {
	Save(subject values.SubjectID, cfg entities.Configuration)
	Load(subject values.SubjectID) (entities.Configuration, bool)
}

// EventPublisher broadcasts fire-and-forget notifications.
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event)
}

// PreviewRenderer receives preview updates.
type PreviewRenderer interface {
	RenderPreview(preview entities.Preview)
}

// SubmitControl is the add-to-cart or apply button.
type SubmitControl interface {
	SetEnabled(enabled bool)
	SetLoading(loading bool)
	ShowError(message string)
}

// MoneyFormatter renders amounts for display.
type MoneyFormatter interface {
	Format(amount values.Money) string
}

// EventSubscriber registers listeners for notifications.
// The returned function removes the listener.
type EventSubscriber interface {
	Subscribe(topic events.Topic, handler func(ctx context.Context, event events.Event)) (unsubscribe func())
}

// SnapshotValidator checks a raw persisted snapshot before it is trusted.
type SnapshotValidator interface {
	ValidateSnapshot(data []byte) error
}

// QuoteFormatter renders a quote for the CLI.
type QuoteFormatter interface {
	Format(quote *dto.QuoteResponse) error
}
