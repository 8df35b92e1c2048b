// Package events provides an in-process notification bus.
package events

import (
	"context"
	"log/slog"
	"sync"

	"github.com/reglet-dev/stitch/internal/application/ports"
	domainevents "github.com/reglet-dev/stitch/internal/domain/events"
)

// Ensure interface compliance
var (
	_ ports.EventPublisher  = (*Bus)(nil)
	_ ports.EventSubscriber = (*Bus)(nil)
)

// Handler receives a published event.
type Handler func(ctx context.Context, event domainevents.Event)

type subscription struct {
	handler Handler
	id      uint64
}

// Bus fans events out to subscribers synchronously, in subscription order.
// Publishing never fails: a panicking handler is recovered and logged, and
// the remaining handlers still run.
type Bus struct {
	logger *slog.Logger
	subs   map[domainevents.Topic][]subscription
	nextID uint64
	mu     sync.RWMutex
}

// NewBus creates an empty bus.
func NewBus(logger *slog.Logger) *Bus {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bus{
		logger: logger,
		subs:   make(map[domainevents.Topic][]subscription),
	}
}

// Subscribe registers a handler for a topic.
func (b *Bus) Subscribe(topic domainevents.Topic, handler func(ctx context.Context, event domainevents.Event)) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.subs[topic] = append(b.subs[topic], subscription{id: id, handler: handler})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		subs := b.subs[topic]
		for i, s := range subs {
			if s.id == id {
				b.subs[topic] = append(subs[:i:i], subs[i+1:]...)
				return
			}
		}
	}
}

// Publish delivers an event to every subscriber of its topic.
func (b *Bus) Publish(ctx context.Context, event domainevents.Event) {
	b.mu.RLock()
	subs := make([]subscription, len(b.subs[event.Topic()]))
	copy(subs, b.subs[event.Topic()])
	b.mu.RUnlock()

	b.logger.Debug("event published", "topic", event.Topic(), "subscribers", len(subs))
	for _, s := range subs {
		b.deliver(ctx, s.handler, event)
	}
}

func (b *Bus) deliver(ctx context.Context, h Handler, event domainevents.Event) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("event handler panicked", "topic", event.Topic(), "panic", r)
		}
	}()
	h(ctx, event)
}
