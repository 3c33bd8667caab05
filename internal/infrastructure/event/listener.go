package event

import (
	"context"

	"github.com/wordpress-mobile/fluxc-go/internal/domain/shared"
)

// Listener adapts a plain function into an EventHandler.
type Listener struct {
	fn    func(ctx context.Context, event shared.ChangeEvent) error
	types []string
}

// NewListener wraps fn. With no types the listener receives every event.
func NewListener(fn func(ctx context.Context, event shared.ChangeEvent) error, eventTypes ...string) *Listener {
	return &Listener{fn: fn, types: eventTypes}
}

// Handle calls the wrapped function
func (l *Listener) Handle(ctx context.Context, event shared.ChangeEvent) error {
	return l.fn(ctx, event)
}

// EventTypes returns the subscribed event types
func (l *Listener) EventTypes() []string {
	return l.types
}

// Collector records every event it receives. It is used by the CLI and tests
// to wait for a store's change events.
type Collector struct {
	*Listener
	events chan shared.ChangeEvent
}

// NewCollector creates a collector buffering up to size events
func NewCollector(size int, eventTypes ...string) *Collector {
	c := &Collector{events: make(chan shared.ChangeEvent, size)}
	c.Listener = NewListener(func(_ context.Context, ev shared.ChangeEvent) error {
		select {
		case c.events <- ev:
		default:
		}
		return nil
	}, eventTypes...)
	return c
}

// Events returns the channel of received events
func (c *Collector) Events() <-chan shared.ChangeEvent {
	return c.events
}
