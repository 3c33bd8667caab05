package shared

import "context"

// EventHandler handles change events
type EventHandler interface {
	// Handle processes a change event
	Handle(ctx context.Context, event ChangeEvent) error
	// EventTypes returns the event types this handler is interested in
	// An empty slice means the handler receives all events
	EventTypes() []string
}

// EventPublisher publishes change events
type EventPublisher interface {
	Publish(ctx context.Context, events ...ChangeEvent) error
}

// EventSubscriber subscribes to change events
type EventSubscriber interface {
	// Subscribe registers a handler for specific event types
	// If no event types are provided, the handler's own EventTypes are used
	Subscribe(handler EventHandler, eventTypes ...string)
	Unsubscribe(handler EventHandler)
}

// EventBus combines publisher and subscriber capabilities
type EventBus interface {
	EventPublisher
	EventSubscriber
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}
