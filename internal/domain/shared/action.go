package shared

import (
	"context"

	"github.com/google/uuid"
)

// ActionType names an action routed by the dispatcher
type ActionType string

// Action is a request routed from the UI layer to the stores
type Action struct {
	ID      uuid.UUID
	Type    ActionType
	Payload any
}

// NewAction creates an action with a fresh ID
func NewAction(actionType ActionType, payload any) Action {
	return Action{
		ID:      uuid.New(),
		Type:    actionType,
		Payload: payload,
	}
}

// ActionHandler is implemented by stores that react to dispatched actions
type ActionHandler interface {
	// OnAction handles a single action
	OnAction(ctx context.Context, action Action) error
	// ActionTypes returns the action types this handler is interested in
	ActionTypes() []ActionType
}

// Deduplicatable is implemented by payloads that must not be processed twice
// within the dispatcher's de-duplication window
type Deduplicatable interface {
	DedupeKey() string
}

// ActionDispatcher dispatches actions to registered handlers and publishes change events
type ActionDispatcher interface {
	Dispatch(ctx context.Context, action Action)
	DispatchSync(ctx context.Context, action Action) error
	Emit(ctx context.Context, events ...ChangeEvent)
}
