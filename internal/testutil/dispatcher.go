package testutil

import (
	"context"
	"sync"

	"github.com/wordpress-mobile/fluxc-go/internal/domain/shared"
)

// RecordingDispatcher records dispatched actions and emitted events instead of
// routing them. Actions of a type with a registered handler are forwarded to it.
type RecordingDispatcher struct {
	mu       sync.Mutex
	actions  []shared.Action
	events   []shared.ChangeEvent
	handlers map[shared.ActionType]shared.ActionHandler
}

// NewRecordingDispatcher creates an empty recorder
func NewRecordingDispatcher() *RecordingDispatcher {
	return &RecordingDispatcher{handlers: make(map[shared.ActionType]shared.ActionHandler)}
}

// Forward routes the handler's action types to it after recording them
func (d *RecordingDispatcher) Forward(handler shared.ActionHandler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, t := range handler.ActionTypes() {
		d.handlers[t] = handler
	}
}

// Dispatch records the action and runs a forwarded handler synchronously
func (d *RecordingDispatcher) Dispatch(ctx context.Context, action shared.Action) {
	_ = d.DispatchSync(ctx, action)
}

// DispatchSync records the action and runs a forwarded handler
func (d *RecordingDispatcher) DispatchSync(ctx context.Context, action shared.Action) error {
	d.mu.Lock()
	d.actions = append(d.actions, action)
	h := d.handlers[action.Type]
	d.mu.Unlock()
	if h == nil {
		return nil
	}
	return h.OnAction(ctx, action)
}

// Emit records the events
func (d *RecordingDispatcher) Emit(_ context.Context, events ...shared.ChangeEvent) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, events...)
}

// Actions returns the recorded actions, optionally only those of the given types
func (d *RecordingDispatcher) Actions(types ...shared.ActionType) []shared.Action {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(types) == 0 {
		return append([]shared.Action(nil), d.actions...)
	}
	var out []shared.Action
	for _, a := range d.actions {
		for _, t := range types {
			if a.Type == t {
				out = append(out, a)
				break
			}
		}
	}
	return out
}

// Events returns the recorded events, optionally only those of the given types
func (d *RecordingDispatcher) Events(types ...string) []shared.ChangeEvent {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(types) == 0 {
		return append([]shared.ChangeEvent(nil), d.events...)
	}
	var out []shared.ChangeEvent
	for _, e := range d.events {
		for _, t := range types {
			if e.EventType() == t {
				out = append(out, e)
				break
			}
		}
	}
	return out
}

// LastEvent returns the most recent event, or nil
func (d *RecordingDispatcher) LastEvent() shared.ChangeEvent {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.events) == 0 {
		return nil
	}
	return d.events[len(d.events)-1]
}

// Reset forgets everything recorded so far
func (d *RecordingDispatcher) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.actions = nil
	d.events = nil
}

var _ shared.ActionDispatcher = (*RecordingDispatcher)(nil)
