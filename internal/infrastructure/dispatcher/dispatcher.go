// Package dispatcher routes actions from the UI layer to the stores and
// publishes the change events the stores emit.
package dispatcher

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/wordpress-mobile/fluxc-go/internal/domain/shared"
	"github.com/wordpress-mobile/fluxc-go/internal/infrastructure/logger"
	"github.com/wordpress-mobile/fluxc-go/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// ErrNoHandler is returned when an action has no registered handler
var ErrNoHandler = errors.New("dispatcher: no handler registered for action")

// Dispatcher is the action bus between the UI layer and the stores.
type Dispatcher struct {
	mu       sync.RWMutex
	handlers map[shared.ActionType][]shared.ActionHandler

	bus       shared.EventPublisher
	dedupe    shared.IdempotencyStore
	dedupeTTL time.Duration
	logger    *zap.Logger

	wg sync.WaitGroup
}

// Option configures a Dispatcher
type Option func(*Dispatcher)

// WithLogger sets the dispatcher logger
func WithLogger(l *zap.Logger) Option {
	return func(d *Dispatcher) {
		if l != nil {
			d.logger = l
		}
	}
}

// WithDedupe enables de-duplication of payloads implementing shared.Deduplicatable
func WithDedupe(store shared.IdempotencyStore, ttl time.Duration) Option {
	return func(d *Dispatcher) {
		d.dedupe = store
		d.dedupeTTL = ttl
	}
}

// New creates a dispatcher publishing change events on bus
func New(bus shared.EventPublisher, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		handlers: make(map[shared.ActionType][]shared.ActionHandler),
		bus:      bus,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Register subscribes handler to the action types it declares
func (d *Dispatcher) Register(handler shared.ActionHandler) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, t := range handler.ActionTypes() {
		d.handlers[t] = append(d.handlers[t], handler)
	}
}

// Unregister removes handler from every action type
func (d *Dispatcher) Unregister(handler shared.ActionHandler) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for t, hs := range d.handlers {
		kept := hs[:0:0]
		for _, h := range hs {
			if h != handler {
				kept = append(kept, h)
			}
		}
		if len(kept) == 0 {
			delete(d.handlers, t)
		} else {
			d.handlers[t] = kept
		}
	}
}

// HasHandler reports whether any handler is registered for t
func (d *Dispatcher) HasHandler(t shared.ActionType) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.handlers[t]) > 0
}

// DispatchSync runs every handler registered for the action on the calling goroutine.
// Handler errors are joined; a panicking handler is recovered and reported as an error.
func (d *Dispatcher) DispatchSync(ctx context.Context, action shared.Action) (err error) {
	d.mu.RLock()
	handlers := append([]shared.ActionHandler(nil), d.handlers[action.Type]...)
	d.mu.RUnlock()

	if len(handlers) == 0 {
		return fmt.Errorf("%w: %s", ErrNoHandler, action.Type)
	}

	skip, err := d.isDuplicate(ctx, action)
	if err != nil {
		d.logger.Warn("action de-duplication unavailable", zap.String("action", string(action.Type)), zap.Error(err))
	}
	if skip {
		d.logger.Debug("skipping duplicate action", zap.String("action", string(action.Type)))
		return nil
	}

	ctx = logger.WithAction(ctx, string(action.Type))
	ctx, span := telemetry.StartSpan(ctx, "dispatch "+string(action.Type),
		telemetry.WithAttribute(telemetry.SpanAttrActionType, string(action.Type)))
	defer func() { telemetry.EndSpan(span, err) }()

	var errs []error
	for _, h := range handlers {
		if herr := d.invoke(ctx, h, action); herr != nil {
			errs = append(errs, herr)
		}
	}
	return errors.Join(errs...)
}

// Dispatch runs the action on a background goroutine. The goroutine keeps the
// context values but is not cancelled with ctx. Use Wait to drain.
func (d *Dispatcher) Dispatch(ctx context.Context, action shared.Action) {
	bg := context.WithoutCancel(ctx)
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		if err := d.DispatchSync(bg, action); err != nil {
			d.logger.Warn("action failed",
				zap.String("action", string(action.Type)),
				zap.String("action_id", action.ID.String()),
				zap.Error(err),
			)
		}
	}()
}

// Wait blocks until every action queued with Dispatch has completed
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// Emit publishes change events to subscribers
func (d *Dispatcher) Emit(ctx context.Context, events ...shared.ChangeEvent) {
	if d.bus == nil {
		return
	}
	if err := d.bus.Publish(ctx, events...); err != nil {
		d.logger.Error("failed to publish change events", zap.Error(err))
	}
}

func (d *Dispatcher) isDuplicate(ctx context.Context, action shared.Action) (bool, error) {
	if d.dedupe == nil {
		return false, nil
	}
	keyed, ok := action.Payload.(shared.Deduplicatable)
	if !ok {
		return false, nil
	}
	key := string(action.Type) + ":" + keyed.DedupeKey()
	fresh, err := d.dedupe.MarkProcessed(ctx, key, d.dedupeTTL)
	if err != nil {
		return false, err
	}
	return !fresh, nil
}

func (d *Dispatcher) invoke(ctx context.Context, h shared.ActionHandler, action shared.Action) (err error) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("action handler panicked",
				zap.String("action", string(action.Type)),
				zap.Any("panic", r),
			)
			err = fmt.Errorf("dispatcher: handler panicked on %s: %v", action.Type, r)
		}
	}()
	return h.OnAction(ctx, action)
}

var _ shared.ActionDispatcher = (*Dispatcher)(nil)
