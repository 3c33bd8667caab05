package shared

import (
	"time"

	"github.com/google/uuid"
)

// ChangeEvent is emitted by a store after its cache state changed or an operation failed
type ChangeEvent interface {
	EventID() uuid.UUID
	EventType() string
	OccurredAt() time.Time
	// Err returns the failure carried by the event, nil on success
	Err() error
}

// BaseChangeEvent provides common fields for all change events
type BaseChangeEvent struct {
	ID        uuid.UUID `json:"id"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Error     error     `json:"-"`
}

// EventID returns the unique event identifier
func (e *BaseChangeEvent) EventID() uuid.UUID {
	return e.ID
}

// EventType returns the type of the event
func (e *BaseChangeEvent) EventType() string {
	return e.Type
}

// OccurredAt returns when the event occurred
func (e *BaseChangeEvent) OccurredAt() time.Time {
	return e.Timestamp
}

// Err returns the error carried by the event
func (e *BaseChangeEvent) Err() error {
	return e.Error
}

// IsError reports whether the event carries an error
func (e *BaseChangeEvent) IsError() bool {
	return e.Error != nil
}

// NewBaseChangeEvent creates a new base change event
func NewBaseChangeEvent(eventType string, err error) BaseChangeEvent {
	return BaseChangeEvent{
		ID:        uuid.New(),
		Type:      eventType,
		Timestamp: time.Now(),
		Error:     err,
	}
}
