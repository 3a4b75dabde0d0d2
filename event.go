package stax

import (
	"time"

	"github.com/google/uuid"
)

// Event is the envelope handed to observers when an event reaches the
// active leaf. Handlers receive the raw opaque args; the envelope exists
// for observation and logging only.
type Event struct {
	Name      string
	Args      any
	ID        string
	Timestamp time.Time
}

// NewEvent creates a new event envelope with a unique identifier.
func NewEvent(name string, args any) *Event {
	return &Event{
		Name:      name,
		Args:      args,
		ID:        uuid.New().String(),
		Timestamp: time.Now(),
	}
}
