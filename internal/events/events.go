package events

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/lawbench/casetriage/internal/domain"
)

// EventType identifies what a batch progress event describes.
type EventType string

// Possible event types.
const (
	// EventAttemptFinished is emitted after each service call for an item,
	// successful or not.
	EventAttemptFinished EventType = "attempt_finished"

	// EventOutcomeRecorded is emitted once per item when it reaches its
	// terminal outcome.
	EventOutcomeRecorded EventType = "outcome_recorded"
)

// Event is a notification about batch progress. Exactly one of Attempt or
// Outcome is set, matching the event type. Events are notifications only;
// handlers are not required to store them.
type Event struct {
	// ID is a unique identifier for this event
	ID uuid.UUID `json:"id"`

	// Type indicates what the event describes
	Type EventType `json:"type"`

	// Attempt is set for EventAttemptFinished events
	Attempt *domain.Attempt `json:"attempt,omitempty"`

	// Outcome is set for EventOutcomeRecorded events
	Outcome *domain.Outcome `json:"outcome,omitempty"`

	// CreatedAt is the timestamp when the event was created
	CreatedAt time.Time `json:"created_at"`
}

// NewAttemptEvent creates an event recording a finished service call.
func NewAttemptEvent(attempt domain.Attempt) *Event {
	return &Event{
		ID:        uuid.New(),
		Type:      EventAttemptFinished,
		Attempt:   &attempt,
		CreatedAt: time.Now().UTC(),
	}
}

// NewOutcomeEvent creates an event recording a terminal outcome.
func NewOutcomeEvent(outcome domain.Outcome) *Event {
	return &Event{
		ID:        uuid.New(),
		Type:      EventOutcomeRecorded,
		Outcome:   &outcome,
		CreatedAt: time.Now().UTC(),
	}
}

// Handler defines an interface for components that can handle events.
// Handlers are responsible for processing events and taking appropriate
// actions, such as logging progress.
type Handler interface {
	// HandleEvent processes the given event within the provided context.
	// Returns an error if the event cannot be handled successfully.
	HandleEvent(ctx context.Context, event *Event) error
}

// Emitter defines an interface for components that can emit events.
// This allows the dispatcher to publish progress without direct knowledge
// of handlers.
type Emitter interface {
	// EmitEvent publishes the given event to all registered handlers.
	// Returns an error if the event cannot be emitted.
	EmitEvent(ctx context.Context, event *Event) error
}
