package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event types emitted by the learning services.
const (
	// TypeLearnCompleted is emitted after a learn session moved words into P1.
	TypeLearnCompleted = "learn.completed"

	// TypeProgressMastered is emitted after a word was promoted to P6.
	TypeProgressMastered = "progress.mastered"
)

// Event is a fact about a user's progress, published after the unit of work
// that produced it has committed.
type Event struct {
	// ID is a unique identifier for this event
	ID uuid.UUID `json:"id"`

	// Type is one of the Type* constants
	Type string `json:"type"`

	// UserID is the learner the event is about
	UserID uuid.UUID `json:"user_id"`

	// Payload contains the type-specific data serialized as JSON
	Payload json.RawMessage `json:"payload"`

	// CreatedAt is the timestamp when the event was created
	CreatedAt time.Time `json:"created_at"`
}

// LearnCompletedPayload is the payload of TypeLearnCompleted.
type LearnCompletedPayload struct {
	WordIDs      []uuid.UUID `json:"word_ids"`
	TodayLearned int         `json:"today_learned"`
}

// ProgressMasteredPayload is the payload of TypeProgressMastered.
type ProgressMasteredPayload struct {
	WordID uuid.UUID `json:"word_id"`
	Word   string    `json:"word"`
}

// UnmarshalPayload decodes the event payload into the provided structure.
func (e *Event) UnmarshalPayload(v interface{}) error {
	return json.Unmarshal(e.Payload, v)
}

// NewEvent creates an Event with the specified type and payload.
func NewEvent(eventType string, userID uuid.UUID, payload interface{}, now time.Time) (*Event, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return &Event{
		ID:        uuid.New(),
		Type:      eventType,
		UserID:    userID,
		Payload:   payloadBytes,
		CreatedAt: now,
	}, nil
}

// EventHandler defines an interface for components that can handle events.
type EventHandler interface {
	// HandleEvent processes the given event within the provided context.
	// Returns an error if the event cannot be handled successfully.
	HandleEvent(ctx context.Context, event *Event) error
}

// EventEmitter defines an interface for components that can emit events.
// This allows services to publish events without direct knowledge of handlers.
type EventEmitter interface {
	// EmitEvent publishes the given event to all registered handlers.
	EmitEvent(ctx context.Context, event *Event) error
}
