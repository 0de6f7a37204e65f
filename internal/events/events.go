package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Event types emitted by a drill session.
const (
	// TypePromptGraded is emitted after a prompt was answered and graded.
	TypePromptGraded = "prompt_graded"
	// TypeSessionEnded is emitted once when the review loop terminates.
	TypeSessionEnded = "session_ended"
)

// Event describes something that happened during a session.
type Event struct {
	// ID is a unique identifier for this event
	ID uuid.UUID `json:"id"`

	// Type is one of the Type* constants
	Type string `json:"type"`

	// SessionID identifies the session that emitted the event
	SessionID uuid.UUID `json:"session_id"`

	// Prompt, Correct and CorrectCount describe a graded prompt
	Prompt       string `json:"prompt,omitempty"`
	Correct      bool   `json:"correct,omitempty"`
	CorrectCount int    `json:"correct_count,omitempty"`

	// Drilled and Answered summarize a finished session
	Drilled  int `json:"drilled,omitempty"`
	Answered int `json:"answered,omitempty"`

	// CreatedAt is the timestamp when the event was created
	CreatedAt time.Time `json:"created_at"`
}

// NewEvent creates a new Event of the given type for a session.
func NewEvent(eventType string, sessionID uuid.UUID) *Event {
	return &Event{
		ID:        uuid.New(),
		Type:      eventType,
		SessionID: sessionID,
		CreatedAt: time.Now().UTC(),
	}
}

// EventHandler defines an interface for components that can handle events.
type EventHandler interface {
	// HandleEvent processes the given event within the provided context.
	// Returns an error if the event cannot be handled successfully.
	HandleEvent(ctx context.Context, event *Event) error
}

// EventEmitter defines an interface for components that can emit events.
// This allows the session to publish events without direct knowledge of handlers.
type EventEmitter interface {
	// EmitEvent publishes the given event to all registered handlers.
	// Returns an error if the event cannot be emitted.
	EmitEvent(ctx context.Context, event *Event) error
}
