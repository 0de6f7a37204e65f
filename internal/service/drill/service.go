package drill

import (
	"context"
	"errors"
	"fmt"
)

// Port is the interactive collaborator that shows prompts and collects
// judgments. Every method blocks until the user responds.
//
// Implementations report closed input with io.EOF; the session treats it as
// a request to stop.
type Port interface {
	// AskContinue asks whether to drill another prompt.
	AskContinue(ctx context.Context) (bool, error)

	// PresentPrompt shows the prompt and waits for acknowledgment.
	PresentPrompt(ctx context.Context, prompt string) error

	// RevealAnswer shows the correct answer.
	RevealAnswer(ctx context.Context, answer string) error

	// AskCorrect asks whether the user answered correctly.
	AskCorrect(ctx context.Context) (bool, error)
}

// ErrNilRecord is returned when a nil record is handed to the scheduler.
var ErrNilRecord = errors.New("record cannot be nil")

// SessionError wraps errors from the drill session with additional context.
// This allows consumers to differentiate between different types of failures
// using errors.As instead of string matching.
type SessionError struct {
	// Operation is the operation that failed (e.g., "initialize", "rank", "grade")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for SessionError.
func (e *SessionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s operation failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s operation failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *SessionError) Unwrap() error {
	return e.Err
}

// NewSessionError returns a new SessionError for the given operation.
func NewSessionError(operation, message string, err error) *SessionError {
	return &SessionError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
