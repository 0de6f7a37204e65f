package domain

import "errors"

// Errors shared across the application. Every one of them ends the session:
// nothing is retried and no partial state is written.
var (
	// ErrMissingAnswerSheet is returned when no answer sheet was configured
	// or the configured file does not exist.
	ErrMissingAnswerSheet = errors.New("missing answer sheet")

	// ErrMissingAnswerForPrompt is returned when a record's prompt has no entry
	// in the answer key. This usually means the saved grade sheet and the
	// current answer sheet do not match.
	ErrMissingAnswerForPrompt = errors.New("answer sheet does not have the prompt")

	// ErrInvalidRecord is returned when a record fails validation, most
	// importantly when its correct count is not positive.
	ErrInvalidRecord = errors.New("invalid record")

	// ErrEmptySet is returned when there are no prompts left to schedule.
	ErrEmptySet = errors.New("no prompts to schedule")

	// ErrInvalidFormat is returned when tabular data is not in the expected shape.
	ErrInvalidFormat = errors.New("invalid format")
)
