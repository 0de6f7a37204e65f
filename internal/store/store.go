package store

import (
	"context"

	"github.com/phrazzld/scry-drill/internal/domain"
)

// AnswerKeySource loads the mapping from prompt text to answer text.
type AnswerKeySource interface {
	// LoadAnswerKey reads every prompt/answer row. The first row for a prompt
	// wins; later duplicates are ignored.
	// Returns an error wrapping domain.ErrMissingAnswerSheet if the source
	// does not exist and domain.ErrInvalidFormat for malformed rows.
	LoadAnswerKey(ctx context.Context) (*domain.AnswerKey, error)
}

// RecordSource loads the records of a previous session.
type RecordSource interface {
	// LoadRecords reads every saved record, validating each one.
	// Returns ErrNotFound if nothing was saved at this location yet and an
	// error wrapping domain.ErrInvalidRecord for malformed rows.
	LoadRecords(ctx context.Context) ([]*domain.Record, error)
}

// RecordSink persists the records of a finished session.
type RecordSink interface {
	// SaveRecords replaces the stored records with records, one row per
	// record. Implementations write rows sorted ascending by retention score
	// and must not leave a partially written result behind on failure.
	SaveRecords(ctx context.Context, records []*domain.Record) error
}

// RecordStore is a location that can both load and save records.
type RecordStore interface {
	RecordSource
	RecordSink
}
