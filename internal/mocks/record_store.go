package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/scry-drill/internal/domain"
	"github.com/phrazzld/scry-drill/internal/store"
)

// MockRecordStore implements store.RecordStore for testing.
type MockRecordStore struct {
	// Custom behavior functions
	LoadRecordsFn func(ctx context.Context) ([]*domain.Record, error)
	SaveRecordsFn func(ctx context.Context, records []*domain.Record) error

	// Default return values
	Records      []*domain.Record
	DefaultError error

	mu    sync.Mutex
	saved [][]*domain.Record
}

var _ store.RecordStore = (*MockRecordStore)(nil)

// LoadRecords implements the RecordSource.LoadRecords method.
// It returns store.ErrNotFound when Records is nil.
func (m *MockRecordStore) LoadRecords(ctx context.Context) ([]*domain.Record, error) {
	if m.LoadRecordsFn != nil {
		return m.LoadRecordsFn(ctx)
	}
	if m.DefaultError != nil {
		return nil, m.DefaultError
	}
	if m.Records == nil {
		return nil, store.ErrNotFound
	}
	return m.Records, nil
}

// SaveRecords implements the RecordSink.SaveRecords method
func (m *MockRecordStore) SaveRecords(ctx context.Context, records []*domain.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.saved = append(m.saved, records)
	if m.SaveRecordsFn != nil {
		return m.SaveRecordsFn(ctx, records)
	}
	return m.DefaultError
}

// SaveCalls returns the record slices passed to SaveRecords, in order.
func (m *MockRecordStore) SaveCalls() [][]*domain.Record {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([][]*domain.Record(nil), m.saved...)
}

// MockAnswerKeySource implements store.AnswerKeySource for testing.
type MockAnswerKeySource struct {
	LoadAnswerKeyFn func(ctx context.Context) (*domain.AnswerKey, error)

	Key          *domain.AnswerKey
	DefaultError error
}

var _ store.AnswerKeySource = (*MockAnswerKeySource)(nil)

// LoadAnswerKey implements the AnswerKeySource.LoadAnswerKey method
func (m *MockAnswerKeySource) LoadAnswerKey(ctx context.Context) (*domain.AnswerKey, error) {
	if m.LoadAnswerKeyFn != nil {
		return m.LoadAnswerKeyFn(ctx)
	}
	return m.Key, m.DefaultError
}
