package drill

import (
	"fmt"
	"sort"

	"github.com/phrazzld/scry-drill/internal/domain"
)

// RecordSet is the working set of records of one session. Prompts are unique
// within a set. A set is owned by a single session and is not safe for
// concurrent use.
type RecordSet struct {
	records []*domain.Record
	prompts map[string]struct{}
}

// NewRecordSet creates a set holding records. Records are validated and
// prompts must be unique.
func NewRecordSet(records ...*domain.Record) (*RecordSet, error) {
	set := &RecordSet{
		records: make([]*domain.Record, 0, len(records)),
		prompts: make(map[string]struct{}, len(records)),
	}

	for _, r := range records {
		if err := set.Insert(r); err != nil {
			return nil, err
		}
	}

	return set, nil
}

// Insert adds a record to the set.
func (s *RecordSet) Insert(r *domain.Record) error {
	if r == nil {
		return ErrNilRecord
	}
	if err := r.Validate(); err != nil {
		return err
	}
	if _, dup := s.prompts[r.Prompt]; dup {
		return fmt.Errorf("%w: duplicate prompt %q", domain.ErrInvalidRecord, r.Prompt)
	}

	s.prompts[r.Prompt] = struct{}{}
	s.records = append(s.records, r)
	return nil
}

// Len returns the number of records in the set.
func (s *RecordSet) Len() int {
	return len(s.records)
}

// Records returns the records sorted ascending by retention score, ties
// broken by prompt. The slice is a copy; the records are shared.
func (s *RecordSet) Records() []*domain.Record {
	out := make([]*domain.Record, len(s.records))
	copy(out, s.records)
	sortAscending(out)
	return out
}

// popLowest removes and returns the record with the lowest stored score.
func (s *RecordSet) popLowest() (*domain.Record, error) {
	if len(s.records) == 0 {
		return nil, domain.ErrEmptySet
	}

	idx := 0
	for i := 1; i < len(s.records); i++ {
		if less(s.records[i], s.records[idx]) {
			idx = i
		}
	}

	r := s.records[idx]
	s.records = append(s.records[:idx], s.records[idx+1:]...)
	delete(s.prompts, r.Prompt)
	return r, nil
}

// less orders records by retention score, then by prompt so that equal
// scores always come out in the same order.
func less(a, b *domain.Record) bool {
	if a.RetentionScore != b.RetentionScore {
		return a.RetentionScore < b.RetentionScore
	}
	return a.Prompt < b.Prompt
}

func sortAscending(records []*domain.Record) {
	sort.SliceStable(records, func(i, j int) bool {
		return less(records[i], records[j])
	})
}
