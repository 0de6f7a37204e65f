package drill

import (
	"fmt"
	"log/slog"

	"github.com/phrazzld/scry-drill/internal/domain"
	"github.com/phrazzld/scry-drill/internal/domain/srs"
)

// InitOptions tunes how a record set is built.
type InitOptions struct {
	// IncludeNew seeds fresh records for answer key prompts that are absent
	// from the saved records.
	IncludeNew bool
}

// Scheduler ranks records by retention score and picks the next one to drill.
type Scheduler struct {
	scorer srs.Service
	logger *slog.Logger
}

// NewScheduler creates a Scheduler scoring records with scorer.
func NewScheduler(scorer srs.Service, logger *slog.Logger) *Scheduler {
	if scorer == nil {
		panic("scorer cannot be nil")
	}

	// Use provided logger or create default
	if logger == nil {
		logger = slog.Default()
	}

	return &Scheduler{
		scorer: scorer,
		logger: logger.With(slog.String("component", "scheduler")),
	}
}

// Initialize builds the working set for a session.
//
// Without saved records every answer key prompt gets a fresh record stamped
// with now. Otherwise the saved records are used as they are; their scores
// are recomputed on the first Rank. Returns domain.ErrEmptySet when the
// resulting set would be empty.
func (s *Scheduler) Initialize(
	key *domain.AnswerKey,
	saved []*domain.Record,
	now domain.Days,
	opts InitOptions,
) (*RecordSet, error) {
	if key == nil {
		return nil, NewSessionError("initialize", "answer key is required", domain.ErrMissingAnswerSheet)
	}

	var (
		set *RecordSet
		err error
	)

	if saved == nil {
		set, err = s.seed(key.Prompts(), now)
		if err != nil {
			return nil, NewSessionError("initialize", "failed to seed records", err)
		}
		s.logger.Debug("seeded fresh records", slog.Int("count", set.Len()))
	} else {
		clones := make([]*domain.Record, 0, len(saved))
		for _, r := range saved {
			if r == nil {
				return nil, NewSessionError("initialize", "saved records contain a nil entry", ErrNilRecord)
			}
			clones = append(clones, r.Clone())
		}

		set, err = NewRecordSet(clones...)
		if err != nil {
			return nil, NewSessionError("initialize", "invalid saved records", err)
		}
		s.logger.Debug("loaded saved records", slog.Int("count", set.Len()))

		if opts.IncludeNew {
			added := 0
			for _, prompt := range key.Prompts() {
				if _, ok := set.prompts[prompt]; ok {
					continue
				}
				r, err := domain.NewRecord(prompt, now)
				if err != nil {
					return nil, NewSessionError("initialize", "failed to seed new prompt", err)
				}
				if err := set.Insert(r); err != nil {
					return nil, NewSessionError("initialize", "failed to seed new prompt", err)
				}
				added++
			}
			s.logger.Debug("seeded prompts missing from saved records", slog.Int("count", added))
		}
	}

	if set.Len() == 0 {
		return nil, NewSessionError("initialize", "nothing to drill", domain.ErrEmptySet)
	}

	return set, nil
}

func (s *Scheduler) seed(prompts []string, now domain.Days) (*RecordSet, error) {
	records := make([]*domain.Record, 0, len(prompts))
	for _, prompt := range prompts {
		r, err := domain.NewRecord(prompt, now)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return NewRecordSet(records...)
}

// Rank recomputes every record's retention score at time now and orders the
// set ascending by score, ties broken by prompt. It returns the ordered
// records; the first one is the next to drill.
func (s *Scheduler) Rank(set *RecordSet, now domain.Days) ([]*domain.Record, error) {
	for _, r := range set.records {
		score, err := s.scorer.Score(r, now)
		if err != nil {
			return nil, NewSessionError("rank", fmt.Sprintf("failed to score %q", r.Prompt), err)
		}
		r.RetentionScore = score
	}

	sortAscending(set.records)

	out := make([]*domain.Record, len(set.records))
	copy(out, set.records)
	return out, nil
}

// SelectNext removes and returns the record with the lowest retention score.
// Returns domain.ErrEmptySet when no records remain.
func (s *Scheduler) SelectNext(set *RecordSet) (*domain.Record, error) {
	r, err := set.popLowest()
	if err != nil {
		return nil, NewSessionError("select_next", "no records left", err)
	}
	return r, nil
}

// ApplyGrade returns an updated copy of record. A correct answer increments
// the correct count; the review time is always set to now. The retention
// score is left stale until the next Rank.
func (s *Scheduler) ApplyGrade(record *domain.Record, wasCorrect bool, now domain.Days) (*domain.Record, error) {
	graded, err := s.scorer.Grade(record, wasCorrect, now)
	if err != nil {
		return nil, NewSessionError("grade", "failed to grade record", err)
	}
	return graded, nil
}
