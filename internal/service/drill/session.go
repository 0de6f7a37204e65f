package drill

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/phrazzld/scry-drill/internal/domain"
	"github.com/phrazzld/scry-drill/internal/events"
	"github.com/phrazzld/scry-drill/internal/platform/logger"
)

// Stats counts what happened during a session.
type Stats struct {
	Drilled int // prompts graded
	Correct int // prompts answered correctly
}

// SessionParams holds the collaborators of a Session.
type SessionParams struct {
	AnswerKey *domain.AnswerKey
	Records   *RecordSet
	Scheduler *Scheduler
	Port      Port

	// Emitter receives one event per graded prompt and one when the session
	// ends. Optional.
	Emitter events.EventEmitter
	// Clock returns the current time. Defaults to time.Now.
	Clock func() time.Time
	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// Session runs one pass of the drill loop, from a loaded record set to the
// records to persist. It is strictly sequential.
type Session struct {
	id        uuid.UUID
	key       *domain.AnswerKey
	set       *RecordSet
	scheduler *Scheduler
	port      Port
	emitter   events.EventEmitter
	clock     func() time.Time
	logger    *slog.Logger

	state State
	stats Stats
}

// NewSession creates a Session after checking that every record has an
// answer. A record without one fails with domain.ErrMissingAnswerForPrompt
// before anything is drilled.
func NewSession(p SessionParams) (*Session, error) {
	// Validate inputs
	if p.AnswerKey == nil {
		panic("answer key cannot be nil")
	}
	if p.Records == nil {
		panic("records cannot be nil")
	}
	if p.Scheduler == nil {
		panic("scheduler cannot be nil")
	}
	if p.Port == nil {
		panic("port cannot be nil")
	}

	if p.Clock == nil {
		p.Clock = time.Now
	}
	if p.Logger == nil {
		p.Logger = slog.Default()
	}

	for _, r := range p.Records.records {
		if !p.AnswerKey.Has(r.Prompt) {
			return nil, NewSessionError("new_session",
				"make sure the answer sheet matches the grade sheet's prompts",
				fmt.Errorf("%w: %q", domain.ErrMissingAnswerForPrompt, r.Prompt))
		}
	}

	id := uuid.New()
	return &Session{
		id:        id,
		key:       p.AnswerKey,
		set:       p.Records,
		scheduler: p.Scheduler,
		port:      p.Port,
		emitter:   p.Emitter,
		clock:     p.Clock,
		logger: p.Logger.With(
			slog.String("component", "drill_session"),
			slog.String("session_id", id.String())),
		state: StateAwaitingContinueDecision,
	}, nil
}

// ID returns the session's unique identifier.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// State returns the current state of the review loop.
func (s *Session) State() State {
	return s.state
}

// Stats returns the counters collected so far.
func (s *Session) Stats() Stats {
	return s.stats
}

// Run drives the review loop until the user declines to continue or input
// closes, then returns every record sorted ascending by a freshly computed
// retention score, ready to persist.
//
// Any other failure, including ctx being cancelled, is returned as an error
// and no records are returned: callers must not save partial state.
func (s *Session) Run(ctx context.Context) ([]*domain.Record, error) {
	ctx = logger.WithLogger(ctx, s.logger)
	s.logger.Info("session started", slog.Int("records", s.set.Len()))

	for s.state != StateTerminated {
		if err := ctx.Err(); err != nil {
			return nil, NewSessionError("run", "session cancelled", err)
		}

		if err := s.step(ctx); err != nil {
			return nil, err
		}
	}

	records, err := s.scheduler.Rank(s.set, s.now())
	if err != nil {
		return nil, err
	}

	s.emit(ctx, func(e *events.Event) {
		e.Drilled = s.stats.Drilled
		e.Answered = s.stats.Correct
	}, events.TypeSessionEnded)

	s.logger.Info("session finished",
		slog.Int("drilled", s.stats.Drilled),
		slog.Int("correct", s.stats.Correct))

	return records, nil
}

// step runs one pass from AwaitingContinueDecision back to itself, or to
// Terminated.
func (s *Session) step(ctx context.Context) error {
	cont, err := s.port.AskContinue(ctx)
	if err != nil && !errors.Is(err, io.EOF) {
		return NewSessionError("run", "failed to read continue decision", err)
	}
	if !cont || err != nil {
		return s.transition(StateTerminated)
	}

	if _, err := s.scheduler.Rank(s.set, s.now()); err != nil {
		return err
	}
	record, err := s.scheduler.SelectNext(s.set)
	if err != nil {
		return err
	}

	answer, err := s.key.Lookup(record.Prompt)
	if err != nil {
		return NewSessionError("run",
			"make sure the answer sheet matches the grade sheet's prompts", err)
	}

	if err := s.transition(StatePresentingPrompt); err != nil {
		return err
	}
	s.logger.Debug("presenting prompt",
		slog.String("prompt", record.Prompt),
		slog.Float64("retention_score", record.RetentionScore))

	if err := s.port.PresentPrompt(ctx, record.Prompt); err != nil {
		return s.interrupted(record, "failed to present prompt", err)
	}

	if err := s.transition(StateAwaitingGrade); err != nil {
		return err
	}
	if err := s.port.RevealAnswer(ctx, answer); err != nil {
		return s.interrupted(record, "failed to reveal answer", err)
	}
	correct, err := s.port.AskCorrect(ctx)
	if err != nil {
		return s.interrupted(record, "failed to read grade", err)
	}

	if err := s.transition(StateUpdating); err != nil {
		return err
	}
	graded, err := s.scheduler.ApplyGrade(record, correct, s.now())
	if err != nil {
		return err
	}
	if err := s.set.Insert(graded); err != nil {
		return NewSessionError("run", "failed to reinsert graded record", err)
	}

	s.stats.Drilled++
	if correct {
		s.stats.Correct++
	}

	s.emit(ctx, func(e *events.Event) {
		e.Prompt = graded.Prompt
		e.Correct = correct
		e.CorrectCount = graded.CorrectCount
	}, events.TypePromptGraded)

	return s.transition(StateAwaitingContinueDecision)
}

// interrupted handles a port failure while a record is out of the set.
// Closed input puts the record back ungraded and ends the session cleanly.
func (s *Session) interrupted(record *domain.Record, message string, err error) error {
	if !errors.Is(err, io.EOF) {
		return NewSessionError("run", message, err)
	}

	s.logger.Info("input closed mid-drill, keeping record ungraded",
		slog.String("prompt", record.Prompt))
	if insertErr := s.set.Insert(record); insertErr != nil {
		return NewSessionError("run", "failed to reinsert record", insertErr)
	}
	return s.transition(StateTerminated)
}

func (s *Session) transition(to State) error {
	if !s.state.canTransition(to) {
		return NewSessionError("run",
			fmt.Sprintf("illegal transition from %s to %s", s.state, to), nil)
	}
	s.state = to
	return nil
}

func (s *Session) emit(ctx context.Context, fill func(*events.Event), eventType string) {
	if s.emitter == nil {
		return
	}

	event := events.NewEvent(eventType, s.id)
	fill(event)

	if err := s.emitter.EmitEvent(ctx, event); err != nil {
		s.logger.Warn("failed to emit event",
			slog.String("event_type", eventType),
			slog.String("error", err.Error()))
	}
}

func (s *Session) now() domain.Days {
	return domain.DaysAt(s.clock())
}
