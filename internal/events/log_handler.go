package events

import (
	"context"
	"log/slog"

	"github.com/phrazzld/scry-drill/internal/platform/logger"
)

// LogHandler writes every event to a structured logger.
type LogHandler struct {
	logger *slog.Logger
}

// NewLogHandler creates a LogHandler. A nil logger means slog.Default().
func NewLogHandler(l *slog.Logger) *LogHandler {
	if l == nil {
		l = slog.Default()
	}
	return &LogHandler{logger: l}
}

// Subscribe registers h on d for every event type a session emits.
func (h *LogHandler) Subscribe(d *Dispatcher) {
	d.Subscribe(h, TypePromptGraded, TypeSessionEnded)
}

// HandleEvent implements EventHandler.
func (h *LogHandler) HandleEvent(ctx context.Context, event *Event) error {
	log := logger.FromContextOrDefault(ctx, h.logger)

	switch event.Type {
	case TypePromptGraded:
		log.Info("prompt graded",
			slog.String("session_id", event.SessionID.String()),
			slog.String("prompt", event.Prompt),
			slog.Bool("correct", event.Correct),
			slog.Int("correct_count", event.CorrectCount))
	case TypeSessionEnded:
		log.Info("session ended",
			slog.String("session_id", event.SessionID.String()),
			slog.Int("drilled", event.Drilled),
			slog.Int("answered_correctly", event.Answered))
	default:
		log.Debug("unhandled event type",
			slog.String("event_type", event.Type),
			slog.String("event_id", event.ID.String()))
	}

	return nil
}
