package events

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/scry-drill/internal/platform/logger"
)

func TestLogHandler(t *testing.T) {
	log, buf := logger.GetTestLogger(t)
	handler := NewLogHandler(log)

	graded := NewEvent(TypePromptGraded, uuid.New())
	graded.Prompt = "Q1"
	graded.Correct = true
	graded.CorrectCount = 3
	require.NoError(t, handler.HandleEvent(context.Background(), graded))

	ended := NewEvent(TypeSessionEnded, graded.SessionID)
	ended.Drilled = 4
	ended.Answered = 3
	require.NoError(t, handler.HandleEvent(context.Background(), ended))

	logger.AssertLogField(t, buf, "msg", "prompt graded")
	logger.AssertLogField(t, buf, "prompt", "Q1")
	logger.AssertLogField(t, buf, "correct", true)
	logger.AssertLogField(t, buf, "msg", "session ended")
	logger.AssertLogField(t, buf, "drilled", float64(4))
}

func TestLogHandlerPrefersContextLogger(t *testing.T) {
	fallback, fallbackBuf := logger.GetTestLogger(t)
	capture := logger.NewLogCaptureContext(t)
	handler := NewLogHandler(fallback)

	require.NoError(t, handler.HandleEvent(capture.Context, NewEvent(TypeSessionEnded, uuid.New())))

	logger.AssertLogContains(t, capture.Buffer, "session ended")
	require.Empty(t, fallbackBuf.String())
}
