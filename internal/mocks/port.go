package mocks

import (
	"context"
	"io"
	"sync"
)

// MockPort implements drill.Port for testing.
//
// Without function overrides it plays back Continues and Corrects in order
// and returns io.EOF once a script runs out, the way a closed terminal would.
type MockPort struct {
	// Custom behavior functions
	AskContinueFn   func(ctx context.Context) (bool, error)
	PresentPromptFn func(ctx context.Context, prompt string) error
	RevealAnswerFn  func(ctx context.Context, answer string) error
	AskCorrectFn    func(ctx context.Context) (bool, error)

	// Scripted answers
	Continues []bool
	Corrects  []bool

	mu        sync.Mutex
	presented []string
	revealed  []string
	asked     int
	graded    int
}

// AskContinue implements the Port.AskContinue method
func (m *MockPort) AskContinue(ctx context.Context) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.asked++
	if m.AskContinueFn != nil {
		return m.AskContinueFn(ctx)
	}
	if m.asked > len(m.Continues) {
		return false, io.EOF
	}
	return m.Continues[m.asked-1], nil
}

// PresentPrompt implements the Port.PresentPrompt method
func (m *MockPort) PresentPrompt(ctx context.Context, prompt string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.presented = append(m.presented, prompt)
	if m.PresentPromptFn != nil {
		return m.PresentPromptFn(ctx, prompt)
	}
	return nil
}

// RevealAnswer implements the Port.RevealAnswer method
func (m *MockPort) RevealAnswer(ctx context.Context, answer string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.revealed = append(m.revealed, answer)
	if m.RevealAnswerFn != nil {
		return m.RevealAnswerFn(ctx, answer)
	}
	return nil
}

// AskCorrect implements the Port.AskCorrect method
func (m *MockPort) AskCorrect(ctx context.Context) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.graded++
	if m.AskCorrectFn != nil {
		return m.AskCorrectFn(ctx)
	}
	if m.graded > len(m.Corrects) {
		return false, io.EOF
	}
	return m.Corrects[m.graded-1], nil
}

// Presented returns the prompts shown so far, in order.
func (m *MockPort) Presented() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.presented...)
}

// Revealed returns the answers shown so far, in order.
func (m *MockPort) Revealed() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.revealed...)
}

// ContinueCalls returns how many times AskContinue was called.
func (m *MockPort) ContinueCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.asked
}
