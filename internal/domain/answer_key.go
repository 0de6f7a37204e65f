package domain

import "fmt"

// AnswerKey maps prompt text to the text of its correct answer.
// The first answer added for a prompt wins; later duplicates are ignored.
type AnswerKey struct {
	answers map[string]string
	order   []string
}

// NewAnswerKey creates an empty answer key.
func NewAnswerKey() *AnswerKey {
	return &AnswerKey{answers: make(map[string]string)}
}

// Add registers answer for prompt. It returns false and leaves the key
// unchanged when prompt is already present.
func (k *AnswerKey) Add(prompt, answer string) bool {
	if _, ok := k.answers[prompt]; ok {
		return false
	}
	k.answers[prompt] = answer
	k.order = append(k.order, prompt)
	return true
}

// Lookup returns the answer for prompt, or ErrMissingAnswerForPrompt.
func (k *AnswerKey) Lookup(prompt string) (string, error) {
	answer, ok := k.answers[prompt]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrMissingAnswerForPrompt, prompt)
	}
	return answer, nil
}

// Has reports whether prompt has an answer.
func (k *AnswerKey) Has(prompt string) bool {
	_, ok := k.answers[prompt]
	return ok
}

// Prompts returns the prompts in the order they were first added.
func (k *AnswerKey) Prompts() []string {
	out := make([]string, len(k.order))
	copy(out, k.order)
	return out
}

// Len returns the number of distinct prompts.
func (k *AnswerKey) Len() int {
	return len(k.order)
}
