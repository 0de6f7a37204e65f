package domain

import (
	"fmt"
	"strings"
)

// Record holds the scheduling state of a single prompt.
//
// RetentionScore is derived data: it is recomputed from LastReviewed and
// CorrectCount on every ranking pass and is never trusted on its own. A fresh
// record carries a score of 0 until it is ranked for the first time.
type Record struct {
	Prompt         string  `json:"prompt"`
	LastReviewed   Days    `json:"last_reviewed"`
	CorrectCount   int     `json:"correct_count"` // never below 1, used as a denominator
	RetentionScore float64 `json:"retention_score"`
}

// NewRecord creates a record for a prompt that has never been drilled.
func NewRecord(prompt string, now Days) (*Record, error) {
	r := &Record{
		Prompt:         prompt,
		LastReviewed:   now,
		CorrectCount:   1,
		RetentionScore: 0.0,
	}

	if err := r.Validate(); err != nil {
		return nil, err
	}

	return r, nil
}

// Validate checks if the Record has valid data.
// Returns an error wrapping ErrInvalidRecord if any field fails validation.
func (r *Record) Validate() error {
	if strings.TrimSpace(r.Prompt) == "" {
		return fmt.Errorf("%w: prompt cannot be empty", ErrInvalidRecord)
	}

	if r.CorrectCount <= 0 {
		return fmt.Errorf("%w: correct count must be at least 1, got %d", ErrInvalidRecord, r.CorrectCount)
	}

	if !r.LastReviewed.IsFinite() {
		return fmt.Errorf("%w: last reviewed must be a finite number of days", ErrInvalidRecord)
	}

	return nil
}

// Clone returns a copy of the record.
func (r *Record) Clone() *Record {
	c := *r
	return &c
}
