package srs

import (
	"fmt"
	"math"

	"github.com/phrazzld/scry-drill/internal/domain"
)

// computeScore calculates the retention score of a record at time now.
//
// The score follows an Ebbinghaus-style forgetting curve:
//
//	score = exp(-(elapsed / correctCount))
//
// where elapsed is the number of days since the record was last reviewed.
// Every correct answer stretches the curve, so well-known prompts decay more
// slowly than new or frequently missed ones.
//
// Algorithm behavior:
//   - The result lies in (0, 1] and is exactly 1 only when elapsed is 0
//   - The score strictly decreases as elapsed grows
//   - For elapsed > 0 the score strictly increases with correctCount
//   - A record reviewed after now (clock skew between sessions) has its
//     elapsed time clamped to 0
//   - Past roughly 745 effective days (elapsed / correctCount) math.Exp
//     underflows; the score then saturates at math.SmallestNonzeroFloat64,
//     so it never reaches 0 and such records tie with each other
//
// Returns an error wrapping domain.ErrInvalidRecord when correctCount is not
// positive, so the division never faults.
func computeScore(record *domain.Record, now domain.Days) (float64, error) {
	if record.CorrectCount <= 0 {
		return 0, fmt.Errorf("%w: correct count must be at least 1, got %d (prompt %q)",
			domain.ErrInvalidRecord, record.CorrectCount, record.Prompt)
	}

	elapsed := record.LastReviewed.Since(now)
	if elapsed < 0 {
		elapsed = 0
	}

	score := math.Exp(-(elapsed / float64(record.CorrectCount)))
	if score == 0 {
		score = math.SmallestNonzeroFloat64
	}
	return score, nil
}

// applyGrade returns a copy of record updated for the given answer.
//
// A correct answer increments CorrectCount by exactly one. LastReviewed is
// stamped with now regardless of the outcome. RetentionScore keeps its
// pre-grading value until the next ranking pass.
func applyGrade(record *domain.Record, wasCorrect bool, now domain.Days) *domain.Record {
	graded := record.Clone()

	if wasCorrect {
		graded.CorrectCount++
	}

	graded.LastReviewed = now

	return graded
}
