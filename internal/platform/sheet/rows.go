package sheet

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/phrazzld/scry-drill/internal/domain"
)

const (
	answerColumns = 2
	recordColumns = 4
)

// addAnswerRow adds a prompt/answer row to key. Columns after the second are
// ignored. The answer may be empty; the prompt may not.
func addAnswerRow(key *domain.AnswerKey, row []string) error {
	if len(row) < answerColumns {
		return fmt.Errorf("%w: got %d columns, want prompt and answer",
			domain.ErrInvalidFormat, len(row))
	}
	if strings.TrimSpace(row[0]) == "" {
		return fmt.Errorf("%w: prompt is empty", domain.ErrInvalidFormat)
	}
	key.Add(row[0], row[1])
	return nil
}

// parseRecordRow turns a grade sheet row into a validated record.
func parseRecordRow(row []string) (*domain.Record, error) {
	if len(row) < recordColumns {
		return nil, fmt.Errorf("%w: got %d columns, want %d",
			domain.ErrInvalidFormat, len(row), recordColumns)
	}

	last, err := strconv.ParseFloat(row[1], 64)
	if err != nil {
		return nil, fmt.Errorf("%w: last reviewed %q is not a number",
			domain.ErrInvalidRecord, row[1])
	}

	count, err := parseCount(row[2])
	if err != nil {
		return nil, fmt.Errorf("%w: correct count %q is not an integer",
			domain.ErrInvalidRecord, row[2])
	}

	score, err := strconv.ParseFloat(row[3], 64)
	if err != nil {
		return nil, fmt.Errorf("%w: retention score %q is not a number",
			domain.ErrInvalidRecord, row[3])
	}

	r := &domain.Record{
		Prompt:         row[0],
		LastReviewed:   domain.Days(last),
		CorrectCount:   count,
		RetentionScore: score,
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

// parseCount accepts integers, including ones written as "3.0" by older
// sheets.
func parseCount(s string) (int, error) {
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != float64(int(f)) {
		return 0, fmt.Errorf("invalid integer %q", s)
	}
	return int(f), nil
}

// formatRecord renders r with the shortest representation that parses back
// to the same values.
func formatRecord(r *domain.Record) []string {
	return []string{
		r.Prompt,
		strconv.FormatFloat(float64(r.LastReviewed), 'f', -1, 64),
		strconv.Itoa(r.CorrectCount),
		strconv.FormatFloat(r.RetentionScore, 'f', -1, 64),
	}
}

// ascending returns a copy of records sorted by retention score, ties broken
// by prompt.
func ascending(records []*domain.Record) ([]*domain.Record, error) {
	out := make([]*domain.Record, 0, len(records))
	for _, r := range records {
		if r == nil {
			return nil, fmt.Errorf("%w: nil record", domain.ErrInvalidRecord)
		}
		out = append(out, r)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].RetentionScore != out[j].RetentionScore {
			return out[i].RetentionScore < out[j].RetentionScore
		}
		return out[i].Prompt < out[j].Prompt
	})
	return out, nil
}

// checkUnique returns the 1-based index of the first record repeating an
// earlier prompt, or 0.
func checkUnique(records []*domain.Record) (int, error) {
	seen := make(map[string]struct{}, len(records))
	for i, r := range records {
		if _, dup := seen[r.Prompt]; dup {
			return i + 1, fmt.Errorf("%w: duplicate prompt %q", domain.ErrInvalidRecord, r.Prompt)
		}
		seen[r.Prompt] = struct{}{}
	}
	return 0, nil
}
