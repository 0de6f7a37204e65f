package sheet

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/phrazzld/scry-drill/internal/domain"
	"github.com/phrazzld/scry-drill/internal/store"
)

const (
	entityAnswerKey  = "answer key"
	entityGradeSheet = "grade sheet"
)

// CSVSheet reads and writes a comma separated file.
type CSVSheet struct {
	path string
}

var (
	_ store.AnswerKeySource = (*CSVSheet)(nil)
	_ store.RecordStore     = (*CSVSheet)(nil)
)

// NewCSVSheet creates a CSVSheet for the file at path. The file is not
// touched until it is loaded or saved.
func NewCSVSheet(path string) *CSVSheet {
	return &CSVSheet{path: path}
}

// Path returns the location of the file.
func (s *CSVSheet) Path() string {
	return s.path
}

// LoadAnswerKey implements store.AnswerKeySource.
func (s *CSVSheet) LoadAnswerKey(ctx context.Context) (*domain.AnswerKey, error) {
	key := domain.NewAnswerKey()

	err := s.each(ctx, entityAnswerKey, domain.ErrMissingAnswerSheet, func(row []string) error {
		return addAnswerRow(key, row)
	})
	if err != nil {
		return nil, err
	}
	return key, nil
}

// LoadRecords implements store.RecordSource.
func (s *CSVSheet) LoadRecords(ctx context.Context) ([]*domain.Record, error) {
	records := []*domain.Record{}

	err := s.each(ctx, entityGradeSheet, store.ErrNotFound, func(row []string) error {
		r, err := parseRecordRow(row)
		if err != nil {
			return err
		}
		records = append(records, r)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if row, err := checkUnique(records); err != nil {
		return nil, store.NewRowError(entityGradeSheet, "load", s.path, row, err)
	}
	return records, nil
}

// each calls fn for every row of the file. A missing file fails with
// missing; row errors carry the row's line number.
func (s *CSVSheet) each(ctx context.Context, entity string, missing error, fn func(row []string) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return store.NewStoreError(entity, "load", s.path, missing)
		}
		return store.NewStoreError(entity, "load", s.path, err)
	}
	defer func() { _ = f.Close() }()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	for {
		row, err := reader.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				return store.NewRowError(entity, "load", s.path, parseErr.Line,
					fmt.Errorf("%w: %v", domain.ErrInvalidFormat, parseErr.Err))
			}
			return store.NewStoreError(entity, "load", s.path, err)
		}

		if err := fn(row); err != nil {
			line, _ := reader.FieldPos(0)
			return store.NewRowError(entity, "load", s.path, line, err)
		}
	}
}

// SaveRecords implements store.RecordSink. The file is replaced atomically.
func (s *CSVSheet) SaveRecords(ctx context.Context, records []*domain.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	sorted, err := ascending(records)
	if err != nil {
		return store.NewStoreError(entityGradeSheet, "save", s.path, err)
	}

	err = writeAtomic(s.path, func(w io.Writer) error {
		writer := csv.NewWriter(w)
		for _, r := range sorted {
			if err := writer.Write(formatRecord(r)); err != nil {
				return err
			}
		}
		writer.Flush()
		return writer.Error()
	})
	if err != nil {
		return store.NewStoreError(entityGradeSheet, "save", s.path, err)
	}
	return nil
}
