package sheet

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/xuri/excelize/v2"

	"github.com/phrazzld/scry-drill/internal/domain"
	"github.com/phrazzld/scry-drill/internal/store"
)

// XLSXSheet reads the first worksheet of an Excel workbook and writes grade
// sheets as a single worksheet. Every cell is written as a string so values
// reload exactly.
type XLSXSheet struct {
	path string
}

var (
	_ store.AnswerKeySource = (*XLSXSheet)(nil)
	_ store.RecordStore     = (*XLSXSheet)(nil)
)

// NewXLSXSheet creates an XLSXSheet for the workbook at path.
func NewXLSXSheet(path string) *XLSXSheet {
	return &XLSXSheet{path: path}
}

// Path returns the location of the workbook.
func (s *XLSXSheet) Path() string {
	return s.path
}

// LoadAnswerKey implements store.AnswerKeySource.
func (s *XLSXSheet) LoadAnswerKey(ctx context.Context) (*domain.AnswerKey, error) {
	key := domain.NewAnswerKey()

	err := s.each(ctx, entityAnswerKey, domain.ErrMissingAnswerSheet, func(row []string) error {
		// GetRows drops trailing empty cells, so a blank answer arrives as a
		// one-column row.
		if len(row) == 1 {
			row = append(row, "")
		}
		return addAnswerRow(key, row)
	})
	if err != nil {
		return nil, err
	}
	return key, nil
}

// LoadRecords implements store.RecordSource.
func (s *XLSXSheet) LoadRecords(ctx context.Context) ([]*domain.Record, error) {
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

// each calls fn for every non-empty row of the first worksheet.
func (s *XLSXSheet) each(ctx context.Context, entity string, missing error, fn func(row []string) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if _, err := os.Stat(s.path); errors.Is(err, os.ErrNotExist) {
		return store.NewStoreError(entity, "load", s.path, missing)
	}

	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return store.NewStoreError(entity, "load", s.path,
			fmt.Errorf("%w: %v", domain.ErrInvalidFormat, err))
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return store.NewStoreError(entity, "load", s.path,
			fmt.Errorf("%w: workbook has no worksheets", domain.ErrInvalidFormat))
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return store.NewStoreError(entity, "load", s.path, err)
	}

	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		if err := fn(row); err != nil {
			return store.NewRowError(entity, "load", s.path, i+1, err)
		}
	}
	return nil
}

// SaveRecords implements store.RecordSink. The workbook is replaced
// atomically.
func (s *XLSXSheet) SaveRecords(ctx context.Context, records []*domain.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	sorted, err := ascending(records)
	if err != nil {
		return store.NewStoreError(entityGradeSheet, "save", s.path, err)
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)

	for i, r := range sorted {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return store.NewStoreError(entityGradeSheet, "save", s.path, err)
		}
		row := formatRecord(r)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return store.NewStoreError(entityGradeSheet, "save", s.path, err)
		}
	}

	err = writeAtomic(s.path, func(w io.Writer) error {
		_, err := f.WriteTo(w)
		return err
	})
	if err != nil {
		return store.NewStoreError(entityGradeSheet, "save", s.path, err)
	}
	return nil
}
