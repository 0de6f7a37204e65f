package sheet_test

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/phrazzld/scry-drill/internal/domain"
	"github.com/phrazzld/scry-drill/internal/platform/logger"
	"github.com/phrazzld/scry-drill/internal/platform/sheet"
	"github.com/phrazzld/scry-drill/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecords() []*domain.Record {
	return []*domain.Record{
		{Prompt: "verb, to be", LastReviewed: 19783.25, CorrectCount: 4, RetentionScore: math.Exp(-0.5)},
		{Prompt: "hola", LastReviewed: 19780.000001, CorrectCount: 1, RetentionScore: 0},
		{Prompt: `quote "me"`, LastReviewed: 19790.1, CorrectCount: 12, RetentionScore: 1.0 / 3.0},
	}
}

// stores returns one record store per backend, each in its own directory.
func stores(t *testing.T) map[string]store.RecordStore {
	t.Helper()

	log, _ := logger.GetTestLogger(t)
	return map[string]store.RecordStore{
		"csv":    sheet.OpenRecords(filepath.Join(t.TempDir(), "grades.csv"), log),
		"xlsx":   sheet.OpenRecords(filepath.Join(t.TempDir(), "grades.xlsx"), log),
		"sqlite": sheet.OpenRecords(filepath.Join(t.TempDir(), "grades.db"), log),
	}
}

func TestRecordStores_RoundTrip(t *testing.T) {
	t.Parallel()

	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			require.NoError(t, s.SaveRecords(ctx, sampleRecords()))

			loaded, err := s.LoadRecords(ctx)
			require.NoError(t, err)
			require.Len(t, loaded, 3)

			// Rows come back sorted ascending by score
			assert.Equal(t, "hola", loaded[0].Prompt)
			assert.Equal(t, `quote "me"`, loaded[1].Prompt)
			assert.Equal(t, "verb, to be", loaded[2].Prompt)

			want := map[string]domain.Record{}
			for _, r := range sampleRecords() {
				want[r.Prompt] = *r
			}
			for _, r := range loaded {
				assert.Equal(t, want[r.Prompt], *r)
			}
		})
	}
}

func TestRecordStores_SaveReplaces(t *testing.T) {
	t.Parallel()

	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			require.NoError(t, s.SaveRecords(ctx, sampleRecords()))
			require.NoError(t, s.SaveRecords(ctx, sampleRecords()[:1]))

			loaded, err := s.LoadRecords(ctx)
			require.NoError(t, err)
			require.Len(t, loaded, 1)
			assert.Equal(t, "verb, to be", loaded[0].Prompt)
		})
	}
}

func TestRecordStores_NotFound(t *testing.T) {
	t.Parallel()

	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			_, err := s.LoadRecords(context.Background())
			assert.True(t, store.IsNotFoundError(err), "got %v", err)
		})
	}
}

func TestRecordStores_EmptySave(t *testing.T) {
	t.Parallel()

	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, s.SaveRecords(ctx, nil))

			loaded, err := s.LoadRecords(ctx)
			require.NoError(t, err)
			assert.NotNil(t, loaded)
			assert.Empty(t, loaded)
		})
	}
}

func TestCSVSheet_LoadAnswerKey(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	t.Run("valid", func(t *testing.T) {
		path := filepath.Join(dir, "answers.csv")
		content := "capital of France,Paris\n\n\"1, 2, 3\",counting\ncapital of France,Lyon\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		key, err := sheet.NewCSVSheet(path).LoadAnswerKey(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []string{"capital of France", "1, 2, 3"}, key.Prompts())

		answer, err := key.Lookup("capital of France")
		require.NoError(t, err)
		assert.Equal(t, "Paris", answer)
	})

	t.Run("short row", func(t *testing.T) {
		path := filepath.Join(dir, "short.csv")
		require.NoError(t, os.WriteFile(path, []byte("a,b\nlonely\n"), 0o644))

		_, err := sheet.NewCSVSheet(path).LoadAnswerKey(context.Background())
		assert.ErrorIs(t, err, domain.ErrInvalidFormat)

		var storeErr *store.StoreError
		require.True(t, errors.As(err, &storeErr))
		assert.Equal(t, 2, storeErr.Row)
	})

	t.Run("blank prompt", func(t *testing.T) {
		path := filepath.Join(dir, "blank.csv")
		require.NoError(t, os.WriteFile(path, []byte("a,b\n,orphan answer\n"), 0o644))

		_, err := sheet.NewCSVSheet(path).LoadAnswerKey(context.Background())
		assert.ErrorIs(t, err, domain.ErrInvalidFormat)

		var storeErr *store.StoreError
		require.True(t, errors.As(err, &storeErr))
		assert.Equal(t, 2, storeErr.Row)
	})

	t.Run("blank answer", func(t *testing.T) {
		path := filepath.Join(dir, "empty-answer.csv")
		require.NoError(t, os.WriteFile(path, []byte("Q1,A1\nQ2,\n"), 0o644))

		key, err := sheet.NewCSVSheet(path).LoadAnswerKey(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 2, key.Len())
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := sheet.NewCSVSheet(filepath.Join(dir, "nope.csv")).LoadAnswerKey(context.Background())
		assert.ErrorIs(t, err, domain.ErrMissingAnswerSheet)
	})
}

func TestCSVSheet_LoadRecords_Invalid(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		content string
		wantErr error
		row     int
	}{
		{"zero count", "a,1,1,0\nb,1,0,0\n", domain.ErrInvalidRecord, 2},
		{"bad number", "a,soon,1,0\n", domain.ErrInvalidRecord, 1},
		{"missing column", "a,1,1\n", domain.ErrInvalidFormat, 1},
		{"duplicate prompt", "a,1,1,0\na,2,1,0\n", domain.ErrInvalidRecord, 2},
		{"broken quoting", "\"a,1,1,0\n", domain.ErrInvalidFormat, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "grades.csv")
			require.NoError(t, os.WriteFile(path, []byte(tc.content), 0o644))

			_, err := sheet.NewCSVSheet(path).LoadRecords(context.Background())
			assert.ErrorIs(t, err, tc.wantErr)

			if tc.row > 0 {
				var storeErr *store.StoreError
				require.True(t, errors.As(err, &storeErr))
				assert.Equal(t, tc.row, storeErr.Row)
			}
		})
	}
}

func TestCSVSheet_SaveLeavesNoTempFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "grades.csv")
	require.NoError(t, sheet.NewCSVSheet(path).SaveRecords(context.Background(), sampleRecords()))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "grades.csv", entries[0].Name())
}

func TestCSVSheet_SaveFailureKeepsPreviousFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "grades.csv")
	s := sheet.NewCSVSheet(path)
	require.NoError(t, s.SaveRecords(context.Background(), sampleRecords()))

	err := s.SaveRecords(context.Background(), []*domain.Record{nil})
	assert.ErrorIs(t, err, domain.ErrInvalidRecord)

	loaded, err := s.LoadRecords(context.Background())
	require.NoError(t, err)
	assert.Len(t, loaded, 3)
}

func TestXLSXSheet_AnswerKey(t *testing.T) {
	t.Parallel()

	// A saved grade sheet is a workbook whose first two columns work as an
	// answer key as well.
	path := filepath.Join(t.TempDir(), "answers.xlsx")
	records := []*domain.Record{{Prompt: "uno", LastReviewed: 2, CorrectCount: 1}}
	require.NoError(t, sheet.NewXLSXSheet(path).SaveRecords(context.Background(), records))

	key, err := sheet.NewXLSXSheet(path).LoadAnswerKey(context.Background())
	require.NoError(t, err)

	answer, err := key.Lookup("uno")
	require.NoError(t, err)
	assert.Equal(t, "2", answer)
}

func TestXLSXSheet_AnswerKeyWithBlankAnswer(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "answers.xlsx")
	f := excelize.NewFile()
	sheetName := f.GetSheetName(0)
	require.NoError(t, f.SetCellValue(sheetName, "A1", "Q1"))
	require.NoError(t, f.SetCellValue(sheetName, "B1", "A1"))
	require.NoError(t, f.SetCellValue(sheetName, "A2", "Q2"))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	key, err := sheet.NewXLSXSheet(path).LoadAnswerKey(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Q1", "Q2"}, key.Prompts())

	answer, err := key.Lookup("Q2")
	require.NoError(t, err)
	assert.Equal(t, "", answer)
}

func TestXLSXSheet_MissingAnswerKey(t *testing.T) {
	t.Parallel()

	_, err := sheet.NewXLSXSheet(filepath.Join(t.TempDir(), "nope.xlsx")).LoadAnswerKey(context.Background())
	assert.ErrorIs(t, err, domain.ErrMissingAnswerSheet)
}

func TestXLSXSheet_NotAWorkbook(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "broken.xlsx")
	require.NoError(t, os.WriteFile(path, []byte("not a zip"), 0o644))

	_, err := sheet.NewXLSXSheet(path).LoadRecords(context.Background())
	assert.ErrorIs(t, err, domain.ErrInvalidFormat)
}

func TestSQLiteStore_LoadDoesNotCreateFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "grades.db")
	_, err := sheet.NewSQLiteStore(path, nil).LoadRecords(context.Background())
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, statErr := os.Stat(path)
	assert.True(t, errors.Is(statErr, os.ErrNotExist))
}

func TestSQLiteStore_MigrationsLogged(t *testing.T) {
	t.Parallel()

	log, buf := logger.GetTestLogger(t)
	path := filepath.Join(t.TempDir(), "grades.db")
	require.NoError(t, sheet.NewSQLiteStore(path, log).SaveRecords(context.Background(), sampleRecords()))

	entries, err := buf.GetLogEntries()
	require.NoError(t, err)
	assert.NotEmpty(t, entries)
}

func TestSQLiteStore_LoadIsReadOnly(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "grades.db")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	loaded, err := sheet.NewSQLiteStore(path, nil).LoadRecords(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, loaded)
	assert.Empty(t, loaded)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Zero(t, info.Size(), "loading must not migrate the database")
}
