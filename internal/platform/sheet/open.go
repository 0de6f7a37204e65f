package sheet

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/phrazzld/scry-drill/internal/domain"
	"github.com/phrazzld/scry-drill/internal/store"
)

// Format identifies a storage backend.
type Format string

// Supported formats.
const (
	FormatCSV    Format = "csv"
	FormatXLSX   Format = "xlsx"
	FormatSQLite Format = "sqlite"
)

// DetectFormat picks the backend for path from its extension.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return FormatXLSX
	case ".db", ".sqlite", ".sqlite3":
		return FormatSQLite
	default:
		return FormatCSV
	}
}

// OpenAnswerKey returns the answer key source stored at path.
func OpenAnswerKey(path string) (store.AnswerKeySource, error) {
	if strings.TrimSpace(path) == "" {
		return nil, domain.ErrMissingAnswerSheet
	}

	switch DetectFormat(path) {
	case FormatXLSX:
		return NewXLSXSheet(path), nil
	case FormatSQLite:
		return nil, store.NewStoreError(entityAnswerKey, "open", path,
			fmt.Errorf("%w: answer keys cannot be read from sqlite", store.ErrUnsupported))
	default:
		return NewCSVSheet(path), nil
	}
}

// OpenRecords returns the grade sheet store at path.
func OpenRecords(path string, logger *slog.Logger) store.RecordStore {
	switch DetectFormat(path) {
	case FormatXLSX:
		return NewXLSXSheet(path)
	case FormatSQLite:
		return NewSQLiteStore(path, logger)
	default:
		return NewCSVSheet(path)
	}
}

// OutputPath returns where a session without a grade sheet saves its
// records: next to the answer sheet, with prefix prepended to its file name.
func OutputPath(answerSheet, prefix string) string {
	dir, base := filepath.Split(answerSheet)
	return filepath.Join(dir, prefix+base)
}
