package sheet

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"sync"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3" // sqlite3 driver
	"github.com/pressly/goose/v3"

	"github.com/phrazzld/scry-drill/internal/domain"
	"github.com/phrazzld/scry-drill/internal/store"
)

// MigrationTableName is the table goose records applied migrations in.
const MigrationTableName = "schema_migrations"

//go:embed migrations/*.sql
var migrationsFS embed.FS

// goose keeps its configuration in package globals.
var migrateMu sync.Mutex

// SQLiteStore keeps grade sheets in a sqlite database. It stores records
// only; answer keys stay in CSV or Excel files.
type SQLiteStore struct {
	path   string
	logger *slog.Logger
}

var _ store.RecordStore = (*SQLiteStore)(nil)

// recordRow is the database representation of a domain.Record.
type recordRow struct {
	Prompt         string  `db:"prompt"`
	LastReviewed   float64 `db:"last_reviewed"`
	CorrectCount   int     `db:"correct_count"`
	RetentionScore float64 `db:"retention_score"`
}

// NewSQLiteStore creates a SQLiteStore for the database file at path.
func NewSQLiteStore(path string, logger *slog.Logger) *SQLiteStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &SQLiteStore{
		path:   path,
		logger: logger.With(slog.String("component", "sqlite_store")),
	}
}

// Path returns the location of the database file.
func (s *SQLiteStore) Path() string {
	return s.path
}

// LoadRecords implements store.RecordSource. The database is opened
// read-only and never migrated: a file that does not exist yields
// store.ErrNotFound and one without a records table holds no records.
func (s *SQLiteStore) LoadRecords(ctx context.Context) ([]*domain.Record, error) {
	if _, err := os.Stat(s.path); errors.Is(err, os.ErrNotExist) {
		return nil, store.NewStoreError(entityGradeSheet, "load", s.path, store.ErrNotFound)
	}

	db, err := sqlx.Open("sqlite3", readOnlyDSN(s.path))
	if err != nil {
		return nil, store.NewStoreError(entityGradeSheet, "load", s.path, err)
	}
	defer func() { _ = db.Close() }()

	var tables int
	err = db.GetContext(ctx, &tables,
		`SELECT count(*) FROM sqlite_master WHERE type = 'table' AND name = 'records'`)
	if err != nil {
		return nil, store.NewStoreError(entityGradeSheet, "load", s.path, err)
	}
	if tables == 0 {
		s.logger.Debug("database has no records table yet")
		return []*domain.Record{}, nil
	}

	var rows []recordRow
	err = db.SelectContext(ctx, &rows, `
		SELECT prompt, last_reviewed, correct_count, retention_score
		FROM records
		ORDER BY retention_score, prompt`)
	if err != nil {
		return nil, store.NewStoreError(entityGradeSheet, "load", s.path, err)
	}

	records := make([]*domain.Record, 0, len(rows))
	for i, row := range rows {
		r := &domain.Record{
			Prompt:         row.Prompt,
			LastReviewed:   domain.Days(row.LastReviewed),
			CorrectCount:   row.CorrectCount,
			RetentionScore: row.RetentionScore,
		}
		if err := r.Validate(); err != nil {
			return nil, store.NewRowError(entityGradeSheet, "load", s.path, i+1, err)
		}
		records = append(records, r)
	}

	s.logger.Debug("loaded records", slog.Int("count", len(records)))
	return records, nil
}

// SaveRecords implements store.RecordSink. The stored records are replaced
// in a single transaction.
func (s *SQLiteStore) SaveRecords(ctx context.Context, records []*domain.Record) error {
	sorted, err := ascending(records)
	if err != nil {
		return store.NewStoreError(entityGradeSheet, "save", s.path, err)
	}

	db, err := s.open(ctx)
	if err != nil {
		return store.NewStoreError(entityGradeSheet, "save", s.path, err)
	}
	defer func() { _ = db.Close() }()

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return store.NewStoreError(entityGradeSheet, "save", s.path, err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM records`); err != nil {
		return store.NewStoreError(entityGradeSheet, "save", s.path, err)
	}

	for _, r := range sorted {
		_, err := tx.NamedExecContext(ctx, `
			INSERT INTO records (prompt, last_reviewed, correct_count, retention_score)
			VALUES (:prompt, :last_reviewed, :correct_count, :retention_score)`,
			recordRow{
				Prompt:         r.Prompt,
				LastReviewed:   float64(r.LastReviewed),
				CorrectCount:   r.CorrectCount,
				RetentionScore: r.RetentionScore,
			})
		if err != nil {
			return store.NewStoreError(entityGradeSheet, "save", s.path,
				fmt.Errorf("insert %q: %w", r.Prompt, err))
		}
	}

	if err := tx.Commit(); err != nil {
		return store.NewStoreError(entityGradeSheet, "save", s.path, err)
	}

	s.logger.Debug("saved records", slog.Int("count", len(sorted)))
	return nil
}

// readOnlyDSN builds a go-sqlite3 URI that opens path without write access.
func readOnlyDSN(path string) string {
	u := url.URL{Scheme: "file", Opaque: path, RawQuery: "mode=ro"}
	return u.String()
}

// open connects to the database for writing and applies pending migrations.
func (s *SQLiteStore) open(ctx context.Context) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite3", s.path)
	if err != nil {
		return nil, err
	}

	if err := s.migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func (s *SQLiteStore) migrate(ctx context.Context, db *sqlx.DB) error {
	migrateMu.Lock()
	defer migrateMu.Unlock()

	goose.SetBaseFS(migrationsFS)
	goose.SetLogger(&slogGooseLogger{logger: s.logger})
	goose.SetTableName(MigrationTableName)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}

	if err := goose.UpContext(ctx, db.DB, "migrations"); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

// slogGooseLogger adapts the goose logger interface to use slog
type slogGooseLogger struct {
	logger *slog.Logger
}

// Printf implements the goose.Logger Printf method by forwarding messages to
// slog at debug level
func (l *slogGooseLogger) Printf(format string, v ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, v...))
}

// Fatalf implements the goose.Logger Fatalf method. It does NOT call os.Exit;
// the error is returned from the migration call instead.
func (l *slogGooseLogger) Fatalf(format string, v ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, v...))
}
