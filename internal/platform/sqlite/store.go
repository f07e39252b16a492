// Package sqlite implements store.StateStore on a local SQLite file.
// A single app_state table holds one JSON-encoded value per record key,
// which is the Go-side equivalent of the browser's local storage: local
// to the device, survives restarts, no server round trips.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/COOKiEMONstaur/cbcn-study-quiz/internal/domain"
	"github.com/COOKiEMONstaur/cbcn-study-quiz/internal/store"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// Verify interface compliance at compile time
var _ store.StateStore = (*Store)(nil)

// Store is the SQLite-backed state store.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open opens (or creates) the SQLite file at path and brings its schema
// up to date with the embedded goose migrations.
func Open(path string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("component", "sqlite_store"))

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	// modernc sqlite allows one writer; the service serializes access
	// anyway, so a single connection keeps things simple.
	db.SetMaxOpenConns(1)

	if err := migrate(db, logger); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db, logger: logger}, nil
}

func migrate(db *sql.DB, logger *slog.Logger) error {
	goose.SetBaseFS(embedMigrations)
	goose.SetLogger(&slogGooseLogger{logger: logger})

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}

	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// get decodes the JSON value stored under key into out. It returns false
// (and no error) when the key is absent or the stored value is corrupt,
// so callers fall back to their default.
func (s *Store) get(ctx context.Context, key string, out interface{}) bool {
	var raw string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM app_state WHERE key = ?`, key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return false
	}
	if err != nil {
		s.logger.Warn("state read failed, using default",
			slog.String("key", key),
			slog.String("error", err.Error()))
		return false
	}

	if err := json.Unmarshal([]byte(raw), out); err != nil {
		s.logger.Warn("corrupt state record, using default",
			slog.String("key", key),
			slog.String("error", err.Error()))
		return false
	}

	return true
}

// set JSON-encodes v and upserts it under key.
func (s *Store) set(ctx context.Context, key string, v interface{}) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode state record %q: %w", key, err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO app_state (key, value) VALUES (?, ?)
		 ON CONFLICT (key) DO UPDATE SET value = excluded.value`,
		key, string(raw))
	if err != nil {
		return fmt.Errorf("failed to write state record %q: %w", key, err)
	}

	return nil
}

// Settings implements store.StateStore.
func (s *Store) Settings(ctx context.Context) domain.Settings {
	settings := domain.DefaultSettings()
	if !s.get(ctx, store.KeySettings, &settings) {
		return domain.DefaultSettings()
	}
	return settings
}

// SaveSettings implements store.StateStore.
func (s *Store) SaveSettings(ctx context.Context, settings domain.Settings) error {
	return s.set(ctx, store.KeySettings, settings)
}

// History implements store.StateStore.
func (s *Store) History(ctx context.Context) []domain.AnswerRecord {
	var history []domain.AnswerRecord
	if !s.get(ctx, store.KeyHistory, &history) {
		return []domain.AnswerRecord{}
	}
	return history
}

// AppendHistory implements store.StateStore. The read-modify-write runs
// in a transaction; this process is the only writer, the transaction just
// keeps a crash from half-writing the log.
func (s *Store) AppendHistory(ctx context.Context, rec domain.AnswerRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin history append: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var history []domain.AnswerRecord
	var raw string
	err = tx.QueryRowContext(ctx,
		`SELECT value FROM app_state WHERE key = ?`, store.KeyHistory).Scan(&raw)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		// first record
	case err != nil:
		return fmt.Errorf("failed to read history: %w", err)
	default:
		if err := json.Unmarshal([]byte(raw), &history); err != nil {
			// Corrupt log: start over rather than refuse all future appends.
			s.logger.Warn("corrupt history record, restarting log",
				slog.String("error", err.Error()))
			history = nil
		}
	}

	history = append(history, rec)
	encoded, err := json.Marshal(history)
	if err != nil {
		return fmt.Errorf("failed to encode history: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO app_state (key, value) VALUES (?, ?)
		 ON CONFLICT (key) DO UPDATE SET value = excluded.value`,
		store.KeyHistory, string(encoded)); err != nil {
		return fmt.Errorf("failed to write history: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit history append: %w", err)
	}
	return nil
}

// ClearHistory implements store.StateStore.
func (s *Store) ClearHistory(ctx context.Context) error {
	return s.set(ctx, store.KeyHistory, []domain.AnswerRecord{})
}

// Bookmarks implements store.StateStore.
func (s *Store) Bookmarks(ctx context.Context) []string {
	var ids []string
	if !s.get(ctx, store.KeyBookmarks, &ids) {
		return []string{}
	}
	return ids
}

// SaveBookmarks implements store.StateStore.
func (s *Store) SaveBookmarks(ctx context.Context, ids []string) error {
	return s.set(ctx, store.KeyBookmarks, ids)
}

// ActivePacks implements store.StateStore.
func (s *Store) ActivePacks(ctx context.Context) []string {
	var ids []string
	if !s.get(ctx, store.KeyActivePacks, &ids) {
		return nil
	}
	return ids
}

// SaveActivePacks implements store.StateStore.
func (s *Store) SaveActivePacks(ctx context.Context, ids []string) error {
	return s.set(ctx, store.KeyActivePacks, ids)
}
