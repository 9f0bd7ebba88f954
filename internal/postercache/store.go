// Package postercache persists poster lookups in SQLite so they survive
// restarts.
//
// Store implements poster.Cache. Misses are stored as empty URLs just like the
// in-memory cache. Write failures are logged and otherwise ignored: the cache
// is an optimization, never a reason to fail a lookup.
package postercache

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"movierec/internal/logging"
	"movierec/internal/poster"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is bumped whenever schema.sql changes incompatibly.
const schemaVersion = 1

// ErrSchemaMismatch indicates the database was created by a different schema version.
var ErrSchemaMismatch = errors.New("schema version mismatch")

// Store is a SQLite backed poster cache.
type Store struct {
	db     *sql.DB
	path   string
	logger *slog.Logger
}

var _ poster.Cache = (*Store)(nil)

// Open creates or opens the cache database at path.
func Open(path string, logger *slog.Logger) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("poster cache path required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create poster cache directory: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path, logger: logging.NewComponentLogger(logger, "postercache")}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database location.
func (s *Store) Path() string { return s.path }

// Get returns the cached URL for title.
func (s *Store) Get(title string) (string, bool) {
	var url string
	err := s.db.QueryRow("SELECT url FROM posters WHERE title = ?", title).Scan(&url)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false
	}
	if err != nil {
		s.logger.Debug("poster cache read failed", logging.String(logging.FieldQuery, title), logging.Error(err))
		return "", false
	}
	return url, true
}

// Set stores url for title, replacing any previous entry.
func (s *Store) Set(title, url string) {
	_, err := s.db.Exec(
		`INSERT INTO posters (title, url, cached_at) VALUES (?, ?, ?)
         ON CONFLICT(title) DO UPDATE SET url = excluded.url, cached_at = excluded.cached_at`,
		title, url, time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		logging.WarnWithContext(s.logger, "poster cache write failed", "poster_cache_write_failed",
			logging.String(logging.FieldQuery, title),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check permissions on "+s.path),
			logging.String(logging.FieldImpact, "poster will be fetched again next session"))
	}
}

// Clear removes every cached entry and returns how many were removed.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM posters")
	if err != nil {
		return 0, fmt.Errorf("clear posters: %w", err)
	}
	return res.RowsAffected()
}

// Stats summarizes cache contents.
type Stats struct {
	Entries int64
	Misses  int64
}

// Stats counts cached entries and cached misses.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	var stats Stats
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1), COALESCE(SUM(CASE WHEN url = '' THEN 1 ELSE 0 END), 0) FROM posters",
	).Scan(&stats.Entries, &stats.Misses)
	if err != nil {
		return Stats{}, fmt.Errorf("count posters: %w", err)
	}
	return stats, nil
}

func (s *Store) initSchema(ctx context.Context) error {
	var tableExists int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableExists)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}
	if tableExists == 0 {
		return s.createSchema(ctx)
	}

	var version int
	if err := s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version != schemaVersion {
		return fmt.Errorf("%w: database has version %d, expected %d (run 'movierec posters clear --reset' or delete %s)",
			ErrSchemaMismatch, version, schemaVersion, s.path)
	}
	return nil
}

func (s *Store) createSchema(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
		return fmt.Errorf("record schema version: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema: %w", err)
	}
	return nil
}
