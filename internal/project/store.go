package project

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	_ "modernc.org/sqlite"

	"github.com/mgpai22/textsync/internal/timeline"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is the current schema version. Bump this when the schema changes.
const schemaVersion = 1

// ErrSchemaMismatch indicates the database schema version doesn't match the expected version.
var ErrSchemaMismatch = errors.New("schema version mismatch")

// ErrExists is returned by Create when the project database already exists.
var ErrExists = errors.New("project already exists")

// Store is a project database opened for exclusive use.
type Store struct {
	db   *sql.DB
	path string
	lock *flock.Flock
}

var _ timeline.Host = (*Store)(nil)
var _ timeline.Renderer = (*Store)(nil)

// Open connects to an existing project. Failures wrap timeline.ErrUnavailable.
func Open(ctx context.Context, path string) (*Store, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: project %s does not exist", timeline.ErrUnavailable, path)
		}
		return nil, fmt.Errorf("%w: stat project: %v", timeline.ErrUnavailable, err)
	}

	store, err := openLocked(path)
	if err != nil {
		return nil, err
	}
	if err := store.checkSchema(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("%w: %v", timeline.ErrUnavailable, err)
	}
	return store, nil
}

// Create initializes a new project with one empty timeline.
func Create(ctx context.Context, path, name string, frameRate float64) (*Store, error) {
	if frameRate <= 0 {
		return nil, fmt.Errorf("frame rate must be positive, got %v", frameRate)
	}
	if _, err := os.Stat(path); err == nil {
		return nil, fmt.Errorf("%w: %s", ErrExists, path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create project directory: %w", err)
	}

	store, err := openLocked(path)
	if err != nil {
		return nil, err
	}
	if err := store.createSchema(ctx, name, frameRate); err != nil {
		_ = store.Close()
		_ = os.Remove(path)
		_ = os.Remove(path + ".lock")
		return nil, err
	}
	return store, nil
}

func openLocked(path string) (*Store, error) {
	lock := flock.New(path + ".lock")
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("%w: acquire project lock: %v", timeline.ErrUnavailable, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: project %s is in use by another process", timeline.ErrUnavailable, path)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		_ = lock.Unlock()
		return nil, fmt.Errorf("%w: open sqlite db: %v", timeline.ErrUnavailable, err)
	}

	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			_ = lock.Unlock()
			return nil, fmt.Errorf("%w: apply pragma %q: %v", timeline.ErrUnavailable, pragma, execErr)
		}
	}

	return &Store{db: db, path: path, lock: lock}, nil
}

// Path returns the database file backing the store.
func (s *Store) Path() string {
	return s.path
}

// Close closes the database and releases the project lock.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	err := s.db.Close()
	if unlockErr := s.lock.Unlock(); unlockErr != nil && err == nil {
		err = unlockErr
	}
	return err
}

func (s *Store) checkSchema(ctx context.Context) error {
	var tableExists int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableExists)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}
	if tableExists == 0 {
		return fmt.Errorf("%s is not a textsync project", s.path)
	}

	var version int
	err = s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version)
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version != schemaVersion {
		return fmt.Errorf("%w: database has version %d, expected %d",
			ErrSchemaMismatch, version, schemaVersion)
	}
	return nil
}

func (s *Store) createSchema(ctx context.Context, name string, frameRate float64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
		return fmt.Errorf("insert schema version: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO timeline (id, name, frame_rate) VALUES (1, ?, ?)",
		name, frameRate,
	); err != nil {
		return fmt.Errorf("insert timeline: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema tx: %w", err)
	}
	return nil
}
