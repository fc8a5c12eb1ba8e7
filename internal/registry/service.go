// Package registry provides higher-level operations over named TDF entries
// backed by a Store implementation. It exposes a Service which wraps a
// store.SQLiteStore and offers convenience methods for reading, writing and
// mutating entries, including tag-level edits that round-trip through the
// codec.
package registry

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"

	"github.com/jpl-au/tdf/internal/config"
	"github.com/jpl-au/tdf/internal/log"
	"github.com/jpl-au/tdf/internal/name"
	"github.com/jpl-au/tdf/internal/repo"
	"github.com/jpl-au/tdf/internal/service"
	"github.com/jpl-au/tdf/internal/store"
)

const DefaultAuthor = "unknown"

// Service provides higher-level entry operations backed by a Store.
type Service struct {
	store    *store.SQLiteStore
	dbPath   string
	dir      string
	maxName  int
	maxValue int64
}

// Compile-time check that the registry satisfies the shared interface.
var _ service.Service = (*Service)(nil)

// New creates a new Service, discovering the DB by walking up the directory
// tree. The db parameter specifies which database to use (empty for default).
// Returns repo.ErrNotInitialised if no matching database is found.
func New(db string) (*Service, error) {
	dbPath, err := repo.Discover(db)
	if err != nil {
		return nil, err
	}

	s, err := store.Open(dbPath)
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, err // config.Load provides detailed, actionable error messages
	}

	return &Service{
		store:    s,
		dbPath:   dbPath,
		dir:      filepath.Dir(dbPath),
		maxName:  cfg.MaxName(),
		maxValue: int64(cfg.MaxValue()),
	}, nil
}

// Init initialises a new tdf repository.
// If dir is empty, uses current directory; otherwise uses dir.
// The db parameter specifies which database to create (empty for default).
// If local is true, the database is added to .gitignore (not committed).
//
// Note: Init does not write config. Config is managed separately via "tdf config".
func Init(force bool, db string, local bool, dir string) error {
	return repo.Init(force, db, local, dir)
}

// Close checkpoints the WAL and closes the database connection.
func (s *Service) Close() error {
	if err := s.store.Checkpoint(context.Background()); err != nil {
		log.Event("registry:close", "checkpoint").
			Detail("error", err.Error()).
			Write(err)
	}
	return s.store.Close()
}

// ReloadConfig reloads configuration from disk and updates cached values.
// Call this after modifying config to ensure the service uses new settings.
func (s *Service) ReloadConfig() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	s.maxName = cfg.MaxName()
	s.maxValue = int64(cfg.MaxValue())
	return nil
}

// normalizeName normalises an entry name for consistent storage and lookup.
// This is the service-layer entry point; the store layer independently
// validates names for defence-in-depth.
func (s *Service) normalizeName(n string) (string, error) {
	return name.Normalise(n)
}

// normalizePrefix normalises an optional prefix. Empty prefixes are passed
// through unchanged to enable "list all" operations.
func (s *Service) normalizePrefix(prefix string) (string, error) {
	if prefix == "" {
		return "", nil
	}
	return name.Normalise(prefix)
}

// DB returns the underlying database connection.
func (s *Service) DB() *sql.DB {
	return s.store.DB()
}

// DBPath returns the path to the database file.
func (s *Service) DBPath() string {
	return s.dbPath
}

// Dir returns the path to the .tdf directory.
func (s *Service) Dir() string {
	return s.dir
}

// Tx runs a function within a database transaction.
//
// The defer Rollback pattern: we always defer Rollback(), then call Commit()
// at the end. This is safe because Rollback() on a committed transaction is
// a no-op. The pattern guarantees cleanup in all cases:
//   - fn() returns error -> Rollback() runs, undoing partial changes
//   - fn() panics -> Rollback() runs via defer
//   - Commit() fails -> Rollback() runs (already committed portions are safe)
//   - Commit() succeeds -> Rollback() is a no-op
func (s *Service) Tx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.store.DB().BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }() // no-op after commit

	if err := fn(tx); err != nil {
		return fmt.Errorf("transaction rolled back: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
