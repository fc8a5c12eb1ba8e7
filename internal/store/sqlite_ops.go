// sqlite_ops.go provides SQLite connection management and low-level operations.
//
// Separated to isolate SQLite-specific concerns (pragmas, connection pooling,
// driver registration) from business logic. This is the only file that imports
// the SQLite driver, making it easier to swap implementations if needed.
//
// Design: WAL mode with busy timeout balances concurrency and durability.
// WAL allows concurrent readers during writes (critical for MCP scenarios).
// The 5-second busy timeout prevents "database is locked" errors without
// waiting forever on stuck connections.

package store

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/base32"
	"errors"
	"fmt"
	"strings"

	// Register sqlite driver
	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store using SQLite with WAL mode for concurrent
// access. It provides versioned storage of named TDF entries.
type SQLiteStore struct {
	db *sql.DB
}

// Compile-time interface compliance check. If a method is missing or has the
// wrong signature, the build fails immediately rather than at runtime.
var _ Store = (*SQLiteStore)(nil)

// Open opens the SQLite database file at `path` and returns a configured
// SQLiteStore. The caller should call Close on the returned store.
//
// The pragma configuration balances durability, performance, and concurrency
// for tdf's usage pattern (frequent small writes, read-heavy lookups).
func Open(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}

	// WAL mode: allows concurrent readers while writing. Without this, readers
	// block writers and vice versa. Critical for MCP server scenarios where
	// an LLM might read while the user writes. Trade-off: creates -wal and
	// -shm files alongside the database.
	if _, err := db.Exec(`PRAGMA journal_mode=WAL`); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting WAL mode: %w", err)
	}

	// Busy timeout: how long to wait when another connection holds a lock.
	// 5 seconds is generous - most operations complete in milliseconds.
	if _, err := db.Exec(`PRAGMA busy_timeout=5000`); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}

	// Synchronous NORMAL: with WAL mode, NORMAL is safe against corruption.
	// FULL would fsync on every commit, which is ~10x slower. The only risk
	// with NORMAL is losing the last transaction on OS crash - acceptable for
	// a registry where users can re-run the command.
	if _, err := db.Exec(`PRAGMA synchronous=NORMAL`); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting synchronous mode: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Init creates tables and indexes if they don't exist. Safe to call multiple
// times; uses IF NOT EXISTS to avoid errors on existing databases.
func (s *SQLiteStore) Init() error {
	return execSchema(s.db)
}

// Close releases the database connection. Call before program exit to ensure
// all pending writes are flushed.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// DB exposes the underlying connection for callers that need custom queries.
func (s *SQLiteStore) DB() *sql.DB {
	return s.db
}

// scanner abstracts sql.Row and sql.Rows, enabling a single scan function
// to handle both single-row and multi-row queries.
type scanner interface {
	Scan(dest ...any) error
}

// scanOne extracts an Entry from a database row, handling nullable fields.
func scanOne(sc scanner) (Entry, error) {
	var e Entry
	var msg sql.NullString
	var del sql.NullInt64

	err := sc.Scan(&e.ID, &e.Key, &e.Name, &e.Value, &e.Version, &e.Author, &msg, &e.CreatedAt, &del)
	if err != nil {
		return e, err
	}

	if msg.Valid {
		e.Message = msg.String
	}
	if del.Valid {
		e.DeletedAt = &del.Int64
	}
	return e, nil
}

// scanEntry converts sql.ErrNoRows to ErrNotFound for consistent error handling.
func (s *SQLiteStore) scanEntry(row *sql.Row) (*Entry, error) {
	e, err := scanOne(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan entry: %w", err)
	}
	return &e, nil
}

// scanEntries iterates over query results, collecting entries into a slice.
func (s *SQLiteStore) scanEntries(rows *sql.Rows) ([]Entry, error) {
	var entries []Entry
	for rows.Next() {
		e, err := scanOne(rows)
		if err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Tx executes fn within a database transaction, handling Begin/Commit/Rollback
// automatically. If fn returns an error the transaction is rolled back,
// otherwise it is committed. Rollback is deferred to handle panics and early
// returns; it is a no-op after commit.
//
// Context cancellation will abort the transaction at the next database call.
func (s *SQLiteStore) Tx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }() // no-op after commit

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// genID creates a unique 8-character identifier using crypto/rand.
// Used for entry keys to enable stable references that survive renames.
func genID() (string, error) {
	b := make([]byte, 5) // 5 bytes = 8 base32 chars
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate id: %w", err)
	}
	return strings.ToLower(base32.StdEncoding.EncodeToString(b)), nil
}
