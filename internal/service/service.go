// Package service defines the shared interface for registry operations.
// Commands and the MCP server depend on this interface rather than concrete
// implementations, enabling testing with mocks and future backend changes.
package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/jpl-au/tdf/internal/diff"
	"github.com/jpl-au/tdf/internal/store"
	"github.com/jpl-au/tdf/internal/tdf"
)

// Service defines all registry operations over named TDF entries.
//
// Use registry.New() to obtain a Service implementation.
// Always call Close() when done (use defer).
//
// Example:
//
//	svc, err := registry.New("")
//	if err != nil {
//	    return err
//	}
//	defer svc.Close()
//	entry, err := svc.Latest(ctx, "drop/avatar", false)
type Service interface {
	// Close releases database resources. Always defer this after New().
	Close() error

	// Latest returns the most recent version of an entry.
	// If includeDeleted is false, returns store.ErrNotFound for deleted entries.
	Latest(ctx context.Context, name string, includeDeleted bool) (*store.Entry, error)

	// Version returns a specific version of an entry.
	// Returns store.ErrNotFound if the version doesn't exist.
	Version(ctx context.Context, name string, version int) (*store.Entry, error)

	// ByKey retrieves an entry by its unique 8-char key.
	// Returns store.ErrNotFound if no entry exists with that key.
	ByKey(ctx context.Context, key string) (*store.Entry, error)

	// Resolve returns an entry by name or key. Designed for user-facing entry
	// points where input could be either identifier type.
	//
	// For 8-character inputs, it checks both name and key concurrently since
	// SQLite WAL mode supports parallel reads. Non-8-character inputs are
	// treated as names only since keys are always exactly 8 characters.
	//
	// Semantic difference from Latest: if input resolves as a key, you get
	// that specific version, which may not be the latest. If it resolves as
	// a name, you get the latest version. A key is a precise reference to a
	// specific version; a name means "the current value".
	Resolve(ctx context.Context, nameOrKey string, includeDeleted bool) (*store.Entry, error)

	// Value returns the latest version of an entry decoded into a Value
	// container, ready for tag queries and mutation.
	Value(ctx context.Context, name string, includeDeleted bool) (*tdf.Value, error)

	// List returns entries matching a name prefix.
	// Use "" for all entries. Set deletedOnly to list only deleted entries.
	List(ctx context.Context, prefix string, includeDeleted, deletedOnly bool) ([]store.Entry, error)

	// ListByTag returns entries matching a name prefix whose value carries
	// the given tag. A plain tag matches exactly; a tag with a trailing ':'
	// matches any dynamic tag with that prefix.
	ListByTag(ctx context.Context, prefix, tag string, includeDeleted, deletedOnly bool) ([]store.Entry, error)

	// Write creates a new version of an entry.
	// If the entry doesn't exist, creates it at version 1.
	Write(ctx context.Context, name, value, author, message string) error

	// Delete soft-deletes an entry (can be restored).
	// Returns store.ErrNotFound if the entry doesn't exist.
	Delete(ctx context.Context, name string) error

	// Restore un-deletes a soft-deleted entry.
	// Returns store.ErrNotFound if the entry doesn't exist or isn't deleted.
	Restore(ctx context.Context, name string) error

	// Rename renames an entry, preserving all version history.
	// Returns store.ErrAlreadyExists if destination exists.
	Rename(ctx context.Context, from, to string) error

	// AddTag appends a tag to an entry's value and writes a new version.
	AddTag(ctx context.Context, name, tag, author string) (*store.Entry, error)

	// RemoveTag removes a tag from an entry's value and writes a new version.
	// A plain tag removes the exact tag; a tag with a trailing ':' removes
	// one dynamic tag with that prefix.
	RemoveTag(ctx context.Context, name, tag, author string) (*store.Entry, error)

	// UpdateDynamicTag replaces all dynamic tags sharing the new tag's prefix
	// and writes a new version. The tag must contain a ':'.
	UpdateDynamicTag(ctx context.Context, name, tag, author string) (*store.Entry, error)

	// SetFormat replaces the format fragment of an entry's value and writes
	// a new version.
	SetFormat(ctx context.Context, name, format, author string) (*store.Entry, error)

	// History returns version history for an entry, newest first.
	// Set limit to 0 for all versions.
	History(ctx context.Context, name string, limit int, includeDeleted bool) ([]store.Entry, error)

	// Diff compares entry versions or two entries.
	// See diff.Options for comparison modes.
	Diff(ctx context.Context, name string, opts diff.Options) (diff.Result, error)

	// Vacuum permanently deletes soft-deleted entries.
	// If olderThan is set, only deletes entries deleted before that duration.
	// Returns the count of entries permanently removed.
	Vacuum(ctx context.Context, olderThan *time.Duration, prefix string) (int64, error)

	// Exists checks if an entry exists without fetching the value.
	Exists(ctx context.Context, name string) (bool, error)

	// Count returns the number of entries matching a name prefix.
	// Use "" to count all entries.
	Count(ctx context.Context, prefix string) (int64, error)

	// Meta returns entry metadata without the value.
	Meta(ctx context.Context, name string) (*store.EntryMeta, error)

	// ListNames returns entry names without loading values, enabling
	// efficient enumeration for listings and completion.
	ListNames(ctx context.Context, prefix string) ([]string, error)

	// ListDeletedNames returns names of soft-deleted entries, enabling
	// trash management and vacuum preview.
	ListDeletedNames(ctx context.Context, prefix string) ([]string, error)

	// ListMeta returns metadata for multiple entries matching a prefix.
	ListMeta(ctx context.Context, prefix string, includeDeleted bool) ([]store.EntryMeta, error)

	// CountDeleted returns the count of soft-deleted entries.
	CountDeleted(ctx context.Context, prefix string) (int64, error)

	// DeletedBefore returns names of entries deleted before the given time.
	DeletedBefore(ctx context.Context, t time.Time, prefix string) ([]string, error)

	// VersionCount returns the number of versions for an entry without
	// loading full history.
	VersionCount(ctx context.Context, name string) (int, error)

	// ListAuthors returns all distinct authors who have written entries.
	ListAuthors(ctx context.Context) ([]string, error)

	// Stats returns aggregate database statistics.
	Stats(ctx context.Context) (*store.Stats, error)

	// DB returns the underlying SQLite connection.
	// Do not close this connection directly; use Service.Close().
	DB() *sql.DB

	// Tx runs a function within a database transaction.
	// If fn returns nil, the transaction is committed.
	// If fn returns an error, the transaction is rolled back.
	Tx(ctx context.Context, fn func(tx *sql.Tx) error) error

	// Checkpoint flushes the WAL to the main database file, removing
	// the -wal and -shm files. Useful before backup or distribution.
	Checkpoint(ctx context.Context) error
}
