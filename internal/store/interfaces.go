// interfaces.go defines the storage abstraction for entry persistence.
//
// Separated from the SQLite implementation to enable testing and potential
// alternative backends. The interfaces are intentionally granular (Reader,
// Writer, Maintainer) so consumers only depend on the capabilities they need.
//
// Design: All mutating operations use soft-delete semantics. Entries are
// never immediately removed; they're marked deleted and can be recovered
// until Vacuum permanently purges them.

package store

import (
	"context"
	"database/sql"
	"time"
)

// Reader defines read-only operations for retrieving entries and metadata.
type Reader interface {
	// Latest retrieves the current version of an entry. Use includeDeleted
	// to access soft-deleted entries for recovery operations.
	Latest(ctx context.Context, name string, includeDeleted bool) (*Entry, error)

	// Version retrieves a specific historical version for audit or rollback.
	Version(ctx context.Context, name string, version int) (*Entry, error)

	// ByKey retrieves an entry by its unique 8-char key. Returns ErrNotFound
	// if no entry exists with that key.
	ByKey(ctx context.Context, key string) (*Entry, error)

	// List returns entries matching a name prefix. The deletedOnly flag
	// enables listing trash contents separately from active entries.
	List(ctx context.Context, prefix string, includeDeleted bool, deletedOnly bool) ([]Entry, error)

	// ListNames returns only names without values, enabling efficient
	// completion and tree displays without loading entry values.
	ListNames(ctx context.Context, prefix string) ([]string, error)

	// ListDeletedNames returns names of soft-deleted entries, enabling
	// trash listing and vacuum preview without loading values.
	ListDeletedNames(ctx context.Context, prefix string) ([]string, error)

	// ListMeta returns metadata for multiple entries matching a prefix,
	// enabling efficient listings that need size/version info without values.
	ListMeta(ctx context.Context, prefix string, includeDeleted bool) ([]EntryMeta, error)

	// History returns version history for auditing changes over time.
	History(ctx context.Context, name string, limit int, includeDeleted bool) ([]Entry, error)

	// Exists checks entry presence without loading the value.
	Exists(ctx context.Context, name string) (bool, error)

	// Count returns entry count for a prefix.
	Count(ctx context.Context, prefix string) (int64, error)

	// CountDeleted returns the count of soft-deleted entries, enabling
	// vacuum preview and trash management.
	CountDeleted(ctx context.Context, prefix string) (int64, error)

	// Meta returns entry metadata without the value for efficient listings.
	Meta(ctx context.Context, name string) (*EntryMeta, error)

	// DeletedBefore returns names of entries deleted before the given time,
	// enabling targeted vacuum operations.
	DeletedBefore(ctx context.Context, t time.Time, prefix string) ([]string, error)

	// VersionCount returns the number of versions for an entry without
	// loading full history.
	VersionCount(ctx context.Context, name string) (int, error)

	// ListAuthors returns all distinct authors who have written entries.
	ListAuthors(ctx context.Context) ([]string, error)

	// Stats returns aggregate database statistics.
	Stats(ctx context.Context) (*Stats, error)
}

// Writer defines operations that modify entries.
type Writer interface {
	// Write creates a new version, preserving the previous version for history.
	Write(ctx context.Context, name, value string, opts WriteOptions) error

	// Delete marks an entry as deleted without removing data, allowing
	// recovery via Restore until Vacuum permanently removes it.
	Delete(ctx context.Context, name string, opts DeleteOptions) error

	// Restore recovers a soft-deleted entry to active status.
	Restore(ctx context.Context, name string, opts RestoreOptions) error

	// Rename renames an entry, preserving all version history.
	Rename(ctx context.Context, src, dst string, opts RenameOptions) error
}

// Maintainer defines operations for database maintenance and lifecycle.
type Maintainer interface {
	// Close releases the database connection.
	Close() error

	// DB exposes the underlying connection for callers needing custom queries.
	DB() *sql.DB

	// Checkpoint flushes WAL to the main database file.
	Checkpoint(ctx context.Context) error

	// Vacuum permanently removes soft-deleted data.
	Vacuum(ctx context.Context, olderThan *time.Duration, prefix string) (int64, error)
}

// Store defines the persistence interface for entries. All operations are
// designed for soft-delete semantics, enabling recovery until vacuum.
type Store interface {
	Reader
	Writer
	Maintainer
}
