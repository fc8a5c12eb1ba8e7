// read.go implements entry retrieval operations for the SQLite store.
//
// Separated from the main store file to isolate read-only query logic.
//
// Design: All read operations work with the "latest version" concept - when
// multiple versions exist, we return the highest version number unless a
// specific version is requested. The includeDeleted flag controls whether
// soft-deleted entries are visible.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// Latest returns the highest version of an entry with the given name.
// The includeDeleted flag enables reading soft-deleted entries for recovery
// workflows - without it, deleted entries are invisible to prevent accidental use.
func (s *SQLiteStore) Latest(ctx context.Context, name string, includeDeleted bool) (*Entry, error) {
	query := `SELECT id, key, name, value, version, author, message, created_at, deleted_at
		FROM entries WHERE name = ?`
	if !includeDeleted {
		query += ` AND deleted_at IS NULL`
	}
	query += ` ORDER BY version DESC LIMIT 1`

	return s.scanEntry(s.db.QueryRowContext(ctx, query, name))
}

// Version returns a specific historical version of an entry.
// Unlike Latest, version queries don't filter by deleted_at because you may
// need to examine the exact state at a point in time regardless of current
// deletion status.
func (s *SQLiteStore) Version(ctx context.Context, name string, version int) (*Entry, error) {
	query := `SELECT id, key, name, value, version, author, message, created_at, deleted_at
		FROM entries WHERE name = ? AND version = ?`
	return s.scanEntry(s.db.QueryRowContext(ctx, query, name, version))
}

// ByKey retrieves an entry by its 8-character unique key.
// Keys provide stable external references that survive renames.
func (s *SQLiteStore) ByKey(ctx context.Context, key string) (*Entry, error) {
	query := `SELECT id, key, name, value, version, author, message, created_at, deleted_at
		FROM entries WHERE key = ?`
	return s.scanEntry(s.db.QueryRowContext(ctx, query, key))
}

// List returns the latest version of all entries matching a name prefix.
// The subquery finds max versions per name first, then joins to get full
// entries. This two-step approach is more efficient than alternatives for SQLite.
func (s *SQLiteStore) List(ctx context.Context, prefix string, includeDeleted bool, deletedOnly bool) ([]Entry, error) {
	var b strings.Builder
	b.WriteString(`SELECT e.id, e.key, e.name, e.value, e.version, e.author, e.message, e.created_at, e.deleted_at
		FROM entries e
		INNER JOIN (
			SELECT name, MAX(version) as max_version FROM entries`)

	var args []any
	var conditions []string

	if prefix != "" {
		conditions = append(conditions, `name LIKE ?`)
		args = append(args, prefix+"%")
	}

	switch {
	case deletedOnly:
		conditions = append(conditions, `deleted_at IS NOT NULL`)
	case !includeDeleted:
		conditions = append(conditions, `deleted_at IS NULL`)
	}

	if len(conditions) > 0 {
		b.WriteString(` WHERE `)
		b.WriteString(strings.Join(conditions, ` AND `))
	}

	b.WriteString(` GROUP BY name
		) latest ON e.name = latest.name AND e.version = latest.max_version`)

	switch {
	case deletedOnly:
		b.WriteString(` WHERE e.deleted_at IS NOT NULL`)
	case !includeDeleted:
		b.WriteString(` WHERE e.deleted_at IS NULL`)
	}

	b.WriteString(` ORDER BY e.name`)

	rows, err := s.db.QueryContext(ctx, b.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()

	return s.scanEntries(rows)
}

// ListNames returns only entry names without values.
// This enables efficient completion and tree displays without loading
// potentially large values into memory.
func (s *SQLiteStore) ListNames(ctx context.Context, prefix string) ([]string, error) {
	q := `SELECT DISTINCT name FROM entries WHERE deleted_at IS NULL`
	var args []any

	if prefix != "" {
		q += ` AND name LIKE ?`
		args = append(args, prefix+"%")
	}
	q += ` ORDER BY name`

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list names: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, fmt.Errorf("scan name: %w", err)
		}
		names = append(names, n)
	}
	return names, rows.Err()
}

// History returns all versions of an entry in descending order (newest first).
// The limit parameter prevents unbounded queries on entries with many versions.
func (s *SQLiteStore) History(ctx context.Context, name string, limit int, includeDeleted bool) ([]Entry, error) {
	query := `SELECT id, key, name, value, version, author, message, created_at, deleted_at
		FROM entries WHERE name = ?`
	args := []any{name}

	if !includeDeleted {
		query += ` AND deleted_at IS NULL`
	}
	query += ` ORDER BY version DESC`
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list history for %s: %w", name, err)
	}
	defer rows.Close()

	return s.scanEntries(rows)
}

// Count returns the number of distinct active entries matching a prefix.
// Uses COUNT(DISTINCT name) rather than counting rows because each entry
// may have multiple versions - we want entry count, not version count.
func (s *SQLiteStore) Count(ctx context.Context, prefix string) (int64, error) {
	query := `SELECT COUNT(DISTINCT name) FROM entries WHERE deleted_at IS NULL`
	var args []any

	if prefix != "" {
		query += ` AND name LIKE ?`
		args = append(args, prefix+"%")
	}

	var count int64
	err := s.db.QueryRowContext(ctx, query, args...).Scan(&count)
	return count, err
}

// Meta returns entry metadata without the value.
// The size is computed via length(value) in SQL to avoid transferring the
// value over the connection.
func (s *SQLiteStore) Meta(ctx context.Context, name string) (*EntryMeta, error) {
	var m EntryMeta
	var msg sql.NullString

	// Query filters deleted_at IS NULL, so we don't need to scan it
	err := s.db.QueryRowContext(ctx, `
		SELECT key, name, version, author, message, created_at, length(value)
		FROM entries
		WHERE name = ? AND deleted_at IS NULL
		ORDER BY version DESC LIMIT 1
	`, name).Scan(&m.Key, &m.Name, &m.Version, &m.Author, &msg, &m.CreatedAt, &m.Size)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get meta for %s: %w", name, err)
	}

	if msg.Valid {
		m.Message = msg.String
	}
	return &m, nil
}

// Exists checks if an active entry exists with the given name.
// Uses SELECT 1 ... LIMIT 1 for efficiency - we only need to know if at
// least one row exists, not count them or fetch data.
func (s *SQLiteStore) Exists(ctx context.Context, name string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM entries WHERE name = ? AND deleted_at IS NULL LIMIT 1`, name).Scan(&n)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check exists %s: %w", name, err)
	}
	return true, nil
}
