// stats.go implements statistics and metadata queries for operational visibility.
//
// Separated to collect "read-only, aggregate" operations distinct from CRUD.
// These queries power listings and vacuum planning without modifying data or
// loading full entry values.

package store

import (
	"context"
	"database/sql"
	"strings"
	"time"
)

// ListDeletedNames returns names of soft-deleted entries without loading
// values. Supports trash listing and vacuum preview operations.
func (s *SQLiteStore) ListDeletedNames(ctx context.Context, prefix string) ([]string, error) {
	q := `SELECT DISTINCT name FROM entries WHERE deleted_at IS NOT NULL`
	var args []any

	if prefix != "" {
		q += ` AND name LIKE ?`
		args = append(args, prefix+"%")
	}
	q += ` ORDER BY name`

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		names = append(names, n)
	}
	return names, rows.Err()
}

// ListMeta returns metadata for multiple entries, enabling efficient batch
// queries for listings that need version/size info without values.
func (s *SQLiteStore) ListMeta(ctx context.Context, prefix string, includeDeleted bool) ([]EntryMeta, error) {
	q := `SELECT e.key, e.name, e.version, e.author, e.message, e.created_at, e.deleted_at, length(e.value)
		FROM entries e
		INNER JOIN (
			SELECT name, MAX(version) as max_version FROM entries`

	var args []any
	var conditions []string

	if prefix != "" {
		conditions = append(conditions, `name LIKE ?`)
		args = append(args, prefix+"%")
	}

	if !includeDeleted {
		conditions = append(conditions, `deleted_at IS NULL`)
	}

	if len(conditions) > 0 {
		q += ` WHERE ` + strings.Join(conditions, ` AND `)
	}

	q += ` GROUP BY name
		) latest ON e.name = latest.name AND e.version = latest.max_version`

	if !includeDeleted {
		q += ` WHERE e.deleted_at IS NULL`
	}

	q += ` ORDER BY e.name`

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var metas []EntryMeta
	for rows.Next() {
		var m EntryMeta
		var msg sql.NullString
		if err := rows.Scan(&m.Key, &m.Name, &m.Version, &m.Author, &msg, &m.CreatedAt, &m.DeletedAt, &m.Size); err != nil {
			return nil, err
		}
		if msg.Valid {
			m.Message = msg.String
		}
		metas = append(metas, m)
	}
	return metas, rows.Err()
}

// CountDeleted returns the count of soft-deleted entries. Supports vacuum
// preview to show users how many entries will be affected.
func (s *SQLiteStore) CountDeleted(ctx context.Context, prefix string) (int64, error) {
	q := `SELECT COUNT(DISTINCT name) FROM entries WHERE deleted_at IS NOT NULL`
	var args []any

	if prefix != "" {
		q += ` AND name LIKE ?`
		args = append(args, prefix+"%")
	}

	var count int64
	err := s.db.QueryRowContext(ctx, q, args...).Scan(&count)
	return count, err
}

// DeletedBefore returns names of entries deleted before the given time.
// Enables targeted vacuum operations for cleaning up old trash without
// affecting recently deleted items that users might want to restore.
func (s *SQLiteStore) DeletedBefore(ctx context.Context, t time.Time, prefix string) ([]string, error) {
	cutoff := t.Unix()
	q := `SELECT DISTINCT name FROM entries WHERE deleted_at IS NOT NULL AND deleted_at < ?`
	args := []any{cutoff}

	if prefix != "" {
		q += ` AND name LIKE ?`
		args = append(args, prefix+"%")
	}
	q += ` ORDER BY name`

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		names = append(names, n)
	}
	return names, rows.Err()
}

// VersionCount returns the number of versions for an entry without loading
// the full history.
func (s *SQLiteStore) VersionCount(ctx context.Context, name string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM entries WHERE name = ?`, name).Scan(&count)
	return count, err
}

// ListAuthors returns all distinct authors who have written entries.
// Supports author-based filtering and audit reporting.
func (s *SQLiteStore) ListAuthors(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT author FROM entries ORDER BY author`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var authors []string
	for rows.Next() {
		var a string
		if err := rows.Scan(&a); err != nil {
			return nil, err
		}
		authors = append(authors, a)
	}
	return authors, rows.Err()
}

// Stats returns aggregate database statistics. Provides operational
// visibility into store utilisation.
func (s *SQLiteStore) Stats(ctx context.Context) (*Stats, error) {
	var st Stats

	// Active entry count (distinct names, not deleted)
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(DISTINCT name) FROM entries WHERE deleted_at IS NULL`).Scan(&st.Entries)
	if err != nil {
		return nil, err
	}

	// Deleted entry count (distinct names in trash)
	err = s.db.QueryRowContext(ctx, `SELECT COUNT(DISTINCT name) FROM entries WHERE deleted_at IS NOT NULL`).Scan(&st.DeletedEntries)
	if err != nil {
		return nil, err
	}

	// Total version count (all rows in entries table)
	err = s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM entries`).Scan(&st.TotalVersions)
	if err != nil {
		return nil, err
	}

	// Distinct author count
	err = s.db.QueryRowContext(ctx, `SELECT COUNT(DISTINCT author) FROM entries`).Scan(&st.Authors)
	if err != nil {
		return nil, err
	}

	// Oldest and newest entry timestamps
	err = s.db.QueryRowContext(ctx, `SELECT COALESCE(MIN(created_at), 0), COALESCE(MAX(created_at), 0) FROM entries`).Scan(&st.OldestEntry, &st.NewestEntry)
	if err != nil {
		return nil, err
	}

	// Oldest deletion timestamp (for vacuum age planning)
	var oldestDeleted sql.NullInt64
	err = s.db.QueryRowContext(ctx, `SELECT MIN(deleted_at) FROM entries WHERE deleted_at IS NOT NULL`).Scan(&oldestDeleted)
	if err != nil {
		return nil, err
	}
	if oldestDeleted.Valid {
		st.OldestDeletedAt = oldestDeleted.Int64
	}

	return &st, nil
}
