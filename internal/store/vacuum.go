// vacuum.go implements permanent deletion of soft-deleted data.
//
// Separated because vacuum is a destructive, irreversible operation with
// different semantics than soft-delete. Vacuum should be called deliberately,
// not as part of normal operations.
//
// Design: Soft-delete enables recovery; vacuum removes that safety net.
// The olderThan parameter allows keeping recent deletions recoverable while
// cleaning up old trash.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Vacuum permanently removes soft-deleted entries from the database.
// Parameters:
//   - olderThan: if non-nil, only delete items deleted before this duration ago
//   - prefix: if non-empty, only delete items matching this name prefix
//
// Returns the number of rows deleted.
func (s *SQLiteStore) Vacuum(ctx context.Context, olderThan *time.Duration, prefix string) (int64, error) {
	var deleted int64

	err := s.Tx(ctx, func(tx *sql.Tx) error {
		q := `DELETE FROM entries WHERE deleted_at IS NOT NULL`
		var args []any
		if olderThan != nil {
			q += ` AND deleted_at < ?`
			args = append(args, time.Now().Add(-*olderThan).Unix())
		}
		if prefix != "" {
			q += ` AND name LIKE ?`
			args = append(args, prefix+"%")
		}

		result, err := tx.ExecContext(ctx, q, args...)
		if err != nil {
			return fmt.Errorf("vacuum entries: %w", err)
		}
		if n, err := result.RowsAffected(); err == nil {
			deleted = n
		}
		return nil
	})

	if err != nil {
		return 0, err
	}
	return deleted, nil
}
