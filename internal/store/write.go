// write.go implements entry creation and modification operations.
//
// Separated from the main store file to isolate mutating operations. All
// writes create new versions rather than updating in place - this enables
// full version history and recovery from accidental changes.
//
// Design: Write operations use transactions to ensure atomicity. The version
// number is computed as MAX(version)+1 within the transaction to prevent
// race conditions in concurrent write scenarios.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jpl-au/tdf/internal/validate"
)

// Write creates a new version of an entry, preserving all previous versions.
// New entries start at version 1; existing entries increment from their max.
// The version is computed inside a transaction to prevent race conditions
// when multiple writers target the same name concurrently.
func (s *SQLiteStore) Write(ctx context.Context, name, value string, opts WriteOptions) error {
	if err := validate.Name(name, opts.MaxName); err != nil {
		return err
	}
	if err := validate.Value(value, opts.MaxValue); err != nil {
		return err
	}

	return s.Tx(ctx, func(tx *sql.Tx) error {
		var maxVer int
		err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(version), 0) FROM entries WHERE name = ?`, name).Scan(&maxVer)
		if err != nil {
			return fmt.Errorf("get max version: %w", err)
		}

		id, err := genID()
		if err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx, `INSERT INTO entries (key, name, value, version, author, message, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			id, name, value, maxVer+1, opts.Author, opts.Message, time.Now().Unix())
		if err != nil {
			return fmt.Errorf("insert entry: %w", err)
		}
		return nil
	})
}

// Delete soft-deletes an entry by setting the deleted_at timestamp.
// All versions are marked deleted together - you can't delete individual
// versions. Returns ErrNotFound if the entry doesn't exist or is already
// deleted.
func (s *SQLiteStore) Delete(ctx context.Context, name string, opts DeleteOptions) error {
	if err := validate.Name(name, opts.MaxName); err != nil {
		return err
	}
	result, err := s.db.ExecContext(ctx, `UPDATE entries SET deleted_at = ? WHERE name = ? AND deleted_at IS NULL`,
		time.Now().Unix(), name)
	if err != nil {
		return fmt.Errorf("delete %s: %w", name, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete %s: %w", name, err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// Restore un-deletes a soft-deleted entry by clearing deleted_at.
// All versions are restored together. This is the recovery mechanism that
// makes soft-delete safe - mistakes can be undone until vacuum permanently
// removes the data.
func (s *SQLiteStore) Restore(ctx context.Context, name string, opts RestoreOptions) error {
	if err := validate.Name(name, opts.MaxName); err != nil {
		return err
	}
	result, err := s.db.ExecContext(ctx, `UPDATE entries SET deleted_at = NULL WHERE name = ? AND deleted_at IS NOT NULL`, name)
	if err != nil {
		return fmt.Errorf("restore %s: %w", name, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("restore %s: %w", name, err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// Rename renames an entry, preserving all version history under the new name.
// Returns ErrNotFound if source doesn't exist, ErrAlreadyExists if an active
// entry already holds the destination name.
func (s *SQLiteStore) Rename(ctx context.Context, src, dst string, opts RenameOptions) error {
	if err := validate.Name(src, opts.MaxName); err != nil {
		return err
	}
	if err := validate.Name(dst, opts.MaxName); err != nil {
		return err
	}

	return s.Tx(ctx, func(tx *sql.Tx) error {
		var n int
		if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM entries WHERE name = ? AND deleted_at IS NULL`, dst).Scan(&n); err != nil {
			return fmt.Errorf("check destination %s: %w", dst, err)
		}
		if n > 0 {
			return ErrAlreadyExists
		}

		res, err := tx.ExecContext(ctx, `UPDATE entries SET name = ? WHERE name = ?`, dst, src)
		if err != nil {
			return fmt.Errorf("rename %s to %s: %w", src, dst, err)
		}
		rows, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("rename %s to %s: %w", src, dst, err)
		}
		if rows == 0 {
			return ErrNotFound
		}
		return nil
	})
}
