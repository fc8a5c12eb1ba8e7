// write.go implements entry creation, update, and deletion operations.
//
// Separated from service.go to isolate mutating operations. Every mutation
// creates a new version in the store; nothing is updated in place.

package registry

import (
	"context"
	"fmt"

	"github.com/jpl-au/tdf/internal/store"
)

// Write creates or updates an entry.
func (s *Service) Write(ctx context.Context, n, value, author, message string) error {
	n, err := s.normalizeName(n)
	if err != nil {
		return err
	}

	opts := store.WriteOptions{
		Author:   author,
		Message:  message,
		MaxName:  s.maxName,
		MaxValue: s.maxValue,
	}
	if opts.Author == "" {
		opts.Author = DefaultAuthor
	}

	if err := s.store.Write(ctx, n, value, opts); err != nil {
		return fmt.Errorf("write %q: %w", n, err)
	}
	return nil
}

// Delete soft-deletes an entry.
func (s *Service) Delete(ctx context.Context, n string) error {
	n, err := s.normalizeName(n)
	if err != nil {
		return err
	}

	if err := s.store.Delete(ctx, n, store.DeleteOptions{MaxName: s.maxName}); err != nil {
		return fmt.Errorf("delete %q: %w", n, err)
	}
	return nil
}

// Restore restores a soft-deleted entry.
func (s *Service) Restore(ctx context.Context, n string) error {
	n, err := s.normalizeName(n)
	if err != nil {
		return err
	}

	if err := s.store.Restore(ctx, n, store.RestoreOptions{MaxName: s.maxName}); err != nil {
		return fmt.Errorf("restore %q: %w", n, err)
	}
	return nil
}

// Rename renames an entry, preserving all version history.
func (s *Service) Rename(ctx context.Context, from, to string) error {
	from, err := s.normalizeName(from)
	if err != nil {
		return err
	}
	to, err = s.normalizeName(to)
	if err != nil {
		return err
	}

	if err := s.store.Rename(ctx, from, to, store.RenameOptions{MaxName: s.maxName}); err != nil {
		return fmt.Errorf("rename %q to %q: %w", from, to, err)
	}
	return nil
}
