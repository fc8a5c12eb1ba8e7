// read.go implements entry retrieval operations for the Service layer.
//
// Separated from service.go to isolate read-only operations. The Service
// layer adds name normalisation on top of the raw store operations, ensuring
// consistent name handling across all entry points.
//
// Design: All names are normalised before reaching the store. This prevents
// "drop/avatar" and "drop//avatar" from being treated as different entries.

package registry

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/jpl-au/tdf/internal/diff"
	"github.com/jpl-au/tdf/internal/store"
	"github.com/jpl-au/tdf/internal/tdf"
)

// Latest retrieves the latest version of an entry.
func (s *Service) Latest(ctx context.Context, n string, includeDeleted bool) (*store.Entry, error) {
	n, err := s.normalizeName(n)
	if err != nil {
		return nil, err
	}
	return s.store.Latest(ctx, n, includeDeleted)
}

// Version retrieves a specific version of an entry.
func (s *Service) Version(ctx context.Context, n string, ver int) (*store.Entry, error) {
	n, err := s.normalizeName(n)
	if err != nil {
		return nil, err
	}
	return s.store.Version(ctx, n, ver)
}

// ByKey retrieves an entry by its unique 8-char key.
func (s *Service) ByKey(ctx context.Context, key string) (*store.Entry, error) {
	return s.store.ByKey(ctx, key)
}

// Resolve returns an entry by name or key. Designed for user-facing entry
// points such as CLI commands and MCP tools where input could be either type.
//
// Users see keys in tdf ls output and naturally want to use them with other
// commands. However, an 8-character string like "my-entry" could be either a
// valid name or a key. We resolve this ambiguity by checking both, with name
// taking precedence. If you created an entry under that name, you probably
// mean the name rather than some random key that happens to match.
//
// SQLite in WAL mode supports concurrent reads, so we run both lookups in
// parallel rather than sequentially.
func (s *Service) Resolve(ctx context.Context, nameOrKey string, includeDeleted bool) (*store.Entry, error) {
	// Keys are always exactly 8 characters. Longer or shorter inputs can
	// only be names.
	if len(nameOrKey) != 8 {
		return s.Latest(ctx, nameOrKey, includeDeleted)
	}

	var nameEntry, keyEntry *store.Entry
	var nameErr, keyErr error

	var wg sync.WaitGroup
	wg.Go(func() {
		nameEntry, nameErr = s.Latest(ctx, nameOrKey, includeDeleted)
	})
	wg.Go(func() {
		keyEntry, keyErr = s.ByKey(ctx, nameOrKey)
	})
	wg.Wait()

	// Name takes precedence. If someone created an entry at "my-entry",
	// they mean that name rather than a key that happens to match.
	if nameErr == nil {
		return nameEntry, nil
	}
	if keyErr == nil {
		return keyEntry, nil
	}
	// Both failed. Return name error since that is more intuitive for users.
	return nil, nameErr
}

// Value returns the latest version of an entry decoded into a Value
// container, ready for tag queries and mutation.
func (s *Service) Value(ctx context.Context, n string, includeDeleted bool) (*tdf.Value, error) {
	e, err := s.Latest(ctx, n, includeDeleted)
	if err != nil {
		return nil, err
	}
	return tdf.FromString(e.Value), nil
}

// List returns entries matching a prefix.
func (s *Service) List(ctx context.Context, prefix string, includeDeleted, deletedOnly bool) ([]store.Entry, error) {
	prefix, err := s.normalizePrefix(prefix)
	if err != nil {
		return nil, err
	}
	return s.store.List(ctx, prefix, includeDeleted, deletedOnly)
}

// ListByTag returns entries matching a prefix whose value carries the given
// tag. A plain tag matches exactly; a tag with a trailing ':' matches any
// dynamic tag with that prefix. Filtering happens after decoding so the
// match uses tag identity, not substring search.
func (s *Service) ListByTag(ctx context.Context, prefix, tag string, includeDeleted, deletedOnly bool) ([]store.Entry, error) {
	entries, err := s.List(ctx, prefix, includeDeleted, deletedOnly)
	if err != nil {
		return nil, err
	}

	var out []store.Entry
	for _, e := range entries {
		if tdf.FromString(e.Value).HasTag(tag) {
			out = append(out, e)
		}
	}
	return out, nil
}

// History returns version history for an entry.
func (s *Service) History(ctx context.Context, n string, limit int, includeDeleted bool) ([]store.Entry, error) {
	n, err := s.normalizeName(n)
	if err != nil {
		return nil, err
	}
	return s.store.History(ctx, n, limit, includeDeleted)
}

// Exists checks if an entry exists without fetching the value.
func (s *Service) Exists(ctx context.Context, n string) (bool, error) {
	n, err := s.normalizeName(n)
	if err != nil {
		return false, err
	}
	return s.store.Exists(ctx, n)
}

// Count returns the number of entries matching a name prefix.
func (s *Service) Count(ctx context.Context, prefix string) (int64, error) {
	prefix, err := s.normalizePrefix(prefix)
	if err != nil {
		return 0, err
	}
	return s.store.Count(ctx, prefix)
}

// Meta returns entry metadata without the value.
func (s *Service) Meta(ctx context.Context, n string) (*store.EntryMeta, error) {
	n, err := s.normalizeName(n)
	if err != nil {
		return nil, err
	}
	return s.store.Meta(ctx, n)
}

// Diff compares two versions of an entry or two entries.
func (s *Service) Diff(ctx context.Context, n string, opts diff.Options) (diff.Result, error) {
	// o = old value, nv = new value, ol = old label, nl = new label
	var o, nv, ol, nl string
	var err error

	switch {
	case opts.Name2 != "":
		o, nv, ol, nl, err = s.diffTwoNames(ctx, n, opts)
	case opts.Version1 > 0 && opts.Version2 > 0:
		o, nv, ol, nl, err = s.diffVersions(ctx, n, opts)
	default:
		o, nv, ol, nl, err = s.diffPrevious(ctx, n, opts)
	}

	if err != nil {
		return diff.Result{}, err
	}
	return diff.Compute(o, nv, ol, nl), nil
}

func (s *Service) diffTwoNames(ctx context.Context, n string, opts diff.Options) (o, nv, ol, nl string, err error) {
	n1, err := s.normalizeName(n)
	if err != nil {
		return "", "", "", "", err
	}
	n2, err := s.normalizeName(opts.Name2)
	if err != nil {
		return "", "", "", "", err
	}

	// Fetch both entries concurrently
	var e1, e2 *store.Entry
	var err1, err2 error

	var wg sync.WaitGroup
	wg.Go(func() {
		e1, err1 = s.store.Latest(ctx, n1, opts.IncludeDeleted)
	})
	wg.Go(func() {
		e2, err2 = s.store.Latest(ctx, n2, opts.IncludeDeleted)
	})
	wg.Wait()

	if err1 != nil {
		return "", "", "", "", fmt.Errorf("reading %s: %w", n1, err1)
	}
	if err2 != nil {
		return "", "", "", "", fmt.Errorf("reading %s: %w", n2, err2)
	}
	return e1.Value, e2.Value,
		n1 + " (v" + strconv.Itoa(e1.Version) + ")",
		n2 + " (v" + strconv.Itoa(e2.Version) + ")", nil
}

func (s *Service) diffVersions(ctx context.Context, n string, opts diff.Options) (o, nv, ol, nl string, err error) {
	n, err = s.normalizeName(n)
	if err != nil {
		return "", "", "", "", err
	}

	// Fetch both versions concurrently
	var e1, e2 *store.Entry
	var err1, err2 error

	var wg sync.WaitGroup
	wg.Go(func() {
		e1, err1 = s.store.Version(ctx, n, opts.Version1)
	})
	wg.Go(func() {
		e2, err2 = s.store.Version(ctx, n, opts.Version2)
	})
	wg.Wait()

	if err1 != nil {
		return "", "", "", "", fmt.Errorf("reading %s v%d: %w", n, opts.Version1, err1)
	}
	if err2 != nil {
		return "", "", "", "", fmt.Errorf("reading %s v%d: %w", n, opts.Version2, err2)
	}
	return e1.Value, e2.Value,
		n + " v" + strconv.Itoa(opts.Version1),
		n + " v" + strconv.Itoa(opts.Version2), nil
}

func (s *Service) diffPrevious(ctx context.Context, n string, opts diff.Options) (o, nv, ol, nl string, err error) {
	n, err = s.normalizeName(n)
	if err != nil {
		return "", "", "", "", err
	}
	entries, err := s.store.History(ctx, n, 2, opts.IncludeDeleted)
	if err != nil {
		return "", "", "", "", err
	}
	if len(entries) < 2 {
		return "", "", "", "", fmt.Errorf("only one version exists for %s", n)
	}
	return entries[1].Value, entries[0].Value,
		n + " v" + strconv.Itoa(entries[1].Version),
		n + " v" + strconv.Itoa(entries[0].Version), nil
}

// ListNames returns entry names without loading values.
func (s *Service) ListNames(ctx context.Context, prefix string) ([]string, error) {
	prefix, err := s.normalizePrefix(prefix)
	if err != nil {
		return nil, err
	}
	return s.store.ListNames(ctx, prefix)
}

// ListDeletedNames returns names of soft-deleted entries.
func (s *Service) ListDeletedNames(ctx context.Context, prefix string) ([]string, error) {
	prefix, err := s.normalizePrefix(prefix)
	if err != nil {
		return nil, err
	}
	return s.store.ListDeletedNames(ctx, prefix)
}

// ListMeta returns metadata for multiple entries matching a prefix.
func (s *Service) ListMeta(ctx context.Context, prefix string, includeDeleted bool) ([]store.EntryMeta, error) {
	prefix, err := s.normalizePrefix(prefix)
	if err != nil {
		return nil, err
	}
	return s.store.ListMeta(ctx, prefix, includeDeleted)
}

// CountDeleted returns the count of soft-deleted entries.
func (s *Service) CountDeleted(ctx context.Context, prefix string) (int64, error) {
	prefix, err := s.normalizePrefix(prefix)
	if err != nil {
		return 0, err
	}
	return s.store.CountDeleted(ctx, prefix)
}

// DeletedBefore returns names of entries deleted before the given time.
func (s *Service) DeletedBefore(ctx context.Context, t time.Time, prefix string) ([]string, error) {
	prefix, err := s.normalizePrefix(prefix)
	if err != nil {
		return nil, err
	}
	return s.store.DeletedBefore(ctx, t, prefix)
}

// VersionCount returns the number of versions for an entry.
func (s *Service) VersionCount(ctx context.Context, n string) (int, error) {
	n, err := s.normalizeName(n)
	if err != nil {
		return 0, err
	}
	return s.store.VersionCount(ctx, n)
}

// ListAuthors returns all distinct authors who have written entries.
func (s *Service) ListAuthors(ctx context.Context) ([]string, error) {
	return s.store.ListAuthors(ctx)
}

// Stats returns aggregate database statistics.
func (s *Service) Stats(ctx context.Context) (*store.Stats, error) {
	return s.store.Stats(ctx)
}
