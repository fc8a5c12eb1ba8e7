// tags.go implements tag-level mutations on stored entries.
//
// Each mutation reads the latest version, decodes it into a Value container,
// applies the change, and writes the serialized result back as a new
// version. The round-trip through the codec means a stored value with stray
// '#' characters inside tags is cleaned on its first mutation.

package registry

import (
	"context"
	"fmt"
	"strings"

	"github.com/jpl-au/tdf/internal/store"
	"github.com/jpl-au/tdf/internal/tdf"
	"github.com/jpl-au/tdf/internal/validate"
)

// mutate applies fn to the latest value of an entry and writes the result
// back as a new version with the given commit message.
func (s *Service) mutate(ctx context.Context, n, author, message string, fn func(v *tdf.Value)) (*store.Entry, error) {
	n, err := s.normalizeName(n)
	if err != nil {
		return nil, err
	}

	e, err := s.store.Latest(ctx, n, false)
	if err != nil {
		return nil, err
	}

	v := tdf.FromString(e.Value)
	fn(v)

	if err := s.Write(ctx, n, v.String(), author, message); err != nil {
		return nil, err
	}
	return s.store.Latest(ctx, n, false)
}

// AddTag appends a tag to an entry's value and writes a new version.
func (s *Service) AddTag(ctx context.Context, n, tag, author string) (*store.Entry, error) {
	if err := validate.Tag(tag); err != nil {
		return nil, err
	}
	return s.mutate(ctx, n, author, "add #"+tag, func(v *tdf.Value) {
		v.AddTag(tag)
	})
}

// RemoveTag removes a tag from an entry's value and writes a new version.
// A plain tag removes the exact tag; a tag with a trailing ':' removes one
// dynamic tag with that prefix.
func (s *Service) RemoveTag(ctx context.Context, n, tag, author string) (*store.Entry, error) {
	if err := validate.Tag(tag); err != nil {
		return nil, err
	}
	return s.mutate(ctx, n, author, "remove #"+tag, func(v *tdf.Value) {
		v.RemoveTag(tag)
	})
}

// UpdateDynamicTag replaces all dynamic tags sharing the new tag's prefix
// and writes a new version. The tag must contain a ':'.
func (s *Service) UpdateDynamicTag(ctx context.Context, n, tag, author string) (*store.Entry, error) {
	if err := validate.Tag(tag); err != nil {
		return nil, err
	}
	if !strings.Contains(tag, ":") {
		return nil, fmt.Errorf("%w: %q is not a dynamic tag (missing ':')", validate.ErrInvalidTag, tag)
	}
	return s.mutate(ctx, n, author, "update #"+tag, func(v *tdf.Value) {
		v.UpdateDynamicTag(tag)
	})
}

// SetFormat replaces the format fragment of an entry's value and writes a
// new version.
func (s *Service) SetFormat(ctx context.Context, n, format, author string) (*store.Entry, error) {
	return s.mutate(ctx, n, author, "format "+format, func(v *tdf.Value) {
		v.SetFormat(format)
	})
}
