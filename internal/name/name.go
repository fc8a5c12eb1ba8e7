// Package name provides entry name normalisation utilities.
//
// All entry names in tdf pass through this package before storage or
// retrieval. Names are hierarchical labels like "drop/avatar", not
// filesystem paths, but they are cleaned the same way so "drop//avatar"
// and "drop/avatar/" resolve to the same entry.
//
// Normalisation rules:
//   - Names use forward slashes
//   - No leading or trailing slashes
//   - No "." or ".." components
//   - Empty names are rejected
package name

import (
	"errors"
	"path"
	"strings"
)

// ErrInvalid indicates the provided entry name is invalid.
var ErrInvalid = errors.New("invalid entry name")

// Normalise cleans and validates an entry name.
// It collapses duplicate slashes, strips leading/trailing slashes, and
// rejects names containing traversal sequences.
func Normalise(n string) (string, error) {
	if n == "" {
		return "", ErrInvalid
	}

	n = path.Clean(n)
	n = strings.TrimPrefix(n, "/")
	n = strings.TrimSuffix(n, "/")

	if n == "" || n == "." || n == ".." {
		return "", ErrInvalid
	}
	if strings.Contains(n, "..") {
		return "", ErrInvalid
	}

	return n, nil
}

// Direct reports whether name is a direct child of prefix.
// Used for grouped listings where nested entries are collapsed.
//
// Examples (prefix="drop"):
//   - "drop/avatar" -> true (direct child)
//   - "drop/icons/small" -> false (nested)
//   - "drop" -> true (exact match)
//
// Examples (prefix=""):
//   - "clipboard" -> true (top level)
//   - "drop/avatar" -> false (nested)
func Direct(n, prefix string) bool {
	prefix = strings.TrimSuffix(prefix, "/")

	if n == prefix {
		return true
	}

	var remainder string
	if prefix == "" {
		remainder = n
	} else if strings.HasPrefix(n, prefix+"/") {
		remainder = n[len(prefix)+1:]
	} else {
		return false
	}

	return !strings.Contains(remainder, "/")
}
