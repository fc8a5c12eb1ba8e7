// tag.go implements validation for tags supplied as standalone CLI or MCP
// arguments.
//
// The codec accepts anything, so this check exists for the mutation
// commands ("tdf tag add") where a '#' inside the argument would split into
// multiple tags on the next round-trip and surprise the user.

package validate

import (
	"fmt"
	"strings"
)

// Tag validates a tag string given as a command argument.
//
// Validation rules:
//   - Empty tags rejected (meaningless label)
//   - Null bytes rejected (prevents injection in queries/storage)
//   - '#' rejected (would be re-split into separate tags on serialization)
func Tag(t string) error {
	if t == "" {
		return fmt.Errorf("%w: empty tag", ErrInvalidTag)
	}
	if strings.ContainsRune(t, 0) {
		return fmt.Errorf("%w: null byte in tag", ErrInvalidTag)
	}
	if strings.Contains(t, "#") {
		return fmt.Errorf("%w: '#' not allowed inside a tag", ErrInvalidTag)
	}
	return nil
}

// WellFormedFormat reports whether a format string has the conventional
// "x/y" shape: exactly one '/', both segments non-empty, no '#'. The codec
// never enforces this; it exists for lint-style reporting.
func WellFormedFormat(f string) bool {
	if strings.Contains(f, "#") {
		return false
	}
	i := strings.Index(f, "/")
	if i <= 0 || i != strings.LastIndex(f, "/") {
		return false
	}
	return i < len(f)-1
}
