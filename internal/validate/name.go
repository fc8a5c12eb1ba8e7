// name.go implements registry entry name validation.
//
// Names identify stored TDF values ("drop/avatar", "clipboard"). They are
// labels, not filesystem paths - no traversal concerns, but they end up in
// SQL queries and CLI output, so clearly dangerous inputs are rejected.

package validate

import (
	"fmt"
	"strings"
)

// Name validates a registry entry name.
//
// Validation rules:
//   - Empty names rejected (nothing to look up)
//   - Null bytes rejected (prevents injection in queries/storage)
//   - Max length enforced if maxLen > 0 (0 means no limit)
func Name(n string, maxLen int) error {
	if n == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidName)
	}
	if strings.ContainsRune(n, 0) {
		return fmt.Errorf("%w: null byte in name", ErrInvalidName)
	}
	if maxLen > 0 && len(n) > maxLen {
		return ErrNameTooLong
	}
	return nil
}
