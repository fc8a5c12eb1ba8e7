// value.go implements serialized value size validation.

package validate

import "fmt"

// Value validates a serialized TDF string before storage.
//
// The codec itself accepts anything; this only enforces the configured size
// limit so a runaway value can't bloat the database. Max length enforced if
// maxLen > 0 (0 means no limit).
func Value(v string, maxLen int64) error {
	if maxLen > 0 && int64(len(v)) > maxLen {
		return fmt.Errorf("%w: %d bytes exceeds limit of %d", ErrValueTooLong, len(v), maxLen)
	}
	return nil
}
