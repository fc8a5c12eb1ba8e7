// errors.go defines sentinel errors for validation failures.
//
// Sentinel errors (not error types) because validation failures don't carry
// context beyond the category. Detailed messages come from wrapping these
// with fmt.Errorf in the validation functions.

package validate

import "errors"

var (
	ErrInvalidName  = errors.New("invalid entry name")
	ErrNameTooLong  = errors.New("entry name too long")
	ErrInvalidTag   = errors.New("invalid tag")
	ErrValueTooLong = errors.New("value too long")
)
