// Package validate provides input validation for tdf's domain types.
//
// This package enforces integrity rules at the boundary between user input
// and the storage layer. Each validation function returns nil on success or
// a descriptive error on failure.
//
// The TDF codec itself is deliberately total - it never rejects input. The
// rules here apply only where permissiveness would corrupt storage or CLI
// semantics: registry entry names, and tags supplied as standalone command
// arguments (where a stray '#' would silently change the grammar).
//
// All validation errors wrap one of the sentinel errors defined in
// errors.go. Use errors.Is() for type-safe checking:
//
//	if errors.Is(err, validate.ErrInvalidName) {
//	    // handle invalid entry name
//	}
package validate
