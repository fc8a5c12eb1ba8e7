// Package tdf implements the Tagged Data Format: a flat string grammar of
// the shape "category/subcategory#tag#prefix:argument" used to carry
// structured metadata through transports that only accept plain strings.
//
// The package has three parts: a codec between the string form and a flat
// Record, the Value container holding parsed data as sets, and a validation
// pipeline carried by the container itself. The codec is total - any input
// string parses without error, possibly into nonsense (empty format, odd
// fragments). Callers that need well-formedness check it separately.
package tdf

import "strings"

// Record is the flat representation of a TDF string: the base format plus
// the plain and dynamic tag fragments in the order they appeared. It is the
// external I/O shape; the Value container stores the same data as sets.
type Record struct {
	Format      string   `json:"format"`
	Tags        []string `json:"tags"`
	DynamicTags []string `json:"dynamic_tags"`
}

// Parse splits input on '#'. The first fragment becomes the format, taken
// verbatim - no check that it matches the "x/y" shape. Remaining fragments
// containing ':' become dynamic tags; the rest become plain tags. Fragment
// order is preserved in the Record. Empty fragments and repeated '#' are
// accepted silently.
func Parse(input string) Record {
	frags := strings.Split(input, "#")
	r := Record{Format: frags[0]}
	for _, f := range frags[1:] {
		if strings.Contains(f, ":") {
			r.DynamicTags = append(r.DynamicTags, f)
		} else {
			r.Tags = append(r.Tags, f)
		}
	}
	return r
}

// String serializes the record: format first, then each plain tag, then each
// dynamic tag, a '#' inserted before every tag. Tags are stored without a
// leading '#'; any stray '#' inside a tag is stripped so the output stays
// parseable. Parse(r.String()) reproduces r for '#'-free inputs.
func (r Record) String() string {
	var b strings.Builder
	b.WriteString(r.Format)
	for _, t := range r.Tags {
		b.WriteByte('#')
		b.WriteString(strings.ReplaceAll(t, "#", ""))
	}
	for _, t := range r.DynamicTags {
		b.WriteByte('#')
		b.WriteString(strings.ReplaceAll(t, "#", ""))
	}
	return b.String()
}

// dynamicPrefix returns the identity prefix of a dynamic tag: everything up
// to and including the first ':'. Tags without a colon are returned as-is.
func dynamicPrefix(tag string) string {
	if i := strings.Index(tag, ":"); i >= 0 {
		return tag[:i+1]
	}
	return tag
}

// dynamicArgument returns the text after the first ':' of a dynamic tag,
// or "" when there is no colon. Later colons belong to the argument.
func dynamicArgument(tag string) string {
	if i := strings.Index(tag, ":"); i >= 0 {
		return tag[i+1:]
	}
	return ""
}
