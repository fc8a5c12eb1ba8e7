// value.go implements the Value container: the single stateful type owning
// a parsed format, tag sets, and the validation rules evaluated by
// validate.go.
//
// Collections are plain Go maps with no locking; callers needing concurrent
// access must synchronise externally. Every constructor deep-copies the
// collections it adopts, so a derived Value never shares state with its
// source or base.

package tdf

import (
	"sort"
	"strings"
)

// Predicate checks the argument of a dynamic tag during validation.
type Predicate func(argument string) bool

// Value holds a parsed TDF string as sets, plus the rules used to validate
// other values (or itself). Plain tags never contain ':'; dynamic tags
// always do. Zero value is not usable - construct via New or the From*
// constructors.
type Value struct {
	format  string
	tags    map[string]struct{}
	dynamic map[string]struct{}

	requiredFormat string
	formatRequired bool
	required       map[string]struct{}
	excluded       map[string]struct{}
	validators     map[string]Predicate
}

// New returns an empty container with the placeholder format "/".
func New() *Value {
	return &Value{
		format:     "/",
		tags:       map[string]struct{}{},
		dynamic:    map[string]struct{}{},
		required:   map[string]struct{}{},
		excluded:   map[string]struct{}{},
		validators: map[string]Predicate{},
	}
}

// Derive returns a new container adopting base's format, tag sets, and all
// validation rules. Collections are copied; mutating the result leaves the
// base untouched.
func Derive(base *Value) *Value {
	v := New()
	v.format = base.format
	v.tags = cloneSet(base.tags)
	v.dynamic = cloneSet(base.dynamic)
	v.adoptRules(base)
	return v
}

// FromString parses s into a fresh container. Validation rules start empty.
func FromString(s string) *Value {
	return FromRecord(Parse(s))
}

// FromStringWith parses s and merges the parsed tags with base's tag sets.
// The format comes from s; all four rule collections are adopted from base.
func FromStringWith(s string, base *Value) *Value {
	v := FromRecordWith(Parse(s), base)
	v.adoptRules(base)
	return v
}

// FromValue copies src's format and tag sets into a new container.
// Validation rules start empty - rules transfer only through an explicit
// base (Derive or Merge).
func FromValue(src *Value) *Value {
	v := New()
	v.format = src.format
	v.tags = cloneSet(src.tags)
	v.dynamic = cloneSet(src.dynamic)
	return v
}

// Merge combines src with base: the format comes from src, tag sets are the
// union of both, and the rule collections are unioned per field. Validators
// from src win when both define the same prefix.
func Merge(src, base *Value) *Value {
	v := Derive(base)
	v.format = src.format
	unionSet(v.tags, src.tags)
	unionSet(v.dynamic, src.dynamic)

	if src.formatRequired {
		v.requiredFormat = src.requiredFormat
		v.formatRequired = true
	}
	unionSet(v.required, src.required)
	unionSet(v.excluded, src.excluded)
	for prefix, p := range src.validators {
		v.validators[prefix] = p
	}
	return v
}

// FromRecord builds a container from a flat record. Fragments are routed by
// the same rule as the parser: anything with a ':' is dynamic. Rules start
// empty.
func FromRecord(r Record) *Value {
	v := New()
	v.format = r.Format
	v.ingest(r)
	return v
}

// FromRecordWith builds a container from a record merged with base's tag
// sets. Unlike FromStringWith, validation rules start empty even though a
// base is supplied - records carry data, never rules.
func FromRecordWith(r Record, base *Value) *Value {
	v := New()
	v.format = r.Format
	v.tags = cloneSet(base.tags)
	v.dynamic = cloneSet(base.dynamic)
	v.ingest(r)
	return v
}

// ingest routes record fragments into the tag sets.
func (v *Value) ingest(r Record) {
	for _, t := range r.Tags {
		v.AddTag(t)
	}
	for _, t := range r.DynamicTags {
		v.AddTag(t)
	}
}

// adoptRules deep-copies all four rule collections from src.
func (v *Value) adoptRules(src *Value) {
	v.requiredFormat = src.requiredFormat
	v.formatRequired = src.formatRequired
	v.required = cloneSet(src.required)
	v.excluded = cloneSet(src.excluded)
	v.validators = make(map[string]Predicate, len(src.validators))
	for prefix, p := range src.validators {
		v.validators[prefix] = p
	}
}

// Format returns the base format string.
func (v *Value) Format() string { return v.format }

// SetFormat replaces the base format. The value is taken verbatim; the
// conventional "x/y" shape is not enforced.
func (v *Value) SetFormat(format string) { v.format = format }

// Tags returns the plain tags in sorted order.
func (v *Value) Tags() []string { return sortedKeys(v.tags) }

// DynamicTags returns the dynamic tags in sorted order.
func (v *Value) DynamicTags() []string { return sortedKeys(v.dynamic) }

// Record returns the flat record representation with sorted tag lists.
func (v *Value) Record() Record {
	return Record{
		Format:      v.format,
		Tags:        v.Tags(),
		DynamicTags: v.DynamicTags(),
	}
}

// String serializes the container back to the TDF string form.
func (v *Value) String() string { return v.Record().String() }

// AddTag inserts a tag. Tags containing ':' go into the dynamic set
// verbatim, so adding two values for the same prefix keeps both entries -
// use UpdateDynamicTag for replace-by-prefix semantics. Plain duplicates
// collapse naturally.
func (v *Value) AddTag(tag string) {
	if strings.Contains(tag, ":") {
		v.dynamic[tag] = struct{}{}
		return
	}
	v.tags[tag] = struct{}{}
}

// RemoveTag removes a tag. For tags containing ':', the first dynamic tag
// sharing the given tag's prefix is removed regardless of argument. The
// literal string is also removed from the plain set unconditionally, which
// is a no-op under the package invariant.
func (v *Value) RemoveTag(tag string) {
	if strings.Contains(tag, ":") {
		prefix := dynamicPrefix(tag)
		for _, dyn := range sortedKeys(v.dynamic) {
			if strings.HasPrefix(dyn, prefix) {
				delete(v.dynamic, dyn)
				break
			}
		}
	}
	delete(v.tags, tag)
}

// UpdateDynamicTag inserts tag, first removing any existing dynamic tag with
// the same prefix. After the call at most one entry for that prefix exists.
// Tags without ':' are ignored.
func (v *Value) UpdateDynamicTag(tag string) {
	if !strings.Contains(tag, ":") {
		return
	}
	prefix := dynamicPrefix(tag)
	for dyn := range v.dynamic {
		if strings.HasPrefix(dyn, prefix) {
			delete(v.dynamic, dyn)
		}
	}
	v.dynamic[tag] = struct{}{}
}

// HasTag reports tag membership. A tag ending in ':' is a prefix query: true
// when any dynamic tag carries that prefix, whatever its argument. Anything
// else is an exact lookup in the plain set.
func (v *Value) HasTag(tag string) bool {
	if len(tag) > 0 && tag[len(tag)-1] == ':' {
		for dyn := range v.dynamic {
			if strings.HasPrefix(dyn, tag) {
				return true
			}
		}
		return false
	}
	_, ok := v.tags[tag]
	return ok
}

// RequireFormat sets the format a candidate must match exactly to validate.
func (v *Value) RequireFormat(format string) {
	v.requiredFormat = format
	v.formatRequired = true
}

// ClearRequiredFormat removes the format constraint.
func (v *Value) ClearRequiredFormat() {
	v.requiredFormat = ""
	v.formatRequired = false
}

// RequiredFormat returns the format constraint and whether one is set.
func (v *Value) RequiredFormat() (string, bool) {
	return v.requiredFormat, v.formatRequired
}

// RequireTag adds tag to the required set.
func (v *Value) RequireTag(tag string) { v.required[tag] = struct{}{} }

// UnrequireTag removes tag from the required set.
func (v *Value) UnrequireTag(tag string) { delete(v.required, tag) }

// ExcludeTag adds tag to the excluded set.
func (v *Value) ExcludeTag(tag string) { v.excluded[tag] = struct{}{} }

// UnexcludeTag removes tag from the excluded set.
func (v *Value) UnexcludeTag(tag string) { delete(v.excluded, tag) }

// RequiredTags returns the required-tag rule set in sorted order.
func (v *Value) RequiredTags() []string { return sortedKeys(v.required) }

// ExcludedTags returns the excluded-tag rule set in sorted order.
func (v *Value) ExcludedTags() []string { return sortedKeys(v.excluded) }

// SetValidator associates a predicate with a dynamic-tag prefix. By
// convention the prefix includes the trailing ':' ("size:"). An existing
// predicate for the prefix is replaced.
func (v *Value) SetValidator(prefix string, p Predicate) {
	v.validators[prefix] = p
}

// RemoveValidator drops the predicate for a prefix, if any.
func (v *Value) RemoveValidator(prefix string) { delete(v.validators, prefix) }

// ValidatorPrefixes returns the registered validator prefixes in sorted
// order.
func (v *Value) ValidatorPrefixes() []string {
	prefixes := make([]string, 0, len(v.validators))
	for p := range v.validators {
		prefixes = append(prefixes, p)
	}
	sort.Strings(prefixes)
	return prefixes
}

func cloneSet(s map[string]struct{}) map[string]struct{} {
	c := make(map[string]struct{}, len(s))
	for k := range s {
		c[k] = struct{}{}
	}
	return c
}

func unionSet(dst, src map[string]struct{}) {
	for k := range src {
		dst[k] = struct{}{}
	}
}

func sortedKeys(s map[string]struct{}) []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
