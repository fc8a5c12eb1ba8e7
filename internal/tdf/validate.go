// validate.go implements the four-stage validation pipeline carried by a
// Value: format match, exclusion, required-tag superset, then per-prefix
// dynamic predicates. Stages always run in this order and the pipeline
// stops at the first failure.

package tdf

import (
	"fmt"
	"strings"
)

// Stage identifies a validation pipeline stage.
type Stage string

const (
	// StageFormat checks the candidate's format against the required format.
	StageFormat Stage = "format"
	// StageExcluded checks that no excluded tag is present.
	StageExcluded Stage = "excluded"
	// StageRequired checks that every required tag is present.
	StageRequired Stage = "required"
	// StageDynamic runs the per-prefix argument predicates.
	StageDynamic Stage = "dynamic"
)

// CheckResult reports the outcome of a validation run. When OK is false,
// Stage names the first stage that failed and Detail says why.
type CheckResult struct {
	OK     bool   `json:"ok"`
	Stage  Stage  `json:"stage,omitempty"`
	Detail string `json:"detail,omitempty"`
}

// Validate evaluates candidate against this value's rules and reports the
// verdict. A nil candidate means self-validation. Validation never errors -
// an impossible rule set simply yields false.
func (v *Value) Validate(candidate *Value) bool {
	return v.Check(candidate).OK
}

// Check evaluates candidate against this value's rules, reporting which
// stage failed when the verdict is negative. A nil candidate means
// self-validation.
func (v *Value) Check(candidate *Value) CheckResult {
	c := candidate
	if c == nil {
		c = v
	}

	if v.formatRequired && v.requiredFormat != c.format {
		return CheckResult{
			Stage:  StageFormat,
			Detail: fmt.Sprintf("format %q does not match required %q", c.format, v.requiredFormat),
		}
	}

	for tag := range v.excluded {
		if c.carriesTag(tag) {
			return CheckResult{
				Stage:  StageExcluded,
				Detail: fmt.Sprintf("excluded tag %q present", tag),
			}
		}
	}

	for tag := range v.required {
		if _, ok := c.tags[tag]; !ok {
			return CheckResult{
				Stage:  StageRequired,
				Detail: fmt.Sprintf("required tag %q missing", tag),
			}
		}
	}

	for _, prefix := range v.ValidatorPrefixes() {
		match, found := c.firstDynamicWithPrefix(prefix)
		if !found {
			return CheckResult{
				Stage:  StageDynamic,
				Detail: fmt.Sprintf("no dynamic tag with prefix %q", prefix),
			}
		}
		if !v.validators[prefix](dynamicArgument(match)) {
			return CheckResult{
				Stage:  StageDynamic,
				Detail: fmt.Sprintf("dynamic tag %q rejected by validator %q", match, prefix),
			}
		}
	}

	return CheckResult{OK: true}
}

// carriesTag reports whether the value carries tag in either set: exact
// membership in the plain set, or any dynamic tag whose identity prefix is
// tag. Exclusion uses this wider test - excluding "b" also rejects "b:x".
func (v *Value) carriesTag(tag string) bool {
	if _, ok := v.tags[tag]; ok {
		return true
	}
	prefix := tag
	if !strings.Contains(tag, ":") {
		prefix += ":"
	}
	_, found := v.firstDynamicWithPrefix(prefix)
	return found
}

// firstDynamicWithPrefix returns the lexicographically first dynamic tag
// starting with prefix. Sorted iteration keeps the verdict deterministic
// when several tags share a prefix.
func (v *Value) firstDynamicWithPrefix(prefix string) (string, bool) {
	for _, dyn := range sortedKeys(v.dynamic) {
		if strings.HasPrefix(dyn, prefix) {
			return dyn, true
		}
	}
	return "", false
}
