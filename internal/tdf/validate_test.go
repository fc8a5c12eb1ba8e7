package tdf_test

import (
	"strconv"
	"testing"

	"github.com/jpl-au/tdf/internal/tdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newRules builds a rule carrier matching the spec scenario: format
// data/format required, tag "a" required, tag "b" excluded.
func newRules() *tdf.Value {
	rules := tdf.New()
	rules.RequireFormat("data/format")
	rules.RequireTag("a")
	rules.ExcludeTag("b")
	return rules
}

func TestValidate(t *testing.T) {
	rules := newRules()

	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"excluded plain tag present", "data/format#a#b", false},
		{"excluded dynamic variant present", "data/format#a#b:b", false},
		{"passes all stages", "data/format#a#c:c", true},
		{"wrong format", "other/format#a", false},
		{"required tag missing", "data/format#c", false},
		{"excluded prefix does not match longer identity", "data/format#a#bb:x", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, rules.Validate(tdf.FromString(tt.input)))
		})
	}
}

func TestCheck_StageOrder(t *testing.T) {
	tests := []struct {
		name  string
		rules func() *tdf.Value
		input string
		stage tdf.Stage
	}{
		{
			name: "format fails before required",
			rules: func() *tdf.Value {
				r := tdf.New()
				r.RequireFormat("a/b")
				r.RequireTag("missing")
				return r
			},
			input: "c/d",
			stage: tdf.StageFormat,
		},
		{
			name: "excluded fails before required",
			rules: func() *tdf.Value {
				r := tdf.New()
				r.ExcludeTag("bad")
				r.RequireTag("missing")
				return r
			},
			input: "a/b#bad",
			stage: tdf.StageExcluded,
		},
		{
			name: "required fails before dynamic",
			rules: func() *tdf.Value {
				r := tdf.New()
				r.RequireTag("missing")
				r.SetValidator("k:", func(string) bool { return false })
				return r
			},
			input: "a/b#k:v",
			stage: tdf.StageRequired,
		},
		{
			name: "dynamic is the last stage",
			rules: func() *tdf.Value {
				r := tdf.New()
				r.SetValidator("k:", func(string) bool { return false })
				return r
			},
			input: "a/b#k:v",
			stage: tdf.StageDynamic,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := tt.rules().Check(tdf.FromString(tt.input))
			require.False(t, res.OK)
			assert.Equal(t, tt.stage, res.Stage)
			assert.NotEmpty(t, res.Detail)
		})
	}
}

func TestCheck_DynamicValidators(t *testing.T) {
	isInt := func(arg string) bool {
		_, err := strconv.Atoi(arg)
		return err == nil
	}

	rules := tdf.New()
	rules.SetValidator("size:", isInt)

	t.Run("missing prefix fails", func(t *testing.T) {
		res := rules.Check(tdf.FromString("x/y#other:1"))
		require.False(t, res.OK)
		assert.Equal(t, tdf.StageDynamic, res.Stage)
	})

	t.Run("argument passed to predicate", func(t *testing.T) {
		assert.True(t, rules.Validate(tdf.FromString("x/y#size:42")))
		assert.False(t, rules.Validate(tdf.FromString("x/y#size:large")))
	})

	t.Run("argument may contain colons", func(t *testing.T) {
		saw := ""
		r := tdf.New()
		r.SetValidator("url:", func(arg string) bool {
			saw = arg
			return true
		})
		require.True(t, r.Validate(tdf.FromString("x/y#url:https://example.com")))
		assert.Equal(t, "https://example.com", saw)
	})

	t.Run("removed validator no longer applies", func(t *testing.T) {
		rules.RemoveValidator("size:")
		defer rules.SetValidator("size:", isInt)
		assert.True(t, rules.Validate(tdf.FromString("x/y#size:large")))
	})
}

func TestValidate_Self(t *testing.T) {
	v := tdf.FromString("data/format#a")
	v.RequireTag("a")
	assert.True(t, v.Validate(nil))

	v.RequireTag("missing")
	assert.False(t, v.Validate(nil))
}

func TestValidate_EmptyRulesAcceptAnything(t *testing.T) {
	rules := tdf.New()
	for _, s := range []string{"", "#", "x/y#a#b:c", "no-slash"} {
		assert.True(t, rules.Validate(tdf.FromString(s)), "input %q", s)
	}
}

func TestValidate_DerivedRulesApply(t *testing.T) {
	// Scenario 5 from the grammar's property list: a container derived from
	// a base carries the base's tags and can be validated by the base's rules.
	base := tdf.FromString("example/example#base-tag")
	base.RequireTag("base-tag")

	v := tdf.FromStringWith("example/example#tag", base)
	assert.ElementsMatch(t, []string{"base-tag", "tag"}, v.Tags())
	assert.True(t, v.Validate(nil), "inherited required tag is satisfied by inherited data tag")
}
