package profile_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jpl-au/tdf/internal/profile"
	"github.com/jpl-au/tdf/internal/tdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeProfiles(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "profiles.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadFile(t *testing.T) {
	path := writeProfiles(t, `
profiles:
  icon:
    format: image/png
    require: [icon]
    exclude: [draft]
    dynamic:
      size:
        kind: int
        min: 16
        max: 512
  doc:
    require: [published]
`)

	set, err := profile.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"doc", "icon"}, set.Names())

	p, err := set.Get("icon")
	require.NoError(t, err)
	assert.Equal(t, "image/png", p.Format)
	assert.Equal(t, []string{"icon"}, p.Require)

	_, err = set.Get("missing")
	assert.ErrorIs(t, err, profile.ErrNotFound)
}

func TestLoadFile_Missing(t *testing.T) {
	set, err := profile.LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Empty(t, set.Names())
}

func TestLoadFile_Malformed(t *testing.T) {
	path := writeProfiles(t, "profiles: [not a map")
	_, err := profile.LoadFile(path)
	assert.Error(t, err)
}

func TestCompile_Validation(t *testing.T) {
	path := writeProfiles(t, `
profiles:
  icon:
    format: image/png
    require: [icon]
    exclude: [draft]
    dynamic:
      size:
        kind: int
        min: 16
        max: 512
`)

	set, err := profile.LoadFile(path)
	require.NoError(t, err)

	rules, err := set.Compile("icon")
	require.NoError(t, err)

	tests := []struct {
		name  string
		value string
		ok    bool
		stage tdf.Stage
	}{
		{"valid", "image/png#icon#size:64", true, ""},
		{"wrong format", "image/jpeg#icon#size:64", false, tdf.StageFormat},
		{"excluded tag", "image/png#icon#draft#size:64", false, tdf.StageExcluded},
		{"missing required", "image/png#size:64", false, tdf.StageRequired},
		{"size too small", "image/png#icon#size:8", false, tdf.StageDynamic},
		{"size too large", "image/png#icon#size:1024", false, tdf.StageDynamic},
		{"size not a number", "image/png#icon#size:big", false, tdf.StageDynamic},
		{"size missing", "image/png#icon", false, tdf.StageDynamic},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := rules.Check(tdf.FromString(tt.value))
			assert.Equal(t, tt.ok, r.OK)
			if !tt.ok {
				assert.Equal(t, tt.stage, r.Stage)
			}
		})
	}
}

func TestCompile_Kinds(t *testing.T) {
	path := writeProfiles(t, `
profiles:
  kinds:
    dynamic:
      owner:
        kind: nonempty
      lang:
        kind: enum
        values: [en, fr]
      checksum:
        kind: regexp
        pattern: "^[0-9a-f]{8}$"
`)

	set, err := profile.LoadFile(path)
	require.NoError(t, err)
	rules, err := set.Compile("kinds")
	require.NoError(t, err)

	valid := tdf.FromString("text/plain#owner:sam#lang:fr#checksum:deadbeef")
	assert.True(t, rules.Validate(valid))

	assert.False(t, rules.Validate(tdf.FromString("text/plain#owner:#lang:fr#checksum:deadbeef")))
	assert.False(t, rules.Validate(tdf.FromString("text/plain#owner:sam#lang:de#checksum:deadbeef")))
	assert.False(t, rules.Validate(tdf.FromString("text/plain#owner:sam#lang:fr#checksum:xyz")))
}

func TestCompile_InvalidRules(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown kind", "profiles:\n  p:\n    dynamic:\n      x:\n        kind: bogus\n"},
		{"bad pattern", "profiles:\n  p:\n    dynamic:\n      x:\n        kind: regexp\n        pattern: \"[\"\n"},
		{"empty enum", "profiles:\n  p:\n    dynamic:\n      x:\n        kind: enum\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set, err := profile.LoadFile(writeProfiles(t, tt.content))
			require.NoError(t, err)
			_, err = set.Compile("p")
			assert.ErrorIs(t, err, profile.ErrInvalidRule)
		})
	}
}

func TestCompile_PrefixColonOptional(t *testing.T) {
	path := writeProfiles(t, `
profiles:
  p:
    dynamic:
      "size:":
        kind: nonempty
`)

	set, err := profile.LoadFile(path)
	require.NoError(t, err)
	rules, err := set.Compile("p")
	require.NoError(t, err)
	assert.Equal(t, []string{"size:"}, rules.ValidatorPrefixes())
}
