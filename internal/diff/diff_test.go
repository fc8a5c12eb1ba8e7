package diff

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompute_Summary(t *testing.T) {
	tests := []struct {
		name string
		old  string
		new  string
		want []string
	}{
		{
			name: "identical values",
			old:  "image/png#icon#size:64",
			new:  "image/png#icon#size:64",
			want: nil,
		},
		{
			name: "format change",
			old:  "image/png",
			new:  "image/jpeg",
			want: []string{"format: image/png -> image/jpeg"},
		},
		{
			name: "tag added",
			old:  "image/png",
			new:  "image/png#icon",
			want: []string{"+ #icon"},
		},
		{
			name: "tag removed",
			old:  "image/png#icon#raster",
			new:  "image/png#raster",
			want: []string{"- #icon"},
		},
		{
			name: "dynamic argument updated",
			old:  "image/png#size:32",
			new:  "image/png#size:64",
			want: []string{"~ #size:32 -> #size:64"},
		},
		{
			name: "dynamic tag added",
			old:  "image/png",
			new:  "image/png#url:https://example.com",
			want: []string{"+ #url:https://example.com"},
		},
		{
			name: "dynamic tag removed",
			old:  "image/png#size:64",
			new:  "image/png",
			want: []string{"- #size:64"},
		},
		{
			name: "mixed changes",
			old:  "image/png#icon#size:32",
			new:  "image/jpeg#photo#size:64",
			want: []string{
				"format: image/png -> image/jpeg",
				"- #icon",
				"+ #photo",
				"~ #size:32 -> #size:64",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Compute(tt.old, tt.new, "old", "new")
			assert.Equal(t, tt.want, r.Summary)
			assert.Equal(t, len(tt.want) > 0, r.Changed())
		})
	}
}

func TestCompute_TextDiff(t *testing.T) {
	r := Compute("image/png#icon", "image/png#badge", "a (v1)", "a (v2)")

	assert.Contains(t, r.Diff, "- #icon")
	assert.Contains(t, r.Diff, "+ #badge")
	assert.Contains(t, r.Diff, "  image/png")
}

func TestResult_Format(t *testing.T) {
	r := Compute("image/png", "image/jpeg", "a (v1)", "a (v2)")

	out := r.Format(false)
	assert.True(t, strings.HasPrefix(out, "--- a (v1)\n+++ a (v2)\n"))
	assert.Contains(t, out, "format: image/png -> image/jpeg")
}

func TestColourise(t *testing.T) {
	in := "- #old\n+ #new\n~ #size:1 -> #size:2\n  unchanged\n"
	out := Colourise(in)

	assert.Contains(t, out, "\033[31m- #old\033[0m")
	assert.Contains(t, out, "\033[32m+ #new\033[0m")
	assert.Contains(t, out, "\033[33m~ #size:1 -> #size:2\033[0m")
	assert.Contains(t, out, "  unchanged\n")
}

func TestParseVersionRange(t *testing.T) {
	v1, v2, err := ParseVersionRange("3:5")
	require.NoError(t, err)
	assert.Equal(t, 3, v1)
	assert.Equal(t, 5, v2)

	_, _, err = ParseVersionRange("3")
	assert.Error(t, err)

	_, _, err = ParseVersionRange("a:b")
	assert.Error(t, err)
}
