package tdf_test

import (
	"testing"

	"github.com/jpl-au/tdf/internal/tdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  tdf.Record
	}{
		{
			name:  "format with plain and dynamic tags",
			input: "data/format#a#b:b",
			want:  tdf.Record{Format: "data/format", Tags: []string{"a"}, DynamicTags: []string{"b:b"}},
		},
		{
			name:  "format only",
			input: "data/format",
			want:  tdf.Record{Format: "data/format"},
		},
		{
			name:  "empty input",
			input: "",
			want:  tdf.Record{Format: ""},
		},
		{
			name:  "missing format",
			input: "#a#b",
			want:  tdf.Record{Format: "", Tags: []string{"a", "b"}},
		},
		{
			name:  "repeated separators keep empty fragments",
			input: "x/y##a",
			want:  tdf.Record{Format: "x/y", Tags: []string{"", "a"}},
		},
		{
			name:  "argument keeps later colons",
			input: "x/y#url:https://example.com",
			want:  tdf.Record{Format: "x/y", DynamicTags: []string{"url:https://example.com"}},
		},
		{
			name:  "format without slash accepted verbatim",
			input: "plain#a",
			want:  tdf.Record{Format: "plain", Tags: []string{"a"}},
		},
		{
			name:  "colon-only fragment is dynamic",
			input: "x/y#:",
			want:  tdf.Record{Format: "x/y", DynamicTags: []string{":"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tdf.Parse(tt.input))
		})
	}
}

func TestRecordString(t *testing.T) {
	tests := []struct {
		name string
		rec  tdf.Record
		want string
	}{
		{
			name: "inserts separator before every tag",
			rec:  tdf.Record{Format: "data/format", Tags: []string{"a"}, DynamicTags: []string{"b:b"}},
			want: "data/format#a#b:b",
		},
		{
			name: "plain tags before dynamic tags",
			rec:  tdf.Record{Format: "x/y", Tags: []string{"p"}, DynamicTags: []string{"d:1"}},
			want: "x/y#p#d:1",
		},
		{
			name: "stray hash stripped from tags",
			rec:  tdf.Record{Format: "x/y", Tags: []string{"a#b"}},
			want: "x/y#ab",
		},
		{
			name: "empty record",
			rec:  tdf.Record{Format: ""},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.rec.String())
		})
	}
}

func TestRoundTrip(t *testing.T) {
	// parse(serialize(x)) == x for records whose format and tags are
	// '#'-free. Fragment order is preserved by the codec itself.
	recs := []tdf.Record{
		{Format: "data/format", Tags: []string{"a", "b"}, DynamicTags: []string{"k:v"}},
		{Format: "image/png", DynamicTags: []string{"w:100", "h:2:3"}},
		{Format: "x/y"},
		{Format: "", Tags: []string{"only"}},
	}

	for _, rec := range recs {
		got := tdf.Parse(rec.String())
		require.Equal(t, rec, got, "round-trip of %q", rec.String())
	}
}
