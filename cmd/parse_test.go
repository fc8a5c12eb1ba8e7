package cmd

import (
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	t.Run("full value", func(t *testing.T) {
		env := newBareEnv(t)

		out := env.run("parse", "image/png#icon#size:64")
		env.contains(out, "format:    image/png")
		env.contains(out, "tags:      icon")
		env.contains(out, "dynamic:   size:64")
	})

	t.Run("format only", func(t *testing.T) {
		env := newBareEnv(t)

		out := env.run("parse", "image/png")
		env.contains(out, "format:    image/png")
		if strings.Contains(out, "tags:") {
			t.Errorf("Parse(format only) = %q, want no tags line", out)
		}
	})

	t.Run("canonical shown for unordered input", func(t *testing.T) {
		env := newBareEnv(t)

		out := env.run("parse", "image/png#size:64#icon")
		env.contains(out, "canonical: image/png#icon#size:64")
	})

	t.Run("canonical hidden when already canonical", func(t *testing.T) {
		env := newBareEnv(t)

		out := env.run("parse", "image/png#icon#size:64")
		if strings.Contains(out, "canonical:") {
			t.Errorf("Parse(canonical input) = %q, want no canonical line", out)
		}
	})

	t.Run("works without registry", func(t *testing.T) {
		// parse is a pure codec operation and must not require init
		env := newBareEnv(t)

		env.run("parse", "text/markdown#doc")
	})

	t.Run("JSON output", func(t *testing.T) {
		env := newBareEnv(t)

		out := env.run("parse", "image/png#icon#size:64", "-o", "json")
		env.contains(out, `"format":"image/png"`)
		env.contains(out, `"tags":["icon"]`)
		env.contains(out, `"dynamic_tags":["size:64"]`)
	})
}
