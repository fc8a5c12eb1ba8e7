package cmd

import (
	"strings"
	"testing"
)

func TestLs(t *testing.T) {
	t.Run("empty registry", func(t *testing.T) {
		env := newTestEnv(t)

		out := env.run("ls")
		env.contains(out, "No entries found")
	})

	t.Run("basic listing", func(t *testing.T) {
		env := newTestEnv(t)
		env.run("set", "drop/avatar", "image/png#icon")
		env.run("set", "drop/banner", "image/jpeg")
		env.run("set", "docs/readme", "text/markdown#doc")

		out := env.run("ls")
		env.contains(out, "drop/avatar")
		env.contains(out, "drop/banner")
		env.contains(out, "docs/readme")
	})

	t.Run("prefix filter", func(t *testing.T) {
		env := newTestEnv(t)
		env.run("set", "drop/avatar", "image/png#icon")
		env.run("set", "docs/readme", "text/markdown#doc")

		out := env.run("ls", "drop/")
		env.contains(out, "drop/avatar")
		if strings.Contains(out, "docs/readme") {
			t.Error("ls drop/ contains docs/readme, want excluded")
		}
	})

	t.Run("tag filter is identity not substring", func(t *testing.T) {
		env := newTestEnv(t)
		env.run("set", "drop/avatar", "image/png#icon")
		env.run("set", "docs/words", "text/plain#lexicon")

		out := env.run("ls", "-t", "icon")
		env.contains(out, "drop/avatar")
		if strings.Contains(out, "docs/words") {
			t.Error("ls -t icon matched #lexicon, want tag identity")
		}
	})

	t.Run("dynamic prefix filter", func(t *testing.T) {
		env := newTestEnv(t)
		env.run("set", "drop/avatar", "image/png#size:64")
		env.run("set", "drop/banner", "image/jpeg#icon")

		out := env.run("ls", "-t", "size:")
		env.contains(out, "drop/avatar")
		if strings.Contains(out, "drop/banner") {
			t.Error("ls -t size: matched entry without size:, want excluded")
		}
	})

	t.Run("deleted entries hidden by default", func(t *testing.T) {
		env := newTestEnv(t)
		env.run("set", "drop/avatar", "image/png#icon")
		env.run("rm", "drop/avatar")

		out := env.run("ls")
		if strings.Contains(out, "drop/avatar") {
			t.Error("ls shows deleted entry, want hidden")
		}

		out = env.run("ls", "-D")
		env.contains(out, "drop/avatar")
		env.contains(out, "(deleted)")
	})

	t.Run("deleted only", func(t *testing.T) {
		env := newTestEnv(t)
		env.run("set", "drop/avatar", "image/png#icon")
		env.run("set", "drop/banner", "image/jpeg")
		env.run("rm", "drop/avatar")

		out := env.run("ls", "--deleted-only")
		env.contains(out, "drop/avatar")
		if strings.Contains(out, "drop/banner") {
			t.Error("ls --deleted-only shows active entry, want excluded")
		}
	})

	t.Run("JSON output", func(t *testing.T) {
		env := newTestEnv(t)
		env.run("set", "drop/avatar", "image/png#icon")

		out := env.run("ls", "-o", "json")
		env.contains(out, `"name":"drop/avatar"`)
		env.contains(out, `"key"`)
	})
}
