package cmd

import (
	"strings"
	"testing"
)

func TestVacuum(t *testing.T) {
	t.Run("purges deleted", func(t *testing.T) {
		env := newTestEnv(t)
		env.run("set", "drop/avatar", "image/png#icon")
		env.run("rm", "drop/avatar")

		out := env.run("ls", "-D")
		env.contains(out, "drop/avatar")

		env.run("vacuum", "--force")

		out = env.run("ls", "-D")
		if strings.Contains(out, "drop/avatar") {
			t.Error("vacuumed entry still listed, want permanently removed")
		}
	})

	t.Run("preserves active", func(t *testing.T) {
		env := newTestEnv(t)
		env.run("set", "drop/active", "image/png")
		env.run("set", "drop/gone", "image/jpeg")
		env.run("rm", "drop/gone")

		env.run("vacuum", "--force")

		out := env.run("get", "drop/active")
		env.equals(out, "image/png")
	})

	t.Run("prefix scoped", func(t *testing.T) {
		env := newTestEnv(t)
		env.run("set", "drop/a", "image/png")
		env.run("set", "docs/b", "text/markdown")
		env.run("rm", "drop/a", "docs/b")

		env.run("vacuum", "--force", "-p", "drop/")

		out := env.run("ls", "-D")
		env.contains(out, "docs/b")
		if strings.Contains(out, "drop/a") {
			t.Error("prefix vacuum removed outside prefix or missed target")
		}
	})

	t.Run("dry run keeps entries", func(t *testing.T) {
		env := newTestEnv(t)
		env.run("set", "drop/avatar", "image/png#icon")
		env.run("rm", "drop/avatar")

		out := env.run("vacuum", "--dry-run")
		env.contains(out, "drop/avatar")

		out = env.run("ls", "-D")
		env.contains(out, "drop/avatar")
	})

	t.Run("nothing to vacuum", func(t *testing.T) {
		env := newTestEnv(t)
		env.run("set", "drop/avatar", "image/png#icon")

		out := env.run("vacuum", "--force")
		env.contains(out, "No entries to vacuum")
	})

	t.Run("confirmation declined", func(t *testing.T) {
		env := newTestEnv(t)
		env.run("set", "drop/avatar", "image/png#icon")
		env.run("rm", "drop/avatar")

		out := env.runStdin("n\n", "vacuum")
		env.contains(out, "Cancelled")

		out = env.run("ls", "-D")
		env.contains(out, "drop/avatar")
	})

	t.Run("invalid duration", func(t *testing.T) {
		env := newTestEnv(t)

		_, err := env.runErr("vacuum", "--force", "--older-than", "bogus")
		if err == nil {
			t.Error("invalid --older-than should fail")
		}
	})
}
