package cmd

import (
	"strings"
	"testing"
)

func TestGet(t *testing.T) {
	t.Run("latest version", func(t *testing.T) {
		env := newTestEnv(t)
		env.run("set", "drop/avatar", "image/png")
		env.run("set", "drop/avatar", "image/png#icon")

		out := env.run("get", "drop/avatar")
		env.equals(out, "image/png#icon")
	})

	t.Run("specific version", func(t *testing.T) {
		env := newTestEnv(t)
		env.run("set", "drop/avatar", "image/png")
		env.run("set", "drop/avatar", "image/png#icon")

		out := env.run("get", "drop/avatar", "-v", "1")
		env.equals(out, "image/png")
	})

	t.Run("by key", func(t *testing.T) {
		env := newTestEnv(t)
		env.run("set", "drop/avatar", "image/png#icon")

		// First column of ls is the 8-character key
		lsOut := env.run("ls")
		key := strings.Fields(lsOut)[0]

		out := env.run("get", key)
		env.equals(out, "image/png#icon")
	})

	t.Run("missing entry", func(t *testing.T) {
		env := newTestEnv(t)

		_, err := env.runErr("get", "drop/missing")
		if err == nil {
			t.Error("get missing entry should fail")
		}
	})

	t.Run("JSON output", func(t *testing.T) {
		env := newTestEnv(t)
		env.run("set", "drop/avatar", "image/png#icon")

		out := env.run("get", "drop/avatar", "-o", "json")
		env.contains(out, `"name":"drop/avatar"`)
		env.contains(out, `"value":"image/png#icon"`)
		env.contains(out, `"created_at"`)
	})
}
