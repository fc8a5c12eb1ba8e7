package cmd

import (
	"strings"
	"testing"
)

func TestTag_Add(t *testing.T) {
	t.Run("plain tag", func(t *testing.T) {
		env := newTestEnv(t)
		env.run("set", "drop/avatar", "image/png")

		out := env.run("tag", "add", "drop/avatar", "icon")
		env.contains(out, "drop/avatar v2: image/png#icon")
	})

	t.Run("dynamic tag", func(t *testing.T) {
		env := newTestEnv(t)
		env.run("set", "drop/avatar", "image/png#icon")

		out := env.run("tag", "add", "drop/avatar", "size:64")
		env.contains(out, "image/png#icon#size:64")
	})

	t.Run("duplicate is idempotent", func(t *testing.T) {
		env := newTestEnv(t)
		env.run("set", "drop/avatar", "image/png#icon")

		out := env.run("tag", "add", "drop/avatar", "icon")
		env.contains(out, "image/png#icon")
		if strings.Contains(out, "icon#icon") {
			t.Error("duplicate tag added twice, want set semantics")
		}
	})
}

func TestTag_Rm(t *testing.T) {
	t.Run("plain tag", func(t *testing.T) {
		env := newTestEnv(t)
		env.run("set", "drop/avatar", "image/png#icon#raster")

		out := env.run("tag", "rm", "drop/avatar", "raster")
		env.contains(out, "image/png#icon")
		if strings.Contains(out, "raster") {
			t.Error("removed tag still present")
		}
	})

	t.Run("dynamic by prefix", func(t *testing.T) {
		env := newTestEnv(t)
		env.run("set", "drop/avatar", "image/png#icon#size:64")

		out := env.run("tag", "rm", "drop/avatar", "size:")
		env.contains(out, "image/png#icon")
		if strings.Contains(out, "size:") {
			t.Error("removed dynamic tag still present")
		}
	})
}

func TestTag_Update(t *testing.T) {
	t.Run("replaces argument", func(t *testing.T) {
		env := newTestEnv(t)
		env.run("set", "drop/avatar", "image/png#size:64")

		out := env.run("tag", "update", "drop/avatar", "size:128")
		env.contains(out, "image/png#size:128")
	})

	t.Run("rejects plain tag", func(t *testing.T) {
		env := newTestEnv(t)
		env.run("set", "drop/avatar", "image/png#icon")

		_, err := env.runErr("tag", "update", "drop/avatar", "icon")
		if err == nil {
			t.Error("tag update without ':' should fail")
		}
	})
}

func TestTag_Ls(t *testing.T) {
	env := newTestEnv(t)
	env.run("set", "drop/avatar", "image/png#icon#size:64")

	out := env.run("tag", "ls", "drop/avatar")
	env.contains(out, "format:  image/png")
	env.contains(out, "tags:    icon")
	env.contains(out, "dynamic: size:64")
}

func TestTag_VersionPerMutation(t *testing.T) {
	env := newTestEnv(t)
	env.run("set", "drop/avatar", "image/png")
	env.run("tag", "add", "drop/avatar", "icon")
	env.run("tag", "add", "drop/avatar", "size:64")
	out := env.run("tag", "update", "drop/avatar", "size:128")

	env.contains(out, "v4")

	history := env.run("history", "drop/avatar")
	lines := strings.Split(strings.TrimSpace(history), "\n")
	if len(lines) != 4 {
		t.Errorf("history has %d versions, want 4", len(lines))
	}
}
