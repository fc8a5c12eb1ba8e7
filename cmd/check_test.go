package cmd

import (
	"testing"
)

func TestCheck_Inline(t *testing.T) {
	t.Run("pass", func(t *testing.T) {
		env := newBareEnv(t)

		out := env.run("check", "image/png#icon", "--format", "image/png", "--require", "icon")
		env.equals(out, "ok")
	})

	t.Run("format mismatch", func(t *testing.T) {
		env := newBareEnv(t)

		out, err := env.runErr("check", "image/jpeg#icon", "--format", "image/png")
		if err == nil {
			t.Error("check with wrong format should exit non-zero")
		}
		env.contains(out, "fail (format)")
	})

	t.Run("missing required tag", func(t *testing.T) {
		env := newBareEnv(t)

		out, err := env.runErr("check", "image/png", "--require", "icon")
		if err == nil {
			t.Error("check with missing tag should exit non-zero")
		}
		env.contains(out, "fail (required)")
	})

	t.Run("excluded tag present", func(t *testing.T) {
		env := newBareEnv(t)

		out, err := env.runErr("check", "image/png#draft", "--exclude", "draft")
		if err == nil {
			t.Error("check with excluded tag should exit non-zero")
		}
		env.contains(out, "fail (excluded)")
	})
}

func TestCheck_Profile(t *testing.T) {
	t.Run("raw value without registry", func(t *testing.T) {
		env := newBareEnv(t)
		env.write(".tdf/profiles.yaml", testProfiles)

		out := env.run("check", "image/png#icon#size:64", "--profile", "icon")
		env.equals(out, "ok")
	})

	t.Run("dynamic rule bounds", func(t *testing.T) {
		env := newBareEnv(t)
		env.write(".tdf/profiles.yaml", testProfiles)

		out, err := env.runErr("check", "image/png#icon#size:9999", "--profile", "icon")
		if err == nil {
			t.Error("size out of bounds should exit non-zero")
		}
		env.contains(out, "fail (dynamic)")
	})

	t.Run("unknown profile", func(t *testing.T) {
		env := newBareEnv(t)
		env.write(".tdf/profiles.yaml", testProfiles)

		_, err := env.runErr("check", "image/png#icon", "--profile", "nope")
		if err == nil {
			t.Error("unknown profile should fail")
		}
	})

	t.Run("stored entry", func(t *testing.T) {
		env := newTestEnv(t)
		env.write(".tdf/profiles.yaml", testProfiles)
		env.run("set", "drop/avatar", "image/png#icon#size:64")

		out := env.run("check", "drop/avatar", "--profile", "icon")
		env.equals(out, "ok")
	})

	t.Run("default profile from config", func(t *testing.T) {
		env := newTestEnv(t)
		env.write(".tdf/profiles.yaml", testProfiles)
		env.run("config", "--local", "check.profile", "icon")

		out := env.run("check", "image/png#icon#size:64")
		env.equals(out, "ok")
	})

	t.Run("inline overrides layer on profile", func(t *testing.T) {
		env := newBareEnv(t)
		env.write(".tdf/profiles.yaml", testProfiles)

		// Profile passes, but inline --require adds an extra demand
		_, err := env.runErr("check", "image/png#icon#size:64", "--profile", "icon", "--require", "raster")
		if err == nil {
			t.Error("inline require should tighten the profile")
		}
	})
}

func TestCheck_JSON(t *testing.T) {
	env := newBareEnv(t)

	out := env.run("check", "image/png#icon", "--format", "image/png", "-o", "json")
	env.contains(out, `"ok":true`)
}
