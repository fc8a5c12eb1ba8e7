package cmd

import "testing"

func TestFormat(t *testing.T) {
	t.Run("replaces format keeps tags", func(t *testing.T) {
		env := newTestEnv(t)
		env.run("set", "drop/avatar", "image/png#icon#size:64")

		out := env.run("format", "drop/avatar", "image/jpeg")
		env.contains(out, "drop/avatar v2: image/jpeg#icon#size:64")
	})

	t.Run("missing entry", func(t *testing.T) {
		env := newTestEnv(t)

		_, err := env.runErr("format", "drop/missing", "image/png")
		if err == nil {
			t.Error("format on missing entry should fail")
		}
	})
}
