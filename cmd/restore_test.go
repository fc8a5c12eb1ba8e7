package cmd

import "testing"

func TestRestore(t *testing.T) {
	t.Run("restore deleted", func(t *testing.T) {
		env := newTestEnv(t)
		env.run("set", "drop/avatar", "image/png#icon")
		env.run("rm", "drop/avatar")

		out := env.run("restore", "drop/avatar")
		env.contains(out, "restored drop/avatar")

		out = env.run("get", "drop/avatar")
		env.equals(out, "image/png#icon")
	})

	t.Run("history survives delete and restore", func(t *testing.T) {
		env := newTestEnv(t)
		env.run("set", "drop/avatar", "image/png")
		env.run("set", "drop/avatar", "image/png#icon")
		env.run("rm", "drop/avatar")
		env.run("restore", "drop/avatar")

		out := env.run("get", "drop/avatar", "-v", "1")
		env.equals(out, "image/png")
	})

	t.Run("restore active entry fails", func(t *testing.T) {
		env := newTestEnv(t)
		env.run("set", "drop/avatar", "image/png#icon")

		_, err := env.runErr("restore", "drop/avatar")
		if err == nil {
			t.Error("restore of active entry should fail")
		}
	})
}
