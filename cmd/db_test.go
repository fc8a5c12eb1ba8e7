package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDB(t *testing.T) {
	t.Run("list databases", func(t *testing.T) {
		env := newBareEnv(t)
		env.run("init")
		env.run("init", "--db", "assets")

		out := env.run("db")
		env.contains(out, "tdf.db")
		env.contains(out, "tdf-assets.db")
		env.contains(out, "shared")
	})

	t.Run("mark as local", func(t *testing.T) {
		env := newBareEnv(t)
		env.run("init", "--db", "scratch")

		out := env.run("db", "scratch", "--local")
		env.contains(out, "marked as local")

		gitignore, err := os.ReadFile(filepath.Join(env.dir, ".tdf", ".gitignore"))
		require.NoError(t, err)
		assert.Contains(t, string(gitignore), "tdf-scratch.db")

		out = env.run("db", "scratch")
		env.contains(out, "local")
	})

	t.Run("mark as shared", func(t *testing.T) {
		env := newBareEnv(t)
		env.run("init", "--db", "scratch", "--local")

		out := env.run("db", "scratch", "--share")
		env.contains(out, "marked as shared")

		out = env.run("db", "scratch")
		env.contains(out, "shared")
	})

	t.Run("local and share mutually exclusive", func(t *testing.T) {
		env := newBareEnv(t)
		env.run("init")

		_, err := env.runErr("db", "--local", "--share")
		assert.Error(t, err)
	})

	t.Run("no databases", func(t *testing.T) {
		env := newBareEnv(t)

		_, err := env.runErr("db")
		assert.Error(t, err, "db without a .tdf directory should fail")
	})
}
