package cmd

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInit(t *testing.T) {
	t.Run("basic init", func(t *testing.T) {
		env := newBareEnv(t)

		out := env.run("init")
		env.contains(out, "Initialised tdf registry in .tdf/tdf.db")

		assert.DirExists(t, filepath.Join(env.dir, ".tdf"))
		assert.FileExists(t, filepath.Join(env.dir, ".tdf", "tdf.db"))
		// init does NOT create config.yaml - config is managed separately
		// via "tdf config", following the git model.
		assert.NoFileExists(t, filepath.Join(env.dir, ".tdf", "config.yaml"))
	})

	t.Run("already initialised", func(t *testing.T) {
		env := newBareEnv(t)
		env.run("init")

		_, err := env.runErr("init")
		assert.Error(t, err)
	})

	t.Run("force reinit", func(t *testing.T) {
		env := newBareEnv(t)
		env.run("init")
		env.run("set", "drop/avatar", "image/png#icon")

		env.run("init", "--force")

		assert.FileExists(t, filepath.Join(env.dir, ".tdf", "tdf.db"))
		_, err := env.runErr("get", "drop/avatar")
		assert.Error(t, err, "force reinit should start empty")
	})

	t.Run("named database", func(t *testing.T) {
		env := newBareEnv(t)

		out := env.run("init", "--db", "assets")
		env.contains(out, "tdf-assets.db")

		assert.FileExists(t, filepath.Join(env.dir, ".tdf", "tdf-assets.db"))
	})

	t.Run("local and dir incompatible", func(t *testing.T) {
		env := newBareEnv(t)
		target := t.TempDir()

		out, err := env.runErr("init", "--dir", target, "--local")
		assert.Error(t, err)
		env.contains(out, "cannot use --local with --dir")
	})

	t.Run("init in external directory", func(t *testing.T) {
		env := newBareEnv(t)
		target := t.TempDir()

		env.run("init", "--dir", target)

		assert.FileExists(t, filepath.Join(target, ".tdf", "tdf.db"))
	})
}
