// init.go implements the "tdf init" command for repository initialisation.
//
// Init is special because it runs before a registry exists and creates the
// initial database.
//
// Design: Init does NOT create config - that's managed separately via
// "tdf config". This follows git's model where init creates repository
// structure and config is separate. The --local flag controls whether the
// database is committed to git or gitignored.

package cmd

import (
	"fmt"

	"github.com/jpl-au/tdf/internal/log"
	"github.com/jpl-au/tdf/internal/registry"
	"github.com/jpl-au/tdf/internal/repo"
	"github.com/spf13/cobra"
)

func newInitCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "init",
		Short: "Initialise a new tdf registry",
		Long: `Creates a .tdf/tdf.db database in the current directory.

Use --db to create additional databases:
  tdf init --db assets    # creates .tdf/tdf-assets.db

Use --dir to create in a different directory:
  tdf init --dir /path/to/project    # creates /path/to/project/.tdf/tdf.db

Use --local to exclude from git:
  tdf init --db scratch --local    # creates tdf-scratch.db, not committed

Note: init does not create config. Use "tdf config" to set up configuration.`,
		RunE: runInit,
	}
	c.Flags().BoolP("local", "l", false, "Mark database as local (gitignored)")
	return c
}

func runInit(c *cobra.Command, _ []string) error {
	local, _ := c.Flags().GetBool("local")
	dbName, dirPath := DB(), Dir()

	// --local adds the database to the current project's .gitignore; --dir
	// creates the database elsewhere, so the combination makes no sense.
	if local && dirPath != "" {
		return PrintJSONError(fmt.Errorf("cannot use --local with --dir: --local modifies the current project's .gitignore, but --dir creates the database elsewhere"))
	}

	err := registry.Init(Force(), dbName, local, dirPath)

	log.Event("cli:init", "init").
		Author(Author()).
		Detail("db", dbName).
		Detail("dir", dirPath).
		Detail("local", local).
		Write(err)

	if err != nil {
		return PrintJSONError(fmt.Errorf("init: %w", err))
	}

	dbFile := repo.DBFileName(dbName)
	loc := ".tdf/" + dbFile
	if dirPath != "" {
		loc = dirPath + "/.tdf/" + dbFile
	}
	fmt.Fprintf(Out(), "Initialised tdf registry in %s\n", loc)
	return nil
}

func init() {
	rootCmd.AddCommand(newInitCmd())
}
