// db.go implements the "tdf db" command for database management.
//
// Design: db is a NoStoreCommand because it manages database metadata
// (gitignore entries) without needing to open the databases themselves.
// This allows managing databases that might be locked or corrupted.

package cmd

import (
	"fmt"
	"path/filepath"
	"text/tabwriter"

	"github.com/jpl-au/tdf/internal/log"
	"github.com/jpl-au/tdf/internal/repo"
	"github.com/spf13/cobra"
)

func newDBCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "db [name]",
		Short: "List or manage databases",
		Long: `List databases or change their local/shared status.

  tdf db                    # list all databases
  tdf db --local            # mark default database as local
  tdf db icons --local      # mark icons database as local
  tdf db icons --share      # mark as shared
  tdf db --dir /path        # list databases in external directory

Local databases are not committed. Shared databases are.
If no name is given with --local or --share, operates on the default database.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runDB,
	}
	c.Flags().BoolP("local", "l", false, "Mark database as local")
	c.Flags().BoolP("share", "s", false, "Mark database as shared")
	c.MarkFlagsMutuallyExclusive("local", "share")
	return c
}

func runDB(c *cobra.Command, args []string) error {
	local, _ := c.Flags().GetBool("local")
	share, _ := c.Flags().GetBool("share")

	// The repo functions expect the .tdf directory path, not the project
	// root, so --dir gets the subdirectory appended.
	dir := Dir()
	tdfDir := ""
	if dir != "" {
		tdfDir = filepath.Join(dir, repo.Dir)
	}

	if len(args) == 0 && !local && !share {
		err := listDBs(tdfDir)

		log.Event("cli:db", "list").
			Author(Author()).
			Detail("dir", dir).
			Write(err)

		if err != nil {
			return PrintJSONError(fmt.Errorf("db list: %w", err))
		}
		return nil
	}

	name := ""
	if len(args) > 0 {
		name = args[0]
	}

	if local {
		err := repo.IgnoreDB(name, tdfDir)

		log.Event("cli:db", "ignore").
			Author(Author()).
			Detail("db", name).
			Detail("dir", dir).
			Write(err)

		if err != nil {
			return PrintJSONError(fmt.Errorf("db ignore %q: %w", name, err))
		}
		fmt.Fprintf(Out(), "%s marked as local\n", repo.DBFileName(name))
		return nil
	}

	if share {
		err := repo.UnignoreDB(name, tdfDir)

		log.Event("cli:db", "unignore").
			Author(Author()).
			Detail("db", name).
			Detail("dir", dir).
			Write(err)

		if err != nil {
			return PrintJSONError(fmt.Errorf("db unignore %q: %w", name, err))
		}
		fmt.Fprintf(Out(), "%s marked as shared\n", repo.DBFileName(name))
		return nil
	}

	// Name without flags: show status of that database.
	ignored, err := repo.IsIgnored(name, tdfDir)
	if err != nil {
		return PrintJSONError(fmt.Errorf("db status %q: %w", name, err))
	}
	status := "shared"
	if ignored {
		status = "local"
	}
	fmt.Fprintf(Out(), "%s: %s\n", repo.DBFileName(name), status)
	return nil
}

func listDBs(tdfDir string) error {
	dbs, err := repo.ListDBs(tdfDir)
	if err != nil {
		return err
	}

	if JSON() {
		return PrintJSON(dbs)
	}

	if len(dbs) == 0 {
		fmt.Fprintln(Out(), "No databases found")
		return nil
	}

	w := tabwriter.NewWriter(Out(), 0, 4, 2, ' ', 0)
	for _, d := range dbs {
		name := d.Name
		if name == "" {
			name = "(default)"
		}
		status := "shared"
		if d.Local {
			status = "local"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", name, d.File, status)
	}
	return w.Flush()
}

func init() {
	rootCmd.AddCommand(newDBCmd())
}
