// diff.go implements the "tdf diff" command for comparing entry versions.
//
// Design: With no flags, diff compares the latest version with the previous
// one, matching the most common use case after an accidental edit. The -v
// flag uses colon syntax (1:3) matching sed/awk conventions.

package cmd

import (
	"fmt"
	"os"

	"github.com/jpl-au/tdf/internal/diff"
	"github.com/jpl-au/tdf/internal/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newDiffCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "diff <name> [name2]",
		Short: "Show differences between versions or entries",
		Long: `Compare an entry's versions, or two entries.

  tdf diff drop/avatar            # latest vs previous
  tdf diff drop/avatar -v 1:3     # version 1 vs version 3
  tdf diff drop/avatar drop/other # two entries, latest versions`,
		Args: cobra.RangeArgs(1, 2),
		RunE: runDiff,
	}
	c.Flags().StringP("versions", "v", "", "Version range to compare (e.g., 1:3)")
	c.Flags().BoolP("deleted", "D", false, "Allow diffing deleted entries")
	return c
}

func runDiff(c *cobra.Command, args []string) error {
	versions, _ := c.Flags().GetString("versions")
	del, _ := c.Flags().GetBool("deleted")
	name := args[0]

	opts := diff.Options{IncludeDeleted: del}
	if len(args) == 2 {
		opts.Name2 = args[1]
	}
	if versions != "" {
		v1, v2, err := diff.ParseVersionRange(versions)
		if err != nil {
			return PrintJSONError(err)
		}
		opts.Version1, opts.Version2 = v1, v2
	}

	var r diff.Result
	var err error

	defer func() {
		log.Event("cli:diff", "read").
			Author(Author()).
			Name(name).
			Detail("name2", opts.Name2).
			Detail("changed", r.Changed()).
			Write(err)
	}()

	if JSON() {
		r, err = svc.Diff(c.Context(), name, opts)
		if err != nil {
			return PrintJSONError(fmt.Errorf("diff %q: %w", name, err))
		}
		return PrintJSON(r)
	}

	colour := term.IsTerminal(int(os.Stdout.Fd()))
	r, err = diff.Run(c.Context(), Out(), svc, name, opts, colour)
	if err != nil {
		return PrintJSONError(fmt.Errorf("diff %q: %w", name, err))
	}
	return nil
}

func init() {
	rootCmd.AddCommand(newDiffCmd())
}
