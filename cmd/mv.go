// mv.go implements the "tdf mv" command for renaming entries.

package cmd

import (
	"fmt"

	"github.com/jpl-au/tdf/internal/log"
	"github.com/spf13/cobra"
)

func newMvCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mv <from> <to>",
		Short: "Rename an entry",
		Long: `Rename an entry, keeping its key and full version history.

  tdf mv drop/avatar assets/avatar`,
		Args: cobra.ExactArgs(2),
		RunE: func(c *cobra.Command, args []string) error {
			err := svc.Rename(c.Context(), args[0], args[1])

			log.Event("cli:mv", "rename").
				Author(Author()).
				Name(args[0]).
				Detail("to", args[1]).
				Write(err)

			if err != nil {
				return PrintJSONError(fmt.Errorf("rename %q: %w", args[0], err))
			}
			fmt.Fprintf(Out(), "renamed %s -> %s\n", args[0], args[1])
			return nil
		},
	}
}

func init() {
	rootCmd.AddCommand(newMvCmd())
}
