// rm.go implements the "tdf rm" command for soft-deleting entries.
//
// Design: Deletion is soft and recoverable via "tdf restore" until a
// vacuum permanently removes it.

package cmd

import (
	"fmt"

	"github.com/jpl-au/tdf/internal/log"
	"github.com/spf13/cobra"
)

func newRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <name>...",
		Short: "Soft-delete entries",
		Long: `Soft-delete one or more entries. Deleted entries can be recovered
with "tdf restore" until "tdf vacuum" permanently removes them.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runRm,
	}
}

func runRm(c *cobra.Command, args []string) error {
	for _, name := range args {
		err := svc.Delete(c.Context(), name)

		log.Event("cli:rm", "delete").
			Author(Author()).
			Name(name).
			Write(err)

		if err != nil {
			return PrintJSONError(fmt.Errorf("rm %q: %w", name, err))
		}
		fmt.Fprintf(Out(), "deleted %s\n", name)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(newRmCmd())
}
