// restore.go implements the "tdf restore" command for recovering
// soft-deleted entries.

package cmd

import (
	"fmt"

	"github.com/jpl-au/tdf/internal/log"
	"github.com/spf13/cobra"
)

func newRestoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "restore <name>...",
		Short: "Restore soft-deleted entries",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runRestore,
	}
}

func runRestore(c *cobra.Command, args []string) error {
	for _, name := range args {
		err := svc.Restore(c.Context(), name)

		log.Event("cli:restore", "restore").
			Author(Author()).
			Name(name).
			Write(err)

		if err != nil {
			return PrintJSONError(fmt.Errorf("restore %q: %w", name, err))
		}
		fmt.Fprintf(Out(), "restored %s\n", name)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(newRestoreCmd())
}
