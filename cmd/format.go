// format.go implements the "tdf format" command for replacing the format
// fragment of an entry's value.

package cmd

import (
	"fmt"

	"github.com/jpl-au/tdf/internal/log"
	"github.com/spf13/cobra"
)

func newFormatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "format <name> <format>",
		Short: "Replace an entry's format",
		Long: `Replace the format fragment of an entry's value, keeping its tags.
Creates a new version.

  tdf format drop/avatar image/jpeg`,
		Args: cobra.ExactArgs(2),
		RunE: runFormat,
	}
}

func runFormat(c *cobra.Command, args []string) error {
	name, format := args[0], args[1]

	e, err := svc.SetFormat(c.Context(), name, format, Author())

	b := log.Event("cli:format", "write").Author(Author()).Name(name).Detail("format", format)
	if e != nil {
		b = b.ResultVersion(e.Version)
	}
	b.Write(err)

	if err != nil {
		return PrintJSONError(fmt.Errorf("format %q: %w", name, err))
	}

	if JSON() {
		return PrintJSON(e.ToJSON(true))
	}
	fmt.Fprintf(Out(), "%s v%d: %s\n", e.Name, e.Version, e.Value)
	return nil
}

func init() {
	rootCmd.AddCommand(newFormatCmd())
}
