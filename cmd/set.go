// set.go implements the "tdf set" command for writing tagged values.
//
// Design: Every set creates a new version; nothing is updated in place.
// The value can come from the argument or stdin, making the command usable
// both interactively and in pipelines.

package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/jpl-au/tdf/internal/log"
	"github.com/spf13/cobra"
)

func newSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <name> [value]",
		Short: "Write a tagged value to an entry",
		Long: `Create or update an entry with a tagged value. Creates a new version.

  tdf set drop/avatar "image/png#icon#size:64" -a sam
  echo "image/png#icon" | tdf set drop/avatar`,
		Args: cobra.RangeArgs(1, 2),
		RunE: runSet,
	}
}

func runSet(c *cobra.Command, args []string) error {
	name := args[0]

	var value string
	if len(args) == 2 {
		value = args[1]
	} else {
		// Read a single line from stdin
		scanner := bufio.NewScanner(os.Stdin)
		if scanner.Scan() {
			value = strings.TrimSpace(scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			return PrintJSONError(fmt.Errorf("reading stdin: %w", err))
		}
	}

	err := svc.Write(c.Context(), name, value, Author(), Message())

	log.Event("cli:set", "write").
		Author(Author()).
		Name(name).
		Write(err)

	if err != nil {
		return PrintJSONError(fmt.Errorf("set %q: %w", name, err))
	}

	e, err := svc.Latest(c.Context(), name, false)
	if err != nil {
		return PrintJSONError(err)
	}

	if JSON() {
		return PrintJSON(e.ToJSON(true))
	}
	fmt.Fprintf(Out(), "%s v%d: %s\n", e.Name, e.Version, e.Value)
	return nil
}

func init() {
	rootCmd.AddCommand(newSetCmd())
}
