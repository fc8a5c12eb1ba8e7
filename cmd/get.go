// get.go implements the "tdf get" command for reading tagged values.
//
// Design: Get accepts both entry names and 8-character keys, using
// svc.Resolve() to handle the ambiguity. The plain output is just the
// value, making get composable in pipelines; -o json returns the full
// entry with version metadata.

package cmd

import (
	"fmt"

	"github.com/jpl-au/tdf/internal/log"
	"github.com/jpl-au/tdf/internal/store"
	"github.com/spf13/cobra"
)

func newGetCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "get <name>",
		Short: "Read an entry's tagged value",
		Long: `Output an entry's tagged value to stdout. Accepts a name or an
8-character key from "tdf ls".

  tdf get drop/avatar
  tdf get drop/avatar -v 2
  tdf get drop/avatar -o json`,
		Args: cobra.ExactArgs(1),
		RunE: runGet,
	}
	c.Flags().IntP("version", "v", 0, "Read specific version")
	c.Flags().BoolP("deleted", "D", false, "Read a deleted entry")
	return c
}

func runGet(c *cobra.Command, args []string) error {
	ver, _ := c.Flags().GetInt("version")
	del, _ := c.Flags().GetBool("deleted")
	name := args[0]

	var e *store.Entry
	var err error

	defer func() {
		b := log.Event("cli:get", "read").Author(Author()).Name(name)
		if e != nil {
			b = b.Version(e.Version)
		}
		b.Write(err)
	}()

	if ver > 0 {
		e, err = svc.Version(c.Context(), name, ver)
	} else {
		e, err = svc.Resolve(c.Context(), name, del)
	}
	if err != nil {
		return PrintJSONError(fmt.Errorf("get %q: %w", name, err))
	}

	if JSON() {
		return PrintJSON(e.ToJSON(true))
	}
	fmt.Fprintln(Out(), e.Value)
	return nil
}

func init() {
	rootCmd.AddCommand(newGetCmd())
}
