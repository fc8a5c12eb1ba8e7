// history.go implements the "tdf history" command for viewing version
// history. Versions are listed newest first, matching git log conventions.

package cmd

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/jpl-au/tdf/internal/log"
	"github.com/jpl-au/tdf/internal/store"
	"github.com/spf13/cobra"
)

func newHistoryCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "history <name>",
		Short: "Show version history for an entry",
		Long: `List all versions of an entry, newest first.

  tdf history drop/avatar
  tdf history drop/avatar -n 5`,
		Args: cobra.ExactArgs(1),
		RunE: runHistory,
	}
	c.Flags().IntP("limit", "n", 0, "Maximum versions to show")
	c.Flags().BoolP("deleted", "D", false, "Include deleted versions")
	return c
}

func runHistory(c *cobra.Command, args []string) error {
	limit, _ := c.Flags().GetInt("limit")
	del, _ := c.Flags().GetBool("deleted")
	name := args[0]

	entries, err := svc.History(c.Context(), name, limit, del)

	log.Event("cli:history", "read").
		Author(Author()).
		Name(name).
		Detail("count", len(entries)).
		Write(err)

	if err != nil {
		return PrintJSONError(fmt.Errorf("history %q: %w", name, err))
	}

	if JSON() {
		out := make([]store.EntryJSON, 0, len(entries))
		for _, e := range entries {
			out = append(out, e.ToJSON(true))
		}
		return PrintJSON(out)
	}

	w := tabwriter.NewWriter(Out(), 0, 8, 2, ' ', 0)
	for _, e := range entries {
		created := time.Unix(e.CreatedAt, 0).Format("2006-01-02 15:04")
		msg := e.Message
		if msg == "" {
			msg = "-"
		}
		fmt.Fprintf(w, "v%d\t%s\t%s\t%s\t%s\n", e.Version, created, e.Author, msg, e.Value)
	}
	return w.Flush()
}

func init() {
	rootCmd.AddCommand(newHistoryCmd())
}
