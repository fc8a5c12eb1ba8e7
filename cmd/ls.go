// ls.go implements the "tdf ls" command for listing entries.
//
// Design: The -t filter matches by tag identity after decoding each value,
// not by substring search, so "-t icon" never matches "lexicon" and a
// trailing ':' is a dynamic prefix query.

package cmd

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/jpl-au/tdf/internal/log"
	"github.com/jpl-au/tdf/internal/store"
	"github.com/spf13/cobra"
)

func newLsCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "ls [prefix]",
		Short: "List entries",
		Long: `List entries, optionally filtered by name prefix and tag.

  tdf ls                  # all entries
  tdf ls drop/            # entries under drop/
  tdf ls -t icon          # entries carrying #icon
  tdf ls -t size:         # entries with any size: tag
  tdf ls -D               # include deleted entries
  tdf ls --deleted-only   # only deleted entries`,
		Args: cobra.MaximumNArgs(1),
		RunE: runLs,
	}
	c.Flags().StringP("tag", "t", "", "Filter by tag (trailing ':' matches a dynamic prefix)")
	c.Flags().BoolP("deleted", "D", false, "Include deleted entries")
	c.Flags().Bool("deleted-only", false, "Show only deleted entries")
	return c
}

func runLs(c *cobra.Command, args []string) error {
	tag, _ := c.Flags().GetString("tag")
	includeDeleted, _ := c.Flags().GetBool("deleted")
	deletedOnly, _ := c.Flags().GetBool("deleted-only")

	prefix := ""
	if len(args) > 0 {
		prefix = args[0]
	}

	var entries []store.Entry
	var err error

	defer func() {
		log.Event("cli:ls", "list").
			Author(Author()).
			Detail("prefix", prefix).
			Detail("tag", tag).
			Detail("count", len(entries)).
			Write(err)
	}()

	if tag != "" {
		entries, err = svc.ListByTag(c.Context(), prefix, tag, includeDeleted, deletedOnly)
	} else {
		entries, err = svc.List(c.Context(), prefix, includeDeleted, deletedOnly)
	}
	if err != nil {
		return PrintJSONError(fmt.Errorf("ls: %w", err))
	}

	if JSON() {
		out := make([]store.EntryJSON, 0, len(entries))
		for _, e := range entries {
			out = append(out, e.ToJSON(true))
		}
		return PrintJSON(out)
	}

	if len(entries) == 0 {
		fmt.Fprintln(Out(), "No entries found")
		return nil
	}

	w := tabwriter.NewWriter(Out(), 0, 8, 2, ' ', 0)
	for _, e := range entries {
		marker := ""
		if e.DeletedAt != nil {
			marker = " (deleted)"
		}
		created := time.Unix(e.CreatedAt, 0).Format("2006-01-02 15:04")
		fmt.Fprintf(w, "%s\tv%d\t%s\t%s%s\t%s\n", e.Key, e.Version, created, e.Name, marker, e.Value)
	}
	return w.Flush()
}

func init() {
	rootCmd.AddCommand(newLsCmd())
}
