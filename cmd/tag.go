// tag.go implements the "tdf tag" command group for tag-level edits.
//
// Design: Each mutation decodes the entry's latest value, applies the
// change, and writes the result back as a new version. Tag edits therefore
// appear in history like any other write, with a generated message
// ("add #icon", "remove #size:").

package cmd

import (
	"fmt"
	"strings"

	"github.com/jpl-au/tdf/internal/log"
	"github.com/jpl-au/tdf/internal/store"
	"github.com/spf13/cobra"
)

func newTagCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "tag",
		Short: "Manage an entry's tags",
		Long: `Add, remove, update or list tags on an entry's value.

  tdf tag add drop/avatar icon        # plain tag
  tdf tag add drop/avatar size:64     # dynamic tag
  tdf tag update drop/avatar size:128 # replace by prefix
  tdf tag rm drop/avatar size:        # remove by prefix
  tdf tag ls drop/avatar`,
	}
	c.AddCommand(newTagAddCmd(), newTagRmCmd(), newTagUpdateCmd(), newTagLsCmd())
	return c
}

func newTagAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <name> <tag>",
		Short: "Add a tag to an entry",
		Args:  cobra.ExactArgs(2),
		RunE: func(c *cobra.Command, args []string) error {
			return runTagMutation(c, "cli:tag-add", args, func() (*store.Entry, error) {
				return svc.AddTag(c.Context(), args[0], args[1], Author())
			})
		},
	}
}

func newTagRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <name> <tag>",
		Short: "Remove a tag from an entry",
		Long: `Remove a tag from an entry's value. A plain tag removes the exact
tag; a tag with a trailing ':' removes a dynamic tag with that prefix.`,
		Args: cobra.ExactArgs(2),
		RunE: func(c *cobra.Command, args []string) error {
			return runTagMutation(c, "cli:tag-rm", args, func() (*store.Entry, error) {
				return svc.RemoveTag(c.Context(), args[0], args[1], Author())
			})
		},
	}
}

func newTagUpdateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "update <name> <tag>",
		Short: "Replace a dynamic tag's argument by prefix",
		Long: `Replace all dynamic tags sharing the given tag's prefix with the new
tag. The tag must contain a ':'.

  tdf tag update drop/avatar size:128   # size:64 -> size:128`,
		Args: cobra.ExactArgs(2),
		RunE: func(c *cobra.Command, args []string) error {
			return runTagMutation(c, "cli:tag-update", args, func() (*store.Entry, error) {
				return svc.UpdateDynamicTag(c.Context(), args[0], args[1], Author())
			})
		},
	}
}

func runTagMutation(c *cobra.Command, source string, args []string, fn func() (*store.Entry, error)) error {
	name, tag := args[0], args[1]

	e, err := fn()

	b := log.Event(source, "tag").Author(Author()).Name(name).Detail("tag", tag)
	if e != nil {
		b = b.ResultVersion(e.Version)
	}
	b.Write(err)

	if err != nil {
		return PrintJSONError(fmt.Errorf("tag %q: %w", name, err))
	}

	if JSON() {
		return PrintJSON(e.ToJSON(true))
	}
	fmt.Fprintf(Out(), "%s v%d: %s\n", e.Name, e.Version, e.Value)
	return nil
}

func newTagLsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ls <name>",
		Short: "List an entry's tags",
		Args:  cobra.ExactArgs(1),
		RunE:  runTagLs,
	}
}

func runTagLs(c *cobra.Command, args []string) error {
	name := args[0]

	v, err := svc.Value(c.Context(), name, false)

	log.Event("cli:tag-ls", "read").Author(Author()).Name(name).Write(err)

	if err != nil {
		return PrintJSONError(fmt.Errorf("tag ls %q: %w", name, err))
	}

	if JSON() {
		return PrintJSON(v.Record())
	}

	fmt.Fprintf(Out(), "format:  %s\n", v.Format())
	if tags := v.Tags(); len(tags) > 0 {
		fmt.Fprintf(Out(), "tags:    %s\n", strings.Join(tags, ", "))
	}
	if dyn := v.DynamicTags(); len(dyn) > 0 {
		fmt.Fprintf(Out(), "dynamic: %s\n", strings.Join(dyn, ", "))
	}
	return nil
}

func init() {
	rootCmd.AddCommand(newTagCmd())
}
