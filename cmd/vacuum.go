// vacuum.go implements the "tdf vacuum" command for permanent deletion.
//
// Separated because vacuum is destructive and requires special handling
// including confirmation prompts and dry-run support.

package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/jpl-au/tdf/internal/duration"
	"github.com/jpl-au/tdf/internal/log"
	"github.com/jpl-au/tdf/internal/vacuum"
	"github.com/spf13/cobra"
)

func newVacuumCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "vacuum",
		Short: "Permanently delete soft-deleted entries",
		Long: `Permanently delete soft-deleted entries.

This is irreversible. Use --force to skip confirmation.

Duration formats: 7d (days), 4w (weeks), 3m (months)`,
		RunE: runVacuum,
	}
	c.Flags().String("older-than", "", "Only purge deletions older than duration (e.g., 7d, 4w, 3m)")
	c.Flags().StringP("prefix", "p", "", "Only purge names under a prefix")
	c.Flags().BoolP("dry-run", "n", false, "Show what would be deleted")
	return c
}

func runVacuum(c *cobra.Command, _ []string) error {
	ctx := c.Context()

	olderThan, _ := c.Flags().GetString("older-than")
	prefix, _ := c.Flags().GetString("prefix")
	dryRun, _ := c.Flags().GetBool("dry-run")

	var opts vacuum.Options
	opts.Prefix = prefix
	opts.DryRun = dryRun

	if olderThan != "" {
		d, err := duration.Parse(olderThan)
		if err != nil {
			return PrintJSONError(fmt.Errorf("parse duration %q: %w", olderThan, err))
		}
		opts.OlderThan = &d
	}

	if dryRun {
		result, err := vacuum.Run(ctx, Out(), svc, opts)

		log.Event("cli:vacuum", "vacuum").
			Author(Author()).
			Name(prefix).
			Detail("dry_run", true).
			Detail("count", result.Deleted).
			Write(err)

		if err != nil {
			return PrintJSONError(fmt.Errorf("vacuum dry run: %w", err))
		}
		return nil
	}

	if !Force() {
		fmt.Fprint(Out(), "Permanently delete soft-deleted entries? This cannot be undone. [y/N] ")
		reader := bufio.NewReader(os.Stdin)
		response, err := reader.ReadString('\n')
		if err != nil {
			return PrintJSONError(fmt.Errorf("reading confirmation: %w", err))
		}
		response = strings.TrimSpace(strings.ToLower(response))
		if response != "y" && response != "yes" {
			fmt.Fprintln(Out(), "Cancelled")
			return nil
		}
	}

	result, err := vacuum.Run(ctx, Out(), svc, opts)

	log.Event("cli:vacuum", "vacuum").
		Author(Author()).
		Name(prefix).
		Detail("count", result.Deleted).
		Write(err)

	if err != nil {
		return PrintJSONError(fmt.Errorf("vacuum: %w", err))
	}
	return nil
}

func init() {
	rootCmd.AddCommand(newVacuumCmd())
}
