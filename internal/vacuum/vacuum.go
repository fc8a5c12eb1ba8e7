// Package vacuum handles permanent deletion of soft-deleted entries.
// This is the only way to reclaim storage; soft-deleted entries remain
// until vacuum removes them, providing a recovery window.
package vacuum

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/jpl-au/tdf/internal/progress"
	"github.com/jpl-au/tdf/internal/service"
)

// Options configures vacuum scope and safety checks.
type Options struct {
	OlderThan *time.Duration // Retain recent deletions for recovery
	Prefix    string         // Limit to specific name prefix
	DryRun    bool           // Preview without deleting
}

// Result reports what was deleted, enabling confirmation and logging.
type Result struct {
	Deleted int      // Count of removed entries
	Names   []string // Affected names (populated in dry-run mode)
}

// Run permanently removes soft-deleted entries. This operation is
// irreversible; use DryRun first to preview what will be deleted.
func Run(ctx context.Context, w io.Writer, svc service.Service, opts Options) (Result, error) {
	var result Result

	if opts.DryRun {
		return preview(ctx, w, svc, opts)
	}

	spin := progress.NewSpinner("Vacuuming")
	spin.Start()
	count, err := svc.Vacuum(ctx, opts.OlderThan, opts.Prefix)
	spin.Stop()

	if err != nil {
		return result, err
	}

	result.Deleted = int(count)
	if count == 0 {
		fmt.Fprintln(w, "No entries to vacuum")
	} else {
		fmt.Fprintf(w, "Vacuumed %d row(s)\n", count)
	}

	return result, nil
}

// preview simulates vacuum to let users verify before permanent deletion.
func preview(ctx context.Context, w io.Writer, svc service.Service, opts Options) (Result, error) {
	var result Result

	entries, err := svc.List(ctx, opts.Prefix, false, true) // deleted only
	if err != nil {
		return result, err
	}

	for _, e := range entries {
		if e.DeletedAt == nil {
			continue
		}

		// Skip recently deleted entries to give users time to recover
		if opts.OlderThan != nil {
			cutoff := time.Now().Add(-*opts.OlderThan).Unix()
			if *e.DeletedAt >= cutoff {
				continue
			}
		}

		fmt.Fprintf(w, "Would delete: %s (deleted %s)\n",
			e.Name,
			time.Unix(*e.DeletedAt, 0).Format("2006-01-02 15:04"))
		result.Names = append(result.Names, e.Name)
		result.Deleted++
	}

	if result.Deleted == 0 {
		fmt.Fprintln(w, "No entries to vacuum")
	} else {
		fmt.Fprintf(w, "\nWould delete %d entries\n", result.Deleted)
	}

	return result, nil
}
