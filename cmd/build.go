// build.go implements the "tdf build" command for constructing a canonical
// tagged value string from a format and tags.

package cmd

import (
	"fmt"

	"github.com/jpl-au/tdf/internal/tdf"
	"github.com/spf13/cobra"
)

func newBuildCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "build <format> [tag...]",
		Short: "Build a canonical tagged value string",
		Long: `Assemble a tagged value from a format and tags. Tags containing ':'
become dynamic tags. Output is canonical: plain tags before dynamic,
each set sorted, duplicates collapsed.

  tdf build image/png icon size:64    # image/png#icon#size:64`,
		Args: cobra.MinimumNArgs(1),
		RunE: runBuild,
	}
}

func runBuild(_ *cobra.Command, args []string) error {
	v := tdf.New()
	v.SetFormat(args[0])
	for _, tag := range args[1:] {
		v.AddTag(tag)
	}

	if JSON() {
		return PrintJSON(v.Record())
	}
	fmt.Fprintln(Out(), v.String())
	return nil
}

func init() {
	rootCmd.AddCommand(newBuildCmd())
}
