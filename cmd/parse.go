// parse.go implements the "tdf parse" command for decomposing a tagged
// value string into its parts. The codec is total, so parse never fails on
// content - malformed input parses into something, and the canonical form
// is shown alongside so the cleanup is visible.

package cmd

import (
	"fmt"
	"strings"

	"github.com/jpl-au/tdf/internal/tdf"
	"github.com/spf13/cobra"
)

func newParseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse <value>",
		Short: "Parse a tagged value string",
		Long: `Split a tagged value into its format, plain tags and dynamic tags.

  tdf parse "image/png#icon#size:64"
  tdf parse "image/png#size:64" -o json`,
		Args: cobra.ExactArgs(1),
		RunE: runParse,
	}
}

func runParse(_ *cobra.Command, args []string) error {
	r := tdf.Parse(args[0])

	if JSON() {
		return PrintJSON(r)
	}

	fmt.Fprintf(Out(), "format:    %s\n", r.Format)
	if len(r.Tags) > 0 {
		fmt.Fprintf(Out(), "tags:      %s\n", strings.Join(r.Tags, ", "))
	}
	if len(r.DynamicTags) > 0 {
		fmt.Fprintf(Out(), "dynamic:   %s\n", strings.Join(r.DynamicTags, ", "))
	}
	canonical := tdf.FromRecord(r).String()
	if canonical != args[0] {
		fmt.Fprintf(Out(), "canonical: %s\n", canonical)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(newParseCmd())
}
