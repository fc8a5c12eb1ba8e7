// serve.go implements the "tdf serve" command for MCP server operation.
//
// Design: Serve is a NoStoreCommand - it manages its own service lifecycle
// instead of using the shared service from root.go. This is necessary
// because serve needs to control when the database connection is opened and
// closed, rather than having it managed by the CLI framework.

package cmd

import (
	"github.com/jpl-au/tdf/internal/mcp"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start MCP server",
		Long: `Start an MCP (Model Context Protocol) server over stdio for LLM
integration.

Use --db to serve a specific database:
  tdf serve --db assets    # serve tdf-assets.db`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return mcp.Serve(DB())
		},
	}
}

func init() {
	rootCmd.AddCommand(newServeCmd())
}
