/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// root.go defines the root command and CLI execution entry point.
//
// Design: PersistentPreRunE handles registry initialisation lazily - only
// commands that need the database trigger it. This enables bootstrap
// commands (init, guide, config, parse, build) to work without a registry
// existing. The noStoreCommands map controls which commands skip
// initialisation.

package cmd

import (
	"fmt"
	"os"
	"slices"

	"github.com/jpl-au/tdf/internal/log"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tdf",
	Short: "Versioned store and validator for tagged data format strings",
	Long: `Parse, build, store and validate tagged data format strings -
flat values of the shape "category/subcategory#tag#prefix:argument" that
carry structured metadata through transports which only accept plain strings.`,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if output != "" && !slices.Contains(validOutputFormats, output) {
			return fmt.Errorf("invalid output format: %s (valid: %v)", output, validOutputFormats)
		}

		// Detect author if not explicitly set
		if author == "" {
			author = detectAuthor()
		}

		cmdName := topLevelCmdName(cmd)
		if !noStoreCommands[cmdName] {
			if err := initService(); err != nil {
				if JSON() {
					_ = PrintJSON(map[string]string{"error": err.Error()})
					cmd.SilenceErrors = true
					cmd.SilenceUsage = true
				}
				return err
			}
		}

		return nil
	},
}

// topLevelCmdName returns the name of the top-level command (direct child of
// root). For "tdf tag add name tag", returns "tag".
func topLevelCmdName(cmd *cobra.Command) string {
	for cmd.HasParent() && cmd.Parent().HasParent() {
		cmd = cmd.Parent()
	}
	return cmd.Name()
}

// Execute runs the root command and handles process lifecycle.
// Opens audit logging, executes the command, and ensures proper cleanup of
// the registry service before exit. Exit code 1 indicates error.
func Execute() {
	// Initialise audit logger (warn if it fails, but continue)
	if err := log.Open(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: audit log unavailable: %v\n", err)
	}
	defer log.Close()

	err := rootCmd.Execute()

	// Close the service if it was created
	if svc != nil {
		if closeErr := svc.Close(); closeErr != nil {
			fmt.Fprintf(os.Stderr, "warning: closing service: %v\n", closeErr)
		}
	}

	if err != nil {
		os.Exit(1)
	}
}

// RootCmd returns the root command for testing.
func RootCmd() *cobra.Command {
	return rootCmd
}
