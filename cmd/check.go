// check.go implements the "tdf check" command for validating tagged values.
//
// Design: The argument can be a raw tagged value (anything containing '#')
// or a stored entry name. Raw values validate without a registry, so check
// stays usable before "tdf init". Rules come from a named profile, inline
// flags, or both; inline rules apply on top of the profile.

package cmd

import (
	"fmt"
	"strings"

	"github.com/jpl-au/tdf/internal/config"
	"github.com/jpl-au/tdf/internal/log"
	"github.com/jpl-au/tdf/internal/profile"
	"github.com/jpl-au/tdf/internal/tdf"
	"github.com/spf13/cobra"
)

func newCheckCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "check <value-or-name>",
		Short: "Validate a tagged value against rules",
		Long: `Validate a raw tagged value or a stored entry against validation
rules. Validation runs in four stages - format, excluded tags, required
tags, dynamic rules - and reports the first stage that fails.

  tdf check "image/png#icon#size:64" --profile icon
  tdf check drop/avatar --profile icon
  tdf check drop/avatar --format image/png --require icon --exclude draft

With no --profile, the configured default (check.profile) is used.`,
		Args: cobra.ExactArgs(1),
		RunE: runCheck,
	}
	c.Flags().StringP("profile", "p", "", "Validation profile name")
	c.Flags().String("format", "", "Required format")
	c.Flags().StringSlice("require", nil, "Required plain tags")
	c.Flags().StringSlice("exclude", nil, "Excluded tags")
	return c
}

func runCheck(c *cobra.Command, args []string) error {
	arg := args[0]

	rules, err := checkRules(c)
	if err != nil {
		return PrintJSONError(err)
	}

	// Anything containing '#' is a raw value; otherwise it names a stored
	// entry and needs the registry.
	value := arg
	if !strings.Contains(arg, "#") {
		if _, err := Service(); err != nil {
			return PrintJSONError(err)
		}
		e, err := svc.Resolve(c.Context(), arg, false)
		if err != nil {
			return PrintJSONError(fmt.Errorf("check %q: %w", arg, err))
		}
		value = e.Value
	}

	result := rules.Check(tdf.FromString(value))

	log.Event("cli:check", "check").
		Author(Author()).
		Name(arg).
		Detail("ok", result.OK).
		Detail("stage", string(result.Stage)).
		Write(nil)

	if JSON() {
		return PrintJSON(result)
	}

	if result.OK {
		fmt.Fprintln(Out(), "ok")
		return nil
	}
	fmt.Fprintf(Out(), "fail (%s): %s\n", result.Stage, result.Detail)
	// Non-zero exit without cobra usage noise
	c.SilenceUsage = true
	c.SilenceErrors = true
	return fmt.Errorf("validation failed")
}

// checkRules assembles the rule carrier from the profile and inline flags.
func checkRules(c *cobra.Command) (*tdf.Value, error) {
	profileName, _ := c.Flags().GetString("profile")
	format, _ := c.Flags().GetString("format")
	require, _ := c.Flags().GetStringSlice("require")
	exclude, _ := c.Flags().GetStringSlice("exclude")

	if profileName == "" {
		if cfg, err := config.Load(); err == nil {
			profileName = cfg.DefaultProfile()
		}
	}

	rules := tdf.New()
	if profileName != "" {
		set, err := profile.Load()
		if err != nil {
			return nil, err
		}
		rules, err = set.Compile(profileName)
		if err != nil {
			return nil, err
		}
	}

	if format != "" {
		rules.RequireFormat(format)
	}
	for _, tag := range require {
		rules.RequireTag(tag)
	}
	for _, tag := range exclude {
		rules.ExcludeTag(tag)
	}
	return rules, nil
}

func init() {
	rootCmd.AddCommand(newCheckCmd())
}
