// profile.go implements the "tdf profile" command group for inspecting
// validation profiles. Profiles are declarative YAML; this command only
// reads them - editing happens in the profiles.yaml file directly.

package cmd

import (
	"fmt"
	"strings"

	"github.com/jpl-au/tdf/internal/profile"
	"github.com/spf13/cobra"
)

func newProfileCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "profile",
		Short: "Inspect validation profiles",
		Long: `List or show validation profiles loaded from .tdf/profiles.yaml
(repository) and ~/.tdf/profiles.yaml (user). A repository profile
shadows a user profile with the same name.`,
	}
	c.AddCommand(newProfileLsCmd(), newProfileShowCmd())
	return c
}

func newProfileLsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ls",
		Short: "List profile names",
		RunE: func(_ *cobra.Command, _ []string) error {
			set, err := profile.Load()
			if err != nil {
				return PrintJSONError(err)
			}
			names := set.Names()

			if JSON() {
				return PrintJSON(names)
			}
			if len(names) == 0 {
				fmt.Fprintln(Out(), "No profiles found")
				return nil
			}
			for _, n := range names {
				fmt.Fprintln(Out(), n)
			}
			return nil
		},
	}
}

func newProfileShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Show a profile's rules",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			set, err := profile.Load()
			if err != nil {
				return PrintJSONError(err)
			}
			p, err := set.Get(args[0])
			if err != nil {
				return PrintJSONError(err)
			}

			if JSON() {
				return PrintJSON(p)
			}

			if p.Format != "" {
				fmt.Fprintf(Out(), "format:  %s\n", p.Format)
			}
			if len(p.Require) > 0 {
				fmt.Fprintf(Out(), "require: %s\n", strings.Join(p.Require, ", "))
			}
			if len(p.Exclude) > 0 {
				fmt.Fprintf(Out(), "exclude: %s\n", strings.Join(p.Exclude, ", "))
			}
			for prefix, rule := range p.Dynamic {
				fmt.Fprintf(Out(), "dynamic: %s %s\n", prefix, describeRule(rule))
			}
			return nil
		},
	}
}

// describeRule renders a dynamic rule for human-readable output.
func describeRule(r profile.DynamicRule) string {
	switch r.Kind {
	case profile.KindRegexp:
		return fmt.Sprintf("regexp %q", r.Pattern)
	case profile.KindEnum:
		return "enum [" + strings.Join(r.Values, ", ") + "]"
	case profile.KindInt:
		s := "int"
		if r.Min != nil {
			s += fmt.Sprintf(" min=%d", *r.Min)
		}
		if r.Max != nil {
			s += fmt.Sprintf(" max=%d", *r.Max)
		}
		return s
	default:
		return r.Kind
	}
}

func init() {
	rootCmd.AddCommand(newProfileCmd())
}
