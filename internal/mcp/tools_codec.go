// tools_codec.go implements the stateless codec tools: parse, build and
// validate. These operate on tagged value strings directly and work whether
// or not a registry exists, so they are never gated on requireInit.

package mcp

import (
	"context"

	"github.com/jpl-au/tdf/internal/config"
	"github.com/jpl-au/tdf/internal/profile"
	"github.com/jpl-au/tdf/internal/tdf"
	"github.com/mark3labs/mcp-go/mcp"
)

// parseValue handles tdf_parse tool calls. The codec is total: any string
// parses, so this tool never fails on content.
func (h *handlers) parseValue(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	value, err := req.RequireString("value")
	if err != nil {
		return mcp.NewToolResultError("value is required"), nil
	}
	return jsonResult(tdf.Parse(value))
}

// buildValue handles tdf_build tool calls, returning the canonical string
// form: plain tags before dynamic tags, each set sorted.
func (h *handlers) buildValue(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	format, err := req.RequireString("format")
	if err != nil {
		return mcp.NewToolResultError("format is required"), nil
	}

	v := tdf.New()
	v.SetFormat(format)
	for _, tag := range getStrings(req, "tags") {
		v.AddTag(tag)
	}
	return mcp.NewToolResultText(v.String()), nil
}

// validateValue handles tdf_validate tool calls.
//
// Rules come from a named profile, inline parameters, or both. When both are
// given the inline rules are applied on top of the profile. With no profile
// parameter the configured default profile (check.profile) is used if set.
func (h *handlers) validateValue(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	value, err := req.RequireString("value")
	if err != nil {
		return mcp.NewToolResultError("value is required"), nil
	}

	rules, result := h.buildRules(req)
	if result != nil {
		return result, nil
	}

	return jsonResult(rules.Check(tdf.FromString(value)))
}

// buildRules assembles the rule carrier for a validate call. Returns a
// non-nil tool error result when a referenced profile cannot be loaded.
func (h *handlers) buildRules(req mcp.CallToolRequest) (*tdf.Value, *mcp.CallToolResult) {
	profileName := getString(req, "profile", "")
	if profileName == "" {
		if cfg, err := config.Load(); err == nil {
			profileName = cfg.DefaultProfile()
		}
	}

	rules := tdf.New()
	if profileName != "" {
		set, err := profile.Load()
		if err != nil {
			return nil, mcp.NewToolResultError(err.Error())
		}
		rules, err = set.Compile(profileName)
		if err != nil {
			return nil, mcp.NewToolResultError(err.Error())
		}
	}

	if format := getString(req, "format", ""); format != "" {
		rules.RequireFormat(format)
	}
	for _, tag := range getStrings(req, "require") {
		rules.RequireTag(tag)
	}
	for _, tag := range getStrings(req, "exclude") {
		rules.ExcludeTag(tag)
	}
	return rules, nil
}
