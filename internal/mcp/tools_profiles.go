// tools_profiles.go implements the MCP tool for inspecting validation
// profiles. Profiles are loaded from disk on every call so edits to
// profiles.yaml take effect without restarting the server.

package mcp

import (
	"context"

	"github.com/jpl-au/tdf/internal/profile"
	"github.com/mark3labs/mcp-go/mcp"
)

// listProfiles handles tdf_profiles tool calls.
func (h *handlers) listProfiles(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	set, err := profile.Load()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	name := getString(req, "name", "")
	if name == "" {
		return jsonResult(set.Names())
	}

	p, err := set.Get(name)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	// Compile to surface rule errors early, even though only the
	// declarative form is returned.
	if _, err := p.Compile(); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(p)
}
