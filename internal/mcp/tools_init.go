// tools_init.go implements the MCP tool for initialising a new registry.
//
// This tool works without an existing registry, allowing LLMs to bootstrap
// a new tdf repository. The entry tools require initialisation first.

package mcp

import (
	"context"
	"log/slog"

	"github.com/jpl-au/tdf/internal/log"
	"github.com/jpl-au/tdf/internal/registry"
	"github.com/mark3labs/mcp-go/mcp"
)

// initRegistry handles tdf_init tool calls.
func (h *handlers) initRegistry(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if h.svc != nil {
		return mcp.NewToolResultError("registry already initialised"), nil
	}

	local := getBool(req, "local", false)

	err := registry.Init(false, h.db, local, "")

	log.Event("mcp:init", "init").Author("mcp").Detail("local", local).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	// Open the newly created registry
	svc, err := registry.New(h.db)
	if err != nil {
		return mcp.NewToolResultError("init succeeded but failed to open registry: " + err.Error()), nil
	}
	h.svc = svc

	slog.Info("registry initialised", "local", local)

	if local {
		return mcp.NewToolResultText("registry initialised (local - gitignored)"), nil
	}
	return mcp.NewToolResultText("registry initialised"), nil
}
