// tools_entries.go implements MCP tools for entry CRUD operations.
//
// Separated from server.go to isolate entry-specific tool implementations.
// These tools mirror the CLI commands (get, set, ls, history, rm, restore,
// diff) but return structured JSON for LLM consumption rather than
// human-readable text.
//
// Design principles:
//
//  1. Author attribution: All write operations require an author parameter
//     to maintain a complete audit trail. This distinguishes between
//     different LLM agents (claude-code, cursor, etc.) and human CLI usage.
//
//  2. Error handling: Errors return MCP tool error results rather than Go
//     errors, so the LLM receives actionable feedback it can parse and
//     potentially retry.
//
//  3. Name resolution: Read tools accept both entry names and 8-character
//     keys, using svc.Resolve() to handle the ambiguity.

package mcp

import (
	"context"
	"fmt"

	"github.com/jpl-au/tdf/internal/diff"
	"github.com/jpl-au/tdf/internal/log"
	"github.com/jpl-au/tdf/internal/store"
	"github.com/mark3labs/mcp-go/mcp"
)

// getEntry handles tdf_get tool calls.
func (h *handlers) getEntry(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if result := h.requireInit(); result != nil {
		return result, nil
	}

	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError("name is required"), nil
	}
	version := getInt(req, "version", 0)
	includeDeleted := getBool(req, "include_deleted", false)

	l := log.Event("mcp:get", "get").Author("mcp").Name(name)
	defer func() { l.Write(err) }()

	var e *store.Entry
	if version > 0 {
		l.Version(version)
		e, err = h.svc.Version(ctx, name, version)
	} else {
		e, err = h.svc.Resolve(ctx, name, includeDeleted)
	}
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(e.ToJSON(true))
}

// setEntry handles tdf_set tool calls.
//
// This is the primary entry creation and update tool. Author is strictly
// required (not defaulted) because every write must be attributable for
// audit purposes.
func (h *handlers) setEntry(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if result := h.requireInit(); result != nil {
		return result, nil
	}

	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError("name is required"), nil
	}
	value, err := req.RequireString("value")
	if err != nil {
		return mcp.NewToolResultError("value is required"), nil
	}
	author, err := req.RequireString("author")
	if err != nil {
		return mcp.NewToolResultError("author is required"), nil
	}
	message := getString(req, "message", "")

	l := log.Event("mcp:set", "set").Author(author).Name(name)
	defer func() { l.Write(err) }()

	err = h.svc.Write(ctx, name, value, author, message)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("wrote %s", name)), nil
}

// listEntries handles tdf_list tool calls. The optional tag filter matches
// by tag identity after decoding, not by substring.
func (h *handlers) listEntries(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if result := h.requireInit(); result != nil {
		return result, nil
	}

	prefix := getString(req, "prefix", "")
	tag := getString(req, "tag", "")
	includeDeleted := getBool(req, "include_deleted", false)
	deletedOnly := getBool(req, "deleted_only", false)

	var err error
	l := log.Event("mcp:list", "list").Author("mcp").Detail("prefix", prefix).Detail("tag", tag)
	defer func() { l.Write(err) }()

	var entries []store.Entry
	if tag != "" {
		entries, err = h.svc.ListByTag(ctx, prefix, tag, includeDeleted, deletedOnly)
	} else {
		entries, err = h.svc.List(ctx, prefix, includeDeleted, deletedOnly)
	}
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	l.Detail("count", len(entries))

	out := make([]store.EntryJSON, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.ToJSON(true))
	}
	return jsonResult(out)
}

// historyEntry handles tdf_history tool calls.
func (h *handlers) historyEntry(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if result := h.requireInit(); result != nil {
		return result, nil
	}

	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError("name is required"), nil
	}
	limit := getInt(req, "limit", 0)
	includeDeleted := getBool(req, "include_deleted", false)

	entries, err := h.svc.History(ctx, name, limit, includeDeleted)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	out := make([]store.EntryJSON, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.ToJSON(true))
	}
	return jsonResult(out)
}

// deleteEntry handles tdf_delete tool calls. Deletion is soft; the entry
// remains recoverable via tdf_restore.
func (h *handlers) deleteEntry(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if result := h.requireInit(); result != nil {
		return result, nil
	}

	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError("name is required"), nil
	}
	author, err := req.RequireString("author")
	if err != nil {
		return mcp.NewToolResultError("author is required"), nil
	}

	l := log.Event("mcp:delete", "delete").Author(author).Name(name)
	defer func() { l.Write(err) }()

	err = h.svc.Delete(ctx, name)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("deleted %s", name)), nil
}

// restoreEntry handles tdf_restore tool calls.
func (h *handlers) restoreEntry(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if result := h.requireInit(); result != nil {
		return result, nil
	}

	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError("name is required"), nil
	}
	author, err := req.RequireString("author")
	if err != nil {
		return mcp.NewToolResultError("author is required"), nil
	}

	l := log.Event("mcp:restore", "restore").Author(author).Name(name)
	defer func() { l.Write(err) }()

	err = h.svc.Restore(ctx, name)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("restored %s", name)), nil
}

// diffEntries handles tdf_diff tool calls. The result includes both the
// structural summary and the rendered text diff.
func (h *handlers) diffEntries(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if result := h.requireInit(); result != nil {
		return result, nil
	}

	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError("name is required"), nil
	}

	opts := diff.Options{
		Name2:          getString(req, "name2", ""),
		Version1:       getInt(req, "version1", 0),
		Version2:       getInt(req, "version2", 0),
		IncludeDeleted: getBool(req, "include_deleted", false),
	}

	r, err := h.svc.Diff(ctx, name, opts)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if !r.Changed() {
		return mcp.NewToolResultText("no differences"), nil
	}
	return mcp.NewToolResultText(r.Format(false)), nil
}
