// tools_tags.go implements MCP tools for tag-level mutations.
//
// Each mutation decodes the entry's latest value, applies the change, and
// writes the result back as a new version, so the audit trail covers tag
// edits the same way it covers full writes.

package mcp

import (
	"context"

	"github.com/jpl-au/tdf/internal/log"
	"github.com/jpl-au/tdf/internal/store"
	"github.com/mark3labs/mcp-go/mcp"
)

// tagMutation extracts the shared name/tag/author parameters and runs fn,
// returning the new version's value on success.
func (h *handlers) tagMutation(req mcp.CallToolRequest, source string,
	fn func(name, tag, author string) (*store.Entry, error)) (*mcp.CallToolResult, error) {

	if result := h.requireInit(); result != nil {
		return result, nil
	}

	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError("name is required"), nil
	}
	tag, err := req.RequireString("tag")
	if err != nil {
		return mcp.NewToolResultError("tag is required"), nil
	}
	author, err := req.RequireString("author")
	if err != nil {
		return mcp.NewToolResultError("author is required"), nil
	}

	l := log.Event(source, "tag").Author(author).Name(name).Detail("tag", tag)
	defer func() { l.Write(err) }()

	e, err := fn(name, tag, author)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	l.ResultVersion(e.Version)
	return jsonResult(e.ToJSON(true))
}

// tagAdd handles tdf_tag_add tool calls.
func (h *handlers) tagAdd(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return h.tagMutation(req, "mcp:tag_add", func(name, tag, author string) (*store.Entry, error) {
		return h.svc.AddTag(ctx, name, tag, author)
	})
}

// tagRemove handles tdf_tag_remove tool calls.
func (h *handlers) tagRemove(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return h.tagMutation(req, "mcp:tag_remove", func(name, tag, author string) (*store.Entry, error) {
		return h.svc.RemoveTag(ctx, name, tag, author)
	})
}

// tagUpdate handles tdf_tag_update tool calls.
func (h *handlers) tagUpdate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return h.tagMutation(req, "mcp:tag_update", func(name, tag, author string) (*store.Entry, error) {
		return h.svc.UpdateDynamicTag(ctx, name, tag, author)
	})
}
