// Package mcp implements the Model Context Protocol server, exposing tdf
// operations to LLMs. This enables AI assistants to parse, build, validate
// and manage tagged values through a standardised protocol.
package mcp

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/jpl-au/tdf/internal/registry"
	"github.com/jpl-au/tdf/internal/repo"
	"github.com/jpl-au/tdf/internal/service"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Version is advertised to clients for capability negotiation.
const Version = "1.0.0"

// ErrNotInitialised is returned by tools when the registry has not been
// initialised. The LLM should call tdf_init to create one first.
const ErrNotInitialised = "registry not initialised - call tdf_init first"

// Serve starts the MCP server over stdio, enabling LLM integration.
// Uses stdio transport for compatibility with Claude Desktop and other MCP
// clients.
//
// Design: The server starts successfully even if no registry exists. This
// allows LLMs to call tdf_init to create one, rather than failing with an
// opaque error. The pure codec tools (tdf_parse, tdf_build, tdf_validate)
// work without a registry at all.
func Serve(db string) error {
	// Log to stderr; stdout is reserved for MCP JSON-RPC messages
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	h := &handlers{db: db}

	// Try to open existing registry; nil service is OK (uninitialised mode)
	svc, err := registry.New(db)
	if err != nil && !errors.Is(err, repo.ErrNotInitialised) {
		slog.Error("failed to open registry", "error", err)
		return err
	}
	if err == nil {
		h.svc = svc
		defer svc.Close()
	} else {
		slog.Info("tdf not initialised, starting in uninitialised mode - call tdf_init to create registry")
	}

	s := server.NewMCPServer(
		"tdf",
		Version,
		server.WithResourceCapabilities(true, false),
		server.WithToolCapabilities(true),
	)

	registerResources(s, h)
	registerTools(s, h)

	slog.Info("tdf MCP server ready", "version", Version, "transport", "stdio")

	err = server.ServeStdio(s)
	if errors.Is(err, context.Canceled) {
		slog.Info("server stopped")
		return nil
	}
	return err
}

// handlers provides MCP request handlers with access to the entry registry.
// The svc field may be nil if the registry has not been initialised.
type handlers struct {
	db  string          // database name for init
	svc service.Service // nil if not initialised
}

// requireInit returns an error result if the registry is not initialised.
// Tools that touch stored entries should call this first.
func (h *handlers) requireInit() *mcp.CallToolResult {
	if h.svc == nil {
		return mcp.NewToolResultError(ErrNotInitialised)
	}
	return nil
}

// registerResources adds URI-based resource access for direct entry reading.
func registerResources(s *server.MCPServer, h *handlers) {
	// Entry value by name
	s.AddResourceTemplate(
		mcp.NewResourceTemplate(
			"tdf://entries/{name}",
			"Entry",
			mcp.WithTemplateDescription("Read an entry's tagged value by name"),
			mcp.WithTemplateMIMEType("text/plain"),
		),
		h.readEntry,
	)

	// Entry value by name and version
	s.AddResourceTemplate(
		mcp.NewResourceTemplate(
			"tdf://entries/{name}/v/{version}",
			"Entry Version",
			mcp.WithTemplateDescription("Read a specific version of an entry"),
			mcp.WithTemplateMIMEType("text/plain"),
		),
		h.readEntryVersion,
	)
}

// registerTools exposes tdf operations as MCP tools for LLM invocation.
func registerTools(s *server.MCPServer, h *handlers) {
	// Codec tools - work without a registry
	s.AddTool(
		mcp.NewTool("tdf_parse",
			mcp.WithDescription("Parse a tagged value string into its format, plain tags and dynamic tags"),
			mcp.WithString("value", mcp.Required(), mcp.Description("Tagged value string (e.g. image/png#icon#size:64)")),
		),
		h.parseValue,
	)

	s.AddTool(
		mcp.NewTool("tdf_build",
			mcp.WithDescription("Build a canonical tagged value string from a format and tags"),
			mcp.WithString("format", mcp.Required(), mcp.Description("Base format (e.g. image/png)")),
			mcp.WithArray("tags", mcp.Description("Tags to attach; tags containing ':' are dynamic"), mcp.WithStringItems()),
		),
		h.buildValue,
	)

	s.AddTool(
		mcp.NewTool("tdf_validate",
			mcp.WithDescription("Validate a tagged value against a named profile or inline rules"),
			mcp.WithString("value", mcp.Required(), mcp.Description("Tagged value string to validate")),
			mcp.WithString("profile", mcp.Description("Validation profile name from profiles.yaml")),
			mcp.WithString("format", mcp.Description("Required format (inline rule)")),
			mcp.WithArray("require", mcp.Description("Required plain tags (inline rule)"), mcp.WithStringItems()),
			mcp.WithArray("exclude", mcp.Description("Excluded tags (inline rule)"), mcp.WithStringItems()),
		),
		h.validateValue,
	)

	// Init - works without existing registry
	s.AddTool(
		mcp.NewTool("tdf_init",
			mcp.WithDescription("Initialise a new tdf registry. Call this first if other tools return 'registry not initialised'."),
			mcp.WithBoolean("local", mcp.Description("If true, database is gitignored (not committed to version control)")),
		),
		h.initRegistry,
	)

	// Entry tools
	s.AddTool(
		mcp.NewTool("tdf_get",
			mcp.WithDescription("Read an entry's tagged value by name or 8-character key"),
			mcp.WithString("name", mcp.Required(), mcp.Description("Entry name or key")),
			mcp.WithNumber("version", mcp.Description("Specific version to read (default: latest)")),
			mcp.WithBoolean("include_deleted", mcp.Description("Allow reading deleted entries")),
		),
		h.getEntry,
	)

	s.AddTool(
		mcp.NewTool("tdf_set",
			mcp.WithDescription("Write a tagged value to an entry (create or update)"),
			mcp.WithString("name", mcp.Required(), mcp.Description("Entry name")),
			mcp.WithString("value", mcp.Required(), mcp.Description("Tagged value string")),
			mcp.WithString("author", mcp.Required(), mcp.Description("Author attribution")),
			mcp.WithString("message", mcp.Description("Version message")),
		),
		h.setEntry,
	)

	s.AddTool(
		mcp.NewTool("tdf_list",
			mcp.WithDescription("List entries in the registry"),
			mcp.WithString("prefix", mcp.Description("Filter by name prefix")),
			mcp.WithString("tag", mcp.Description("Filter by tag; a trailing ':' matches any dynamic tag with that prefix")),
			mcp.WithBoolean("include_deleted", mcp.Description("Include soft-deleted entries")),
			mcp.WithBoolean("deleted_only", mcp.Description("Show only deleted entries")),
		),
		h.listEntries,
	)

	s.AddTool(
		mcp.NewTool("tdf_history",
			mcp.WithDescription("Get version history for an entry"),
			mcp.WithString("name", mcp.Required(), mcp.Description("Entry name")),
			mcp.WithNumber("limit", mcp.Description("Maximum versions to return")),
			mcp.WithBoolean("include_deleted", mcp.Description("Include deleted versions")),
		),
		h.historyEntry,
	)

	s.AddTool(
		mcp.NewTool("tdf_delete",
			mcp.WithDescription("Soft delete an entry (recoverable via tdf_restore)"),
			mcp.WithString("name", mcp.Required(), mcp.Description("Entry name")),
			mcp.WithString("author", mcp.Required(), mcp.Description("Author attribution")),
		),
		h.deleteEntry,
	)

	s.AddTool(
		mcp.NewTool("tdf_restore",
			mcp.WithDescription("Restore a soft-deleted entry"),
			mcp.WithString("name", mcp.Required(), mcp.Description("Entry name")),
			mcp.WithString("author", mcp.Required(), mcp.Description("Author attribution")),
		),
		h.restoreEntry,
	)

	s.AddTool(
		mcp.NewTool("tdf_diff",
			mcp.WithDescription("Show differences between entry versions or two entries"),
			mcp.WithString("name", mcp.Required(), mcp.Description("Entry name")),
			mcp.WithString("name2", mcp.Description("Second entry name (for comparing two entries)")),
			mcp.WithNumber("version1", mcp.Description("First version to compare")),
			mcp.WithNumber("version2", mcp.Description("Second version to compare")),
			mcp.WithBoolean("include_deleted", mcp.Description("Allow diffing deleted entries")),
		),
		h.diffEntries,
	)

	// Tag tools
	s.AddTool(
		mcp.NewTool("tdf_tag_add",
			mcp.WithDescription("Add a tag to an entry's value (creates a new version)"),
			mcp.WithString("name", mcp.Required(), mcp.Description("Entry name")),
			mcp.WithString("tag", mcp.Required(), mcp.Description("Tag to add; tags containing ':' are dynamic")),
			mcp.WithString("author", mcp.Required(), mcp.Description("Author attribution")),
		),
		h.tagAdd,
	)

	s.AddTool(
		mcp.NewTool("tdf_tag_remove",
			mcp.WithDescription("Remove a tag from an entry's value (creates a new version). A trailing ':' removes a dynamic tag by prefix."),
			mcp.WithString("name", mcp.Required(), mcp.Description("Entry name")),
			mcp.WithString("tag", mcp.Required(), mcp.Description("Tag to remove")),
			mcp.WithString("author", mcp.Required(), mcp.Description("Author attribution")),
		),
		h.tagRemove,
	)

	s.AddTool(
		mcp.NewTool("tdf_tag_update",
			mcp.WithDescription("Replace a dynamic tag's argument by prefix (creates a new version)"),
			mcp.WithString("name", mcp.Required(), mcp.Description("Entry name")),
			mcp.WithString("tag", mcp.Required(), mcp.Description("Dynamic tag with new argument (e.g. size:128)")),
			mcp.WithString("author", mcp.Required(), mcp.Description("Author attribution")),
		),
		h.tagUpdate,
	)

	// Profiles
	s.AddTool(
		mcp.NewTool("tdf_profiles",
			mcp.WithDescription("List validation profiles, or show one profile's rules"),
			mcp.WithString("name", mcp.Description("Profile name (optional, list all if empty)")),
		),
		h.listProfiles,
	)
}

// readEntry handles tdf://entries/{name} resource requests.
func (h *handlers) readEntry(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return h.readEntryResource(ctx, req.Params.URI)
}

// readEntryVersion handles tdf://entries/{name}/v/{version} resource requests.
func (h *handlers) readEntryVersion(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return h.readEntryResource(ctx, req.Params.URI)
}
