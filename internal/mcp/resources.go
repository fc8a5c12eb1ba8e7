// resources.go implements MCP resource handlers for entry access.
//
// MCP resources provide read-only access to entries via URI schemes,
// enabling LLM clients to reference tagged values without using tools.
//
// Design: Resource URIs follow the pattern tdf://entries/{name}[/v/{version}].
// Version is optional; omitting it returns the latest version. This mirrors
// the CLI's "get" command behaviour.

package mcp

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

var (
	// ErrInvalidURI indicates a malformed resource URI, helping clients
	// debug URI construction issues.
	ErrInvalidURI = errors.New("invalid URI")
	// ErrEmptyName indicates a missing entry name in a resource URI.
	ErrEmptyName = errors.New("empty entry name")
)

// readEntryResource reads an entry and returns its value as resource
// contents.
func (h *handlers) readEntryResource(ctx context.Context, uri string) ([]mcp.ResourceContents, error) {
	if h.svc == nil {
		return nil, errors.New(ErrNotInitialised)
	}

	name, version, err := parseEntryURI(uri)
	if err != nil {
		return nil, err
	}

	var value string
	if version > 0 {
		e, err := h.svc.Version(ctx, name, version)
		if err != nil {
			return nil, err
		}
		value = e.Value
	} else {
		// Use Resolve to support both names and keys
		e, err := h.svc.Resolve(ctx, name, false)
		if err != nil {
			return nil, err
		}
		value = e.Value
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "text/plain",
			Text:     value,
		},
	}, nil
}

// parseEntryURI extracts name and version from an entry URI.
// Supports: tdf://entries/{name} and tdf://entries/{name}/v/{version}
func parseEntryURI(uri string) (name string, version int, err error) {
	const prefix = "tdf://entries/"
	if !strings.HasPrefix(uri, prefix) {
		return "", 0, fmt.Errorf("%w: %s", ErrInvalidURI, uri)
	}

	rest := strings.TrimPrefix(uri, prefix)
	if rest == "" {
		return "", 0, ErrEmptyName
	}

	// Check for version suffix: /v/{version}
	if idx := strings.LastIndex(rest, "/v/"); idx != -1 {
		name = rest[:idx]
		vStr := rest[idx+3:]
		v, err := strconv.Atoi(vStr)
		if err != nil {
			return "", 0, fmt.Errorf("%w: invalid version %s", ErrInvalidURI, vStr)
		}
		return name, v, nil
	}

	return rest, 0, nil
}
