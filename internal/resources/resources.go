// Package resources implements MCP resource handlers for decision spaces.
//
// Resources provide read-only data that the host can consume for context.
// They use URI-based addressing (ppmfit://...) following MCP conventions.
package resources

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/ppmfit/internal/spaces"
)

const (
	// ListURI lists every decision space.
	ListURI = "ppmfit://spaces"
	// SpaceURITemplate addresses one decision space by ID.
	SpaceURITemplate = "ppmfit://spaces/{id}"

	spacePrefix = "ppmfit://spaces/"
)

// Handler manages decision-space resource endpoints.
type Handler struct {
	repo spaces.Repository
}

// NewHandler creates a resource Handler with its dependencies.
func NewHandler(repo spaces.Repository) *Handler {
	return &Handler{repo: repo}
}

// ListResource returns the MCP resource definition for the space list.
func (h *Handler) ListResource() mcp.Resource {
	return mcp.NewResource(
		ListURI,
		"Decision Spaces",
		mcp.WithResourceDescription("All decision spaces with their lifecycle state and counts"),
		mcp.WithMIMEType("application/json"),
	)
}

// HandleList returns the space list as JSON.
func (h *Handler) HandleList(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	list, err := h.repo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "listing spaces")
	}

	data, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "marshaling spaces")
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

// SpaceTemplate returns the MCP resource template for a single space.
func (h *Handler) SpaceTemplate() mcp.ResourceTemplate {
	return mcp.NewResourceTemplate(
		SpaceURITemplate,
		"Decision Space",
		mcp.WithTemplateDescription("Status report of one decision space: state, criteria, tools and next step"),
		mcp.WithTemplateMIMEType("text/markdown"),
	)
}

// HandleSpace returns the status report of the space named in the URI.
func (h *Handler) HandleSpace(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	uri := req.Params.URI
	id := strings.Trim(strings.TrimPrefix(uri, spacePrefix), "/")
	if id == "" || !strings.HasPrefix(uri, spacePrefix) {
		return errorResource(uri, fmt.Sprintf("expected %s", SpaceURITemplate)), nil
	}

	sp, err := h.repo.Get(ctx, id)
	if errors.Is(err, spaces.ErrNotFound) {
		return errorResource(uri, err.Error()), nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "loading space %s", id)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "text/markdown",
			Text:     spaces.RenderStatus(sp),
		},
	}, nil
}

// errorResource returns a resource with an error message.
func errorResource(uri, message string) []mcp.ResourceContents {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "text/plain",
			Text:     fmt.Sprintf("Error: %s", message),
		},
	}
}
