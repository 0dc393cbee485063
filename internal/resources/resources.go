// Package resources implements the MCP resource handlers.
//
// Resources provide read-only data that the host can consume for
// context. They use URI-based addressing (specdeck://...) following
// MCP conventions.
package resources

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/specdeck/internal/store"
)

// Handler manages the spec store resource endpoints.
type Handler struct{}

// NewHandler creates a resource Handler.
func NewHandler() *Handler {
	return &Handler{}
}

// specEntry is the JSON shape of one spec in the listing.
type specEntry struct {
	Name    string `json:"name"`
	Title   string `json:"title"`
	Group   string `json:"group,omitempty"`
	Created string `json:"created"`
	Path    string `json:"path"`
	Checked int    `json:"checked"`
	Total   int    `json:"total"`
	Status  string `json:"status"`
}

// SpecsResource returns the MCP resource definition for the spec
// listing.
func (h *Handler) SpecsResource() mcp.Resource {
	return mcp.NewResource(
		"specdeck://specs",
		"Spec Store Listing",
		mcp.WithResourceDescription("Every spec in the store with its completion progress"),
		mcp.WithMIMEType("application/json"),
	)
}

// HandleSpecs returns the store listing as JSON.
func (h *Handler) HandleSpecs(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	s, err := store.Discover()
	if err != nil {
		return nil, fmt.Errorf("locating spec store: %w", err)
	}
	summaries, err := s.LoadAll()
	if err != nil {
		return errorResource(req.Params.URI, err.Error()), nil
	}

	entries := make([]specEntry, 0, len(summaries))
	for _, sum := range summaries {
		entries = append(entries, specEntry{
			Name:    sum.Name,
			Title:   sum.Title,
			Group:   sum.Group,
			Created: store.DisplayStamp(sum.Stamp),
			Path:    sum.Path,
			Checked: sum.Checked,
			Total:   sum.Total,
			Status:  sum.Status().String(),
		})
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling spec listing: %w", err)
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

// errorResource returns a resource carrying an error message.
func errorResource(uri, message string) []mcp.ResourceContents {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "text/plain",
			Text:     fmt.Sprintf("Error: %s", message),
		},
	}
}
