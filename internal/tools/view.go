package tools

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/specdeck/internal/config"
	"github.com/HendryAvila/specdeck/internal/spec"
)

// ViewTool handles the spec_view MCP tool. It returns a spec's full
// content, substituting referenced application names with their
// configured folder paths when a mapping exists.
type ViewTool struct{}

// NewViewTool creates a ViewTool.
func NewViewTool() *ViewTool {
	return &ViewTool{}
}

// Definition returns the MCP tool definition for registration.
func (t *ViewTool) Definition() mcp.Tool {
	return mcp.NewTool("spec_view",
		mcp.WithDescription(
			"Read the full content of a spec by name. When the spec's "+
				"metadata references applications, their names are replaced "+
				"with the folder paths from the user's repository config so "+
				"the plan points at real code locations.",
		),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Spec name to view (kebab-case, group prefix not required)"),
		),
	)
}

// Handle processes the spec_view tool call.
func (t *ViewTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	s, err := openStore()
	if err != nil {
		return nil, err
	}
	path, err := s.Resolve(name)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading spec: %w", err)
	}

	content, err := substituteApplications(string(data))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(content), nil
}

// substituteApplications replaces referenced application names with
// configured folder paths. Content without application references
// passes through unchanged.
func substituteApplications(content string) (string, error) {
	doc, err := spec.Parse(content)
	if err != nil {
		return "", err
	}
	if len(doc.Meta.Applications) == 0 {
		return content, nil
	}

	cfgPath, err := config.Path()
	if err != nil {
		return "", err
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return "", err
	}
	resolved, err := cfg.ResolveApplications(doc.Meta.Applications)
	if err != nil {
		return "", err
	}

	out := content
	for app, folder := range resolved {
		out = strings.ReplaceAll(out, app, folder)
	}
	return out, nil
}
