package tools

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/specdeck/internal/format"
	"github.com/HendryAvila/specdeck/internal/store"
	"github.com/HendryAvila/specdeck/internal/template"
)

// NewTool handles the spec_new MCP tool. It scaffolds a new spec file
// from a template and registers it in the store.
type NewTool struct{}

// NewNewTool creates a NewTool.
func NewNewTool() *NewTool {
	return &NewTool{}
}

// Definition returns the MCP tool definition for registration.
func (t *NewTool) Definition() mcp.Tool {
	return mcp.NewTool("spec_new",
		mcp.WithDescription(
			"Create a new spec file in the project's spec store. "+
				"The name must be kebab-case (e.g. user-auth-flow). "+
				"The file is scaffolded from a template with metadata, "+
				"Background, Proposal, Implementation Plan, and Test Plan "+
				"sections, and stamped with a unique creation time prefix. "+
				"Fill in the sections afterwards by editing the file.",
		),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Kebab-case spec name, optionally prefixed with a group like auth/login-flow"),
		),
		mcp.WithString("template",
			mcp.Description("Template name to scaffold from; defaults to the 'default' template when present"),
		),
	)
}

// Handle processes the spec_new tool call.
func (t *NewTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	templateName := req.GetString("template", "")

	s, err := openStore()
	if err != nil {
		return nil, err
	}

	group, name, err := store.SplitInput(input)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	content, err := template.Scaffold(s.Root, name, templateName)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	formatted, err := format.Format(content)
	if err != nil {
		return nil, fmt.Errorf("formatting scaffold: %w", err)
	}

	path, err := s.Create(name, group, formatted)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf(
		"Created spec %s at %s.\n\nFill in the Background and Proposal sections, "+
			"then break the work into checklist tasks under Implementation Plan "+
			"using the form `- [ ] A: description` with dot-nested ids (A.1, A.1.2).",
		filepath.Base(path), path,
	)), nil
}
