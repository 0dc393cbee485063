package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/specdeck/internal/store"
)

// ListTool handles the spec_list MCP tool. It reports every spec in
// the store with its group and completion progress.
type ListTool struct{}

// NewListTool creates a ListTool.
func NewListTool() *ListTool {
	return &ListTool{}
}

// Definition returns the MCP tool definition for registration.
func (t *ListTool) Definition() mcp.Tool {
	return mcp.NewTool("spec_list",
		mcp.WithDescription(
			"List all specs in the project's spec store with their "+
				"implementation progress. Specs are grouped by subdirectory; "+
				"incomplete specs appear first.",
		),
	)
}

// Handle processes the spec_list tool call.
func (t *ListTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s, err := openStore()
	if err != nil {
		return nil, err
	}
	summaries, err := s.LoadAll()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(summaries) == 0 {
		return mcp.NewToolResultText("No specs found. Create one with spec_new."), nil
	}
	return mcp.NewToolResultText(renderList(summaries)), nil
}

// renderList formats summaries as a grouped, progress-annotated text
// listing.
func renderList(summaries []store.Summary) string {
	var b strings.Builder
	for _, sum := range summaries {
		name := sum.Name
		if sum.Group != "" {
			name = sum.Group + "/" + sum.Name
		}
		fmt.Fprintf(&b, "%s %3d%%  %-40s %s (%d/%d tasks, %s)\n",
			progressBar(sum.Checked, sum.Total), sum.Percent(),
			name, store.DisplayStamp(sum.Stamp),
			sum.Checked, sum.Total, sum.Status(),
		)
	}
	return b.String()
}
