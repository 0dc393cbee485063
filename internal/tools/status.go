package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/specdeck/internal/spec"
)

// StatusTool handles the spec_status MCP tool. It reports completion
// progress for one spec, task by task, or a store-wide overview when
// no name is given.
type StatusTool struct{}

// NewStatusTool creates a StatusTool.
func NewStatusTool() *StatusTool {
	return &StatusTool{}
}

// Definition returns the MCP tool definition for registration.
func (t *StatusTool) Definition() mcp.Tool {
	return mcp.NewTool("spec_status",
		mcp.WithDescription(
			"Show implementation progress. With a name, shows the full "+
				"task tree of that spec with per-task and per-group "+
				"completion. Without a name, shows an overview of every "+
				"spec in the store.",
		),
		mcp.WithString("name",
			mcp.Description("Spec name; omit for a store-wide overview"),
		),
	)
}

// Handle processes the spec_status tool call.
func (t *StatusTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := req.GetString("name", "")

	s, err := openStore()
	if err != nil {
		return nil, err
	}

	if name == "" {
		summaries, err := s.LoadAll()
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if len(summaries) == 0 {
			return mcp.NewToolResultText("No specs found. Create one with spec_new."), nil
		}
		return mcp.NewToolResultText(renderList(summaries)), nil
	}

	doc, _, err := loadDocument(s, name)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	tasks, err := doc.Tasks(spec.SectionImplementationPlan)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	checked, total := spec.CompletionAll(tasks)
	fmt.Fprintf(&b, "%s — %s %d/%d tasks complete\n\n",
		doc.Meta.Title, progressBar(checked, total), checked, total)
	renderTree(&b, tasks, 0)
	return mcp.NewToolResultText(b.String()), nil
}

// renderTree writes an indented task tree with per-group leaf counts.
func renderTree(b *strings.Builder, nodes []*spec.TaskNode, depth int) {
	for _, n := range nodes {
		mark := " "
		if n.Checked {
			mark = "x"
		}
		indent := strings.Repeat("  ", depth)
		if len(n.Children) == 0 {
			fmt.Fprintf(b, "%s[%s] %s: %s\n", indent, mark, n.ID, n.Description)
		} else {
			checked, total := spec.Completion(n)
			fmt.Fprintf(b, "%s[%s] %s: %s (%d/%d)\n", indent, mark, n.ID, n.Description, checked, total)
			renderTree(b, n.Children, depth+1)
		}
	}
}
