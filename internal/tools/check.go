package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/specdeck/internal/spec"
	"github.com/HendryAvila/specdeck/internal/store"
)

// CheckTool handles the spec_check MCP tool. It flips the checkbox of
// one checklist task without disturbing any other line of the file.
type CheckTool struct{}

// NewCheckTool creates a CheckTool.
func NewCheckTool() *CheckTool {
	return &CheckTool{}
}

// Definition returns the MCP tool definition for registration.
func (t *CheckTool) Definition() mcp.Tool {
	return mcp.NewTool("spec_check",
		mcp.WithDescription(
			"Mark one checklist task of a spec as done or not done. The "+
				"task id is looked up in the Implementation Plan first, then "+
				"in the Test Plan. Only the targeted checklist line changes; "+
				"checking a parent never cascades to its children. Marking a "+
				"task that is already in the requested state is a no-op.",
		),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Spec name"),
		),
		mcp.WithString("task",
			mcp.Required(),
			mcp.Description("Task id to update, e.g. A or A.1.2"),
		),
		mcp.WithBoolean("done",
			mcp.Description("Desired state; defaults to true (checked)"),
		),
	)
}

// Handle processes the spec_check tool call.
func (t *CheckTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	taskID, err := req.RequireString("task")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	done := req.GetBool("done", true)

	s, err := openStore()
	if err != nil {
		return nil, err
	}
	doc, path, err := loadDocument(s, name)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	section, err := doc.SetTaskCheckedAny(taskID, done)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := store.WriteFileAtomic(path, []byte(doc.Serialize())); err != nil {
		return nil, fmt.Errorf("writing spec: %w", err)
	}

	tasks, err := doc.Tasks(section)
	if err != nil {
		return nil, fmt.Errorf("rebuilding task tree: %w", err)
	}
	checked, total := spec.CompletionAll(tasks)

	state := "done"
	if !done {
		state = "not done"
	}
	label := "tasks"
	if section == spec.SectionTestPlan {
		label = "test tasks"
	}
	return mcp.NewToolResultText(fmt.Sprintf(
		"Marked task %s of %s as %s. Progress: %d/%d %s complete.",
		taskID, name, state, checked, total, label,
	)), nil
}
