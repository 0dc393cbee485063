package prompts

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// WorkPrompt handles the spec-work MCP prompt. It instructs the AI to
// implement the open tasks of one spec, checking each off as it lands.
type WorkPrompt struct{}

// NewWorkPrompt creates a WorkPrompt.
func NewWorkPrompt() *WorkPrompt {
	return &WorkPrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *WorkPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("spec-work",
		mcp.WithPromptDescription(
			"Work through the Implementation Plan of a spec: implement "+
				"each open task in order and mark it done as you go.",
		),
		mcp.WithArgument("name",
			mcp.ArgumentDescription("Name of the spec to work on"),
			mcp.RequiredArgument(),
		),
	)
}

// Handle processes the spec-work prompt request.
func (p *WorkPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	name := req.Params.Arguments["name"]
	return &mcp.GetPromptResult{
		Description: "Implement a spec",
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.NewTextContent(fmt.Sprintf(
					"Please implement the spec %q.\n\n"+
						"1. Run `spec_view` with name=%q and read the whole document\n"+
						"2. Run `spec_status` to see which Implementation Plan tasks are still open\n"+
						"3. Work through the open tasks in order; respect the dot-nested structure\n"+
						"4. After each task is implemented and verified, mark it with `spec_check`\n"+
						"5. Never mark a parent task done while any of its children are open\n"+
						"6. When every task is checked, run the Test Plan section and report the results",
					name, name,
				)),
			},
		},
	}, nil
}
