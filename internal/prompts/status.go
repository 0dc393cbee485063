// Package prompts implements the MCP prompts exposed by the server.
package prompts

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

// StatusPrompt handles the spec-status MCP prompt. It instructs the
// AI to read and present the current state of the spec store.
type StatusPrompt struct{}

// NewStatusPrompt creates a StatusPrompt.
func NewStatusPrompt() *StatusPrompt {
	return &StatusPrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *StatusPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("spec-status",
		mcp.WithPromptDescription(
			"Check the state of every spec in this project: what is "+
				"in progress, what is pending, and what is done.",
		),
	)
}

// Handle processes the spec-status prompt request.
func (p *StatusPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	return &mcp.GetPromptResult{
		Description: "Spec Store Status",
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.NewTextContent(
					"Please run `spec_list` to check the state of my specs.\n\n" +
						"Then:\n" +
						"1. Show me the in-progress specs first with their completion percentage\n" +
						"2. For any spec that is close to done, list the remaining open tasks (use `spec_status`)\n" +
						"3. Tell me which spec you recommend working on next and why",
				),
			},
		},
	}, nil
}
