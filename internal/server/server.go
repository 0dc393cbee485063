// Package server wires all MCP components and creates the server
// instance. This is the composition root: it creates the tool,
// prompt, and resource handlers and registers them. No business logic
// lives here.
package server

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/HendryAvila/specdeck/internal/prompts"
	"github.com/HendryAvila/specdeck/internal/resources"
	"github.com/HendryAvila/specdeck/internal/tools"
)

// Version is set at build time via ldflags.
var Version = "dev"

// New creates and configures the MCP server with all tools, prompts,
// and resources registered.
func New() *server.MCPServer {
	s := server.NewMCPServer(
		"specdeck",
		Version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithPromptCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)

	// --- Tools ---

	newTool := tools.NewNewTool()
	s.AddTool(newTool.Definition(), newTool.Handle)

	listTool := tools.NewListTool()
	s.AddTool(listTool.Definition(), listTool.Handle)

	viewTool := tools.NewViewTool()
	s.AddTool(viewTool.Definition(), viewTool.Handle)

	checkTool := tools.NewCheckTool()
	s.AddTool(checkTool.Definition(), checkTool.Handle)

	statusTool := tools.NewStatusTool()
	s.AddTool(statusTool.Definition(), statusTool.Handle)

	// --- Prompts ---

	statusPrompt := prompts.NewStatusPrompt()
	s.AddPrompt(statusPrompt.Definition(), statusPrompt.Handle)

	workPrompt := prompts.NewWorkPrompt()
	s.AddPrompt(workPrompt.Definition(), workPrompt.Handle)

	// --- Resources ---

	resourceHandler := resources.NewHandler()
	s.AddResource(resourceHandler.SpecsResource(), resourceHandler.HandleSpecs)

	return s
}

// serverInstructions returns the system instructions that tell the AI
// how to use the spec store effectively.
func serverInstructions() string {
	return `You have access to specdeck, a structured planning-document manager.

## What a spec is

A spec is one Markdown file with YAML metadata plus exactly four
sections, in order: Background, Proposal, Implementation Plan, Test
Plan. The Implementation Plan and Test Plan hold checklists of the
form "- [ ] A: description" where ids nest with dots (A, A.1, A.1.2).
A child id always extends its parent id by one segment.

## When to use specdeck

Suggest writing a spec before any multi-step piece of work: a new
feature, a refactor that touches several files, or anything the user
describes in more than a couple of sentences. Small one-line fixes do
not need a spec.

## Workflow

1. Create the file with spec_new, then edit it to fill in the four
   sections. Write the Implementation Plan as a nested checklist with
   stable task ids.
2. While implementing, call spec_check after each task lands. Never
   mark a parent done while a child is open; completion percentages
   are computed from leaf tasks only.
3. Use spec_status to see what remains, and spec_list for a store-wide
   overview.
4. spec_view substitutes application names from the metadata with the
   user's configured repository paths, so prefer it over reading the
   file directly when the spec references other repositories.

## Rules

- Spec names are kebab-case and globally unique, even across groups.
- Never renumber existing task ids; append new ones instead.
- Keep task descriptions short; detail belongs in the Proposal.`
}
