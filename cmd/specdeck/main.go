// specdeck manages structured planning documents: Markdown specs with
// YAML metadata, four fixed sections, and hierarchical task checklists.
//
// Usage:
//
//	specdeck new <name>          # Create a spec from a template
//	specdeck check <name> <task> # Check off an implementation task
//	specdeck dashboard           # Live terminal dashboard
//	specdeck serve               # Start the MCP server (stdio)
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/HendryAvila/specdeck/internal/cli"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	cli.Version = version
	root := cli.NewRootCommand()
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
