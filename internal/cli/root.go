// Package cli implements the specdeck command-line interface. Each
// subcommand lives in its own file and writes through the cobra
// command's output streams so tests can capture everything.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/HendryAvila/specdeck/internal/store"
)

// Version is set at build time via ldflags.
var Version = "dev"

// NewRootCommand creates the root command with all subcommands
// registered.
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "specdeck",
		Short:   "Manage structured planning documents",
		Version: Version,
		Long: `specdeck manages specs: Markdown planning documents with YAML
metadata and four fixed sections (Background, Proposal, Implementation
Plan, Test Plan). Specs live under .specs/ with minute-stamped
filenames and optional one-level grouping.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(NewNewCommand())
	cmd.AddCommand(NewListCommand())
	cmd.AddCommand(NewViewCommand())
	cmd.AddCommand(NewEditCommand())
	cmd.AddCommand(NewDeleteCommand())
	cmd.AddCommand(NewCheckCommand())
	cmd.AddCommand(NewUncheckCommand())
	cmd.AddCommand(NewFormatCommand())
	cmd.AddCommand(NewStatusCommand())
	cmd.AddCommand(NewConfigCommand())
	cmd.AddCommand(NewTemplatesCommand())
	cmd.AddCommand(NewDashboardCommand())
	cmd.AddCommand(NewServeCommand())
	cmd.AddCommand(NewInitCommand())
	cmd.AddCommand(NewUpgradeCommand())

	return cmd
}

// discoverStore locates the spec store for the invocation.
func discoverStore() (*store.Store, error) {
	s, err := store.Discover()
	if err != nil {
		return nil, fmt.Errorf("locating spec store: %w", err)
	}
	return s, nil
}
