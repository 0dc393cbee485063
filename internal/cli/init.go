package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/HendryAvila/specdeck/internal/skills"
	"github.com/HendryAvila/specdeck/internal/store"
)

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a project for spec-driven work",
		Long: `Create the .specs/ store in the current directory and install
the agent skill files under .claude/skills/ so AI coding tools pick
up the spec workflow. Existing skill files are kept unless --force is
given.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing skill files")
	return cmd
}

func runInit(cmd *cobra.Command, force bool) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting working directory: %w", err)
	}

	out := cmd.OutOrStdout()
	if err := os.MkdirAll(store.DefaultDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", store.DefaultDir, err)
	}
	fmt.Fprintf(out, "Initialized spec store at %s/\n", store.DefaultDir)

	if err := skills.Install(cwd, force, out); err != nil {
		return err
	}
	return nil
}
