package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/HendryAvila/specdeck/internal/config"
	"github.com/HendryAvila/specdeck/internal/spec"
)

// NewViewCommand creates the view command.
func NewViewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "view <name>",
		Short: "Print a spec's content",
		Long: `Print the full content of a spec.

When the spec's metadata references applications, their names are
replaced with the folder paths from your repository config so the
plan points at real code locations. Unmapped names fail the command
rather than producing a half-substituted document.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runView(cmd, args[0])
		},
	}
}

func runView(cmd *cobra.Command, name string) error {
	s, err := discoverStore()
	if err != nil {
		return err
	}
	path, err := s.Resolve(name)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading spec: %w", err)
	}
	content := string(data)

	doc, err := spec.Parse(content)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	if len(doc.Meta.Applications) > 0 {
		cfgPath, err := config.Path()
		if err != nil {
			return err
		}
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return err
		}
		resolved, err := cfg.ResolveApplications(doc.Meta.Applications)
		if err != nil {
			return err
		}
		for app, folder := range resolved {
			content = strings.ReplaceAll(content, app, folder)
		}
	}

	fmt.Fprint(cmd.OutOrStdout(), content)
	return nil
}
