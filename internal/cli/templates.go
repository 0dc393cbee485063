package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/HendryAvila/specdeck/internal/template"
)

// NewTemplatesCommand creates the templates command.
func NewTemplatesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "templates",
		Short: "List available spec templates",
		Long: `List every available template. Templates are Markdown files in
.specs/templates/ (repo-level) or ~/.config/specdeck/templates/
(user-level); repo templates shadow user templates with the same
name. A template named "default" is applied automatically by new.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTemplates(cmd)
		},
	}
}

func runTemplates(cmd *cobra.Command) error {
	s, err := discoverStore()
	if err != nil {
		return err
	}
	templates, err := template.Collect(s.Root)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(templates) == 0 {
		fmt.Fprintln(out, "No templates found.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Create templates as Markdown files in:")
		fmt.Fprintln(out, "  .specs/templates/               (repo-level)")
		fmt.Fprintln(out, "  ~/.config/specdeck/templates/   (user-level)")
		return nil
	}
	for _, t := range templates {
		fmt.Fprintf(out, "%-30s (%s)\n", t.Name, t.Source)
	}
	return nil
}
