package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/HendryAvila/specdeck/internal/format"
	"github.com/HendryAvila/specdeck/internal/store"
	"github.com/HendryAvila/specdeck/internal/template"
)

// NewNewCommand creates the new command.
func NewNewCommand() *cobra.Command {
	var templateName string

	cmd := &cobra.Command{
		Use:   "new <name>",
		Short: "Create a new spec",
		Long: `Create a new spec file from a template.

The name must be kebab-case and may carry a one-level group prefix,
e.g. "auth/login-flow". When a template named "default" exists it is
applied automatically; otherwise a built-in scaffold is used.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNew(cmd, args[0], templateName)
		},
	}

	cmd.Flags().StringVarP(&templateName, "template", "t", "", "template to scaffold from")
	return cmd
}

func runNew(cmd *cobra.Command, input, templateName string) error {
	s, err := discoverStore()
	if err != nil {
		return err
	}
	group, name, err := store.SplitInput(input)
	if err != nil {
		return err
	}

	content, err := template.Scaffold(s.Root, name, templateName)
	if err != nil {
		return err
	}
	formatted, err := format.Format(content)
	if err != nil {
		return fmt.Errorf("formatting scaffold: %w", err)
	}

	path, err := s.Create(name, group, formatted)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created spec: %s\n", filepath.Base(path))
	return nil
}
