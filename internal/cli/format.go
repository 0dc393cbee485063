package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/HendryAvila/specdeck/internal/format"
	"github.com/HendryAvila/specdeck/internal/store"
)

// NewFormatCommand creates the format command.
func NewFormatCommand() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "format [name]",
		Short: "Normalize a spec's Markdown style",
		Long: `Normalize a spec's body style in place: list bullets, checkbox
marks, blank-line runs, and trailing whitespace. The metadata block is
never touched. Formatting is idempotent.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if all {
				return runFormatAll(cmd)
			}
			if len(args) != 1 {
				return fmt.Errorf("either a spec name or --all is required")
			}
			return runFormat(cmd, args[0])
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "format every spec in the store")
	return cmd
}

func runFormat(cmd *cobra.Command, name string) error {
	s, err := discoverStore()
	if err != nil {
		return err
	}
	path, err := s.Resolve(name)
	if err != nil {
		return err
	}
	if err := formatFile(path); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Formatted %s\n", filepath.Base(path))
	return nil
}

func runFormatAll(cmd *cobra.Command) error {
	s, err := discoverStore()
	if err != nil {
		return err
	}
	files, err := s.Files()
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No specs found.")
		return nil
	}
	for _, f := range files {
		if err := formatFile(f.Path); err != nil {
			return fmt.Errorf("%s: %w", filepath.Base(f.Path), err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Formatted %s\n", filepath.Base(f.Path))
	}
	return nil
}

func formatFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading spec: %w", err)
	}
	formatted, err := format.Format(string(data))
	if err != nil {
		return err
	}
	if formatted == string(data) {
		return nil
	}
	return store.WriteFileAtomic(path, []byte(formatted))
}
