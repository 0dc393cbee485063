package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/HendryAvila/specdeck/internal/spec"
)

// NewStatusCommand creates the status command.
func NewStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:           "status [name]",
		Short:         "Show a spec's task tree, or the whole store's progress",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return runList(cmd)
			}
			return runStatus(cmd, args[0])
		},
	}
}

func runStatus(cmd *cobra.Command, name string) error {
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
	doc, err := spec.Parse(string(data))
	if err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	tasks, err := doc.Tasks(spec.SectionImplementationPlan)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	checked, total := spec.CompletionAll(tasks)
	fmt.Fprintf(out, "%s  %s %d/%d tasks complete\n", doc.Meta.Title, progressBar(checked, total), checked, total)
	if len(tasks) == 0 {
		fmt.Fprintln(out, "\nNo tasks in the Implementation Plan yet.")
		return nil
	}
	fmt.Fprintln(out)
	printTree(out, tasks, 0)
	return nil
}

// printTree writes an indented task tree with per-group leaf counts.
func printTree(w io.Writer, nodes []*spec.TaskNode, depth int) {
	for _, n := range nodes {
		mark := " "
		if n.Checked {
			mark = "x"
		}
		indent := strings.Repeat("  ", depth)
		if len(n.Children) == 0 {
			fmt.Fprintf(w, "%s[%s] %s: %s\n", indent, mark, n.ID, n.Description)
			continue
		}
		checked, total := spec.Completion(n)
		fmt.Fprintf(w, "%s[%s] %s: %s (%d/%d)\n", indent, mark, n.ID, n.Description, checked, total)
		printTree(w, n.Children, depth+1)
	}
}
