package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/HendryAvila/specdeck/internal/spec"
	"github.com/HendryAvila/specdeck/internal/store"
)

// NewCheckCommand creates the check command.
func NewCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check <name> <task-id>",
		Short: "Mark a checklist task as done",
		Long: `Mark one checklist task as done. The task id is looked up in the
Implementation Plan first, then in the Test Plan.

Only the targeted checklist line changes. Checking a parent never
cascades to its children; group completion is always computed from
leaf tasks. Checking an already-checked task is a no-op.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSetChecked(cmd, args[0], args[1], true)
		},
	}
}

// NewUncheckCommand creates the uncheck command.
func NewUncheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:           "uncheck <name> <task-id>",
		Short:         "Mark a checklist task as not done",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSetChecked(cmd, args[0], args[1], false)
		},
	}
}

func runSetChecked(cmd *cobra.Command, name, taskID string, checked bool) error {
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

	section, err := doc.SetTaskCheckedAny(taskID, checked)
	if err != nil {
		return err
	}
	if err := store.WriteFileAtomic(path, []byte(doc.Serialize())); err != nil {
		return err
	}

	tasks, err := doc.Tasks(section)
	if err != nil {
		return err
	}
	done, total := spec.CompletionAll(tasks)

	state := "done"
	if !checked {
		state = "not done"
	}
	label := "tasks"
	if section == spec.SectionTestPlan {
		label = "test tasks"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Marked %s as %s (%d/%d %s complete)\n", taskID, state, done, total, label)
	return nil
}
