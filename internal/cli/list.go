package cli

import (
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"github.com/HendryAvila/specdeck/internal/store"
)

// NewListCommand creates the list command.
func NewListCommand() *cobra.Command {
	return &cobra.Command{
		Use:           "list",
		Short:         "List all specs with their progress",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd)
		},
	}
}

func runList(cmd *cobra.Command) error {
	s, err := discoverStore()
	if err != nil {
		return err
	}
	summaries, err := s.LoadAll()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(summaries) == 0 {
		fmt.Fprintln(out, "No specs found.")
		return nil
	}

	// Ungrouped specs first, then each group under its own header.
	var ungrouped []store.Summary
	grouped := map[string][]store.Summary{}
	for _, sum := range summaries {
		if sum.Group == "" {
			ungrouped = append(ungrouped, sum)
		} else {
			grouped[sum.Group] = append(grouped[sum.Group], sum)
		}
	}
	for _, sum := range ungrouped {
		printSummary(out, sum)
	}
	groups := make([]string, 0, len(grouped))
	for g := range grouped {
		groups = append(groups, g)
	}
	sort.Strings(groups)
	for _, g := range groups {
		if len(ungrouped) > 0 || len(groups) > 1 {
			fmt.Fprintln(out)
		}
		fmt.Fprintf(out, "%s/\n", g)
		for _, sum := range grouped[g] {
			printSummary(out, sum)
		}
	}
	return nil
}

func printSummary(w io.Writer, sum store.Summary) {
	fmt.Fprintf(w, "  %s %3d%%  %-40s %s\n",
		progressBar(sum.Checked, sum.Total), sum.Percent(),
		sum.Name, store.DisplayStamp(sum.Stamp))
}

// progressBar renders a ten-slot completion bar like "[####------]".
func progressBar(checked, total int) string {
	if total == 0 {
		return "[##########]"
	}
	filled := checked * 10 / total
	bar := make([]byte, 10)
	for i := range bar {
		if i < filled {
			bar[i] = '#'
		} else {
			bar[i] = '-'
		}
	}
	return "[" + string(bar) + "]"
}
