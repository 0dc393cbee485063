package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/HendryAvila/specdeck/internal/dashboard"
)

// NewDashboardCommand creates the dashboard command.
func NewDashboardCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Open a live terminal dashboard over the spec store",
		Long: `Open a full-screen terminal UI listing every spec with its task
progress. Selecting a spec shows its implementation plan as a
collapsible tree. The view reloads automatically when spec files
change on disk.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := discoverStore()
			if err != nil {
				return err
			}
			if _, err := os.Stat(s.Root); err != nil {
				return fmt.Errorf("no spec store at %s, run specdeck init first", s.Root)
			}
			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(),
				&slog.HandlerOptions{Level: slog.LevelWarn}))
			return dashboard.Run(cmd.Context(), s, logger)
		},
	}
}
