package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/HendryAvila/specdeck/internal/updater"
)

// NewUpgradeCommand creates the upgrade command.
func NewUpgradeCommand() *cobra.Command {
	return &cobra.Command{
		Use:           "upgrade",
		Short:         "Upgrade specdeck to the latest release",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			result := updater.CheckVersion(Version)
			if !result.UpdateAvailable {
				fmt.Fprintf(out, "Already at the latest version (v%s)\n", result.CurrentVersion)
				return nil
			}
			fmt.Fprintf(out, "Upgrading v%s -> v%s ...\n", result.CurrentVersion, result.LatestVersion)

			if err := updater.SelfUpdate(Version); err != nil {
				return fmt.Errorf("upgrade failed: %w (download manually from %s)", err, result.ReleaseURL)
			}
			fmt.Fprintf(out, "Upgraded to v%s\n", result.LatestVersion)
			return nil
		},
	}
}
