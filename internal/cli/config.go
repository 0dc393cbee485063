package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/HendryAvila/specdeck/internal/config"
)

// NewConfigCommand creates the config command and its subcommands.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage application-to-folder mappings",
		Long: `Manage the repository config that maps application names
referenced in spec metadata to folder paths on this machine. The
config lives at ~/.specdeck/config.yaml (override the directory with
$SPECDECK_HOME).`,
		SilenceUsage: true,
	}

	cmd.AddCommand(newConfigSetCommand())
	cmd.AddCommand(newConfigListCommand())
	cmd.AddCommand(newConfigRemoveCommand())
	return cmd
}

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:           "set <repo-name> <path>",
		Short:         "Map an application name to a folder path",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.Path()
			if err != nil {
				return err
			}
			cfg, err := config.Load(path)
			if err != nil {
				return err
			}
			cfg.Set(args[0], args[1])
			if err := cfg.Save(path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Mapped %s -> %s\n", args[0], args[1])
			return nil
		},
	}
}

func newConfigListCommand() *cobra.Command {
	return &cobra.Command{
		Use:           "list",
		Short:         "List configured mappings",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.Path()
			if err != nil {
				return err
			}
			cfg, err := config.Load(path)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(cfg.Repositories) == 0 {
				fmt.Fprintln(out, "No repositories configured.")
				fmt.Fprintln(out, "Use `specdeck config set <repo-name> <path>` to add a mapping.")
				return nil
			}
			for _, name := range cfg.Names() {
				fmt.Fprintf(out, "%-30s %s\n", name, cfg.Repositories[name])
			}
			return nil
		},
	}
}

func newConfigRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:           "remove <repo-name>",
		Short:         "Remove a mapping",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.Path()
			if err != nil {
				return err
			}
			cfg, err := config.Load(path)
			if err != nil {
				return err
			}
			if err := cfg.Remove(args[0]); err != nil {
				return err
			}
			if err := cfg.Save(path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", args[0])
			return nil
		},
	}
}
