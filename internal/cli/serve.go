package cli

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	specserver "github.com/HendryAvila/specdeck/internal/server"
)

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server (stdio transport)",
		Long: `Start the MCP server over stdio so AI coding tools can manage
specs directly. Add to your tool's MCP config:

  {
    "mcpServers": {
      "specdeck": {
        "command": "specdeck",
        "args": ["serve"]
      }
    }
  }`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			specserver.Version = Version
			return server.ServeStdio(specserver.New())
		},
	}
}
