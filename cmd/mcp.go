package cmd

import (
	"github.com/spf13/cobra"

	"incsight/internal/fetchlog"
	"incsight/internal/mcp"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the Incsight MCP server",
	Long:  `Launch an MCP server that allows AI agents to inspect fetched incident batches via standard tools.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// The protocol owns stdio, so setup must not print anything on success.
		return sharedSetup(rootCtx, cmd, args)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, fetchlog.Manager)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
