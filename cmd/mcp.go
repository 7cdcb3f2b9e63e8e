package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/xvierd/striktflow/internal/adapters/mcp"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol (MCP) server for integration with AI assistants.
The server communicates over stdio and exposes tools for tasks, deadlines,
settings and an in-process timer.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := setupSignalHandler(contextOf(cmd))
		defer cancel()

		// The timer lives as long as the server.
		ctrl := newController(ctx)
		defer ctrl.Close()

		app.logger.Info("starting MCP server on stdio")
		server := mcp.NewServer(app.state, Version)
		if err := server.Start(ctx); err != nil {
			return fmt.Errorf("MCP server error: %w", err)
		}
		return nil
	},
}
