// ABOUTME: CLI command for starting MCP server.
// ABOUTME: Runs stdio-based MCP server for Claude integration.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/harperreed/vitral/internal/mcp"
	"github.com/spf13/cobra"
)

var mcpOffline bool

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant integration.

MCP allows AI assistants like Claude to read your health dashboard through
a standardized protocol. The server communicates via stdin/stdout; logs go
to stderr.

CLAUDE DESKTOP CONFIGURATION:

  Add this to your Claude Desktop config (claude_desktop_config.json):

  {
    "mcpServers": {
      "vitral": {
        "command": "vitral",
        "args": ["mcp"]
      }
    }
  }

  On macOS, the config is at:
    ~/Library/Application Support/Claude/claude_desktop_config.json

AVAILABLE TOOLS:

  get_dashboard     Today's dashboard
  list_records      Records in the window
  evaluate_metric   Classify a value for a metric
  health_score      Composite score for a day

AVAILABLE RESOURCES:

  vitral://dashboard         Today's dashboard
  vitral://records/recent    The last 7 records`,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := openService(cmd.Context(), mcpOffline)
		if err != nil {
			return err
		}
		defer svc.Source.Close()

		server, err := mcp.NewServer(svc)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// Handle shutdown signals
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-sigChan
			cancel()
		}()

		return server.Serve(ctx)
	},
}

func init() {
	mcpCmd.Flags().BoolVar(&mcpOffline, "offline", false, "serve from the local mirror")
	rootCmd.AddCommand(mcpCmd)
}
