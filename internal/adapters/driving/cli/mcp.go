package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/glazed/internal/adapters/driving/mcp"
	"github.com/custodia-labs/glazed/internal/core/domain"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server for AI assistant integration.

By default, the server communicates over stdio using JSON-RPC.
Use --port to start an HTTP server instead.

Tools: app_metadata, instrument_session_runs, run_data, table_data.
Resources: glazed://service, glazed://sessions/{session}/runs,
glazed://runs/{runId}/data.

Examples:
  # Stdio mode (default)
  glazed mcp serve --auth "Bearer $TOKEN"

  # HTTP mode
  glazed mcp serve --port 8080`,
	Args: cobra.NoArgs,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpServeCmd.Flags().String("auth", "", "authorization header value forwarded to Tiled")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}
	auth, err := cmd.Flags().GetString("auth")
	if err != nil {
		return fmt.Errorf("getting auth flag: %w", err)
	}

	if err := ensureServices(); err != nil {
		return err
	}

	server, err := mcp.NewServer(&mcp.Ports{
		Sessions:   sessionService,
		Assets:     assetService,
		Credential: domain.Credential(auth),
	})
	if err != nil {
		return err
	}

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(cmd.Context(), addr)
	}

	return server.Run(cmd.Context())
}
