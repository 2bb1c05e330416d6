package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mj1618/desktop-tree/internal/server"
	"github.com/mj1618/desktop-tree/internal/version"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start an MCP server exposing desktop-tree tools",
	Long: `Start a Model Context Protocol (MCP) server that exposes snapshots and annotated
screenshots as tools. AI agents can call tools directly without shell overhead.

Supported transports:
  stdio   Standard I/O (default, for MCP clients)
  http    Streamable HTTP transport (for remote agents)

Examples:
  desktop-tree serve
  desktop-tree serve --transport http --port 8080`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("transport", "", "Transport: stdio, http (default: server.transport from config)")
	serveCmd.Flags().Int("port", 0, "HTTP port for the http transport (default: server.port from config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	transport, _ := cmd.Flags().GetString("transport")
	port, _ := cmd.Flags().GetInt("port")

	if transport == "" {
		transport = cfg.Server.Transport
	}
	if port == 0 {
		port = cfg.Server.Port
	}
	scfg := server.Config{
		Name:    "desktop-tree",
		Version: version.Version,
		Scale:   cfg.Annotate.Scale,
	}

	s, err := newSession(cfg)
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}
	defer s.Close()

	return server.New(s.tree, scfg, s.logger).Serve(transport, port)
}
