// Package server exposes desktop snapshots and annotated screenshots as
// Model Context Protocol tools.
package server

import (
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/mj1618/desktop-tree/internal/tree"
)

// Transports accepted by Serve.
const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// Config holds MCP server configuration.
type Config struct {
	Name    string
	Version string
	// Scale is the default screenshot scale of annotated_screenshot.
	Scale float64
}

// Server wraps the MCP server with the snapshot tree. Every tool call takes
// a fresh snapshot.
type Server struct {
	tree   *tree.Tree
	scale  float64
	logger *zap.Logger
	mcp    *mcpserver.MCPServer
}

// New creates and configures an MCP server over t.
func New(t *tree.Tree, cfg Config, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		tree:   t,
		scale:  cfg.Scale,
		logger: logger.With(zap.String("component", "mcp")),
		mcp:    mcpserver.NewMCPServer(cfg.Name, cfg.Version),
	}
	s.registerTools()
	return s
}

// MCP returns the underlying MCP server.
func (s *Server) MCP() *mcpserver.MCPServer {
	return s.mcp
}

// Serve starts the MCP server with the given transport. port is only used
// by the HTTP transport.
func (s *Server) Serve(transport string, port int) error {
	s.logger.Info("starting MCP server", zap.String("transport", transport), zap.Int("port", port))
	switch transport {
	case TransportStdio:
		return mcpserver.ServeStdio(s.mcp)
	case TransportHTTP:
		httpServer := mcpserver.NewStreamableHTTPServer(s.mcp)
		return httpServer.Start(fmt.Sprintf(":%d", port))
	default:
		return fmt.Errorf("unsupported transport: %s (use stdio or http)", transport)
	}
}

func (s *Server) registerTools() {
	s.mcp.AddTool(
		mcp.NewTool("snapshot",
			mcp.WithDescription("Inventory the interactive, informative and scrollable elements of the taskbar, the desktop and the foreground application"),
			mcp.WithString("app", mcp.Description("Only keep elements of this application")),
			mcp.WithString("text", mcp.Description("Only keep elements whose name contains this text")),
			mcp.WithString("format", mcp.Description("Output format: yaml, json, agent (default: yaml)")),
			mcp.WithBoolean("flat", mcp.Description("Merge the three lists into one list of nodes")),
		),
		s.handleSnapshot,
	)

	s.mcp.AddTool(
		mcp.NewTool("windows",
			mcp.WithDescription("List top-level windows and whether each one is scanned"),
		),
		s.handleWindows,
	)

	s.mcp.AddTool(
		mcp.NewTool("annotated_screenshot",
			mcp.WithDescription("Capture the screen with every interactive element outlined and labelled by its index in the snapshot"),
			mcp.WithNumber("scale", mcp.Description("Screenshot scale factor 0.1-1.0 (default: 0.7)")),
			mcp.WithString("app", mcp.Description("Only annotate elements of this application")),
			mcp.WithString("region", mcp.Description("Only annotate elements overlapping left,top,right,bottom")),
			mcp.WithNumber("max-nodes", mcp.Description("Max elements to annotate (0 = unlimited)")),
		),
		s.handleAnnotatedScreenshot,
	)
}
