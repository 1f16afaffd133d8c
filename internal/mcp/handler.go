// Package mcp exposes the tool registry, resources and prompts over the
// Model Context Protocol, on stdio or streamable HTTP.
package mcp

import (
	"context"
	"net/http"
	"os"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/bobmcallan/canvas-mcp/internal/common"
	"github.com/bobmcallan/canvas-mcp/internal/resources"
	"github.com/bobmcallan/canvas-mcp/internal/tools"
)

// NewServer builds an MCP server with every registry tool, the canvas://
// resource templates and the course prompts.
func NewServer(reg *tools.Registry, reader *resources.Reader, canvasAPI string, logger *common.Logger) *mcpserver.MCPServer {
	s := mcpserver.NewMCPServer(
		common.ServerName,
		common.GetVersion(),
		mcpserver.WithToolCapabilities(true),
		mcpserver.WithResourceCapabilities(false, false),
		mcpserver.WithPromptCapabilities(false),
		mcpserver.WithRecovery(),
	)

	toolCount := RegisterTools(s, reg)
	s.AddTool(VersionTool(), VersionToolHandler(canvasAPI))
	RegisterResources(s, reader)
	RegisterPrompts(s)

	logger.Info().
		Int("tools", toolCount).
		Int("resource_templates", len(resources.Templates())).
		Int("prompts", len(prompts)).
		Msg("MCP server initialized")
	return s
}

// ServeStdio runs the server over stdin/stdout until ctx is done or stdin closes.
func ServeStdio(ctx context.Context, s *mcpserver.MCPServer) error {
	return mcpserver.NewStdioServer(s).Listen(ctx, os.Stdin, os.Stdout)
}

// Handler is the HTTP handler for the MCP endpoint.
// It wraps mcp-go's StreamableHTTPServer and delegates to it.
type Handler struct {
	streamable *mcpserver.StreamableHTTPServer
	logger     *common.Logger
}

// NewHandler wraps s in a stateless streamable HTTP transport.
func NewHandler(s *mcpserver.MCPServer, logger *common.Logger) *Handler {
	return &Handler{
		streamable: mcpserver.NewStreamableHTTPServer(s, mcpserver.WithStateLess(true)),
		logger:     logger,
	}
}

// ServeHTTP delegates to the mcp-go StreamableHTTPServer.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.streamable.ServeHTTP(w, r)
}
