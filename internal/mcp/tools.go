package mcp

import (
	"context"
	"errors"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/bobmcallan/canvas-mcp/internal/tools"
)

// RegisterTools exposes every registry tool on the MCP server.
func RegisterTools(s *server.MCPServer, reg *tools.Registry) int {
	for _, t := range reg.Tools() {
		s.AddTool(BuildMCPTool(t), registryHandler(reg, t.Name))
	}
	return reg.Len()
}

// registryHandler routes an MCP tool call through the registry dispatcher.
func registryHandler(reg *tools.Registry, name string) server.ToolHandlerFunc {
	return func(ctx context.Context, r mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		res, err := reg.Dispatch(ctx, name, r.GetArguments())
		if err != nil {
			if errors.Is(err, tools.ErrToolNotFound) {
				return nil, err
			}
			return errorResult("Error: " + tools.Message(err)), nil
		}
		if res.IsError {
			return errorResult(res.Content), nil
		}
		return mcp.NewToolResultText(res.Content), nil
	}
}
