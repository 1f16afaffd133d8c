package mcp

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/bobmcallan/canvas-mcp/internal/common"
)

// versionInfo holds version fields for the running server.
type versionInfo struct {
	Version   string `json:"version"`
	Build     string `json:"build"`
	Commit    string `json:"commit"`
	CanvasAPI string `json:"canvas_api,omitempty"`
}

// VersionTool returns the mcp.Tool definition for get_version.
func VersionTool() mcp.Tool {
	return mcp.NewTool("get_version",
		mcp.WithDescription("Get the Canvas MCP server version and the Canvas API it talks to. Use this to verify connectivity."),
	)
}

// VersionToolHandler reports build info and the configured Canvas API root.
func VersionToolHandler(canvasAPI string) server.ToolHandlerFunc {
	return func(ctx context.Context, r mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		out, err := json.Marshal(versionInfo{
			Version:   common.GetVersion(),
			Build:     common.GetBuild(),
			Commit:    common.GetGitCommit(),
			CanvasAPI: canvasAPI,
		})
		if err != nil {
			return errorResult("failed to marshal version info"), nil
		}
		return mcp.NewToolResultText(string(out)), nil
	}
}
