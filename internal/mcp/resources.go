package mcp

import (
	"context"
	"errors"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/bobmcallan/canvas-mcp/internal/resources"
)

// RegisterResources exposes the canvas:// templates backed by reader.
func RegisterResources(s *server.MCPServer, reader *resources.Reader) {
	handler := func(ctx context.Context, r mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		content, err := reader.Read(ctx, r.Params.URI)
		if err != nil {
			return nil, errors.New(resources.Message(err))
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      content.URI,
				MIMEType: content.MIMEType,
				Text:     content.Text,
			},
		}, nil
	}

	for _, t := range resources.Templates() {
		s.AddResourceTemplate(
			mcp.NewResourceTemplate(t.URI, t.Name,
				mcp.WithTemplateDescription(t.Description),
				mcp.WithTemplateMIMEType(t.MIMEType),
			),
			handler,
		)
	}

	// Catch-all so unknown views reach the reader and fail with its error.
	s.AddResourceTemplate(
		mcp.NewResourceTemplate(resources.Scheme+"://{+path}", "Canvas resource",
			mcp.WithTemplateDescription("Any other canvas:// URI"),
		),
		handler,
	)
}
