package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// promptDef is a single-message prompt parameterised by course_id.
type promptDef struct {
	name        string
	description string
	argument    string
	summary     string
	template    string
}

var prompts = []promptDef{
	{
		name:        "audit_course",
		description: "Audit a course to find students who are missing assignments.",
		argument:    "The ID of the course to audit",
		summary:     "Audit course for missing submissions",
		template:    "Please audit course %s to find any students who have not submitted assignments that are due soon or past due. Use the canvas_audit_course tool.",
	},
	{
		name:        "summarize_course",
		description: "Summarize the content and structure of a course.",
		argument:    "The ID of the course",
		summary:     "Summarize course content",
		template:    "Please provide a summary of the course %s. List the modules, pages, and files available to understand the course structure.",
	},
}

// RegisterPrompts adds the course prompts to the MCP server.
func RegisterPrompts(s *server.MCPServer) {
	for _, p := range prompts {
		s.AddPrompt(
			mcp.NewPrompt(p.name,
				mcp.WithPromptDescription(p.description),
				mcp.WithArgument("course_id", mcp.ArgumentDescription(p.argument), mcp.RequiredArgument()),
			),
			promptHandler(p),
		)
	}
}

func promptHandler(p promptDef) server.PromptHandlerFunc {
	return func(ctx context.Context, r mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
		courseID := strings.TrimSpace(r.Params.Arguments["course_id"])
		if courseID == "" {
			return nil, fmt.Errorf("course_id is required")
		}
		return mcp.NewGetPromptResult(p.summary, []mcp.PromptMessage{
			mcp.NewPromptMessage(mcp.RoleUser, mcp.NewTextContent(fmt.Sprintf(p.template, courseID))),
		}), nil
	}
}
