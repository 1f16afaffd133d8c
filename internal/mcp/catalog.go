package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/bobmcallan/canvas-mcp/internal/tools"
)

// BuildMCPTool converts a registry tool into an mcp.Tool with the matching schema.
func BuildMCPTool(t tools.Tool) mcp.Tool {
	opts := []mcp.ToolOption{mcp.WithDescription(t.Description)}
	for _, p := range t.Params {
		opts = append(opts, buildParamOption(p))
	}
	return mcp.NewTool(t.Name, opts...)
}

// buildParamOption maps a tools.Param to the appropriate mcp-go tool option.
func buildParamOption(p tools.Param) mcp.ToolOption {
	var opts []mcp.PropertyOption
	if p.Description != "" {
		opts = append(opts, mcp.Description(p.Description))
	}
	if p.Required {
		opts = append(opts, mcp.Required())
	}
	if len(p.Enum) > 0 {
		opts = append(opts, mcp.Enum(p.Enum...))
	}

	switch p.Type {
	case tools.TypeIDOrName, tools.TypeNumberOrString:
		return mcp.WithString(p.Name, append(opts, anyOf("number", "string"))...)
	case tools.TypeID, tools.TypeNumber:
		return mcp.WithNumber(p.Name, opts...)
	case tools.TypeNullableString:
		return mcp.WithString(p.Name, append(opts, anyOf("string", "null"))...)
	case tools.TypeBoolean:
		return mcp.WithBoolean(p.Name, opts...)
	case tools.TypeIDArray:
		opts = append([]mcp.PropertyOption{mcp.Items(map[string]any{"type": "number"})}, opts...)
		return mcp.WithArray(p.Name, opts...)
	case tools.TypeStringArray:
		opts = append([]mcp.PropertyOption{mcp.WithStringItems()}, opts...)
		return mcp.WithArray(p.Name, opts...)
	case tools.TypeObject:
		return mcp.WithObject(p.Name, opts...)
	default:
		return mcp.WithString(p.Name, opts...)
	}
}

// anyOf replaces the single "type" of a property with a union.
func anyOf(types ...string) mcp.PropertyOption {
	return func(schema map[string]any) {
		delete(schema, "type")
		variants := make([]map[string]any, 0, len(types))
		for _, t := range types {
			variants = append(variants, map[string]any{"type": t})
		}
		schema["anyOf"] = variants
	}
}
