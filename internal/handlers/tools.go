package handlers

import (
	"net/http"

	"github.com/bobmcallan/canvas-mcp/internal/common"
	"github.com/bobmcallan/canvas-mcp/internal/tools"
)

// ToolInfo describes a registered tool for GET /tools.
type ToolInfo struct {
	Name        string        `json:"name"`
	Area        tools.Area    `json:"area"`
	Description string        `json:"description"`
	Params      []tools.Param `json:"params"`
}

// ToolsHandler exposes the tool registry over plain HTTP.
type ToolsHandler struct {
	registry *tools.Registry
	logger   *common.Logger
}

// NewToolsHandler creates a handler dispatching into registry.
func NewToolsHandler(registry *tools.Registry, logger *common.Logger) *ToolsHandler {
	return &ToolsHandler{registry: registry, logger: logger}
}

// List handles GET /tools.
func (h *ToolsHandler) List(w http.ResponseWriter, r *http.Request) {
	list := h.registry.Tools()
	out := make([]ToolInfo, len(list))
	for i, t := range list {
		out[i] = ToolInfo{Name: t.Name, Area: t.Area, Description: t.Description, Params: t.Params}
	}
	WriteJSON(w, http.StatusOK, out)
}

// Call handles POST /tools/{name}. The body is the argument object; tool
// failures come back as 200 with is_error set, unknown names as 404.
func (h *ToolsHandler) Call(w http.ResponseWriter, r *http.Request) {
	args := map[string]any{}
	if err := decodeBody(r, &args); err != nil {
		WriteFailure(w, r, h.logger, err)
		return
	}
	res, err := h.registry.Dispatch(r.Context(), r.PathValue("name"), args)
	if err != nil {
		WriteFailure(w, r, h.logger, err)
		return
	}
	WriteJSON(w, http.StatusOK, res)
}
