package handlers

import (
	"net/http"

	"github.com/bobmcallan/canvas-mcp/internal/common"
)

// VersionHandler handles version information requests.
type VersionHandler struct {
	logger *common.Logger
}

// NewVersionHandler creates a new version handler.
func NewVersionHandler(logger *common.Logger) *VersionHandler {
	return &VersionHandler{logger: logger}
}

// ServeHTTP handles GET /version.
func (h *VersionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{
		"version":    common.GetVersion(),
		"build":      common.GetBuild(),
		"git_commit": common.GetGitCommit(),
	})
}
