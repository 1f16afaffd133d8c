package handlers

import (
	"net/http"

	"github.com/bobmcallan/canvas-mcp/internal/common"
)

// HealthHandler handles health check requests.
type HealthHandler struct {
	logger *common.Logger
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(logger *common.Logger) *HealthHandler {
	return &HealthHandler{logger: logger}
}

// ServeHTTP handles GET /health.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	WriteJSON(w, http.StatusOK, map[string]bool{
		"ok": true,
	})
}

// privacyPolicy is served at GET /privacy.
type privacyPolicy struct {
	Service       string   `json:"service"`
	EffectiveDate string   `json:"effective_date"`
	Summary       []string `json:"summary"`
	Contact       string   `json:"contact"`
}

// PrivacyHandler serves the static privacy notice.
type PrivacyHandler struct {
	contact string
}

// NewPrivacyHandler creates a privacy handler. An empty contact falls back
// to a placeholder asking operators to set one.
func NewPrivacyHandler(contact string) *PrivacyHandler {
	if contact == "" {
		contact = "Set a maintainer contact before production use."
	}
	return &PrivacyHandler{contact: contact}
}

// ServeHTTP handles GET /privacy.
func (h *PrivacyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	WriteJSON(w, http.StatusOK, privacyPolicy{
		Service:       "Canvas MCP HTTP API",
		EffectiveDate: "2026-02-12",
		Summary: []string{
			"This service processes Canvas API data strictly to fulfill user requests.",
			"Canvas API tokens are provided via environment variables and are not exposed in API responses.",
			"Do not send sensitive data beyond what is required for course operations.",
		},
		Contact: h.contact,
	})
}
