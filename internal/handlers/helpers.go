package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/bobmcallan/canvas-mcp/internal/canvas"
	"github.com/bobmcallan/canvas-mcp/internal/common"
	"github.com/bobmcallan/canvas-mcp/internal/resolver"
	"github.com/bobmcallan/canvas-mcp/internal/tools"
)

// RequireMethod validates that the HTTP request uses the specified method.
// Returns true if the method matches, false otherwise (and writes error response).
func RequireMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method == method || (method == http.MethodGet && r.Method == http.MethodHead) {
		return true
	}
	http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	return false
}

// WriteJSON writes a JSON response with the specified status code and data.
func WriteJSON(w http.ResponseWriter, statusCode int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(data)
}

// WriteError writes a standard error JSON response.
func WriteError(w http.ResponseWriter, statusCode int, message string) error {
	return WriteJSON(w, statusCode, map[string]string{
		"status": "error",
		"error":  message,
	})
}

// StatusFor maps an error to the HTTP status reported to the caller.
func StatusFor(err error) int {
	var (
		apiErr   *canvas.APIError
		notFound *resolver.NotFoundError
	)
	switch {
	case tools.IsValidation(err), errors.Is(err, canvas.ErrNoDateFields):
		return http.StatusBadRequest
	case errors.As(err, &notFound), errors.Is(err, tools.ErrToolNotFound):
		return http.StatusNotFound
	case errors.As(err, &apiErr):
		if apiErr.StatusCode >= 400 && apiErr.StatusCode < 500 {
			return apiErr.StatusCode
		}
		return http.StatusBadGateway
	case errors.Is(err, canvas.ErrUnreachable), errors.Is(err, canvas.ErrForeignNextLink):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// WriteFailure logs err and writes it with the status from StatusFor.
func WriteFailure(w http.ResponseWriter, r *http.Request, logger *common.Logger, err error) {
	status := StatusFor(err)
	if status >= http.StatusInternalServerError {
		logger.Error().Str("path", r.URL.Path).Int("status", status).Str("error", err.Error()).Msg("request failed")
	} else {
		logger.Warn().Str("path", r.URL.Path).Int("status", status).Str("error", err.Error()).Msg("request rejected")
	}
	WriteError(w, status, tools.Message(err))
}

// decodeBody decodes a JSON request body into out. An empty body leaves out untouched.
func decodeBody(r *http.Request, out any) error {
	if r.Body == nil {
		return nil
	}
	err := json.NewDecoder(r.Body).Decode(out)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	return &tools.ValidationError{Message: fmt.Sprintf("invalid JSON body: %v", err)}
}

// pathID reads a numeric path value.
func pathID(r *http.Request, name string) (int64, error) {
	id, ok := resolver.ParseID(r.PathValue(name))
	if !ok {
		return 0, &tools.ValidationError{Fields: []tools.FieldError{{Field: name, Problem: "must be a numeric id"}}}
	}
	return id, nil
}
