package canvas

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrNoDateFields is returned when a date update carries no fields at all.
var ErrNoDateFields = errors.New("at least one date field is required: due_at, unlock_at, or lock_at")

// ErrForeignNextLink is returned when a pagination link points at a different origin.
var ErrForeignNextLink = errors.New("pagination link points outside the configured Canvas host")

// ErrUnreachable wraps transport failures (DNS, connect, timeout).
var ErrUnreachable = errors.New("canvas request failed")

// APIError is a non-2xx response from Canvas.
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("canvas %s %s: HTTP %d", e.Method, e.Path, e.StatusCode)
	}
	return fmt.Sprintf("canvas %s %s: HTTP %d: %s", e.Method, e.Path, e.StatusCode, e.Message)
}

// parseErrorResponse extracts a meaningful message from a Canvas error body.
// Canvas uses several shapes: {"errors":[{"message":..}]}, {"errors":{"field":[..]}},
// {"message":..} and {"error":..}.
func parseErrorResponse(method, path string, statusCode int, body []byte) error {
	apiErr := &APIError{Method: method, Path: path, StatusCode: statusCode}

	var envelope struct {
		Errors  json.RawMessage `json:"errors"`
		Message string          `json:"message"`
		Error   string          `json:"error"`
	}
	if json.Unmarshal(body, &envelope) == nil {
		switch {
		case len(envelope.Errors) > 0:
			apiErr.Message = flattenErrors(envelope.Errors)
		case envelope.Message != "":
			apiErr.Message = envelope.Message
		case envelope.Error != "":
			apiErr.Message = envelope.Error
		}
	}
	if apiErr.Message == "" {
		text := strings.TrimSpace(string(body))
		if len(text) > 200 {
			text = text[:200]
		}
		apiErr.Message = text
	}
	return apiErr
}

func flattenErrors(raw json.RawMessage) string {
	var list []struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(raw, &list) == nil {
		msgs := make([]string, 0, len(list))
		for _, e := range list {
			if e.Message != "" {
				msgs = append(msgs, e.Message)
			}
		}
		return strings.Join(msgs, "; ")
	}

	var fields map[string]json.RawMessage
	if json.Unmarshal(raw, &fields) == nil {
		names := make([]string, 0, len(fields))
		for field := range fields {
			names = append(names, field)
		}
		sort.Strings(names)
		msgs := make([]string, 0, len(fields))
		for _, field := range names {
			v := fields[field]
			var details []struct {
				Message string `json:"message"`
			}
			if json.Unmarshal(v, &details) == nil && len(details) > 0 {
				for _, d := range details {
					msgs = append(msgs, field+": "+d.Message)
				}
				continue
			}
			msgs = append(msgs, field+": "+strings.Trim(string(v), `"`))
		}
		return strings.Join(msgs, "; ")
	}

	var text string
	if json.Unmarshal(raw, &text) == nil {
		return text
	}
	return ""
}
