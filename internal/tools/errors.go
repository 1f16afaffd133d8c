package tools

import (
	"errors"
	"strings"

	"github.com/bobmcallan/canvas-mcp/internal/canvas"
)

// ErrToolNotFound is returned by Dispatch for an unregistered tool name.
var ErrToolNotFound = errors.New("tool not found")

// NoDateFieldsMessage is what callers see for a date update with no fields.
const NoDateFieldsMessage = "At least one date field is required: due_at, unlock_at, or lock_at."

// Message renders err for a tool or HTTP caller.
func Message(err error) string {
	if errors.Is(err, canvas.ErrNoDateFields) {
		return NoDateFieldsMessage
	}
	return err.Error()
}

// FieldError names one invalid input field.
type FieldError struct {
	Field   string `json:"field"`
	Problem string `json:"problem"`
}

// ValidationError reports every invalid field of a tool input. Message, when
// set, replaces the generated text.
type ValidationError struct {
	Message string
	Fields  []FieldError
}

func (e *ValidationError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+" "+f.Problem)
	}
	return "invalid arguments: " + strings.Join(parts, "; ")
}

// HasField reports whether name is among the offending fields.
func (e *ValidationError) HasField(name string) bool {
	for _, f := range e.Fields {
		if f.Field == name {
			return true
		}
	}
	return false
}
