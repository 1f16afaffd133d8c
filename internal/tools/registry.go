// Package tools holds the Canvas tool catalog and the registry that
// validates and dispatches tool calls.
package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"runtime/debug"
	"sort"
	"time"

	"github.com/bobmcallan/canvas-mcp/internal/canvas"
	"github.com/bobmcallan/canvas-mcp/internal/common"
)

// Area groups tools by functional area.
type Area string

const (
	AreaCourses       Area = "courses"
	AreaAssignments   Area = "assignments"
	AreaGrading       Area = "grading"
	AreaCommunication Area = "communication"
	AreaQuizzes       Area = "quizzes"
	AreaStudents      Area = "students"
)

// Result is the uniform outcome of a tool call.
type Result struct {
	IsError bool   `json:"is_error"`
	Content string `json:"content"`
}

// invokeFunc runs a tool against already validated arguments.
type invokeFunc func(ctx context.Context, c *canvas.Client, args map[string]any) (string, error)

// Tool is one invocable operation: a name, its input contract and a handler.
type Tool struct {
	Name        string
	Description string
	Area        Area
	Params      []Param
	invoke      invokeFunc
}

// validator is implemented by inputs with cross-field rules.
type validator interface {
	Validate() error
}

// define binds a typed handler to its contract. Arguments are checked against
// params, decoded into In and, when In implements validator, cross-checked
// before fn runs.
func define[In any](name string, area Area, description string, params []Param, fn func(ctx context.Context, c *canvas.Client, in In) (string, error)) Tool {
	return Tool{
		Name:        name,
		Description: description,
		Area:        area,
		Params:      params,
		invoke: func(ctx context.Context, c *canvas.Client, args map[string]any) (string, error) {
			if err := validateArgs(params, args); err != nil {
				return "", err
			}
			var in In
			if err := decodeArgs(args, &in); err != nil {
				return "", err
			}
			if v, ok := any(&in).(validator); ok {
				if err := v.Validate(); err != nil {
					return "", err
				}
			}
			return fn(ctx, c, in)
		},
	}
}

// Registry is an immutable name → tool table built once at startup.
type Registry struct {
	tools  map[string]Tool
	names  []string
	client *canvas.Client
	logger *common.Logger
}

// NewRegistry flattens the given tool groups into one table. Duplicate names are an error.
func NewRegistry(client *canvas.Client, logger *common.Logger, groups ...[]Tool) (*Registry, error) {
	if logger == nil {
		logger = common.NewSilentLogger()
	}
	r := &Registry{
		tools:  make(map[string]Tool),
		client: client,
		logger: logger,
	}
	for _, group := range groups {
		for _, t := range group {
			if t.Name == "" {
				return nil, fmt.Errorf("tool has empty name")
			}
			if _, dup := r.tools[t.Name]; dup {
				return nil, fmt.Errorf("duplicate tool name %q", t.Name)
			}
			r.tools[t.Name] = t
			r.names = append(r.names, t.Name)
		}
	}
	sort.Strings(r.names)
	return r, nil
}

// Lookup finds a tool by exact name.
func (r *Registry) Lookup(name string) (Tool, bool) {
	t, ok := r.tools[name]
	return t, ok
}

// Tools returns every registered tool ordered by name.
func (r *Registry) Tools() []Tool {
	out := make([]Tool, 0, len(r.names))
	for _, n := range r.names {
		out = append(out, r.tools[n])
	}
	return out
}

// Len returns the number of registered tools.
func (r *Registry) Len() int {
	return len(r.tools)
}

// Dispatch invokes a tool by name. An unknown name returns ErrToolNotFound;
// every handler failure, panics included, is folded into an error Result.
func (r *Registry) Dispatch(ctx context.Context, name string, args map[string]any) (Result, error) {
	t, ok := r.tools[name]
	if !ok {
		r.logger.Warn().Str("tool", name).Msg("unknown tool requested")
		return Result{}, fmt.Errorf("%w: %s", ErrToolNotFound, name)
	}
	if args == nil {
		args = map[string]any{}
	}

	start := time.Now()
	text, err := r.safeInvoke(ctx, t, args)
	duration := time.Since(start)
	if err != nil {
		r.logger.Warn().Str("tool", name).Str("error", err.Error()).Int64("duration_ms", duration.Milliseconds()).Msg("tool call failed")
		return Result{IsError: true, Content: "Error: " + Message(err)}, nil
	}
	r.logger.Debug().Str("tool", name).Int64("duration_ms", duration.Milliseconds()).Msg("tool call completed")
	return Result{Content: text}, nil
}

func (r *Registry) safeInvoke(ctx context.Context, t Tool, args map[string]any) (text string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error().Str("tool", t.Name).Str("panic", fmt.Sprint(rec)).Str("stack", string(debug.Stack())).Msg("tool handler panicked")
			err = fmt.Errorf("internal error in %s: %v", t.Name, rec)
		}
	}()
	return t.invoke(ctx, r.client, args)
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// jsonText renders v as indented JSON for a tool result.
func jsonText(v any) (string, error) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode result: %w", err)
	}
	return string(out), nil
}
