package tools

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParamType is the declared shape of one tool input field.
type ParamType string

const (
	TypeIDOrName       ParamType = "id_or_name"      // number or free-text string
	TypeID             ParamType = "id"              // number, numeric strings coerced
	TypeNumber         ParamType = "number"          // number
	TypeNumberOrString ParamType = "number_or_string" // grades
	TypeString         ParamType = "string"
	TypeNullableString ParamType = "nullable_string" // string or null
	TypeBoolean        ParamType = "boolean"
	TypeIDArray        ParamType = "id_array"
	TypeStringArray    ParamType = "string_array"
	TypeObject         ParamType = "object"
)

// Param describes one input field of a tool.
type Param struct {
	Name        string    `json:"name"`
	Type        ParamType `json:"type"`
	Description string    `json:"description"`
	Required    bool      `json:"required"`
	Enum        []string  `json:"enum,omitempty"`
}

// validateArgs checks args against the declared params and reports every
// offending field at once. Unknown fields are ignored.
func validateArgs(params []Param, args map[string]any) error {
	var fields []FieldError
	for _, p := range params {
		v, present := args[p.Name]
		if !present || (v == nil && p.Type != TypeNullableString) {
			if p.Required {
				fields = append(fields, FieldError{Field: p.Name, Problem: "is required"})
			}
			continue
		}
		if problem := checkType(p, v); problem != "" {
			fields = append(fields, FieldError{Field: p.Name, Problem: problem})
		}
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func checkType(p Param, v any) string {
	switch p.Type {
	case TypeIDOrName:
		switch x := v.(type) {
		case float64:
			if !isIntegral(x) {
				return "must be a whole number or a name"
			}
		case string:
			if strings.TrimSpace(x) == "" {
				return "must not be empty"
			}
		default:
			return "must be a number or a string"
		}
	case TypeID:
		if !isIDValue(v) {
			return "must be a numeric id"
		}
	case TypeNumber:
		if _, ok := v.(float64); !ok {
			return "must be a number"
		}
	case TypeNumberOrString:
		switch v.(type) {
		case float64, string:
		default:
			return "must be a number or a string"
		}
	case TypeString:
		s, ok := v.(string)
		if !ok {
			return "must be a string"
		}
		if len(p.Enum) > 0 && !contains(p.Enum, s) {
			return "must be one of: " + strings.Join(p.Enum, ", ")
		}
	case TypeNullableString:
		if v == nil {
			return ""
		}
		if _, ok := v.(string); !ok {
			return "must be a string or null"
		}
	case TypeBoolean:
		if _, ok := v.(bool); !ok {
			return "must be a boolean"
		}
	case TypeIDArray:
		list, ok := v.([]any)
		if !ok {
			return "must be an array of numeric ids"
		}
		for i, item := range list {
			if !isIDValue(item) {
				return fmt.Sprintf("item %d must be a numeric id", i)
			}
		}
	case TypeStringArray:
		list, ok := v.([]any)
		if !ok {
			return "must be an array of strings"
		}
		for i, item := range list {
			if _, ok := item.(string); !ok {
				return fmt.Sprintf("item %d must be a string", i)
			}
		}
	case TypeObject:
		if _, ok := v.(map[string]any); !ok {
			return "must be an object"
		}
	}
	return ""
}

// isIntegral reports whether f is a whole number that fits in an int64.
func isIntegral(f float64) bool {
	return !math.IsNaN(f) && f == math.Trunc(f) && math.Abs(f) < 1<<63
}

func isIDValue(v any) bool {
	switch x := v.(type) {
	case float64:
		return isIntegral(x)
	case string:
		_, err := strconv.ParseInt(strings.TrimSpace(x), 10, 64)
		return err == nil
	}
	return false
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// Identifier is a user-supplied id or name, kept as text for the resolver.
type Identifier string

func (i *Identifier) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*i = Identifier(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*i = Identifier(n.String())
	return nil
}

// ID is a numeric id that also accepts numeric strings.
type ID int64

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		data = []byte(strings.TrimSpace(s))
	}
	if n, err := strconv.ParseInt(string(data), 10, 64); err == nil {
		*id = ID(n)
		return nil
	}
	f, err := strconv.ParseFloat(string(data), 64)
	if err != nil || !isIntegral(f) {
		return &ValidationError{Message: fmt.Sprintf("invalid numeric id %s", data)}
	}
	*id = ID(int64(f))
	return nil
}

// Grade is a posted grade: points, percentage or letter.
type Grade string

func (g *Grade) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*g = Grade(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*g = Grade(n.String())
	return nil
}

// MarshalJSON keeps numeric grades numeric in results.
func (g Grade) MarshalJSON() ([]byte, error) {
	if f, err := strconv.ParseFloat(string(g), 64); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) && json.Valid([]byte(g)) {
		return []byte(g), nil
	}
	return json.Marshal(string(g))
}

// decodeArgs converts the validated argument map into the typed input.
func decodeArgs(args map[string]any, out any) error {
	raw, err := json.Marshal(args)
	if err != nil {
		return &ValidationError{Message: "arguments are not valid JSON: " + err.Error()}
	}
	if err := json.Unmarshal(raw, out); err != nil {
		var ve *ValidationError
		if errors.As(err, &ve) {
			return ve
		}
		field := ""
		if te, ok := err.(*json.UnmarshalTypeError); ok {
			field = te.Field
		}
		return &ValidationError{Fields: []FieldError{{Field: field, Problem: err.Error()}}}
	}
	return nil
}
