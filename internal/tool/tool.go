// Package tool defines the invocation contract capabilities expose to
// the coordinator: a named spec with a typed argument schema, and a
// success/failure result that never leaks raw errors past the handler.
package tool

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// ParamType enumerates the argument types a tool can declare.
type ParamType string

const (
	TypeString ParamType = "string"
	TypeNumber ParamType = "number"
)

// Param describes one argument of a tool. Declaration order is the
// order advertised to the coordinator.
type Param struct {
	Name        string
	Type        ParamType
	Description string
	Required    bool
	Default     string // applied when optional and absent
}

// Args holds the decoded arguments of one invocation, as produced by
// the coordinator's JSON function-call payload.
type Args map[string]any

// String returns the named argument rendered as a string. Numbers are
// formatted compactly; absent values return "".
func (a Args) String(name string) string {
	v, ok := a[name]
	if !ok {
		return ""
	}
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", t)
	}
}

// Handler executes the capability behind a tool.
type Handler func(ctx context.Context, args Args) Result

// Spec bundles a tool's identity, argument schema, and handler. Specs
// are registered once at startup and immutable afterwards.
type Spec struct {
	Name        string
	Description string
	Params      []Param
	Handler     Handler
}

// Invoke validates args against the schema, applies defaults, and runs
// the handler. A missing required argument becomes a failure result
// naming the field; handler panics are folded into failure results so
// no fault ever crosses this boundary.
func (s *Spec) Invoke(ctx context.Context, args Args) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			res = Result{
				Status:   StatusFailure,
				Payload:  fmt.Sprintf("The %s tool hit an unexpected error. Please try again.", s.Name),
				RawError: fmt.Sprintf("panic: %v", r),
			}
		}
	}()

	if args == nil {
		args = Args{}
	}
	for _, p := range s.Params {
		if args.String(p.Name) != "" {
			continue
		}
		if p.Required {
			return Failf("Missing required argument '%s'. Please provide a value for %s.", p.Name, p.Name)
		}
		if p.Default != "" {
			args[p.Name] = p.Default
		}
	}
	return s.Handler(ctx, args)
}

// ParametersSchema renders the argument schema as a JSON-Schema object
// suitable for an OpenAI-style function declaration.
func (s *Spec) ParametersSchema() map[string]any {
	props := make(map[string]any, len(s.Params))
	var required []string
	for _, p := range s.Params {
		prop := map[string]any{
			"type":        string(p.Type),
			"description": p.Description,
		}
		if p.Default != "" {
			prop["default"] = p.Default
		}
		props[p.Name] = prop
		if p.Required {
			required = append(required, p.Name)
		}
	}
	schema := map[string]any{
		"type":       "object",
		"properties": props,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}
