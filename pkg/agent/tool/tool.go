// Package tool defines the assistant's tool catalog: a common descriptor
// interface, a registry with a uniform dispatch boundary, and the adapter
// that exposes registered tools to the gollem runtime.
package tool

import (
	"context"
	"encoding/json"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/secmon-lab/hemera/pkg/utils/logging"
)

// ErrUnknownTool indicates a dispatch to a name that was never registered.
var ErrUnknownTool = goerr.New("unknown tool")

// Tool is one capability the model can invoke. Invoke receives the raw
// argument payload as a string; each tool defines its own coercion rule
// for input that is not valid JSON.
type Tool interface {
	Name() string
	Description() string
	Parameters() map[string]*gollem.Parameter
	Invoke(ctx context.Context, raw string) (string, error)
}

// Registry holds the session's tool set keyed by name, preserving
// registration order for presentation.
type Registry struct {
	order  []Tool
	byName map[string]Tool
}

// NewRegistry builds a registry from the given tools. Names must be unique.
func NewRegistry(tools ...Tool) (*Registry, error) {
	r := &Registry{byName: make(map[string]Tool, len(tools))}
	for _, t := range tools {
		if _, exists := r.byName[t.Name()]; exists {
			return nil, goerr.New("duplicate tool name", goerr.V("name", t.Name()))
		}
		r.byName[t.Name()] = t
		r.order = append(r.order, t)
	}
	return r, nil
}

// Tools returns the registered tools in registration order.
func (x *Registry) Tools() []Tool {
	return x.order
}

// Names returns the registered tool names in registration order.
func (x *Registry) Names() []string {
	names := make([]string, len(x.order))
	for i, t := range x.order {
		names[i] = t.Name()
	}
	return names
}

// Dispatch runs the named tool on the raw payload. Every failure a tool
// reports is flattened here into a fresh error carrying only the message
// text, so the model observes a single error shape regardless of which
// layer failed.
func (x *Registry) Dispatch(ctx context.Context, name, raw string) (string, error) {
	t, ok := x.byName[name]
	if !ok {
		return "", goerr.Wrap(ErrUnknownTool, "tool is not registered", goerr.V("name", name))
	}

	out, err := t.Invoke(ctx, raw)
	if err != nil {
		logging.From(ctx).Debug("tool invocation failed", "tool", name, "error", err.Error())
		return "", goerr.New(err.Error(), goerr.V("tool", name))
	}
	return out, nil
}

// GollemTools wraps every registered tool for the gollem runtime. Tool
// arguments arrive as a decoded map and are re-encoded to JSON so the
// dispatch boundary stays the single entry point.
func (x *Registry) GollemTools() []gollem.Tool {
	out := make([]gollem.Tool, 0, len(x.order))
	for _, t := range x.order {
		out = append(out, &gollemTool{registry: x, tool: t})
	}
	return out
}

// gollemTool adapts one registered Tool to gollem.Tool
type gollemTool struct {
	registry *Registry
	tool     Tool
}

func (x *gollemTool) Spec() gollem.ToolSpec {
	return gollem.ToolSpec{
		Name:        x.tool.Name(),
		Description: x.tool.Description(),
		Parameters:  x.tool.Parameters(),
	}
}

func (x *gollemTool) Run(ctx context.Context, args map[string]any) (map[string]any, error) {
	raw := ""
	if len(args) > 0 {
		data, err := json.Marshal(args)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to encode tool arguments", goerr.V("tool", x.tool.Name()))
		}
		raw = string(data)
	}

	out, err := x.registry.Dispatch(ctx, x.tool.Name(), raw)
	if err != nil {
		return nil, err
	}
	return map[string]any{"result": out}, nil
}
