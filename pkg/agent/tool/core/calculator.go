package core

import (
	"context"
	"encoding/json"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/secmon-lab/hemera/pkg/agent/tool"
)

// calculatorTool evaluates restricted arithmetic expressions
type calculatorTool struct{}

func (t *calculatorTool) Name() string {
	return "calculator"
}

func (t *calculatorTool) Description() string {
	return "Evaluate a simple math expression. Supports +, -, *, /, %, and power (^)."
}

func (t *calculatorTool) Parameters() map[string]*gollem.Parameter {
	return map[string]*gollem.Parameter{
		"expression": {
			Type:        gollem.TypeString,
			Description: "Math expression, e.g., 2+2*5",
			Required:    true,
		},
	}
}

// Invoke evaluates the expression from the payload. Input that is not a
// JSON object, or one without an expression field, is treated as the
// expression itself.
func (t *calculatorTool) Invoke(ctx context.Context, raw string) (string, error) {
	expr := raw
	var args struct {
		Expression string `json:"expression"`
	}
	if raw != "" && json.Unmarshal([]byte(raw), &args) == nil && args.Expression != "" {
		expr = args.Expression
	}

	tool.Update(ctx, "Evaluating expression: "+expr)
	v, err := evaluate(expr)
	if err != nil {
		return "", goerr.Wrap(err, "Could not evaluate expression")
	}
	return formatNumber(v), nil
}
