// Package langchain exports the browser tool catalog as langchaingo tools so
// the same catalog can back a langchaingo agent without another adapter
// layer per tool.
package langchain

import (
	"context"

	"leave-agent/internal/application/port/output"

	"github.com/tmc/langchaingo/tools"
)

var _ tools.Tool = (*Tool)(nil)

type Tool struct {
	inner output.ToolPort
}

func Wrap(t output.ToolPort) *Tool {
	return &Tool{inner: t}
}

// WrapAll exports every registered tool.
func WrapAll(registry output.ToolRegistry) []tools.Tool {
	all := registry.All()
	out := make([]tools.Tool, 0, len(all))
	for _, t := range all {
		out = append(out, Wrap(t))
	}
	return out
}

func (t *Tool) Name() string {
	return string(t.inner.Name())
}

func (t *Tool) Description() string {
	return t.inner.Description()
}

// Call passes the input through as the tool's JSON arguments. Tool failures
// surface as observation text rather than errors, matching how the native
// loop reports them to the model.
func (t *Tool) Call(ctx context.Context, input string) (string, error) {
	result, err := t.inner.Execute(ctx, input)
	if err != nil {
		return "Error: " + err.Error(), nil
	}
	return result, nil
}
