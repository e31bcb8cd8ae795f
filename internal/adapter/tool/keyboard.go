package tool

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"leave-agent/internal/application/port/output"
	"leave-agent/internal/domain/entity"
)

// keyNames maps the symbolic vocabulary accepted by press_key to the
// normalized names understood by the session. Lookup is case-insensitive.
var keyNames = map[string]string{
	"ENTER":     "enter",
	"TAB":       "tab",
	"ESC":       "escape",
	"ESCAPE":    "escape",
	"SPACE":     "space",
	"BACKSPACE": "backspace",
}

type PressKeyTool struct {
	session output.BrowserSession
	logger  output.LoggerPort
}

func NewPressKeyTool(session output.BrowserSession, logger output.LoggerPort) *PressKeyTool {
	return &PressKeyTool{session: session, logger: logger}
}

func (t *PressKeyTool) Name() entity.ToolName { return entity.ToolPressKey }
func (t *PressKeyTool) Description() string {
	return "Send a keyboard key to the element matching a CSS selector. Supported keys: ENTER, TAB, ESC, ESCAPE, SPACE, BACKSPACE (case-insensitive). An unsupported key name is reported back as text so you can correct it."
}
func (t *PressKeyTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"selector": map[string]interface{}{
				"type":        "string",
				"description": "CSS selector of the element to receive the key",
			},
			"key": map[string]interface{}{
				"type":        "string",
				"description": "Symbolic key name, e.g. ENTER or TAB",
			},
		},
		"required": []string{"selector", "key"},
	}
}

func (t *PressKeyTool) Execute(ctx context.Context, args string) (string, error) {
	var input struct {
		Selector string `json:"selector"`
		Key      string `json:"key"`
	}
	if err := json.Unmarshal([]byte(args), &input); err != nil {
		return "", fmt.Errorf("invalid input format: %w", err)
	}
	if input.Selector == "" {
		return "", fmt.Errorf("selector parameter is required")
	}

	upper := strings.ToUpper(strings.TrimSpace(input.Key))
	key, ok := keyNames[upper]
	if !ok {
		// Soft rejection: a wrong key name is recoverable by the caller,
		// unlike a missing element.
		return fmt.Sprintf("Unsupported key '%s'. Supported keys: %s", input.Key, supportedKeys()), nil
	}

	el, err := t.session.FindElement(input.Selector)
	if err != nil {
		return "", err
	}
	if err := el.PressKey(key); err != nil {
		return "", fmt.Errorf("pressing %s on %q failed: %w", upper, input.Selector, err)
	}
	return fmt.Sprintf("Pressed %s on element with selector: %s", upper, input.Selector), nil
}

func supportedKeys() string {
	names := make([]string, 0, len(keyNames))
	for name := range keyNames {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}
