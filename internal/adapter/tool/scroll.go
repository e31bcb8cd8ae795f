package tool

import (
	"context"
	"encoding/json"
	"fmt"

	"leave-agent/internal/application/port/output"
	"leave-agent/internal/domain/entity"
)

type ScrollTool struct {
	session output.BrowserSession
	logger  output.LoggerPort
}

func NewScrollTool(session output.BrowserSession, logger output.LoggerPort) *ScrollTool {
	return &ScrollTool{session: session, logger: logger}
}

func (t *ScrollTool) Name() entity.ToolName { return entity.ToolScroll }
func (t *ScrollTool) Description() string {
	return "Scroll the page vertically by a number of pixels. Positive scrolls down, negative scrolls up. Scrolling past the end of the document is a no-op."
}
func (t *ScrollTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"pixels": map[string]interface{}{
				"type":        "integer",
				"description": "Vertical scroll distance in pixels (default 1000)",
			},
		},
		"required": []string{},
	}
}

func (t *ScrollTool) Execute(ctx context.Context, args string) (string, error) {
	input := struct {
		Pixels *int `json:"pixels"`
	}{}
	if args != "" {
		if err := json.Unmarshal([]byte(args), &input); err != nil {
			return "", fmt.Errorf("invalid input format: %w", err)
		}
	}

	pixels := 1000
	if input.Pixels != nil {
		pixels = *input.Pixels
	}

	if _, err := t.session.ExecuteScript(fmt.Sprintf("() => window.scrollBy(0, %d)", pixels)); err != nil {
		return "", err
	}
	return fmt.Sprintf("Scrolled page by %d pixels", pixels), nil
}
