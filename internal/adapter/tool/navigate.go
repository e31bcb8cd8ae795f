package tool

import (
	"context"
	"encoding/json"
	"fmt"

	"leave-agent/internal/application/port/output"
	"leave-agent/internal/domain/entity"
)

type NavigateTool struct {
	session output.BrowserSession
	logger  output.LoggerPort
}

func NewNavigateTool(session output.BrowserSession, logger output.LoggerPort) *NavigateTool {
	return &NavigateTool{session: session, logger: logger}
}

func (t *NavigateTool) Name() entity.ToolName { return entity.ToolNavigate }
func (t *NavigateTool) Description() string {
	return "Navigate the browser to a URL and wait for the page to load. The page-load timeout is owned by the session. Returns the final URL, which may differ from the requested one due to redirects."
}
func (t *NavigateTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"url": map[string]interface{}{
				"type":        "string",
				"description": "Full URL to navigate to, including protocol (https:// or http://)",
			},
		},
		"required": []string{"url"},
	}
}

func (t *NavigateTool) Execute(ctx context.Context, args string) (string, error) {
	var input struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal([]byte(args), &input); err != nil {
		return "", fmt.Errorf("invalid input format: %w", err)
	}
	if input.URL == "" {
		return "", fmt.Errorf("url parameter is required")
	}

	t.logger.Info("Navigating", "url", input.URL)
	if err := t.session.Navigate(ctx, input.URL); err != nil {
		return "", err
	}

	current, err := t.session.CurrentURL()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Navigated to %s", current), nil
}

type RefreshPageTool struct {
	session output.BrowserSession
	logger  output.LoggerPort
}

func NewRefreshPageTool(session output.BrowserSession, logger output.LoggerPort) *RefreshPageTool {
	return &RefreshPageTool{session: session, logger: logger}
}

func (t *RefreshPageTool) Name() entity.ToolName { return entity.ToolRefreshPage }
func (t *RefreshPageTool) Description() string {
	return "Reload the current page and wait for it to finish loading."
}
func (t *RefreshPageTool) Parameters() map[string]interface{} {
	return emptyParameters()
}

func (t *RefreshPageTool) Execute(ctx context.Context, args string) (string, error) {
	if err := t.session.Refresh(); err != nil {
		return "", err
	}
	return "Page refreshed", nil
}

type GoBackTool struct {
	session output.BrowserSession
	logger  output.LoggerPort
}

func NewGoBackTool(session output.BrowserSession, logger output.LoggerPort) *GoBackTool {
	return &GoBackTool{session: session, logger: logger}
}

func (t *GoBackTool) Name() entity.ToolName { return entity.ToolGoBack }
func (t *GoBackTool) Description() string {
	return "Navigate back to the previous page in the browser history."
}
func (t *GoBackTool) Parameters() map[string]interface{} {
	return emptyParameters()
}

func (t *GoBackTool) Execute(ctx context.Context, args string) (string, error) {
	if err := t.session.Back(); err != nil {
		return "", err
	}
	return "Navigated back", nil
}

type GoForwardTool struct {
	session output.BrowserSession
	logger  output.LoggerPort
}

func NewGoForwardTool(session output.BrowserSession, logger output.LoggerPort) *GoForwardTool {
	return &GoForwardTool{session: session, logger: logger}
}

func (t *GoForwardTool) Name() entity.ToolName { return entity.ToolGoForward }
func (t *GoForwardTool) Description() string {
	return "Navigate forward in the browser history."
}
func (t *GoForwardTool) Parameters() map[string]interface{} {
	return emptyParameters()
}

func (t *GoForwardTool) Execute(ctx context.Context, args string) (string, error) {
	if err := t.session.Forward(); err != nil {
		return "", err
	}
	return "Navigated forward", nil
}

func emptyParameters() map[string]interface{} {
	return map[string]interface{}{
		"type":       "object",
		"properties": map[string]interface{}{},
		"required":   []string{},
	}
}
