package tool

import (
	"context"
	"encoding/json"
	"fmt"

	"leave-agent/internal/application/port/output"
	"leave-agent/internal/domain/entity"
)

type OpenNewTabTool struct {
	session output.BrowserSession
	logger  output.LoggerPort
}

func NewOpenNewTabTool(session output.BrowserSession, logger output.LoggerPort) *OpenNewTabTool {
	return &OpenNewTabTool{session: session, logger: logger}
}

func (t *OpenNewTabTool) Name() entity.ToolName { return entity.ToolOpenNewTab }
func (t *OpenNewTabTool) Description() string {
	return "Open a new browser tab, optionally navigating it to a URL, and make it the active tab."
}
func (t *OpenNewTabTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"url": map[string]interface{}{
				"type":        "string",
				"description": "Optional URL to open in the new tab",
			},
		},
		"required": []string{},
	}
}

func (t *OpenNewTabTool) Execute(ctx context.Context, args string) (string, error) {
	input := struct {
		URL string `json:"url"`
	}{}
	if args != "" {
		if err := json.Unmarshal([]byte(args), &input); err != nil {
			return "", fmt.Errorf("invalid input format: %w", err)
		}
	}

	index, err := t.session.OpenTab(input.URL)
	if err != nil {
		return "", err
	}
	if input.URL != "" {
		return fmt.Sprintf("Opened new tab %d and navigated to %s", index, input.URL), nil
	}
	return fmt.Sprintf("Opened new blank tab %d", index), nil
}

type SwitchTabTool struct {
	session output.BrowserSession
	logger  output.LoggerPort
}

func NewSwitchTabTool(session output.BrowserSession, logger output.LoggerPort) *SwitchTabTool {
	return &SwitchTabTool{session: session, logger: logger}
}

func (t *SwitchTabTool) Name() entity.ToolName { return entity.ToolSwitchTab }
func (t *SwitchTabTool) Description() string {
	return "Switch the active browser tab to the tab at the given 0-based index. Fails if the index is outside the open tabs."
}
func (t *SwitchTabTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"index": map[string]interface{}{
				"type":        "integer",
				"description": "0-based tab index",
			},
		},
		"required": []string{"index"},
	}
}

func (t *SwitchTabTool) Execute(ctx context.Context, args string) (string, error) {
	var input struct {
		Index int `json:"index"`
	}
	if err := json.Unmarshal([]byte(args), &input); err != nil {
		return "", fmt.Errorf("invalid input format: %w", err)
	}

	if err := t.session.SwitchTab(input.Index); err != nil {
		return "", err
	}
	return fmt.Sprintf("Switched to tab %d", input.Index), nil
}

type CloseCurrentTabTool struct {
	session output.BrowserSession
	logger  output.LoggerPort
}

func NewCloseCurrentTabTool(session output.BrowserSession, logger output.LoggerPort) *CloseCurrentTabTool {
	return &CloseCurrentTabTool{session: session, logger: logger}
}

func (t *CloseCurrentTabTool) Name() entity.ToolName { return entity.ToolCloseCurrentTab }
func (t *CloseCurrentTabTool) Description() string {
	return "Close the active tab. Focus moves to the last remaining tab; closing the last tab leaves the session without an active tab."
}
func (t *CloseCurrentTabTool) Parameters() map[string]interface{} {
	return emptyParameters()
}

func (t *CloseCurrentTabTool) Execute(ctx context.Context, args string) (string, error) {
	if err := t.session.CloseTab(); err != nil {
		return "", err
	}
	return "Closed current tab", nil
}

type CloseBrowserTool struct {
	session output.BrowserSession
	logger  output.LoggerPort
}

func NewCloseBrowserTool(session output.BrowserSession, logger output.LoggerPort) *CloseBrowserTool {
	return &CloseBrowserTool{session: session, logger: logger}
}

func (t *CloseBrowserTool) Name() entity.ToolName { return entity.ToolCloseBrowser }
func (t *CloseBrowserTool) Description() string {
	return "Shut down the browser entirely. Only use this when the task is finished; no browser tool works afterwards."
}
func (t *CloseBrowserTool) Parameters() map[string]interface{} {
	return emptyParameters()
}

func (t *CloseBrowserTool) Execute(ctx context.Context, args string) (string, error) {
	t.logger.Info("Closing browser on agent request")
	if err := t.session.Close(); err != nil {
		return "", err
	}
	return "Browser closed", nil
}
