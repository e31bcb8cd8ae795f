package tool

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"leave-agent/internal/application/port/output"
	"leave-agent/internal/domain/entity"
)

type WaitForElementTool struct {
	session output.BrowserSession
	logger  output.LoggerPort
	cfg     Config
}

func NewWaitForElementTool(session output.BrowserSession, logger output.LoggerPort, cfg Config) *WaitForElementTool {
	return &WaitForElementTool{session: session, logger: logger, cfg: cfg}
}

func (t *WaitForElementTool) Name() entity.ToolName { return entity.ToolWaitForElement }
func (t *WaitForElementTool) Description() string {
	return "Block until an element matching the CSS selector is present in the DOM, or the timeout elapses. Use after navigation or actions that trigger dynamic changes."
}
func (t *WaitForElementTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"selector": map[string]interface{}{
				"type":        "string",
				"description": "CSS selector to wait for",
			},
			"timeout_seconds": map[string]interface{}{
				"type":        "integer",
				"description": "Maximum time to wait (default 10)",
			},
		},
		"required": []string{"selector"},
	}
}

func (t *WaitForElementTool) Execute(ctx context.Context, args string) (string, error) {
	var input struct {
		Selector string `json:"selector"`
		Timeout  *int   `json:"timeout_seconds"`
	}
	if err := json.Unmarshal([]byte(args), &input); err != nil {
		return "", fmt.Errorf("invalid input format: %w", err)
	}
	if input.Selector == "" {
		return "", fmt.Errorf("selector parameter is required")
	}

	timeout := timeoutOrDefault(input.Timeout, 10*time.Second)
	deadline := time.Now().Add(timeout)

	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		_, ok, err := t.session.TryFindElement(input.Selector)
		if err != nil {
			return "", err
		}
		if ok {
			return fmt.Sprintf("Element with selector '%s' appeared within %s", input.Selector, timeout), nil
		}
		if !time.Now().Before(deadline) {
			break
		}
		time.Sleep(t.cfg.PollInterval)
	}

	// Absence during the wait is the expected path; only budget exhaustion
	// is reported, and as a plain timeout.
	return "", fmt.Errorf("element %q did not appear within %s: %w", input.Selector, timeout, entity.ErrTimeout)
}

type WaitForPageLoadTool struct {
	session output.BrowserSession
	logger  output.LoggerPort
	cfg     Config
}

func NewWaitForPageLoadTool(session output.BrowserSession, logger output.LoggerPort, cfg Config) *WaitForPageLoadTool {
	return &WaitForPageLoadTool{session: session, logger: logger, cfg: cfg}
}

func (t *WaitForPageLoadTool) Name() entity.ToolName { return entity.ToolWaitForPageLoad }
func (t *WaitForPageLoadTool) Description() string {
	return "Wait until the document reports it has finished loading, then allow a short settle period for late dynamic content. The settle period is a heuristic, not a guarantee."
}
func (t *WaitForPageLoadTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"timeout_seconds": map[string]interface{}{
				"type":        "integer",
				"description": "Maximum time to wait for the ready state (default 30)",
			},
		},
		"required": []string{},
	}
}

func (t *WaitForPageLoadTool) Execute(ctx context.Context, args string) (string, error) {
	input := struct {
		Timeout *int `json:"timeout_seconds"`
	}{}
	if args != "" {
		if err := json.Unmarshal([]byte(args), &input); err != nil {
			return "", fmt.Errorf("invalid input format: %w", err)
		}
	}

	timeout := timeoutOrDefault(input.Timeout, 30*time.Second)
	deadline := time.Now().Add(timeout)

	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		state, err := t.session.ReadyState()
		if err != nil {
			return "", err
		}
		if state == "complete" {
			time.Sleep(t.cfg.LoadGracePeriod)
			return "Page finished loading", nil
		}
		if !time.Now().Before(deadline) {
			return "", fmt.Errorf("page did not finish loading within %s: %w", timeout, entity.ErrTimeout)
		}
		time.Sleep(t.cfg.PollInterval)
	}
}
