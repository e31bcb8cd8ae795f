package tool

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"leave-agent/internal/application/port/output"
	"leave-agent/internal/domain/entity"
)

// pollState tracks the last observed condition of the target so the caller
// gets the most specific of the three failure kinds when the budget runs out.
type pollState int

const (
	stateMissing pollState = iota
	stateHidden
	stateDisabled
)

// pollInteractable waits up to timeout for the selector to resolve to an
// element that is present, visible and enabled. It always checks at least
// once, so a zero timeout degrades to a single probe, never a hang. The
// result is terminal: success or one classified failure; retrying is the
// caller's decision.
func pollInteractable(ctx context.Context, session output.BrowserSession, selector string, timeout, interval time.Duration) (output.Element, error) {
	deadline := time.Now().Add(timeout)
	last := stateMissing

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		el, ok, err := session.TryFindElement(selector)
		if err != nil {
			return nil, err
		}
		if ok {
			visible, verr := el.IsDisplayed()
			if verr == nil && visible {
				enabled, eerr := el.IsEnabled()
				if eerr == nil && enabled {
					return el, nil
				}
				last = stateDisabled
			} else {
				// Detached mid-check counts as hidden; the next probe
				// re-resolves the selector anyway.
				last = stateHidden
			}
		} else {
			last = stateMissing
		}

		if !time.Now().Before(deadline) {
			break
		}
		time.Sleep(interval)
	}

	switch last {
	case stateDisabled:
		return nil, fmt.Errorf("element %q is disabled: %w", selector, entity.ErrElementDisabled)
	case stateHidden:
		return nil, fmt.Errorf("element %q did not become interactable within %s: %w", selector, timeout, entity.ErrNotInteractable)
	default:
		return nil, fmt.Errorf("element %q not found within %s: %w", selector, timeout, entity.ErrElementNotFound)
	}
}

type SafeClickTool struct {
	session output.BrowserSession
	logger  output.LoggerPort
	cfg     Config
}

func NewSafeClickTool(session output.BrowserSession, logger output.LoggerPort, cfg Config) *SafeClickTool {
	return &SafeClickTool{session: session, logger: logger, cfg: cfg}
}

func (t *SafeClickTool) Name() entity.ToolName { return entity.ToolSafeClick }
func (t *SafeClickTool) Description() string {
	return "Reliable variant of click: waits up to timeout_seconds for the element to become present, visible and enabled before clicking. Distinguishes not-found, not-interactable and disabled failures."
}
func (t *SafeClickTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"selector": map[string]interface{}{
				"type":        "string",
				"description": "CSS selector of the element to click",
			},
			"timeout_seconds": map[string]interface{}{
				"type":        "integer",
				"description": "How long to wait for the element to become clickable (default 10)",
			},
		},
		"required": []string{"selector"},
	}
}

func (t *SafeClickTool) Execute(ctx context.Context, args string) (string, error) {
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
	el, err := pollInteractable(ctx, t.session, input.Selector, timeout, t.cfg.PollInterval)
	if err != nil {
		return "", err
	}
	if err := el.Click(); err != nil {
		return "", fmt.Errorf("click on %q failed: %w", input.Selector, err)
	}

	t.logger.Debug("safe_click succeeded", "selector", input.Selector)
	return fmt.Sprintf("Safely clicked element with selector: %s", input.Selector), nil
}

type SafeInputTextTool struct {
	session output.BrowserSession
	logger  output.LoggerPort
	cfg     Config
}

func NewSafeInputTextTool(session output.BrowserSession, logger output.LoggerPort, cfg Config) *SafeInputTextTool {
	return &SafeInputTextTool{session: session, logger: logger, cfg: cfg}
}

func (t *SafeInputTextTool) Name() entity.ToolName { return entity.ToolSafeInputText }
func (t *SafeInputTextTool) Description() string {
	return "Reliable variant of input_text: waits up to timeout_seconds for the field to become present, visible and enabled, then clears it and types the text."
}
func (t *SafeInputTextTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"selector": map[string]interface{}{
				"type":        "string",
				"description": "CSS selector of the input field",
			},
			"text": map[string]interface{}{
				"type":        "string",
				"description": "Text to type into the field",
			},
			"timeout_seconds": map[string]interface{}{
				"type":        "integer",
				"description": "How long to wait for the field to become interactable (default 10)",
			},
		},
		"required": []string{"selector", "text"},
	}
}

func (t *SafeInputTextTool) Execute(ctx context.Context, args string) (string, error) {
	var input struct {
		Selector string `json:"selector"`
		Text     string `json:"text"`
		Timeout  *int   `json:"timeout_seconds"`
	}
	if err := json.Unmarshal([]byte(args), &input); err != nil {
		return "", fmt.Errorf("invalid input format: %w", err)
	}
	if input.Selector == "" {
		return "", fmt.Errorf("selector parameter is required")
	}

	timeout := timeoutOrDefault(input.Timeout, 10*time.Second)
	el, err := pollInteractable(ctx, t.session, input.Selector, timeout, t.cfg.PollInterval)
	if err != nil {
		return "", err
	}
	if err := el.Clear(); err != nil {
		return "", fmt.Errorf("clearing %q failed: %w", input.Selector, err)
	}
	if err := el.SendKeys(input.Text); err != nil {
		return "", fmt.Errorf("typing into %q failed: %w", input.Selector, err)
	}

	t.logger.Debug("safe_input_text succeeded", "selector", input.Selector)
	return fmt.Sprintf("Safely entered text into field with selector: %s", input.Selector), nil
}

func timeoutOrDefault(seconds *int, fallback time.Duration) time.Duration {
	if seconds == nil {
		return fallback
	}
	if *seconds < 0 {
		return 0
	}
	return time.Duration(*seconds) * time.Second
}
