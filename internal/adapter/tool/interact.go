package tool

import (
	"context"
	"encoding/json"
	"fmt"

	"leave-agent/internal/application/port/output"
	"leave-agent/internal/domain/entity"
)

type ClickTool struct {
	session output.BrowserSession
	logger  output.LoggerPort
}

func NewClickTool(session output.BrowserSession, logger output.LoggerPort) *ClickTool {
	return &ClickTool{session: session, logger: logger}
}

func (t *ClickTool) Name() entity.ToolName { return entity.ToolClick }
func (t *ClickTool) Description() string {
	return "Click the first element matching a CSS selector. Fails if no element matches. For elements that appear after a delay or may be temporarily disabled, prefer safe_click."
}
func (t *ClickTool) Parameters() map[string]interface{} {
	return selectorParameters("CSS selector of the element to click, e.g. \"button#submit\" or \".leave-form a\"")
}

func (t *ClickTool) Execute(ctx context.Context, args string) (string, error) {
	selector, err := parseSelector(args)
	if err != nil {
		return "", err
	}

	el, err := t.session.FindElement(selector)
	if err != nil {
		return "", err
	}
	if err := el.Click(); err != nil {
		return "", fmt.Errorf("click on %q failed: %w", selector, err)
	}
	return fmt.Sprintf("Clicked element with selector: %s", selector), nil
}

type InputTextTool struct {
	session output.BrowserSession
	logger  output.LoggerPort
}

func NewInputTextTool(session output.BrowserSession, logger output.LoggerPort) *InputTextTool {
	return &InputTextTool{session: session, logger: logger}
}

func (t *InputTextTool) Name() entity.ToolName { return entity.ToolInputText }
func (t *InputTextTool) Description() string {
	return "Type text into the element matching a CSS selector. Existing content is cleared first, so this overwrites rather than appends. Fails if no element matches."
}
func (t *InputTextTool) Parameters() map[string]interface{} {
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
		},
		"required": []string{"selector", "text"},
	}
}

func (t *InputTextTool) Execute(ctx context.Context, args string) (string, error) {
	var input struct {
		Selector string `json:"selector"`
		Text     string `json:"text"`
	}
	if err := json.Unmarshal([]byte(args), &input); err != nil {
		return "", fmt.Errorf("invalid input format: %w", err)
	}
	if input.Selector == "" {
		return "", fmt.Errorf("selector parameter is required")
	}

	el, err := t.session.FindElement(input.Selector)
	if err != nil {
		return "", err
	}
	if err := el.Clear(); err != nil {
		return "", fmt.Errorf("clearing %q failed: %w", input.Selector, err)
	}
	if err := el.SendKeys(input.Text); err != nil {
		return "", fmt.Errorf("typing into %q failed: %w", input.Selector, err)
	}
	return fmt.Sprintf("Entered text into field with selector: %s", input.Selector), nil
}

type GetElementTextTool struct {
	session output.BrowserSession
	logger  output.LoggerPort
}

func NewGetElementTextTool(session output.BrowserSession, logger output.LoggerPort) *GetElementTextTool {
	return &GetElementTextTool{session: session, logger: logger}
}

func (t *GetElementTextTool) Name() entity.ToolName { return entity.ToolGetElementText }
func (t *GetElementTextTool) Description() string {
	return "Return the text content of the first element matching a CSS selector."
}
func (t *GetElementTextTool) Parameters() map[string]interface{} {
	return selectorParameters("CSS selector of the element to read")
}

func (t *GetElementTextTool) Execute(ctx context.Context, args string) (string, error) {
	selector, err := parseSelector(args)
	if err != nil {
		return "", err
	}

	el, err := t.session.FindElement(selector)
	if err != nil {
		return "", err
	}
	text, err := el.Text()
	if err != nil {
		return "", fmt.Errorf("reading text of %q failed: %w", selector, err)
	}
	return text, nil
}

func selectorParameters(description string) map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"selector": map[string]interface{}{
				"type":        "string",
				"description": description,
			},
		},
		"required": []string{"selector"},
	}
}

func parseSelector(args string) (string, error) {
	var input struct {
		Selector string `json:"selector"`
	}
	if err := json.Unmarshal([]byte(args), &input); err != nil {
		return "", fmt.Errorf("invalid input format: %w", err)
	}
	if input.Selector == "" {
		return "", fmt.Errorf("selector parameter is required")
	}
	return input.Selector, nil
}
