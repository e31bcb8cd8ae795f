package tool

import (
	"context"
	"encoding/json"
	"fmt"

	"leave-agent/internal/application/port/output"
	"leave-agent/internal/domain/entity"
)

// clickableSelectors are the fixed categories enumerated by
// get_clickable_elements.
var clickableSelectors = []string{
	"a",
	"button",
	"input[type='submit']",
	"input[type='button']",
	"[role='button']",
	"[onclick]",
}

// formSelectors are the fixed categories enumerated by get_form_elements.
var formSelectors = []string{
	"input",
	"textarea",
	"select",
	"button[type='submit']",
}

const maxClickableElements = 20

type FindElementsByTextTool struct {
	session output.BrowserSession
	logger  output.LoggerPort
}

func NewFindElementsByTextTool(session output.BrowserSession, logger output.LoggerPort) *FindElementsByTextTool {
	return &FindElementsByTextTool{session: session, logger: logger}
}

func (t *FindElementsByTextTool) Name() entity.ToolName { return entity.ToolFindElementsByText }
func (t *FindElementsByTextTool) Description() string {
	return "Find elements whose text content matches the given text. With partial_match=true any element containing the text matches; otherwise the text must match exactly. Returns the matching elements with synthesized selectors."
}
func (t *FindElementsByTextTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"text": map[string]interface{}{
				"type":        "string",
				"description": "Text to search for",
			},
			"partial_match": map[string]interface{}{
				"type":        "boolean",
				"description": "Substring containment when true, exact equality when false (default true)",
			},
		},
		"required": []string{"text"},
	}
}

func (t *FindElementsByTextTool) Execute(ctx context.Context, args string) (string, error) {
	var input struct {
		Text    string `json:"text"`
		Partial *bool  `json:"partial_match"`
	}
	if err := json.Unmarshal([]byte(args), &input); err != nil {
		return "", fmt.Errorf("invalid input format: %w", err)
	}
	if input.Text == "" {
		return "", fmt.Errorf("text parameter is required")
	}

	partial := true
	if input.Partial != nil {
		partial = *input.Partial
	}

	els, err := t.session.FindElementsByText(input.Text, partial)
	if err != nil {
		return "", err
	}

	result := entity.ElementList{Elements: []entity.DiscoveredElement{}}
	for _, el := range els {
		if len(result.Elements) >= maxClickableElements {
			break
		}
		result.Elements = append(result.Elements, describeElement(el))
	}
	result.Count = len(result.Elements)

	return marshalResult(result)
}

type GetClickableElementsTool struct {
	session output.BrowserSession
	logger  output.LoggerPort
}

func NewGetClickableElementsTool(session output.BrowserSession, logger output.LoggerPort) *GetClickableElementsTool {
	return &GetClickableElementsTool{session: session, logger: logger}
}

func (t *GetClickableElementsTool) Name() entity.ToolName { return entity.ToolGetClickable }
func (t *GetClickableElementsTool) Description() string {
	return "Enumerate up to 20 visible and enabled clickable elements (links, buttons, submit inputs) on the current page, each with text and a synthesized selector usable for click."
}
func (t *GetClickableElementsTool) Parameters() map[string]interface{} {
	return emptyParameters()
}

func (t *GetClickableElementsTool) Execute(ctx context.Context, args string) (string, error) {
	result := entity.ElementList{Elements: []entity.DiscoveredElement{}}
	seen := make(map[string]bool)

	for _, selector := range clickableSelectors {
		els, err := t.session.FindElements(selector)
		if err != nil {
			// One broken category must not abort the report.
			t.logger.Debug("clickable sub-query failed", "selector", selector, "error", err)
			continue
		}
		for _, el := range els {
			if len(result.Elements) >= maxClickableElements {
				break
			}
			desc := describeElement(el)
			if !desc.Visible || !desc.Enabled || seen[desc.Selector] {
				continue
			}
			seen[desc.Selector] = true
			result.Elements = append(result.Elements, desc)
		}
	}
	result.Count = len(result.Elements)

	return marshalResult(result)
}

type GetFormElementsTool struct {
	session output.BrowserSession
	logger  output.LoggerPort
}

func NewGetFormElementsTool(session output.BrowserSession, logger output.LoggerPort) *GetFormElementsTool {
	return &GetFormElementsTool{session: session, logger: logger}
}

func (t *GetFormElementsTool) Name() entity.ToolName { return entity.ToolGetFormElements }
func (t *GetFormElementsTool) Description() string {
	return "Enumerate the visible form elements on the current page (inputs, textareas, selects, submit buttons) with their names, ids, types and synthesized selectors. Use this to find the fields a form expects."
}
func (t *GetFormElementsTool) Parameters() map[string]interface{} {
	return emptyParameters()
}

func (t *GetFormElementsTool) Execute(ctx context.Context, args string) (string, error) {
	result := entity.ElementList{Elements: []entity.DiscoveredElement{}}
	seen := make(map[string]bool)

	for _, selector := range formSelectors {
		els, err := t.session.FindElements(selector)
		if err != nil {
			t.logger.Debug("form sub-query failed", "selector", selector, "error", err)
			continue
		}
		for _, el := range els {
			desc := describeElement(el)
			if !desc.Visible || seen[desc.Selector] {
				continue
			}
			seen[desc.Selector] = true
			result.Elements = append(result.Elements, desc)
		}
	}
	result.Count = len(result.Elements)

	return marshalResult(result)
}
