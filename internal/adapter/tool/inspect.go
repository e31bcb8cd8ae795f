package tool

import (
	"context"
	"strings"

	"leave-agent/internal/application/port/output"
	"leave-agent/internal/domain/entity"
	"leave-agent/internal/infrastructure/browser/htmltext"
)

type CheckElementExistsTool struct {
	session output.BrowserSession
	logger  output.LoggerPort
}

func NewCheckElementExistsTool(session output.BrowserSession, logger output.LoggerPort) *CheckElementExistsTool {
	return &CheckElementExistsTool{session: session, logger: logger}
}

func (t *CheckElementExistsTool) Name() entity.ToolName { return entity.ToolCheckElementExists }
func (t *CheckElementExistsTool) Description() string {
	return "Probe whether an element matching the CSS selector exists, and if so whether it is visible and enabled. Absence is reported in the result, never as an error, so this is safe to use defensively before interacting."
}
func (t *CheckElementExistsTool) Parameters() map[string]interface{} {
	return selectorParameters("CSS selector to probe")
}

func (t *CheckElementExistsTool) Execute(ctx context.Context, args string) (string, error) {
	selector, err := parseSelector(args)
	if err != nil {
		return "", err
	}

	check := entity.ElementCheck{Selector: selector}

	// Only infrastructure faults (closed session, no active tab) escape as
	// errors; a missing element is an answer, not a failure.
	el, ok, err := t.session.TryFindElement(selector)
	if err != nil {
		return "", err
	}
	if ok {
		check.Exists = true
		check.Visible, _ = el.IsDisplayed()
		check.Enabled, _ = el.IsEnabled()
		if text, terr := el.Text(); terr == nil {
			text = strings.TrimSpace(text)
			if len(text) > maxElementTextLen {
				text = text[:maxElementTextLen] + "..."
			}
			check.Text = text
		}
	}

	return marshalResult(check)
}

type GetPageInfoTool struct {
	session output.BrowserSession
	logger  output.LoggerPort
}

func NewGetPageInfoTool(session output.BrowserSession, logger output.LoggerPort) *GetPageInfoTool {
	return &GetPageInfoTool{session: session, logger: logger}
}

func (t *GetPageInfoTool) Name() entity.ToolName { return entity.ToolGetPageInfo }
func (t *GetPageInfoTool) Description() string {
	return "Summarize the current page: title, URL and counts of buttons, links, inputs, forms, images and tables. Useful for getting oriented on an unfamiliar page."
}
func (t *GetPageInfoTool) Parameters() map[string]interface{} {
	return emptyParameters()
}

func (t *GetPageInfoTool) Execute(ctx context.Context, args string) (string, error) {
	title, err := t.session.PageTitle()
	if err != nil {
		return "", err
	}
	url, err := t.session.CurrentURL()
	if err != nil {
		return "", err
	}

	info := entity.PageInfo{
		Title:   title,
		URL:     url,
		Buttons: t.count("button"),
		Links:   t.count("a"),
		Inputs:  t.count("input"),
		Forms:   t.count("form"),
		Images:  t.count("img"),
		Tables:  t.count("table"),
	}

	return marshalResult(info)
}

// count swallows sub-query faults: one broken category must not abort the
// whole report.
func (t *GetPageInfoTool) count(selector string) int {
	els, err := t.session.FindElements(selector)
	if err != nil {
		t.logger.Debug("page info sub-query failed", "selector", selector, "error", err)
		return 0
	}
	return len(els)
}

type GetPageContentTool struct {
	session output.BrowserSession
	logger  output.LoggerPort
}

func NewGetPageContentTool(session output.BrowserSession, logger output.LoggerPort) *GetPageContentTool {
	return &GetPageContentTool{session: session, logger: logger}
}

func (t *GetPageContentTool) Name() entity.ToolName { return entity.ToolGetPageContent }
func (t *GetPageContentTool) Description() string {
	return "Return the visible text of the current page, without markup, scripts or styles. Use it to read and verify page content; for interactive elements use the discovery tools instead."
}
func (t *GetPageContentTool) Parameters() map[string]interface{} {
	return emptyParameters()
}

func (t *GetPageContentTool) Execute(ctx context.Context, args string) (string, error) {
	html, err := t.session.PageHTML()
	if err != nil {
		return "", err
	}
	return htmltext.Extract(html, nil), nil
}
