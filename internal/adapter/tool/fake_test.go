package tool

import (
	"context"
	"fmt"
	"strings"

	"leave-agent/internal/application/port/output"
	"leave-agent/internal/domain/entity"
	"leave-agent/internal/infrastructure/logger"
)

// fakeElement is a scriptable stand-in for a DOM element.
type fakeElement struct {
	tag     string
	id      string
	class   string
	typ     string
	name    string
	text    string
	nth     int
	visible bool
	enabled bool

	value      string
	clicks     int
	clearCalls int
	keysSent   []string

	clickErr error
}

func newFakeElement(tag string) *fakeElement {
	return &fakeElement{tag: tag, visible: true, enabled: true, nth: 1}
}

func (e *fakeElement) Click() error {
	if e.clickErr != nil {
		return e.clickErr
	}
	e.clicks++
	return nil
}

func (e *fakeElement) Clear() error {
	e.clearCalls++
	e.value = ""
	return nil
}

func (e *fakeElement) SendKeys(text string) error {
	e.value += text
	return nil
}

func (e *fakeElement) PressKey(key string) error {
	e.keysSent = append(e.keysSent, key)
	return nil
}

func (e *fakeElement) IsDisplayed() (bool, error) { return e.visible, nil }
func (e *fakeElement) IsEnabled() (bool, error)   { return e.enabled, nil }

func (e *fakeElement) GetAttribute(attr string) (string, error) {
	switch attr {
	case "id":
		return e.id, nil
	case "class":
		return e.class, nil
	case "type":
		return e.typ, nil
	case "name":
		return e.name, nil
	}
	return "", nil
}

func (e *fakeElement) Text() (string, error)      { return e.text, nil }
func (e *fakeElement) TagName() (string, error)   { return e.tag, nil }
func (e *fakeElement) SameTagIndex() (int, error) { return e.nth, nil }

// fakeSession is an in-memory BrowserSession backed by scripted elements.
type fakeSession struct {
	elements map[string]*fakeElement   // FindElement / TryFindElement
	lists    map[string][]*fakeElement // FindElements
	byText   []*fakeElement            // FindElementsByText

	url        string
	title      string
	html       string
	readyState string

	navErr     error
	redirectTo string
	navigated  []string
	scripts   []string
	scriptOut string

	screenshotData []byte

	// appearAfter delays TryFindElement hits by N probes per selector.
	appearAfter map[string]int
	probes      map[string]int

	tabCount int
	active   int
	closed   bool

	lastSearchText    string
	lastSearchPartial bool
}

func newFakeSession() *fakeSession {
	return &fakeSession{
		elements:    map[string]*fakeElement{},
		lists:       map[string][]*fakeElement{},
		appearAfter: map[string]int{},
		probes:      map[string]int{},
		url:         "https://portal.example.com/",
		title:       "HR Portal",
		readyState:  "complete",
		tabCount:    1,
	}
}

func (s *fakeSession) guard() error {
	if s.closed {
		return entity.ErrSessionClosed
	}
	if s.tabCount == 0 {
		return entity.ErrNoActiveTab
	}
	return nil
}

func (s *fakeSession) Navigate(ctx context.Context, url string) error {
	if err := s.guard(); err != nil {
		return err
	}
	if s.navErr != nil {
		return s.navErr
	}
	s.navigated = append(s.navigated, url)
	s.url = url
	if s.redirectTo != "" {
		s.url = s.redirectTo
	}
	return nil
}

func (s *fakeSession) Back() error    { return s.guard() }
func (s *fakeSession) Forward() error { return s.guard() }
func (s *fakeSession) Refresh() error { return s.guard() }

func (s *fakeSession) CurrentURL() (string, error) {
	if err := s.guard(); err != nil {
		return "", err
	}
	return s.url, nil
}

func (s *fakeSession) PageTitle() (string, error) {
	if err := s.guard(); err != nil {
		return "", err
	}
	return s.title, nil
}

func (s *fakeSession) PageHTML() (string, error) {
	if err := s.guard(); err != nil {
		return "", err
	}
	return s.html, nil
}

func (s *fakeSession) ReadyState() (string, error) {
	if err := s.guard(); err != nil {
		return "", err
	}
	return s.readyState, nil
}

func (s *fakeSession) FindElement(selector string) (output.Element, error) {
	if err := s.guard(); err != nil {
		return nil, err
	}
	el, ok := s.elements[selector]
	if !ok {
		return nil, fmt.Errorf("no element matches %q: %w", selector, entity.ErrElementNotFound)
	}
	return el, nil
}

func (s *fakeSession) TryFindElement(selector string) (output.Element, bool, error) {
	if err := s.guard(); err != nil {
		return nil, false, err
	}
	if wait, ok := s.appearAfter[selector]; ok {
		s.probes[selector]++
		if s.probes[selector] <= wait {
			return nil, false, nil
		}
	}
	el, ok := s.elements[selector]
	if !ok {
		return nil, false, nil
	}
	return el, true, nil
}

func (s *fakeSession) FindElements(selector string) ([]output.Element, error) {
	if err := s.guard(); err != nil {
		return nil, err
	}
	els := s.lists[selector]
	out := make([]output.Element, 0, len(els))
	for _, el := range els {
		out = append(out, el)
	}
	return out, nil
}

func (s *fakeSession) FindElementsByText(text string, partial bool) ([]output.Element, error) {
	if err := s.guard(); err != nil {
		return nil, err
	}
	s.lastSearchText = text
	s.lastSearchPartial = partial

	out := []output.Element{}
	for _, el := range s.byText {
		if partial && strings.Contains(el.text, text) {
			out = append(out, el)
		} else if !partial && el.text == text {
			out = append(out, el)
		}
	}
	return out, nil
}

func (s *fakeSession) ExecuteScript(js string) (string, error) {
	if err := s.guard(); err != nil {
		return "", err
	}
	s.scripts = append(s.scripts, js)
	return s.scriptOut, nil
}

func (s *fakeSession) Screenshot(fullPage bool) ([]byte, error) {
	if err := s.guard(); err != nil {
		return nil, err
	}
	return s.screenshotData, nil
}

func (s *fakeSession) OpenTab(url string) (int, error) {
	if s.closed {
		return 0, entity.ErrSessionClosed
	}
	s.tabCount++
	s.active = s.tabCount - 1
	return s.active, nil
}

func (s *fakeSession) SwitchTab(index int) error {
	if s.closed {
		return entity.ErrSessionClosed
	}
	if index < 0 || index >= s.tabCount {
		return fmt.Errorf("tab index %d out of range, %d tab(s) open: %w", index, s.tabCount, entity.ErrTabIndexOutOfRange)
	}
	s.active = index
	return nil
}

func (s *fakeSession) CloseTab() error {
	if err := s.guard(); err != nil {
		return err
	}
	s.tabCount--
	if s.tabCount == 0 {
		s.active = -1
	} else {
		s.active = s.tabCount - 1
	}
	return nil
}

func (s *fakeSession) TabCount() (int, error) {
	if s.closed {
		return 0, entity.ErrSessionClosed
	}
	return s.tabCount, nil
}

func (s *fakeSession) Close() error {
	s.closed = true
	return nil
}

func testLogger() output.LoggerPort {
	return logger.NewNop()
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.PollInterval = 1 // nanoseconds; tests must not sleep for real
	cfg.LoadGracePeriod = 0
	return cfg
}
