package rod

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"leave-agent/internal/application/port/output"
	"leave-agent/internal/domain/entity"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/ysmood/gson"
)

var _ output.BrowserSession = (*Session)(nil)

const (
	defaultPageLoadTimeout = 30 * time.Second
	defaultElementTimeout  = 10 * time.Second
)

type Config struct {
	Headless        bool
	PageLoadTimeout time.Duration
	ElementTimeout  time.Duration
	SlowMotion      time.Duration
	NoSandbox       bool
}

func DefaultConfig() Config {
	return Config{
		Headless:        false,
		PageLoadTimeout: defaultPageLoadTimeout,
		ElementTimeout:  defaultElementTimeout,
		SlowMotion:      0,
		NoSandbox:       true,
	}
}

// Session owns exactly one browser process and its open tabs. There is no
// pooling and no internal locking: callers invoke one operation at a time.
type Session struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	tabs     []*rod.Page
	active   int // -1 when no tab has focus
	cfg      Config
	closed   bool
}

// Open launches the browser and opens one blank tab. A launcher failure means
// the browser binary or its sandbox is unavailable on this machine.
func Open(ctx context.Context, cfg Config) (*Session, error) {
	if cfg.PageLoadTimeout <= 0 {
		cfg.PageLoadTimeout = defaultPageLoadTimeout
	}
	if cfg.ElementTimeout <= 0 {
		cfg.ElementTimeout = defaultElementTimeout
	}

	l := launcher.New().
		Headless(cfg.Headless).
		NoSandbox(cfg.NoSandbox).
		Set("disable-dev-shm-usage")
	if cfg.Headless {
		// Chrome 109+ supports the new headless engine, which renders like
		// the headed browser.
		l = l.Set("headless", "new")
	}

	url, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w: %v", entity.ErrEnvironment, err)
	}

	browser := rod.New().
		ControlURL(url).
		SlowMotion(cfg.SlowMotion)
	if err := browser.Connect(); err != nil {
		l.Kill()
		l.Cleanup()
		return nil, fmt.Errorf("failed to connect to browser: %w: %v", entity.ErrEnvironment, err)
	}

	page, err := browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		_ = browser.Close()
		l.Kill()
		l.Cleanup()
		return nil, fmt.Errorf("failed to open initial tab: %w: %v", entity.ErrEnvironment, err)
	}

	return &Session{
		browser:  browser,
		launcher: l,
		tabs:     []*rod.Page{page},
		active:   0,
		cfg:      cfg,
	}, nil
}

// page returns the active tab after the session-state guards.
func (s *Session) page() (*rod.Page, error) {
	if s.closed {
		return nil, entity.ErrSessionClosed
	}
	if s.active < 0 || s.active >= len(s.tabs) {
		return nil, entity.ErrNoActiveTab
	}
	return s.tabs[s.active], nil
}

func (s *Session) Navigate(ctx context.Context, url string) error {
	p, err := s.page()
	if err != nil {
		return err
	}

	timed := p.Timeout(s.cfg.PageLoadTimeout)
	if err := timed.Navigate(url); err != nil {
		return classifyNavError(url, err)
	}
	if err := timed.WaitLoad(); err != nil {
		return classifyNavError(url, err)
	}
	return nil
}

func classifyNavError(url string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("loading %s exceeded the page-load timeout: %w", url, entity.ErrNavigationTimeout)
	}
	return fmt.Errorf("navigation to %s failed: %v", url, err)
}

func (s *Session) Back() error {
	p, err := s.page()
	if err != nil {
		return err
	}
	if err := p.NavigateBack(); err != nil {
		return fmt.Errorf("history back failed: %v", err)
	}
	return nil
}

func (s *Session) Forward() error {
	p, err := s.page()
	if err != nil {
		return err
	}
	if err := p.NavigateForward(); err != nil {
		return fmt.Errorf("history forward failed: %v", err)
	}
	return nil
}

func (s *Session) Refresh() error {
	p, err := s.page()
	if err != nil {
		return err
	}
	if err := p.Reload(); err != nil {
		return fmt.Errorf("reload failed: %v", err)
	}
	if err := p.Timeout(s.cfg.PageLoadTimeout).WaitLoad(); err != nil {
		return classifyNavError("current page", err)
	}
	return nil
}

func (s *Session) CurrentURL() (string, error) {
	p, err := s.page()
	if err != nil {
		return "", err
	}
	info, err := p.Info()
	if err != nil {
		return "", fmt.Errorf("reading page info failed: %v", err)
	}
	return info.URL, nil
}

func (s *Session) PageTitle() (string, error) {
	p, err := s.page()
	if err != nil {
		return "", err
	}
	info, err := p.Info()
	if err != nil {
		return "", fmt.Errorf("reading page info failed: %v", err)
	}
	return info.Title, nil
}

func (s *Session) PageHTML() (string, error) {
	p, err := s.page()
	if err != nil {
		return "", err
	}
	html, err := p.HTML()
	if err != nil {
		return "", fmt.Errorf("reading page HTML failed: %v", err)
	}
	return html, nil
}

func (s *Session) ReadyState() (string, error) {
	return s.ExecuteScript(`() => document.readyState`)
}

func (s *Session) FindElement(selector string) (output.Element, error) {
	p, err := s.page()
	if err != nil {
		return nil, err
	}
	el, err := p.Timeout(s.cfg.ElementTimeout).Element(selector)
	if err != nil {
		return nil, fmt.Errorf("no element matches %q: %w", selector, entity.ErrElementNotFound)
	}
	return &element{el: el}, nil
}

func (s *Session) TryFindElement(selector string) (output.Element, bool, error) {
	p, err := s.page()
	if err != nil {
		return nil, false, err
	}
	has, el, err := p.Has(selector)
	if err != nil {
		return nil, false, fmt.Errorf("probing %q failed: %v", selector, err)
	}
	if !has {
		return nil, false, nil
	}
	return &element{el: el}, true, nil
}

func (s *Session) FindElements(selector string) ([]output.Element, error) {
	p, err := s.page()
	if err != nil {
		return nil, err
	}
	els, err := p.Elements(selector)
	if err != nil {
		return nil, fmt.Errorf("querying %q failed: %v", selector, err)
	}
	return wrapElements(els), nil
}

func (s *Session) FindElementsByText(text string, partial bool) ([]output.Element, error) {
	p, err := s.page()
	if err != nil {
		return nil, err
	}

	literal := xpathLiteral(text)
	var query string
	if partial {
		query = fmt.Sprintf("//*[contains(text(), %s)]", literal)
	} else {
		query = fmt.Sprintf("//*[normalize-space(text())=%s]", literal)
	}

	els, err := p.ElementsX(query)
	if err != nil {
		return nil, fmt.Errorf("text search for %q failed: %v", text, err)
	}
	return wrapElements(els), nil
}

// xpathLiteral quotes arbitrary caller text for embedding in an XPath
// expression. Text containing both quote kinds needs the concat() form.
func xpathLiteral(s string) string {
	if !strings.Contains(s, "'") {
		return "'" + s + "'"
	}
	if !strings.Contains(s, `"`) {
		return `"` + s + `"`
	}

	parts := strings.Split(s, "'")
	quoted := make([]string, 0, len(parts)*2)
	for i, part := range parts {
		if i > 0 {
			quoted = append(quoted, `"'"`)
		}
		if part != "" {
			quoted = append(quoted, "'"+part+"'")
		}
	}
	return "concat(" + strings.Join(quoted, ", ") + ")"
}

func (s *Session) ExecuteScript(js string) (string, error) {
	p, err := s.page()
	if err != nil {
		return "", err
	}
	res, err := p.Eval(js)
	if err != nil {
		return "", fmt.Errorf("script evaluation failed: %v", err)
	}
	return res.Value.String(), nil
}

func (s *Session) Screenshot(fullPage bool) ([]byte, error) {
	p, err := s.page()
	if err != nil {
		return nil, err
	}

	req := &proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormatPng,
	}
	if !fullPage {
		// Viewport grabs go to the model frequently; JPEG keeps them small.
		req.Format = proto.PageCaptureScreenshotFormatJpeg
		req.Quality = gson.Int(80)
	}

	data, err := p.Screenshot(fullPage, req)
	if err != nil {
		return nil, fmt.Errorf("screenshot failed: %v", err)
	}
	return data, nil
}

func (s *Session) OpenTab(url string) (int, error) {
	if s.closed {
		return 0, entity.ErrSessionClosed
	}

	target := url
	if target == "" {
		target = "about:blank"
	}
	page, err := s.browser.Page(proto.TargetCreateTarget{URL: target})
	if err != nil {
		return 0, fmt.Errorf("opening tab failed: %v", err)
	}
	if url != "" {
		if err := page.Timeout(s.cfg.PageLoadTimeout).WaitLoad(); err != nil {
			// The tab is open and focused even when the load runs long.
			_ = err
		}
	}

	s.tabs = append(s.tabs, page)
	s.active = len(s.tabs) - 1
	return s.active, nil
}

func (s *Session) SwitchTab(index int) error {
	if s.closed {
		return entity.ErrSessionClosed
	}
	if index < 0 || index >= len(s.tabs) {
		return fmt.Errorf("tab index %d out of range, %d tab(s) open: %w", index, len(s.tabs), entity.ErrTabIndexOutOfRange)
	}
	if _, err := s.tabs[index].Activate(); err != nil {
		return fmt.Errorf("activating tab %d failed: %v", index, err)
	}
	s.active = index
	return nil
}

func (s *Session) CloseTab() error {
	p, err := s.page()
	if err != nil {
		return err
	}

	if err := p.Close(); err != nil {
		return fmt.Errorf("closing tab failed: %v", err)
	}
	s.tabs = append(s.tabs[:s.active], s.tabs[s.active+1:]...)

	// Focus moves to the last remaining tab; with none left the session
	// keeps running but every DOM operation reports the missing tab.
	if len(s.tabs) == 0 {
		s.active = -1
		return nil
	}
	s.active = len(s.tabs) - 1
	if _, err := s.tabs[s.active].Activate(); err != nil {
		return fmt.Errorf("activating remaining tab failed: %v", err)
	}
	return nil
}

func (s *Session) TabCount() (int, error) {
	if s.closed {
		return 0, entity.ErrSessionClosed
	}
	return len(s.tabs), nil
}

func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.tabs = nil
	s.active = -1

	if s.browser != nil {
		_ = s.browser.Close()
	}
	if s.launcher != nil {
		s.launcher.Kill()
		s.launcher.Cleanup()
	}
	return nil
}

func wrapElements(els rod.Elements) []output.Element {
	out := make([]output.Element, 0, len(els))
	for _, el := range els {
		out = append(out, &element{el: el})
	}
	return out
}
