package output

import "context"

// BrowserSession is the one live browser handle and its open tabs. It is a
// shared mutable resource with no internal locking: the tool catalog assumes
// a single caller invoking one operation at a time.
//
// Element handles returned from the finder methods are transient references
// into the live DOM. A selector has no meaning across navigations; callers
// re-resolve on every operation and never cache handles.
type BrowserSession interface {
	Navigate(ctx context.Context, url string) error
	Back() error
	Forward() error
	Refresh() error

	CurrentURL() (string, error)
	PageTitle() (string, error)
	PageHTML() (string, error)
	// ReadyState reports document.readyState ("loading", "interactive",
	// "complete") of the active tab.
	ReadyState() (string, error)

	// FindElement resolves the first element matching the CSS selector,
	// waiting up to the session's element timeout. Absence is reported as an
	// error wrapping entity.ErrElementNotFound.
	FindElement(selector string) (Element, error)
	// TryFindElement is the non-blocking variant: (nil, false, nil) when no
	// element matches right now. Only infrastructure faults produce an error.
	TryFindElement(selector string) (Element, bool, error)
	FindElements(selector string) ([]Element, error)
	// FindElementsByText matches elements by their text content. The text is
	// escaped before being embedded in the underlying query, so quote
	// characters in it are safe.
	FindElementsByText(text string, partial bool) ([]Element, error)

	// ExecuteScript evaluates a JS function expression on the active tab and
	// returns its result rendered as a string.
	ExecuteScript(js string) (string, error)

	// Screenshot captures the active tab as encoded image bytes: PNG for
	// full-page captures, JPEG for viewport captures.
	Screenshot(fullPage bool) ([]byte, error)

	OpenTab(url string) (int, error)
	SwitchTab(index int) error
	CloseTab() error
	TabCount() (int, error)

	// Close terminates the browser process. Safe to call more than once;
	// every other operation afterwards fails with entity.ErrSessionClosed.
	Close() error
}

// Element is a transient, non-owned handle into the current page's DOM.
type Element interface {
	Click() error
	// Clear removes the element's existing value.
	Clear() error
	SendKeys(text string) error
	// PressKey sends a normalized symbolic key ("enter", "tab", "escape",
	// "space", "backspace") to the element.
	PressKey(key string) error

	IsDisplayed() (bool, error)
	IsEnabled() (bool, error)
	GetAttribute(name string) (string, error)
	Text() (string, error)
	TagName() (string, error)
	// SameTagIndex is the element's 1-based position among siblings that
	// share its tag, used by selector synthesis.
	SameTagIndex() (int, error)
}
