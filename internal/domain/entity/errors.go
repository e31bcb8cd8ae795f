package entity

import "errors"

// Browser failure taxonomy. Tools wrap these with context via fmt.Errorf("%w")
// so callers can classify a failure with errors.Is and decide whether to retry.
var (
	// ErrElementNotFound: the selector matched no element on the current page.
	ErrElementNotFound = errors.New("element not found")

	// ErrNotInteractable: the element exists but is hidden or otherwise not
	// ready for interaction.
	ErrNotInteractable = errors.New("element not interactable")

	// ErrElementDisabled: the element exists and is visible but disabled.
	ErrElementDisabled = errors.New("element disabled")

	// ErrTimeout: a wait or poll exceeded its budget.
	ErrTimeout = errors.New("timeout")

	// ErrNavigationTimeout: the page-load timeout owned by the session elapsed.
	ErrNavigationTimeout = errors.New("navigation timeout")

	// ErrSessionClosed: operation attempted after Close.
	ErrSessionClosed = errors.New("browser session closed")

	// ErrNoActiveTab: the session has no active tab left.
	ErrNoActiveTab = errors.New("no active tab")

	// ErrTabIndexOutOfRange: switch_tab index outside [0, tab count).
	ErrTabIndexOutOfRange = errors.New("tab index out of range")

	// ErrEnvironment: the browser binary or driver could not be launched.
	ErrEnvironment = errors.New("browser environment unavailable")
)
