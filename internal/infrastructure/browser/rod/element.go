package rod

import (
	"fmt"

	"leave-agent/internal/application/port/output"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/input"
	"github.com/go-rod/rod/lib/proto"
)

var _ output.Element = (*element)(nil)

// keyCodes maps the normalized key names accepted at the port boundary to
// device key codes.
var keyCodes = map[string]input.Key{
	"enter":     input.Enter,
	"tab":       input.Tab,
	"escape":    input.Escape,
	"space":     input.Space,
	"backspace": input.Backspace,
}

type element struct {
	el *rod.Element
}

func (e *element) Click() error {
	if err := e.el.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return fmt.Errorf("click failed: %v", err)
	}
	return nil
}

// Clear selects the current content and replaces it with nothing, which
// fires the same input events a user would produce.
func (e *element) Clear() error {
	if err := e.el.SelectAllText(); err != nil {
		return fmt.Errorf("selecting text failed: %v", err)
	}
	if err := e.el.Input(""); err != nil {
		return fmt.Errorf("clearing text failed: %v", err)
	}
	return nil
}

func (e *element) SendKeys(text string) error {
	if err := e.el.Input(text); err != nil {
		return fmt.Errorf("typing text failed: %v", err)
	}
	return nil
}

func (e *element) PressKey(key string) error {
	code, ok := keyCodes[key]
	if !ok {
		return fmt.Errorf("no key code for %q", key)
	}
	if err := e.el.Type(code); err != nil {
		return fmt.Errorf("pressing %s failed: %v", key, err)
	}
	return nil
}

func (e *element) IsDisplayed() (bool, error) {
	visible, err := e.el.Visible()
	if err != nil {
		return false, fmt.Errorf("visibility check failed: %v", err)
	}
	return visible, nil
}

func (e *element) IsEnabled() (bool, error) {
	res, err := e.el.Eval(`() => !(this.disabled === true)`)
	if err != nil {
		return false, fmt.Errorf("enabled check failed: %v", err)
	}
	return res.Value.Bool(), nil
}

func (e *element) GetAttribute(name string) (string, error) {
	val, err := e.el.Attribute(name)
	if err != nil {
		return "", fmt.Errorf("reading attribute %q failed: %v", name, err)
	}
	if val == nil {
		return "", nil
	}
	return *val, nil
}

func (e *element) Text() (string, error) {
	text, err := e.el.Text()
	if err != nil {
		return "", fmt.Errorf("reading text failed: %v", err)
	}
	return text, nil
}

func (e *element) TagName() (string, error) {
	res, err := e.el.Eval(`() => this.tagName.toLowerCase()`)
	if err != nil {
		return "", fmt.Errorf("reading tag name failed: %v", err)
	}
	return res.Value.Str(), nil
}

// SameTagIndex returns the 1-based position of the element among siblings
// that share its tag, which is what a :nth-child style selector needs.
func (e *element) SameTagIndex() (int, error) {
	res, err := e.el.Eval(`() => {
		if (!this.parentElement) return 1;
		let i = 0;
		for (let s = this.parentElement.firstElementChild; s; s = s.nextElementSibling) {
			if (s.tagName === this.tagName) {
				i++;
				if (s === this) return i;
			}
		}
		return i;
	}`)
	if err != nil {
		return 0, fmt.Errorf("computing sibling index failed: %v", err)
	}
	return res.Value.Int(), nil
}
