package tool

import (
	"fmt"
	"strings"

	"leave-agent/internal/application/port/output"
	"leave-agent/internal/domain/entity"
)

// synthesizeSelector builds a human-readable selector for a discovered
// element. Preference order: id, first class token, position among same-tag
// siblings, bare tag. Precision over robustness: the id is assumed unique and
// the positional form only holds until sibling structure changes.
func synthesizeSelector(id, class, tag string, nth int) string {
	if id != "" {
		return "#" + id
	}
	if token := firstClassToken(class); token != "" {
		return "." + token
	}
	if tag == "" {
		return "*"
	}
	if nth > 0 {
		return fmt.Sprintf("%s:nth-child(%d)", tag, nth)
	}
	return tag
}

func firstClassToken(class string) string {
	for _, token := range strings.Fields(class) {
		return token
	}
	return ""
}

const maxElementTextLen = 80

// describeElement captures the attributes the discovery tools report for one
// element. Attribute-level faults degrade to empty fields; the caller decides
// whether the record is still worth keeping.
func describeElement(el output.Element) entity.DiscoveredElement {
	tag, _ := el.TagName()
	id, _ := el.GetAttribute("id")
	class, _ := el.GetAttribute("class")
	typ, _ := el.GetAttribute("type")
	name, _ := el.GetAttribute("name")

	nth := 0
	if id == "" && firstClassToken(class) == "" {
		nth, _ = el.SameTagIndex()
	}

	text, _ := el.Text()
	text = strings.TrimSpace(text)
	if len(text) > maxElementTextLen {
		text = text[:maxElementTextLen] + "..."
	}

	visible, _ := el.IsDisplayed()
	enabled, _ := el.IsEnabled()

	return entity.DiscoveredElement{
		Tag:      tag,
		Selector: synthesizeSelector(id, class, tag, nth),
		Text:     text,
		Type:     typ,
		Name:     name,
		ID:       id,
		Visible:  visible,
		Enabled:  enabled,
	}
}
