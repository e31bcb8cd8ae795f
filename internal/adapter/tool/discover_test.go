package tool

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"leave-agent/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindElementsByTextTool(t *testing.T) {
	t.Run("partial match is the default", func(t *testing.T) {
		session := newFakeSession()
		link := newFakeElement("a")
		link.text = "Request annual leave"
		link.id = "annual"
		session.byText = []*fakeElement{link}

		tool := NewFindElementsByTextTool(session, testLogger())
		result, err := tool.Execute(context.Background(), `{"text": "annual"}`)
		require.NoError(t, err)

		assert.True(t, session.lastSearchPartial)

		var list entity.ElementList
		require.NoError(t, json.Unmarshal([]byte(result), &list))
		require.Equal(t, 1, list.Count)
		assert.Equal(t, "#annual", list.Elements[0].Selector)
		assert.Equal(t, "Request annual leave", list.Elements[0].Text)
	})

	t.Run("exact match can be requested", func(t *testing.T) {
		session := newFakeSession()
		el := newFakeElement("span")
		el.text = "Pending"
		session.byText = []*fakeElement{el}

		tool := NewFindElementsByTextTool(session, testLogger())
		result, err := tool.Execute(context.Background(), `{"text": "Pend", "partial_match": false}`)
		require.NoError(t, err)

		assert.False(t, session.lastSearchPartial)

		var list entity.ElementList
		require.NoError(t, json.Unmarshal([]byte(result), &list))
		assert.Equal(t, 0, list.Count)
	})

	t.Run("no match yields an empty list, not an error", func(t *testing.T) {
		tool := NewFindElementsByTextTool(newFakeSession(), testLogger())

		result, err := tool.Execute(context.Background(), `{"text": "nothing here"}`)
		require.NoError(t, err)

		var list entity.ElementList
		require.NoError(t, json.Unmarshal([]byte(result), &list))
		assert.Equal(t, 0, list.Count)
		assert.NotNil(t, list.Elements)
	})
}

func TestGetClickableElementsTool(t *testing.T) {
	t.Run("filters invisible and disabled elements", func(t *testing.T) {
		session := newFakeSession()

		visible := newFakeElement("button")
		visible.id = "ok"
		hidden := newFakeElement("button")
		hidden.id = "hidden"
		hidden.visible = false
		disabled := newFakeElement("button")
		disabled.id = "disabled"
		disabled.enabled = false
		session.lists["button"] = []*fakeElement{visible, hidden, disabled}

		tool := NewGetClickableElementsTool(session, testLogger())
		result, err := tool.Execute(context.Background(), `{}`)
		require.NoError(t, err)

		var list entity.ElementList
		require.NoError(t, json.Unmarshal([]byte(result), &list))
		require.Equal(t, 1, list.Count)
		assert.Equal(t, "#ok", list.Elements[0].Selector)
	})

	t.Run("deduplicates by synthesized selector", func(t *testing.T) {
		session := newFakeSession()

		// The same submit input matches both category queries.
		submit := newFakeElement("input")
		submit.id = "send"
		submit.typ = "submit"
		session.lists["input[type='submit']"] = []*fakeElement{submit}
		session.lists["[onclick]"] = []*fakeElement{submit}

		tool := NewGetClickableElementsTool(session, testLogger())
		result, err := tool.Execute(context.Background(), `{}`)
		require.NoError(t, err)

		var list entity.ElementList
		require.NoError(t, json.Unmarshal([]byte(result), &list))
		assert.Equal(t, 1, list.Count)
	})

	t.Run("caps the result at twenty", func(t *testing.T) {
		session := newFakeSession()
		var links []*fakeElement
		for i := 0; i < 30; i++ {
			el := newFakeElement("a")
			el.id = fmt.Sprintf("link-%d", i)
			links = append(links, el)
		}
		session.lists["a"] = links

		tool := NewGetClickableElementsTool(session, testLogger())
		result, err := tool.Execute(context.Background(), `{}`)
		require.NoError(t, err)

		var list entity.ElementList
		require.NoError(t, json.Unmarshal([]byte(result), &list))
		assert.Equal(t, maxClickableElements, list.Count)
	})
}

func TestGetFormElementsTool(t *testing.T) {
	session := newFakeSession()

	from := newFakeElement("input")
	from.id = "from-date"
	from.typ = "date"
	from.name = "from"

	reason := newFakeElement("textarea")
	reason.id = "reason"
	reason.name = "reason"

	// Disabled fields still describe the form; only invisible ones are noise.
	locked := newFakeElement("input")
	locked.id = "employee-id"
	locked.enabled = false

	hidden := newFakeElement("input")
	hidden.id = "csrf"
	hidden.visible = false

	session.lists["input"] = []*fakeElement{from, locked, hidden}
	session.lists["textarea"] = []*fakeElement{reason}

	tool := NewGetFormElementsTool(session, testLogger())
	result, err := tool.Execute(context.Background(), `{}`)
	require.NoError(t, err)

	var list entity.ElementList
	require.NoError(t, json.Unmarshal([]byte(result), &list))
	require.Equal(t, 3, list.Count)

	selectors := make([]string, 0, len(list.Elements))
	for _, el := range list.Elements {
		selectors = append(selectors, el.Selector)
	}
	assert.Equal(t, []string{"#from-date", "#employee-id", "#reason"}, selectors)
}
