// Package htmltext turns raw page HTML into the plain visible text handed to
// the language model.
package htmltext

import (
	"strings"

	"golang.org/x/net/html"
)

type Config struct {
	// TagsToSkip are subtrees that carry no visible text.
	TagsToSkip    []string
	MaxOutputSize int
}

var DefaultConfig = Config{
	TagsToSkip: []string{
		"script", "style", "noscript", "svg", "iframe",
		"template", "head", "title",
	},
	MaxOutputSize: 20_000,
}

// blockTags start a new line in the extracted text so that the page's rough
// structure survives.
var blockTags = map[string]bool{
	"address": true, "article": true, "aside": true, "blockquote": true,
	"br": true, "div": true, "dl": true, "dt": true, "dd": true,
	"fieldset": true, "footer": true, "form": true, "h1": true, "h2": true,
	"h3": true, "h4": true, "h5": true, "h6": true, "header": true,
	"hr": true, "li": true, "main": true, "nav": true, "ol": true,
	"p": true, "pre": true, "section": true, "table": true, "tr": true,
	"td": true, "th": true, "ul": true,
}

// Extract returns the visible text of rawHTML with whitespace collapsed and
// the output truncated to cfg.MaxOutputSize. Unparseable input falls back to
// the raw string rather than failing: a degraded observation is more useful
// to the agent than none.
func Extract(rawHTML string, cfg *Config) string {
	if cfg == nil {
		cfg = &DefaultConfig
	}

	doc, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return truncate(rawHTML, cfg.MaxOutputSize)
	}

	var sb strings.Builder
	collectText(doc, cfg, &sb)

	return truncate(collapseBlankLines(sb.String()), cfg.MaxOutputSize)
}

func collectText(n *html.Node, cfg *Config, sb *strings.Builder) {
	switch n.Type {
	case html.CommentNode:
		return
	case html.ElementNode:
		if isOneOf(n.Data, cfg.TagsToSkip...) {
			return
		}
		if blockTags[n.Data] {
			sb.WriteString("\n")
		}
	case html.TextNode:
		text := strings.Join(strings.Fields(n.Data), " ")
		if text != "" {
			sb.WriteString(text)
			sb.WriteString(" ")
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, cfg, sb)
	}

	if n.Type == html.ElementNode && blockTags[n.Data] {
		sb.WriteString("\n")
	}
}

func collapseBlankLines(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}

func truncate(s string, maxSize int) string {
	if maxSize > 0 && len(s) > maxSize {
		return s[:maxSize] + "\n... (truncated)"
	}
	return s
}

func isOneOf(s string, candidates ...string) bool {
	for _, c := range candidates {
		if s == c {
			return true
		}
	}
	return false
}
