// Package quality classifies raw HTML content into word counts and
// emptiness/thinness verdicts. All functions are pure.
package quality

import (
	"strings"

	"golang.org/x/net/html"
)

// StripMarkup returns the visible text of s with all HTML markup removed.
// Script and style contents are dropped. Plain text passes through unchanged.
func StripMarkup(s string) string {
	if !strings.ContainsRune(s, '<') {
		return strings.TrimSpace(s)
	}
	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		// html.Parse is lenient; treat a hard failure as plain text.
		return strings.TrimSpace(s)
	}

	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if t := strings.TrimSpace(n.Data); t != "" {
				if b.Len() > 0 {
					b.WriteByte(' ')
				}
				b.WriteString(t)
			}
		}
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return b.String()
}

// WordCount counts non-empty whitespace-delimited tokens after markup removal.
func WordCount(content string) int {
	return len(strings.Fields(StripMarkup(content)))
}

// IsEmpty reports whether the content strips down to nothing.
func IsEmpty(content string) bool {
	return StripMarkup(content) == ""
}

// IsThin reports whether the content has fewer words than threshold.
func IsThin(content string, threshold int) bool {
	return WordCount(content) < threshold
}
