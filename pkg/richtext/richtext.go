// Package richtext renders HTML-capable markup down to plain text.
//
// The note engine stores rich content verbatim and derives display
// metadata (titles) and search text from the plain-text projection, so
// the projection has to be stable: block boundaries become newlines,
// script/style payloads are dropped, entities are decoded, and input
// without any markup passes through unchanged.
package richtext

import (
	"strings"

	"golang.org/x/net/html"
)

// blockTags force a line break in the plain-text rendering. This mirrors
// how rich-text widgets lay out block-level elements when converting to
// plain text.
var blockTags = map[string]bool{
	"p": true, "div": true, "br": true, "li": true, "ul": true,
	"ol": true, "tr": true, "table": true, "blockquote": true,
	"pre": true, "hr": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
}

// ToPlain converts markup to its plain-text rendering. Content with no
// tags or entities is returned as-is.
func ToPlain(markup string) string {
	if !strings.ContainsAny(markup, "<&") {
		return markup
	}

	z := html.NewTokenizer(strings.NewReader(markup))
	var b strings.Builder
	skip := 0

	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			// The tokenizer never fails on a string reader; ErrorToken
			// here means EOF.
			return b.String()

		case html.TextToken:
			if skip == 0 {
				b.Write(z.Text())
			}

		case html.StartTagToken, html.SelfClosingTagToken, html.EndTagToken:
			name, _ := z.TagName()
			tag := string(name)
			switch tag {
			case "script", "style":
				// Raw-text payloads are invisible in the rendering.
				if tt == html.StartTagToken {
					skip++
				} else if tt == html.EndTagToken && skip > 0 {
					skip--
				}
			default:
				if blockTags[tag] {
					b.WriteByte('\n')
				}
			}
		}
	}
}

// FirstLine returns the first non-empty line of s, trimmed. It returns
// the empty string when s is blank.
func FirstLine(s string) string {
	for _, line := range strings.Split(s, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
