package seo

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"golang.org/x/net/html"
)

// Excerpt produces a plain-text meta description from Markdown: the body is
// rendered to HTML, stripped of tags, whitespace-normalized, and cut on a
// word boundary at most maxLen bytes in. maxLen <= 0 means no limit.
func Excerpt(markdown string, maxLen int) string {
	var rendered bytes.Buffer
	if err := goldmark.Convert([]byte(markdown), &rendered); err != nil {
		// goldmark only errors on writer failure; treat the source as plain text.
		rendered.Reset()
		rendered.WriteString(markdown)
	}

	text := markdown
	if doc, err := html.Parse(&rendered); err == nil {
		text = textContent(doc)
	}
	words := strings.Fields(text)

	if maxLen <= 0 {
		return strings.Join(words, " ")
	}

	var b strings.Builder
	for _, w := range words {
		next := len(w)
		if b.Len() > 0 {
			next += b.Len() + 1
		}
		if next > maxLen {
			break
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(w)
	}
	if b.Len() == 0 && len(words) > 0 {
		// First word alone exceeds the limit; return it rather than nothing.
		return words[0]
	}
	return b.String()
}

// textContent collects the text nodes of an HTML tree, skipping non-content
// elements.
func textContent(n *html.Node) string {
	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style":
				return
			}
		}
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
			buf.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return buf.String()
}
