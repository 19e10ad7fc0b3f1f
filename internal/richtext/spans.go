package richtext

import "strings"

// Spans splits text carrying **bold** and *italic* markers into styled runs.
// The scanner keeps two independent toggles and flushes the pending buffer at
// every marker boundary, so unbalanced markers simply leave their style
// active until the end of the text; nothing is repaired or rejected. Marker
// bytes are never copied into span text, everything else is preserved as-is.
func Spans(text string) []Span {
	var (
		spans  []Span
		buf    strings.Builder
		bold   bool
		italic bool
	)

	flush := func() {
		if buf.Len() == 0 {
			return
		}
		spans = append(spans, newSpan(buf.String(), bold, italic))
		buf.Reset()
	}

	for i := 0; i < len(text); {
		if text[i] == '*' && i+1 < len(text) && text[i+1] == '*' {
			flush()
			bold = !bold
			i += 2
			continue
		}
		// A lone asterisk: not part of a ** pair on either side. String
		// edges count as non-asterisk neighbors.
		if text[i] == '*' && (i == 0 || text[i-1] != '*') && (i+1 == len(text) || text[i+1] != '*') {
			flush()
			italic = !italic
			i++
			continue
		}
		buf.WriteByte(text[i])
		i++
	}
	flush()

	// The store rejects blocks without children.
	if len(spans) == 0 {
		spans = append(spans, newSpan("", false, false))
	}
	return spans
}

func newSpan(text string, bold, italic bool) Span {
	s := Span{Type: "span", Text: text}
	if bold {
		s.Marks = append(s.Marks, MarkStrong)
	}
	if italic {
		s.Marks = append(s.Marks, MarkEm)
	}
	return s
}
