// Package richtext converts loosely formatted Markdown into the portable-text
// block structure expected by the content store. It is a deliberately small
// rule-based converter, not a general Markdown implementation: it handles the
// subset the article generator actually emits (headings, blockquotes, flat
// lists, bold/italic emphasis) and degrades everything else to a normal
// paragraph rather than failing.
package richtext

// Block styles understood by the content store.
const (
	StyleNormal     = "normal"
	StyleH1         = "h1"
	StyleH2         = "h2"
	StyleH3         = "h3"
	StyleH4         = "h4"
	StyleBlockquote = "blockquote"
)

// List item kinds. List blocks keep style "normal" and carry the list kind
// in a separate field, matching the store schema.
const (
	ListBullet = "bullet"
	ListNumber = "number"
)

// Span marks.
const (
	MarkStrong = "strong"
	MarkEm     = "em"
)

// Span is one run of text sharing the same emphasis styling.
type Span struct {
	Type  string   `json:"_type"`
	Text  string   `json:"text"`
	Marks []string `json:"marks,omitempty"`
}

// Block is one structural unit of rich-text content. The store rejects
// blocks without children, so every Block carries at least one Span.
type Block struct {
	Type     string `json:"_type"`
	Key      string `json:"_key"`
	Style    string `json:"style"`
	ListItem string `json:"listItem,omitempty"`
	Level    int    `json:"level,omitempty"`
	Children []Span `json:"children"`
}

func newBlock(style, text string) Block {
	return Block{
		Type:     "block",
		Key:      Key(),
		Style:    style,
		Children: Spans(text),
	}
}

func newListBlock(kind, text string) Block {
	b := newBlock(StyleNormal, text)
	b.ListItem = kind
	b.Level = 1
	return b
}

// Text concatenates the block's span texts in order.
func (b Block) Text() string {
	var out string
	for _, s := range b.Children {
		out += s.Text
	}
	return out
}
