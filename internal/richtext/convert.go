package richtext

import (
	"regexp"
	"strings"
)

var (
	// The generator sometimes writes a heading as bold text, e.g.
	// "**H2:Benefits**" instead of "## Benefits".
	pseudoHeadingRe = regexp.MustCompile(`(?i)\*\*h([1-6]):(.+?)\*\*`)
	blankRunRe      = regexp.MustCompile(`\n{3,}`)

	h2Re = regexp.MustCompile(`(?i)^h2:`)
	h3Re = regexp.MustCompile(`(?i)^h3:`)
	h4Re = regexp.MustCompile(`(?i)^h4:`)

	bulletRe = regexp.MustCompile(`^\s*[-*] `)
	numberRe = regexp.MustCompile(`^\s*\d+\. `)
)

// Preprocess normalizes irregular generator output before segmentation:
// bold-wrapped pseudo-headings become bare "H<n>:" lines on their own
// paragraph, and runs of 3+ newlines collapse to the paragraph delimiter.
// It is total; empty input yields empty output.
func Preprocess(markdown string) string {
	markdown = pseudoHeadingRe.ReplaceAllString(markdown, "\n\nH${1}:${2}\n\n")
	markdown = blankRunRe.ReplaceAllString(markdown, "\n\n")
	return markdown
}

// Convert turns a Markdown string into an ordered block sequence. It never
// fails: unparseable paragraphs fall through to normal paragraphs, and empty
// or whitespace-only input yields zero blocks.
func Convert(markdown string) []Block {
	var blocks []Block
	for _, unit := range strings.Split(Preprocess(markdown), "\n\n") {
		unit = strings.TrimSpace(unit)
		if unit == "" {
			continue
		}
		blocks = append(blocks, classify(unit)...)
	}
	return blocks
}

// blockRule pairs a paragraph predicate with its block constructor. Rules
// are tried in order and the first match wins, so ambiguous paragraphs are
// resolved by position in the list, not by scoring.
type blockRule struct {
	match func(string) bool
	build func(string) []Block
}

var blockRules = []blockRule{
	{
		match: func(u string) bool { return strings.HasPrefix(u, "# ") },
		build: func(u string) []Block {
			return []Block{newBlock(StyleH1, strings.TrimPrefix(u, "# "))}
		},
	},
	{
		match: func(u string) bool { return strings.HasPrefix(u, "## ") || h2Re.MatchString(u) },
		build: func(u string) []Block {
			return []Block{newBlock(StyleH2, stripHeading(u, "## ", h2Re))}
		},
	},
	{
		match: func(u string) bool { return strings.HasPrefix(u, "### ") || h3Re.MatchString(u) },
		build: func(u string) []Block {
			return []Block{newBlock(StyleH3, stripHeading(u, "### ", h3Re))}
		},
	},
	{
		match: func(u string) bool { return strings.HasPrefix(u, "#### ") || h4Re.MatchString(u) },
		build: func(u string) []Block {
			return []Block{newBlock(StyleH4, stripHeading(u, "#### ", h4Re))}
		},
	},
	{
		match: func(u string) bool {
			return strings.HasPrefix(u, "> ") || strings.HasPrefix(u, "&gt; ")
		},
		build: func(u string) []Block {
			u = strings.TrimPrefix(u, "> ")
			u = strings.TrimPrefix(u, "&gt; ")
			return []Block{newBlock(StyleBlockquote, u)}
		},
	},
	{
		match: func(u string) bool { return bulletRe.MatchString(firstLine(u)) },
		build: func(u string) []Block { return listBlocks(u, bulletRe, ListBullet) },
	},
	{
		match: func(u string) bool { return numberRe.MatchString(firstLine(u)) },
		build: func(u string) []Block { return listBlocks(u, numberRe, ListNumber) },
	},
}

func classify(unit string) []Block {
	for _, r := range blockRules {
		if r.match(unit) {
			return r.build(unit)
		}
	}
	return []Block{newBlock(StyleNormal, unit)}
}

func stripHeading(unit, hashPrefix string, pseudo *regexp.Regexp) string {
	if strings.HasPrefix(unit, hashPrefix) {
		return strings.TrimPrefix(unit, hashPrefix)
	}
	return pseudo.ReplaceAllString(unit, "")
}

// listBlocks expands one list paragraph into one block per marker line.
// Lines without the marker are dropped; mixed list/prose paragraphs lose
// the prose lines.
func listBlocks(unit string, marker *regexp.Regexp, kind string) []Block {
	var blocks []Block
	for _, line := range strings.Split(unit, "\n") {
		if !marker.MatchString(line) {
			continue
		}
		blocks = append(blocks, newListBlock(kind, marker.ReplaceAllString(line, "")))
	}
	return blocks
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
