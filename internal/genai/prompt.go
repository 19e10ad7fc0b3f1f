package genai

import (
	"fmt"
	"strings"
)

const articlePrompt = `Write an SEO-optimized blog article for the title below. Return ONLY the article body as Markdown, no preamble and no closing remarks.

Formatting rules:
- Do NOT repeat the title; start directly with the introduction paragraph
- Use "## " for section headings and "### " for subsections
- Use **bold** for key phrases and *italic* sparingly for emphasis
- Use "- " bullet lists or "1. " numbered lists where they improve scannability
- Use "> " for at most one pull quote
- No tables, no inline code, no links, no images
- Separate every paragraph with a single blank line

Content rules:
- Around 1000 words
- Open with a hook that states the reader benefit in the first two sentences
- Work the title's key phrase naturally into the first paragraph and at least two headings
- Close with a short actionable takeaway section`

// BuildArticlePrompt assembles the copy-generation prompt for one title.
func BuildArticlePrompt(title string) string {
	var sb strings.Builder
	sb.WriteString(articlePrompt)
	sb.WriteString("\n\n---\n")
	sb.WriteString(fmt.Sprintf("Title: %q\n", title))
	return sb.String()
}

// BuildImagePrompt derives the hero-image prompt from the post title.
func BuildImagePrompt(title string) string {
	return fmt.Sprintf(
		"Wide editorial hero illustration for a blog article titled %q. "+
			"Clean modern flat style, muted palette, no text or lettering in the image.",
		title,
	)
}
