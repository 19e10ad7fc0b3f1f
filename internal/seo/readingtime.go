package seo

import "strings"

const wordsPerMinute = 200

// ReadingTime estimates whole minutes to read the text at an average pace.
// Exact tokenization is not required; a word count is close enough for a
// blog-post byline.
func ReadingTime(text string) int {
	words := len(strings.Fields(text))
	if words == 0 {
		return 0
	}
	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	return minutes
}
