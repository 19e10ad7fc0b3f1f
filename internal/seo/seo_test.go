package seo

import (
	"strings"
	"testing"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"10 Benefits of Remote Work", "10-benefits-of-remote-work"},
		{"  Spaces   everywhere  ", "spaces-everywhere"},
		{"What's Next? SEO & You!", "what-s-next-seo-you"},
		{"already-a-slug", "already-a-slug"},
		{"ALL CAPS TITLE", "all-caps-title"},
		{"", ""},
		{"---", ""},
	}
	for _, tt := range tests {
		if got := Slugify(tt.input); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestSlugify_CapsLength(t *testing.T) {
	long := strings.Repeat("word ", 50)
	got := Slugify(long)
	if len(got) > 96 {
		t.Errorf("expected slug capped at 96 bytes, got %d", len(got))
	}
	if strings.HasSuffix(got, "-") || strings.HasPrefix(got, "-") {
		t.Errorf("slug has dangling hyphen: %q", got)
	}
}

func TestExcerpt_StripsMarkup(t *testing.T) {
	got := Excerpt("## Heading\n\nThis is **bold** and *italic* copy.", 0)
	want := "Heading This is bold and italic copy."
	if got != want {
		t.Errorf("Excerpt = %q, want %q", got, want)
	}
}

func TestExcerpt_CutsOnWordBoundary(t *testing.T) {
	got := Excerpt("one two three four five", 13)
	if got != "one two three" {
		t.Errorf("Excerpt = %q, want %q", got, "one two three")
	}

	got = Excerpt("one two three four five", 12)
	if got != "one two" {
		t.Errorf("Excerpt = %q, want %q", got, "one two")
	}
}

func TestExcerpt_Empty(t *testing.T) {
	if got := Excerpt("", 160); got != "" {
		t.Errorf("expected empty excerpt, got %q", got)
	}
}

func TestExcerpt_LongFirstWord(t *testing.T) {
	long := strings.Repeat("a", 40)
	if got := Excerpt(long, 10); got != long {
		t.Errorf("expected the lone word back, got %q", got)
	}
}

func TestReadingTime(t *testing.T) {
	tests := []struct {
		words int
		want  int
	}{
		{0, 0},
		{1, 1},
		{199, 1},
		{200, 1},
		{201, 2},
		{1000, 5},
	}
	for _, tt := range tests {
		text := strings.TrimSpace(strings.Repeat("word ", tt.words))
		if got := ReadingTime(text); got != tt.want {
			t.Errorf("ReadingTime(%d words) = %d, want %d", tt.words, got, tt.want)
		}
	}
}
