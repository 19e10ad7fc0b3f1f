package richtext

import (
	"reflect"
	"testing"
)

func span(text string, marks ...string) Span {
	return Span{Type: "span", Text: text, Marks: marks}
}

func TestSpans_BoldToggle(t *testing.T) {
	got := Spans("a **b** c")
	want := []Span{span("a "), span("b", MarkStrong), span(" c")}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Spans = %+v, want %+v", got, want)
	}
}

func TestSpans_ItalicToggle(t *testing.T) {
	got := Spans("a *b* c")
	want := []Span{span("a "), span("b", MarkEm), span(" c")}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Spans = %+v, want %+v", got, want)
	}
}

func TestSpans_BoldItalicCombined(t *testing.T) {
	got := Spans("**a *b* c**")
	want := []Span{
		span("a ", MarkStrong),
		span("b", MarkStrong, MarkEm),
		span(" c", MarkStrong),
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Spans = %+v, want %+v", got, want)
	}
}

func TestSpans_UnmatchedBold(t *testing.T) {
	got := Spans("**unterminated")
	want := []Span{span("unterminated", MarkStrong)}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Spans = %+v, want %+v", got, want)
	}
}

func TestSpans_UnmatchedItalic(t *testing.T) {
	got := Spans("before *after")
	want := []Span{span("before "), span("after", MarkEm)}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Spans = %+v, want %+v", got, want)
	}
}

func TestSpans_Empty(t *testing.T) {
	got := Spans("")
	want := []Span{span("")}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Spans = %+v, want %+v", got, want)
	}
	if got[0].Marks != nil {
		t.Errorf("empty span must carry no marks, got %v", got[0].Marks)
	}
}

func TestSpans_PlainText(t *testing.T) {
	got := Spans("no markers here")
	want := []Span{span("no markers here")}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Spans = %+v, want %+v", got, want)
	}
}

func TestSpans_TripleAsterisk(t *testing.T) {
	// The third asterisk in *** is adjacent to a pair, so it is neither a
	// bold pair nor a lone italic marker; it lands in the text verbatim.
	got := Spans("***x")
	want := []Span{span("*x", MarkStrong)}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Spans = %+v, want %+v", got, want)
	}
}

func TestSpans_TogglesArePositional(t *testing.T) {
	// Interleaved markers are applied in scan order without rebalancing.
	got := Spans("**a *b** c*")
	want := []Span{
		span("a ", MarkStrong),
		span("b", MarkStrong, MarkEm),
		span(" c", MarkEm),
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Spans = %+v, want %+v", got, want)
	}
}

func TestSpans_MultiByteTextPreserved(t *testing.T) {
	got := Spans("voilà **déjà** vu")
	want := []Span{span("voilà "), span("déjà", MarkStrong), span(" vu")}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Spans = %+v, want %+v", got, want)
	}
}
