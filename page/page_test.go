package page

import (
	"reflect"
	"testing"
)

func TestParseMarkdown(t *testing.T) {
	src := []byte(`# Someone

## Intro {#intro}

Hello
there.

## Work {#work}

### Alpha {#alpha}

First project.

- Go
- SQL

### Beta

Second.
`)

	doc, err := ParseMarkdown(src)
	if err != nil {
		t.Fatalf("ParseMarkdown: %v", err)
	}

	if doc.Title != "Someone" {
		t.Errorf("Title = %q, want %q", doc.Title, "Someone")
	}
	if len(doc.Sections) != 2 {
		t.Fatalf("got %d sections, want 2", len(doc.Sections))
	}

	intro := doc.Sections[0]
	if intro.ID != "intro" || intro.Title != "Intro" {
		t.Errorf("section 0 = %q/%q, want intro/Intro", intro.ID, intro.Title)
	}
	if want := []string{"Hello there."}; !reflect.DeepEqual(intro.Lines, want) {
		t.Errorf("intro lines = %q, want %q", intro.Lines, want)
	}

	work := doc.Sections[1]
	if len(work.Cards) != 2 {
		t.Fatalf("got %d cards, want 2", len(work.Cards))
	}
	alpha := work.Cards[0]
	if alpha.ID != "alpha" {
		t.Errorf("card id = %q, want alpha", alpha.ID)
	}
	if want := []string{"First project.", "- Go", "- SQL"}; !reflect.DeepEqual(alpha.Lines, want) {
		t.Errorf("alpha lines = %q, want %q", alpha.Lines, want)
	}
	if work.Cards[1].ID != "beta" {
		t.Errorf("auto heading id = %q, want beta", work.Cards[1].ID)
	}
}

func TestParseMarkdownErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"no sections", "# Title\n\nJust text.\n"},
		{"card before section", "### Orphan\n\ntext\n"},
	}
	for _, tt := range tests {
		if _, err := ParseMarkdown([]byte(tt.src)); err == nil {
			t.Errorf("%s: expected error", tt.name)
		}
	}
}

func TestDefaultDocument(t *testing.T) {
	doc, err := DefaultDocument()
	if err != nil {
		t.Fatalf("DefaultDocument: %v", err)
	}
	if _, ok := doc.Section("contact"); !ok {
		t.Error("default content has no contact section")
	}
	links := doc.NavLinks()
	if len(links) != len(doc.Sections) {
		t.Fatalf("got %d links for %d sections", len(links), len(doc.Sections))
	}
	for i, l := range links {
		if l.Target() != doc.Sections[i].ID {
			t.Errorf("link %d targets %q, want %q", i, l.Target(), doc.Sections[i].ID)
		}
	}
}

func testDocument() *Document {
	return &Document{Sections: []Section{
		{ID: "a", Title: "A", Lines: []string{"x"}},
		{ID: "b", Title: "B", Cards: []Card{{ID: "b1", Lines: []string{"y", "z"}}}},
		{ID: "c", Title: "C"},
	}}
}

var testMetrics = Metrics{
	Header:      100,
	TitleHeight: 40,
	LineHeight:  20,
	CardPadding: 10,
	CardGap:     10,
	SectionGap:  50,
}

func TestArrange(t *testing.T) {
	m := testMetrics
	m.Extra = map[string]float64{"c": 200}
	l := Arrange(testDocument(), m)

	want := []Box{
		{ID: "a", Top: 100, Height: 60},
		{ID: "b", Top: 210, Height: 130},
		{ID: "b1", Top: 260, Height: 80},
		{ID: "c", Top: 390, Height: 240},
	}
	if got := l.Boxes(); !reflect.DeepEqual(got, want) {
		t.Errorf("Boxes() = %+v\nwant %+v", got, want)
	}
	if l.Height != 680 {
		t.Errorf("Height = %.0f, want 680", l.Height)
	}
}

func TestArrangeMinHeight(t *testing.T) {
	m := testMetrics
	m.MinSectionHeight = 300
	l := Arrange(testDocument(), m)
	for _, s := range l.Sections {
		if s.Height < 300 {
			t.Errorf("section %s height %.0f below minimum", s.ID, s.Height)
		}
	}
}

func TestRevealTracker(t *testing.T) {
	items := []Box{
		{ID: "top", Top: 0, Height: 100},
		{ID: "edge", Top: 585, Height: 100},
		{ID: "below", Top: 1000, Height: 200},
		{ID: "huge", Top: 1300, Height: 10000},
	}
	r := NewRevealTracker(items, RevealThreshold)

	// Viewport [0, 600): "edge" shows 15 of 100 units.
	got := r.Observe(0, 600)
	if want := []string{"top", "edge"}; !reflect.DeepEqual(got, want) {
		t.Errorf("first Observe = %v, want %v", got, want)
	}

	// 14% of "below" is not enough.
	if got := r.Observe(428, 600); len(got) != 0 {
		t.Errorf("Observe at 14%% = %v, want none", got)
	}
	if got := r.Observe(430, 600); !reflect.DeepEqual(got, []string{"below"}) {
		t.Errorf("Observe at 15%% = %v, want [below]", got)
	}

	// An item taller than the viewport is revealed once it fills it.
	if got := r.Observe(1400, 600); !reflect.DeepEqual(got, []string{"huge"}) {
		t.Errorf("Observe huge = %v, want [huge]", got)
	}

	// Scrolling back does not hide anything or report again.
	if got := r.Observe(0, 600); len(got) != 0 {
		t.Errorf("repeat Observe = %v, want none", got)
	}
	for _, it := range items {
		if !r.Visible(it.ID) {
			t.Errorf("%s not visible", it.ID)
		}
	}
	if r.Pending() != 0 {
		t.Errorf("Pending() = %d, want 0", r.Pending())
	}
}

func TestNavHighlighter(t *testing.T) {
	l := Arrange(testDocument(), testMetrics)
	links := []Link{
		{Label: "A", Href: "#a"},
		{Label: "Missing", Href: "#nope"},
		{Label: "B", Href: "#b"},
		{Label: "C", Href: "#c"},
	}
	h := NewNavHighlighter(links, l)

	tests := []struct {
		scrollY float64
		want    int
	}{
		{0, 0},     // offset 120 is inside a [100,160)
		{39, 0},    // offset 159
		{40, -1},   // offset 160 falls in the gap before b
		{90, 2},    // offset 210 is b's top
		{219, 2},   // offset 339
		{220, -1},  // offset 340 is b's bottom
		{270, 3},   // offset 390 is c's top
		{5000, -1}, // past the end
		{-200, -1}, // before the first section
	}
	for _, tt := range tests {
		h.Update(tt.scrollY)
		if got := h.ActiveIndex(); got != tt.want {
			t.Errorf("scrollY %.0f: ActiveIndex() = %d, want %d", tt.scrollY, got, tt.want)
		}
		if h.Active(1) {
			t.Errorf("scrollY %.0f: link to missing section is active", tt.scrollY)
		}
	}

	if top, ok := h.Target(2); !ok || top != 210 {
		t.Errorf("Target(2) = %.0f, %v; want 210, true", top, ok)
	}
	if _, ok := h.Target(1); ok {
		t.Error("Target of missing section reported ok")
	}
}

func TestWrapLine(t *testing.T) {
	tests := []struct {
		in   string
		cols int
		want []string
	}{
		{"short", 10, []string{"short"}},
		{"one two three", 7, []string{"one two", "three"}},
		{"abcdefghij kl", 4, []string{"abcd", "efgh", "ij", "kl"}},
		{"", 5, []string{""}},
		{"no limit here", 0, []string{"no limit here"}},
	}
	for _, tt := range tests {
		if got := WrapLine(tt.in, tt.cols); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("WrapLine(%q, %d) = %q, want %q", tt.in, tt.cols, got, tt.want)
		}
	}
}

func TestDocumentWrap(t *testing.T) {
	doc := &Document{Sections: []Section{{
		ID:    "s",
		Lines: []string{"alpha beta gamma"},
		Cards: []Card{{ID: "c", Lines: []string{"delta epsilon"}}},
	}}}
	w := doc.Wrap(10)

	if want := []string{"alpha beta", "gamma"}; !reflect.DeepEqual(w.Sections[0].Lines, want) {
		t.Errorf("section lines = %q, want %q", w.Sections[0].Lines, want)
	}
	if want := []string{"delta", "epsilon"}; !reflect.DeepEqual(w.Sections[0].Cards[0].Lines, want) {
		t.Errorf("card lines = %q, want %q", w.Sections[0].Cards[0].Lines, want)
	}
	if len(doc.Sections[0].Lines) != 1 {
		t.Error("Wrap modified the original document")
	}
}
