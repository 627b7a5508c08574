package page

// Box is the vertical extent of a block in page coordinates.
type Box struct {
	ID     string
	Top    float64
	Height float64
}

// Bottom returns the first offset below the box.
func (b Box) Bottom() float64 {
	return b.Top + b.Height
}

// Metrics are the vertical sizes used to lay out a document.
type Metrics struct {
	Header      float64 // space above the first section
	TitleHeight float64
	LineHeight  float64
	CardPadding float64
	CardGap     float64
	SectionGap  float64

	// MinSectionHeight keeps short sections tall enough to be nav targets.
	MinSectionHeight float64

	// Extra is reserved space appended to a section, keyed by id.
	Extra map[string]float64
}

// SectionBox is a laid-out section with its cards.
type SectionBox struct {
	Box
	Cards []Box
}

// Layout is the vertical arrangement of a document.
type Layout struct {
	Sections []SectionBox
	Height   float64
}

// Arrange stacks the document's sections and cards top to bottom.
func Arrange(doc *Document, m Metrics) Layout {
	var l Layout
	y := m.Header

	for _, s := range doc.Sections {
		sb := SectionBox{Box: Box{ID: s.ID, Top: y}}
		cy := y + m.TitleHeight + float64(len(s.Lines))*m.LineHeight

		for _, c := range s.Cards {
			h := 2*m.CardPadding + m.LineHeight + float64(len(c.Lines))*m.LineHeight
			sb.Cards = append(sb.Cards, Box{ID: c.ID, Top: cy + m.CardGap, Height: h})
			cy += m.CardGap + h
		}
		cy += m.Extra[s.ID]

		sb.Height = max(cy-y, m.MinSectionHeight)
		l.Sections = append(l.Sections, sb)
		y += sb.Height + m.SectionGap
	}

	l.Height = y
	return l
}

// Boxes returns every section and card box, sections first in each group.
func (l Layout) Boxes() []Box {
	var out []Box
	for _, s := range l.Sections {
		out = append(out, s.Box)
		out = append(out, s.Cards...)
	}
	return out
}

// Section returns the box of the section with the given id.
func (l Layout) Section(id string) (Box, bool) {
	for _, s := range l.Sections {
		if s.ID == id {
			return s.Box, true
		}
	}
	return Box{}, false
}
