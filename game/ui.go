package game

import (
	"neuralfolio/contact"
	"neuralfolio/page"
)

// rect is an axis-aligned rectangle in logical units
type rect struct {
	X, Y, W, H float64
}

func (r rect) contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

const (
	navHeight    = 56
	maxContent   = 760
	sidePadding  = 40
	labelHeight  = 16
	inputHeight  = 28
	areaHeight   = 84
	fieldGap     = 10
	buttonWidth  = 120
	buttonHeight = 32
	statusHeight = 24
	toggleWidth  = 70
	wheelStep    = 40
)

// contactSection holds the contact form
const contactSection = "contact"

var baseMetrics = page.Metrics{
	Header:      navHeight + 40,
	TitleHeight: 36,
	LineHeight:  18,
	CardPadding: 12,
	CardGap:     12,
	SectionGap:  48,
}

// contentColumn returns the x offset and width of the text column
func contentColumn(width float64) (float64, float64) {
	w := min(float64(maxContent), width-2*sidePadding)
	w = max(w, 10*glyphWidth)
	return (width - w) / 2, w
}

// wrapColumns is how many characters fit in a card line
func wrapColumns(width float64) int {
	_, w := contentColumn(width)
	return max(int((w-2*baseMetrics.CardPadding)/glyphWidth), 10)
}

func fieldBoxHeight(f contact.Field) float64 {
	if f.Multiline {
		return areaHeight
	}
	return inputHeight
}

// formHeight is the space the contact form takes below its section text
func formHeight(form *contact.Form) float64 {
	h := float64(fieldGap)
	for i := 0; i < form.Len(); i++ {
		h += labelHeight + fieldBoxHeight(form.Field(i)) + fieldGap
	}
	return h + buttonHeight + fieldGap + statusHeight
}

// formWidgets are the form's hit areas in page coordinates
type formWidgets struct {
	labels []rect
	fields []rect
	submit rect
	status rect
}

func layoutForm(form *contact.Form, x, top, width float64) formWidgets {
	var fw formWidgets
	y := top + fieldGap
	for i := 0; i < form.Len(); i++ {
		h := fieldBoxHeight(form.Field(i))
		fw.labels = append(fw.labels, rect{X: x, Y: y, W: width, H: labelHeight})
		fw.fields = append(fw.fields, rect{X: x, Y: y + labelHeight, W: width, H: h})
		y += labelHeight + h + fieldGap
	}
	fw.submit = rect{X: x, Y: y, W: buttonWidth, H: buttonHeight}
	fw.status = rect{X: x, Y: y + buttonHeight + fieldGap, W: width, H: statusHeight}
	return fw
}

// formTop returns where the form starts: below the contact section's own
// text and cards
func formTop(doc *page.Document, l page.Layout, m page.Metrics) (float64, bool) {
	s, ok := doc.Section(contactSection)
	if !ok {
		return 0, false
	}
	for _, sb := range l.Sections {
		if sb.ID != contactSection {
			continue
		}
		if n := len(sb.Cards); n > 0 {
			return sb.Cards[n-1].Bottom(), true
		}
		return sb.Top + m.TitleHeight + float64(len(s.Lines))*m.LineHeight, true
	}
	return 0, false
}

// navWidgets are the fixed header's hit areas in screen coordinates
type navWidgets struct {
	links  []rect
	toggle rect
}

func layoutNav(title string, links []page.Link, width float64) navWidgets {
	x, _ := contentColumn(width)
	x += float64(len(title)*glyphWidth) + 32

	var nw navWidgets
	for _, l := range links {
		w := float64(len(l.Label)*glyphWidth) + 20
		nw.links = append(nw.links, rect{X: x, Y: 0, W: w, H: navHeight})
		x += w
	}
	nw.toggle = rect{X: width - sidePadding - toggleWidth, Y: 14, W: toggleWidth, H: 28}
	return nw
}
