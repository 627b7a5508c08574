package page

import "strings"

// Wrap returns a copy of the document with every line broken into lines of
// at most cols characters. Words longer than cols are split.
func (d *Document) Wrap(cols int) *Document {
	out := &Document{Title: d.Title, Sections: make([]Section, len(d.Sections))}
	for i, s := range d.Sections {
		ws := Section{ID: s.ID, Title: s.Title, Lines: wrapLines(s.Lines, cols)}
		for _, c := range s.Cards {
			ws.Cards = append(ws.Cards, Card{ID: c.ID, Title: c.Title, Lines: wrapLines(c.Lines, cols)})
		}
		out.Sections[i] = ws
	}
	return out
}

func wrapLines(lines []string, cols int) []string {
	var out []string
	for _, l := range lines {
		out = append(out, WrapLine(l, cols)...)
	}
	return out
}

// WrapLine breaks s at spaces so no line exceeds cols characters.
func WrapLine(s string, cols int) []string {
	if cols <= 0 {
		return []string{s}
	}

	var (
		lines []string
		cur   []rune
	)
	for _, word := range strings.Fields(s) {
		w := []rune(word)
		for len(w) > cols {
			if len(cur) > 0 {
				lines = append(lines, string(cur))
				cur = cur[:0]
			}
			lines = append(lines, string(w[:cols]))
			w = w[cols:]
		}
		switch {
		case len(cur) == 0:
			cur = append(cur, w...)
		case len(cur)+1+len(w) <= cols:
			cur = append(cur, ' ')
			cur = append(cur, w...)
		default:
			lines = append(lines, string(cur))
			cur = append(cur[:0], w...)
		}
	}
	if len(cur) > 0 || len(lines) == 0 {
		lines = append(lines, string(cur))
	}
	return lines
}
