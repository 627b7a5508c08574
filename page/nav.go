package page

// NavOffset is added to the scroll position before matching sections, so a
// section becomes active a little before its top reaches the viewport edge.
const NavOffset = 120.0

// NavHighlighter tracks which nav link matches the scroll position.
type NavHighlighter struct {
	links   []Link
	targets []*Box // nil when the link's section does not exist
	active  []bool
}

// NewNavHighlighter resolves each link against the layout.
func NewNavHighlighter(links []Link, layout Layout) *NavHighlighter {
	h := &NavHighlighter{
		links:   links,
		targets: make([]*Box, len(links)),
		active:  make([]bool, len(links)),
	}
	for i, l := range links {
		if b, ok := layout.Section(l.Target()); ok {
			h.targets[i] = &b
		}
	}
	return h
}

// Update recomputes the active flags for scroll position scrollY. Links
// without a section keep their previous state.
func (h *NavHighlighter) Update(scrollY float64) {
	offset := scrollY + NavOffset
	for i, b := range h.targets {
		if b == nil {
			continue
		}
		h.active[i] = offset >= b.Top && offset < b.Bottom()
	}
}

// Links returns the links in nav order.
func (h *NavHighlighter) Links() []Link {
	return h.links
}

// Active reports whether link i is highlighted.
func (h *NavHighlighter) Active(i int) bool {
	return i >= 0 && i < len(h.active) && h.active[i]
}

// ActiveIndex returns the first highlighted link, or -1.
func (h *NavHighlighter) ActiveIndex() int {
	for i, a := range h.active {
		if a {
			return i
		}
	}
	return -1
}

// Target returns the scroll position that brings link i's section to the
// top of the viewport.
func (h *NavHighlighter) Target(i int) (float64, bool) {
	if i < 0 || i >= len(h.targets) || h.targets[i] == nil {
		return 0, false
	}
	return h.targets[i].Top, true
}
