package game

// IsCompact reports whether a viewport of the given logical width gets the
// compact layout. Compact viewports run without the background animation.
func IsCompact(width float64, breakpoint int) bool {
	if compact, ok := mediaCompact(breakpoint); ok {
		return compact
	}
	return width <= float64(breakpoint)
}
