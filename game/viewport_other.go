//go:build !js

package game

// mediaCompact has no media queries to consult outside the browser.
func mediaCompact(int) (bool, bool) {
	return false, false
}
