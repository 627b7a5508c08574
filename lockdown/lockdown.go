// Package lockdown suppresses the context menu and the keyboard shortcuts
// that open page source, save, print or developer tools.
package lockdown

import "strings"

// Chord is a key press with its modifier state. Key is the key name as
// reported by the platform ("u", "U", "F12").
type Chord struct {
	Key   string
	Ctrl  bool
	Shift bool
}

var (
	ctrlKeys      = map[string]bool{"u": true, "s": true, "p": true}
	ctrlShiftKeys = map[string]bool{"i": true, "j": true, "c": true}
)

// Blocked reports whether the chord must be swallowed.
func Blocked(c Chord) bool {
	key := strings.ToLower(c.Key)
	switch {
	case key == "f12":
		return true
	case c.Ctrl && ctrlKeys[key]:
		return true
	case c.Ctrl && c.Shift && ctrlShiftKeys[key]:
		return true
	}
	return false
}
