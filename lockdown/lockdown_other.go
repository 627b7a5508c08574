//go:build !js

package lockdown

import "neuralfolio/logging"

// Guard is a no-op outside the browser. Native windows have no context menu
// or developer tools; chords are filtered by the game input loop instead.
type Guard struct{}

// Install returns an inert guard.
func Install(log *logging.Logger) *Guard {
	log.Debug("input lockdown handled by the input loop")
	return &Guard{}
}

// Release does nothing.
func (g *Guard) Release() {}
