// Package theme keeps the light/dark page theme and persists the choice.
package theme

import (
	"errors"
	"image/color"

	"neuralfolio/field"
	"neuralfolio/logging"
	"neuralfolio/prefs"
)

// Theme is a page color scheme.
type Theme string

const (
	Dark  Theme = "dark"
	Light Theme = "light"
)

// StorageKey is the preference key holding the theme.
const StorageKey = "theme"

// Style is the set of colors a theme applies to the page.
type Style struct {
	Background color.NRGBA
	Text       color.NRGBA
	Muted      color.NRGBA
	Accent     color.NRGBA
	Panel      color.NRGBA
	Canvas     field.Palette
}

var styles = map[Theme]Style{
	Dark: {
		Background: color.NRGBA{R: 5, G: 8, B: 22, A: 255},
		Text:       color.NRGBA{R: 226, G: 232, B: 240, A: 255},
		Muted:      color.NRGBA{R: 148, G: 163, B: 184, A: 255},
		Accent:     color.NRGBA{R: 56, G: 189, B: 248, A: 255},
		Panel:      color.NRGBA{R: 15, G: 23, B: 42, A: 200},
		Canvas: field.Palette{
			Dot:  color.NRGBA{R: 125, G: 211, B: 252, A: 217},
			Line: color.NRGBA{R: 125, G: 211, B: 252, A: 64},
		},
	},
	Light: {
		Background: color.NRGBA{R: 241, G: 245, B: 249, A: 255},
		Text:       color.NRGBA{R: 15, G: 23, B: 42, A: 255},
		Muted:      color.NRGBA{R: 71, G: 85, B: 105, A: 255},
		Accent:     color.NRGBA{R: 2, G: 132, B: 199, A: 255},
		Panel:      color.NRGBA{R: 255, G: 255, B: 255, A: 210},
		Canvas: field.Palette{
			Dot:  color.NRGBA{R: 30, G: 64, B: 175, A: 179},
			Line: color.NRGBA{R: 30, G: 64, B: 175, A: 51},
		},
	},
}

// Manager applies and persists the theme. The store is optional; without
// one the theme only lasts for the session.
type Manager struct {
	store   prefs.Store
	log     *logging.Logger
	current Theme
}

// NewManager creates a manager. Call Init before use.
func NewManager(store prefs.Store, log *logging.Logger) *Manager {
	if log == nil {
		log = logging.Discard()
	}
	return &Manager{store: store, log: log, current: Dark}
}

// Init applies the saved theme, or Dark when nothing valid is saved.
func (m *Manager) Init() Theme {
	if m.store != nil {
		saved, err := m.store.Get(StorageKey)
		switch {
		case err == nil && Valid(Theme(saved)):
			m.apply(Theme(saved))
			return m.current
		case err == nil:
			m.log.Warn("ignoring unknown saved theme %q", saved)
		case !errors.Is(err, prefs.ErrNotFound):
			m.log.Warn("reading saved theme: %v", err)
		}
	}
	m.apply(Dark)
	return m.current
}

// Toggle switches between dark and light and persists the result.
func (m *Manager) Toggle() Theme {
	if m.current == Dark {
		m.apply(Light)
	} else {
		m.apply(Dark)
	}
	return m.current
}

// Current returns the applied theme.
func (m *Manager) Current() Theme {
	return m.current
}

// Style returns the colors of the applied theme.
func (m *Manager) Style() Style {
	return styles[m.current]
}

// Palette implements field.PaletteSource.
func (m *Manager) Palette() field.Palette {
	return styles[m.current].Canvas
}

func (m *Manager) apply(t Theme) {
	m.current = t
	if m.store == nil {
		return
	}
	if err := m.store.Set(StorageKey, string(t)); err != nil {
		m.log.Warn("saving theme: %v", err)
	}
}

// Valid reports whether t is a known theme.
func Valid(t Theme) bool {
	_, ok := styles[t]
	return ok
}
