package game

import (
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"neuralfolio/lockdown"
)

// InputState is everything the page reacts to in one tick
type InputState struct {
	// Cursor position in logical units
	X, Y float64

	// Inside is false when the cursor left the window or it lost focus
	Inside bool

	// Pressed is set on the tick the primary button goes down
	Pressed bool

	// WheelY is the vertical wheel delta (positive scrolls up)
	WheelY float64

	// Chars are the characters typed this tick
	Chars []rune

	// Keys went down this tick (or auto-repeated)
	Keys []ebiten.Key

	Ctrl  bool
	Shift bool
}

// Has reports whether key went down this tick
func (s InputState) Has(key ebiten.Key) bool {
	for _, k := range s.Keys {
		if k == key {
			return true
		}
	}
	return false
}

// InputSource produces the input for a tick. width and height are the
// logical viewport size; scale converts screen pixels to logical units.
type InputSource interface {
	Poll(width, height, scale float64) InputState
}

// ebitenInput reads the keyboard and mouse through ebiten
type ebitenInput struct {
	keys  []ebiten.Key
	chars []rune
}

func newEbitenInput() *ebitenInput {
	return &ebitenInput{
		keys:  make([]ebiten.Key, 0, 8),
		chars: make([]rune, 0, 8),
	}
}

// Keys that repeat while held
var repeatKeys = []ebiten.Key{
	ebiten.KeyBackspace,
	ebiten.KeyArrowUp,
	ebiten.KeyArrowDown,
	ebiten.KeyPageUp,
	ebiten.KeyPageDown,
}

const (
	repeatDelay    = 30 // ticks
	repeatInterval = 3
)

// Poll reads this tick's input
func (p *ebitenInput) Poll(width, height, scale float64) InputState {
	if scale <= 0 {
		scale = 1
	}
	cx, cy := ebiten.CursorPosition()
	x := float64(cx) / scale
	y := float64(cy) / scale
	_, wheelY := ebiten.Wheel()

	p.keys = inpututil.AppendJustPressedKeys(p.keys[:0])
	for _, k := range repeatKeys {
		d := inpututil.KeyPressDuration(k)
		if d > repeatDelay && d%repeatInterval == 0 {
			p.keys = append(p.keys, k)
		}
	}
	p.chars = ebiten.AppendInputChars(p.chars[:0])

	return InputState{
		X:       x,
		Y:       y,
		Inside:  ebiten.IsFocused() && x >= 0 && y >= 0 && x < width && y < height,
		Pressed: inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		WheelY:  wheelY,
		Chars:   p.chars,
		Keys:    p.keys,
		Ctrl:    ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyMeta),
		Shift:   ebiten.IsKeyPressed(ebiten.KeyShift),
	}
}

// Names the lockdown rules understand
var chordKeyNames = map[ebiten.Key]string{
	ebiten.KeyU:   "u",
	ebiten.KeyS:   "s",
	ebiten.KeyP:   "p",
	ebiten.KeyI:   "i",
	ebiten.KeyJ:   "j",
	ebiten.KeyC:   "c",
	ebiten.KeyF12: "f12",
}

// filterBlocked drops blocked chords from the key list. When any chord was
// blocked the typed characters are dropped as well.
func filterBlocked(in InputState) InputState {
	kept := in.Keys[:0:0]
	blocked := false
	for _, k := range in.Keys {
		name, ok := chordKeyNames[k]
		if !ok {
			name = k.String()
		}
		if lockdown.Blocked(lockdown.Chord{Key: name, Ctrl: in.Ctrl, Shift: in.Shift}) {
			blocked = true
			continue
		}
		kept = append(kept, k)
	}
	in.Keys = kept
	if blocked || in.Ctrl {
		in.Chars = nil
	}
	return in
}

// DoubleClickDetector recognizes two presses close in time and space
type DoubleClickDetector struct {
	Window time.Duration
	Slop   float64

	lastAt   time.Time
	lastX    float64
	lastY    float64
	hasFirst bool
}

// NewDoubleClickDetector uses the common desktop defaults
func NewDoubleClickDetector() *DoubleClickDetector {
	return &DoubleClickDetector{
		Window: 500 * time.Millisecond,
		Slop:   4,
	}
}

// Press records a press and reports whether it completes a double click.
// A completed double click does not count as the first press of another.
func (d *DoubleClickDetector) Press(x, y float64, now time.Time) bool {
	if d.hasFirst && now.Sub(d.lastAt) <= d.Window &&
		math.Abs(x-d.lastX) <= d.Slop && math.Abs(y-d.lastY) <= d.Slop {
		d.hasFirst = false
		return true
	}
	d.hasFirst = true
	d.lastAt = now
	d.lastX = x
	d.lastY = y
	return false
}
