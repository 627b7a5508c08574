package field

import "image/color"

// Canvas is the drawing surface the field renders into.
// Coordinates are logical units; implementations apply device scaling.
type Canvas interface {
	// Clear erases the whole surface
	Clear()

	// FillCircle draws a filled circle centered at (x, y)
	FillCircle(x, y, radius float64, clr color.Color)

	// StrokeLine draws a line segment of the given stroke width
	StrokeLine(x0, y0, x1, y1, width float64, clr color.Color)
}

// Palette holds the theme-dependent colors for particles and their links.
type Palette struct {
	Dot  color.NRGBA
	Line color.NRGBA
}

// DefaultPalette is used when the field has no palette source.
var DefaultPalette = Palette{
	Dot:  color.NRGBA{R: 125, G: 211, B: 252, A: 217},
	Line: color.NRGBA{R: 125, G: 211, B: 252, A: 64},
}

// PaletteSource supplies the palette for the current frame.
// It is queried once per step so theme switches apply immediately.
type PaletteSource interface {
	Palette() Palette
}

// PaletteFunc adapts an ordinary function to PaletteSource.
type PaletteFunc func() Palette

// Palette calls f.
func (f PaletteFunc) Palette() Palette {
	return f()
}

// white returns white at the given opacity in [0, 1].
func white(alpha float64) color.NRGBA {
	if alpha < 0 {
		alpha = 0
	} else if alpha > 1 {
		alpha = 1
	}
	return color.NRGBA{R: 255, G: 255, B: 255, A: uint8(alpha*255 + 0.5)}
}
