package game

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"neuralfolio/field"
	"neuralfolio/page"
)

// Camera is the viewport into the page. Only vertical scrolling is
// supported; the page is as wide as the window.
type Camera struct {
	Y      float64 // scroll offset in page coordinates
	Width  float64 // viewport width
	Height float64 // viewport height
}

// NewCamera creates a camera at the top of the page
func NewCamera(width, height float64) *Camera {
	return &Camera{
		Width:  width,
		Height: height,
	}
}

// PageToScreen converts page coordinates to screen coordinates
func (c *Camera) PageToScreen(px, py float64) (float64, float64) {
	return px, py - c.Y
}

// ScreenToPage converts screen coordinates to page coordinates
func (c *Camera) ScreenToPage(sx, sy float64) (float64, float64) {
	return sx, sy + c.Y
}

// Visible reports whether any part of the box is inside the viewport
func (c *Camera) Visible(b page.Box) bool {
	return b.Bottom() > c.Y && b.Top < c.Y+c.Height
}

// ScrollTo moves the viewport, clamped to the page
func (c *Camera) ScrollTo(y, pageHeight float64) {
	c.Y = min(max(y, 0), max(pageHeight-c.Height, 0))
}

// ScrollBy moves the viewport by dy, clamped to the page
func (c *Camera) ScrollBy(dy, pageHeight float64) {
	c.ScrollTo(c.Y+dy, pageHeight)
}

const (
	glyphWidth  = 7
	glyphHeight = 13
)

// Renderer draws the page and the field layer in logical units, scaling
// everything to device pixels
type Renderer struct {
	camera *Camera
	face   *text.GoXFace
	scale  float64
	layer  *ebiten.Image
}

// NewRenderer creates a new renderer
func NewRenderer(camera *Camera) *Renderer {
	return &Renderer{
		camera: camera,
		face:   text.NewGoXFace(basicfont.Face7x13),
		scale:  1,
	}
}

// SetScale sets the device pixel ratio
func (r *Renderer) SetScale(scale float64) {
	if scale <= 0 {
		scale = 1
	}
	r.scale = scale
}

// RenderField replays a recorded field frame onto its own layer and
// composites it over the screen. The layer matches the backing size.
func (r *Renderer) RenderField(screen *ebiten.Image, frame *field.DisplayList) {
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	if r.layer == nil || r.layer.Bounds().Dx() != w || r.layer.Bounds().Dy() != h {
		if r.layer != nil {
			r.layer.Deallocate()
		}
		r.layer = ebiten.NewImage(w, h)
	}
	frame.Replay(&screenCanvas{dst: r.layer, scale: float32(r.scale)})
	screen.DrawImage(r.layer, nil)
}

// Text draws a single line with its top-left corner at (x, y)
func (r *Renderer) Text(screen *ebiten.Image, s string, x, y float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Scale(r.scale, r.scale)
	op.GeoM.Translate(x*r.scale, y*r.scale)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, s, r.face, op)
}

// FillRect draws a filled rectangle
func (r *Renderer) FillRect(screen *ebiten.Image, b rect, clr color.Color) {
	s := float32(r.scale)
	vector.DrawFilledRect(screen, float32(b.X)*s, float32(b.Y)*s, float32(b.W)*s, float32(b.H)*s, clr, true)
}

// StrokeRect draws a rectangle outline
func (r *Renderer) StrokeRect(screen *ebiten.Image, b rect, width float64, clr color.Color) {
	s := float32(r.scale)
	vector.StrokeRect(screen, float32(b.X)*s, float32(b.Y)*s, float32(b.W)*s, float32(b.H)*s, float32(width)*s, clr, true)
}

// Circle draws a filled circle
func (r *Renderer) Circle(screen *ebiten.Image, x, y, radius float64, clr color.Color) {
	s := float32(r.scale)
	vector.DrawFilledCircle(screen, float32(x)*s, float32(y)*s, float32(radius)*s, clr, true)
}

// screenCanvas adapts an ebiten image to field.Canvas
type screenCanvas struct {
	dst   *ebiten.Image
	scale float32
}

func (c *screenCanvas) Clear() {
	c.dst.Clear()
}

func (c *screenCanvas) FillCircle(x, y, radius float64, clr color.Color) {
	s := c.scale
	vector.DrawFilledCircle(c.dst, float32(x)*s, float32(y)*s, float32(radius)*s, clr, true)
}

func (c *screenCanvas) StrokeLine(x0, y0, x1, y1, width float64, clr color.Color) {
	if width <= 0 {
		return
	}
	s := c.scale
	vector.StrokeLine(c.dst, float32(x0)*s, float32(y0)*s, float32(x1)*s, float32(y1)*s, float32(width)*s, clr, true)
}

// fade scales a color's opacity by a in [0, 1]
func fade(c color.NRGBA, a float64) color.NRGBA {
	a = min(max(a, 0), 1)
	c.A = uint8(float64(c.A)*a + 0.5)
	return c
}
