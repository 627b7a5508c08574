package field

import "image/color"

// OpKind identifies a recorded drawing operation.
type OpKind int

const (
	OpClear OpKind = iota
	OpCircle
	OpLine
)

// Op is a single recorded drawing operation.
type Op struct {
	Kind OpKind

	// Circle center, or line start
	X0, Y0 float64

	// Line end (unused for circles)
	X1, Y1 float64

	// Circle radius or line stroke width
	Size float64

	Color color.NRGBA
}

// DisplayList is a Canvas that records operations so a frame computed in
// Update can be replayed onto the screen in Draw.
type DisplayList struct {
	Ops []Op
}

// Reset drops all recorded operations but keeps capacity.
func (d *DisplayList) Reset() {
	d.Ops = d.Ops[:0]
}

// Clear records a clear.
func (d *DisplayList) Clear() {
	d.Ops = append(d.Ops, Op{Kind: OpClear})
}

// FillCircle records a filled circle.
func (d *DisplayList) FillCircle(x, y, radius float64, clr color.Color) {
	d.Ops = append(d.Ops, Op{
		Kind:  OpCircle,
		X0:    x,
		Y0:    y,
		Size:  radius,
		Color: toNRGBA(clr),
	})
}

// StrokeLine records a line segment.
func (d *DisplayList) StrokeLine(x0, y0, x1, y1, width float64, clr color.Color) {
	d.Ops = append(d.Ops, Op{
		Kind:  OpLine,
		X0:    x0,
		Y0:    y0,
		X1:    x1,
		Y1:    y1,
		Size:  width,
		Color: toNRGBA(clr),
	})
}

// Replay draws every recorded operation onto dst in order.
func (d *DisplayList) Replay(dst Canvas) {
	for _, op := range d.Ops {
		switch op.Kind {
		case OpClear:
			dst.Clear()
		case OpCircle:
			dst.FillCircle(op.X0, op.Y0, op.Size, op.Color)
		case OpLine:
			dst.StrokeLine(op.X0, op.Y0, op.X1, op.Y1, op.Size, op.Color)
		}
	}
}

// Count returns how many operations of the given kind were recorded.
func (d *DisplayList) Count(kind OpKind) int {
	n := 0
	for _, op := range d.Ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}

func toNRGBA(clr color.Color) color.NRGBA {
	if c, ok := clr.(color.NRGBA); ok {
		return c
	}
	return color.NRGBAModel.Convert(clr).(color.NRGBA)
}
