// Package field simulates the animated background: static stars, drifting
// asteroids and linked particles that react to the pointer and to
// double-clicks.
package field

import (
	"math"
	"math/rand"
)

// Population constants
const (
	ParticleCount = 90
	MinStarCount  = 80
	StarSpacing   = 8.0 // viewport width units per star beyond the minimum
	AsteroidCount = 6
	BurstSize     = 2 // particles added per double-click
)

// Simulation constants, in logical units and frames
const (
	EdgeMargin      = 50.0
	LinkDistance    = 140.0
	LinkFalloff     = 160.0
	PointerDistance = 180.0
	PointerFalloff  = 200.0
	AttractorPull   = 0.018
	AttractorTTL    = 120

	particleSpeed = 0.175
	burstSpeed    = 0.35
	burstSpread   = 10.0
	trailLength   = 12.0
)

// Population is a snapshot of the entity counts.
type Population struct {
	Particles int
	Stars     int
	Asteroids int
}

// Field owns every entity of the simulation. It is not safe for concurrent
// use; the host loop calls it from a single goroutine.
type Field struct {
	width  float64
	height float64
	scale  float64

	rng     *rand.Rand
	palette PaletteSource

	particles []Particle
	stars     []Star
	asteroids []Asteroid

	pointer   Pointer
	attractor Attractor
}

// New creates a field sized to the viewport and seeds all entities.
// A nil palette falls back to DefaultPalette; a nil rng uses a time seed.
func New(width, height, scale float64, palette PaletteSource, rng *rand.Rand) *Field {
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	if palette == nil {
		palette = PaletteFunc(func() Palette { return DefaultPalette })
	}
	f := &Field{
		rng:     rng,
		palette: palette,
	}
	f.Resize(width, height, scale)
	return f
}

// Resize adopts new viewport dimensions and re-seeds every entity from
// scratch. Pointer and attractor state are kept.
func (f *Field) Resize(width, height, scale float64) {
	if scale <= 0 {
		scale = 1
	}
	f.width = width
	f.height = height
	f.scale = scale

	f.particles = spawnParticles(f.rng, width, height)
	f.stars = spawnStars(f.rng, width, height)
	f.asteroids = spawnAsteroids(f.rng, width, height)
}

// Size returns the viewport size in logical units.
func (f *Field) Size() (float64, float64) {
	return f.width, f.height
}

// Scale returns the device pixel ratio the field was sized with.
func (f *Field) Scale() float64 {
	return f.scale
}

// BackingSize returns the surface size in device pixels.
func (f *Field) BackingSize() (int, int) {
	return DeviceSize(f.width, f.scale), DeviceSize(f.height, f.scale)
}

// DeviceSize converts a logical length to whole device pixels, rounding up
// so the surface always covers the viewport.
func DeviceSize(length, scale float64) int {
	return int(math.Ceil(length * scale))
}

// Population returns the current entity counts.
func (f *Field) Population() Population {
	return Population{
		Particles: len(f.particles),
		Stars:     len(f.stars),
		Asteroids: len(f.asteroids),
	}
}

// Particles returns a copy of the particles.
func (f *Field) Particles() []Particle {
	out := make([]Particle, len(f.particles))
	copy(out, f.particles)
	return out
}

// Stars returns a copy of the stars.
func (f *Field) Stars() []Star {
	out := make([]Star, len(f.stars))
	copy(out, f.stars)
	return out
}

// Asteroids returns a copy of the asteroids.
func (f *Field) Asteroids() []Asteroid {
	out := make([]Asteroid, len(f.asteroids))
	copy(out, f.asteroids)
	return out
}

// Pointer returns the pointer state.
func (f *Field) Pointer() Pointer {
	return f.pointer
}

// Attractor returns the attractor state.
func (f *Field) Attractor() Attractor {
	return f.attractor
}

// PointerMove records the cursor position and marks the pointer active.
func (f *Field) PointerMove(x, y float64) {
	f.pointer = Pointer{X: x, Y: y, Active: true}
}

// PointerLeave marks the pointer inactive.
func (f *Field) PointerLeave() {
	f.pointer.Active = false
}

// DoubleClick places the attractor at (x, y) and adds BurstSize particles
// around it. Particles added this way are never removed until the next
// resize.
func (f *Field) DoubleClick(x, y float64) {
	f.attractor = Attractor{X: x, Y: y, TTL: AttractorTTL}
	for i := 0; i < BurstSize; i++ {
		f.particles = append(f.particles, burstParticle(f.rng, x, y))
	}
}

// LinkWidth is the stroke width of a particle-to-particle link at distance d.
func LinkWidth(d float64) float64 {
	return math.Max(0, 1-d/LinkFalloff)
}

// PointerLinkWidth is the stroke width of a particle-to-pointer link at distance d.
func PointerLinkWidth(d float64) float64 {
	return math.Max(0, 1-d/PointerFalloff)
}

// Step advances the simulation by one frame and renders it into dst.
func (f *Field) Step(dst Canvas) {
	pal := f.palette.Palette()

	dst.Clear()

	for _, s := range f.stars {
		dst.FillCircle(s.X, s.Y, s.Radius, white(s.Alpha))
	}

	for i := range f.asteroids {
		a := &f.asteroids[i]
		a.advance(f.width, f.height)
		dst.StrokeLine(a.X, a.Y, a.X-a.VX*trailLength, a.Y-a.VY*trailLength, a.Size, white(a.Alpha))
	}

	pulling := f.attractor.Active()
	for i := range f.particles {
		p := &f.particles[i]

		if pulling {
			p.pullToward(f.attractor.X, f.attractor.Y, AttractorPull)
		}

		p.X += p.VX
		p.Y += p.VY
		p.bounce(f.width, f.height)

		dst.FillCircle(p.X, p.Y, p.Radius, pal.Dot)

		// Later particles have not moved yet this frame.
		for j := i + 1; j < len(f.particles); j++ {
			q := &f.particles[j]
			d := math.Hypot(p.X-q.X, p.Y-q.Y)
			if d < LinkDistance {
				dst.StrokeLine(p.X, p.Y, q.X, q.Y, LinkWidth(d), pal.Line)
			}
		}

		if f.pointer.Active {
			d := math.Hypot(p.X-f.pointer.X, p.Y-f.pointer.Y)
			if d < PointerDistance {
				dst.StrokeLine(p.X, p.Y, f.pointer.X, f.pointer.Y, PointerLinkWidth(d), pal.Line)
			}
		}
	}

	if pulling {
		f.attractor.TTL--
	}
}
