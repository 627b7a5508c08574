package field

import (
	"math"
	"math/rand"
)

// Particle is an interactive node of the field.
type Particle struct {
	// Position in logical units
	X, Y float64

	// Velocity in logical units per frame
	VX, VY float64

	Radius float64
}

// Star is a static background dot.
type Star struct {
	X, Y   float64
	Radius float64
	Alpha  float64
}

// Asteroid drifts across the field and wraps around its edges.
type Asteroid struct {
	X, Y   float64
	VX, VY float64
	Size   float64
	Alpha  float64
}

// Pointer is the last known cursor position.
type Pointer struct {
	X, Y   float64
	Active bool
}

// Attractor pulls every particle toward it while TTL is positive.
type Attractor struct {
	X, Y float64
	TTL  int // frames left
}

// Active reports whether the attractor still exerts force.
func (a Attractor) Active() bool {
	return a.TTL > 0
}

// pullToward accelerates the particle toward (tx, ty) by accel along the unit vector.
func (p *Particle) pullToward(tx, ty, accel float64) {
	dx := tx - p.X
	dy := ty - p.Y
	dist := math.Hypot(dx, dy)
	if dist == 0 {
		dist = 1
	}
	p.VX += dx / dist * accel
	p.VY += dy / dist * accel
}

// bounce reverses velocity components once the particle is past the margin.
func (p *Particle) bounce(width, height float64) {
	if p.X < -EdgeMargin || p.X > width+EdgeMargin {
		p.VX = -p.VX
	}
	if p.Y < -EdgeMargin || p.Y > height+EdgeMargin {
		p.VY = -p.VY
	}
}

// advance moves the asteroid and wraps it to the opposite margin.
func (a *Asteroid) advance(width, height float64) {
	a.X += a.VX
	a.Y += a.VY

	if a.X < -EdgeMargin {
		a.X = width + EdgeMargin
	}
	if a.X > width+EdgeMargin {
		a.X = -EdgeMargin
	}
	if a.Y < -EdgeMargin {
		a.Y = height + EdgeMargin
	}
	if a.Y > height+EdgeMargin {
		a.Y = -EdgeMargin
	}
}

// between returns a uniform sample in [lo, hi).
func between(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

// signed returns v or -v with equal probability.
func signed(rng *rand.Rand, v float64) float64 {
	if rng.Float64() > 0.5 {
		return v
	}
	return -v
}

func spawnParticles(rng *rand.Rand, width, height float64) []Particle {
	particles := make([]Particle, 0, ParticleCount)
	for i := 0; i < ParticleCount; i++ {
		particles = append(particles, Particle{
			X:      rng.Float64() * width,
			Y:      rng.Float64() * height,
			VX:     between(rng, -particleSpeed, particleSpeed),
			VY:     between(rng, -particleSpeed, particleSpeed),
			Radius: between(rng, 2, 4),
		})
	}
	return particles
}

// StarCount returns the number of stars seeded for a viewport width.
func StarCount(width float64) int {
	return max(MinStarCount, int(math.Floor(width/StarSpacing)))
}

func spawnStars(rng *rand.Rand, width, height float64) []Star {
	n := StarCount(width)
	stars := make([]Star, 0, n)
	for i := 0; i < n; i++ {
		stars = append(stars, Star{
			X:      rng.Float64() * width,
			Y:      rng.Float64() * height,
			Radius: between(rng, 0.3, 1.7),
			Alpha:  between(rng, 0.2, 0.8),
		})
	}
	return stars
}

func spawnAsteroids(rng *rand.Rand, width, height float64) []Asteroid {
	asteroids := make([]Asteroid, 0, AsteroidCount)
	for i := 0; i < AsteroidCount; i++ {
		asteroids = append(asteroids, Asteroid{
			X:     rng.Float64() * width,
			Y:     rng.Float64() * height,
			VX:    signed(rng, between(rng, 0.1, 0.45)),
			VY:    signed(rng, between(rng, 0.08, 0.33)),
			Size:  between(rng, 1, 3),
			Alpha: between(rng, 0.2, 0.6),
		})
	}
	return asteroids
}

// burstParticle spawns a particle near a double-click point.
func burstParticle(rng *rand.Rand, x, y float64) Particle {
	return Particle{
		X:      x + between(rng, -burstSpread, burstSpread),
		Y:      y + between(rng, -burstSpread, burstSpread),
		VX:     between(rng, -burstSpeed, burstSpeed),
		VY:     between(rng, -burstSpeed, burstSpeed),
		Radius: between(rng, 2.5, 4),
	}
}
