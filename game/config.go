package game

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"neuralfolio/config"
)

// Config holds the settings the page runtime needs
type Config struct {
	// ScreenWidth is the initial window width in logical units
	ScreenWidth int

	// ScreenHeight is the initial window height in logical units
	ScreenHeight int

	// Breakpoint is the widest viewport treated as compact; compact
	// viewports get no background animation
	Breakpoint int

	// ParticleWarnThreshold logs a warning each time the particle count
	// passes another multiple of it (0 disables)
	ParticleWarnThreshold int

	// Seed fixes the animation's random source when non-zero
	Seed int64

	// FPSThreshold is the frame rate below which a drop is reported
	FPSThreshold float64

	// DropCooldown is the minimum time between reported drops
	DropCooldown time.Duration

	// TPS is the Update rate handed to ebiten.SetTPS. SyncWithFPS steps
	// the field once per display refresh.
	TPS int
}

// DefaultConfig returns a default configuration
func DefaultConfig() Config {
	return FromSettings(config.DefaultConfig())
}

// FromSettings extracts the runtime settings from the loaded configuration
func FromSettings(c *config.Config) Config {
	return Config{
		ScreenWidth:           c.Window.Width,
		ScreenHeight:          c.Window.Height,
		Breakpoint:            c.Breakpoint,
		ParticleWarnThreshold: c.Field.ParticleWarnThreshold,
		Seed:                  c.Field.Seed,
		FPSThreshold:          c.Profile.FPSThreshold,
		DropCooldown:          c.Profile.Cooldown,
		TPS:                   ebiten.SyncWithFPS,
	}
}
