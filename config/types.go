package config

import "time"

// StoreKind selects the preference store backend.
type StoreKind string

const (
	StoreFile   StoreKind = "file"
	StoreSQLite StoreKind = "sqlite"
	StoreMemory StoreKind = "memory"
)

// Config is the top-level configuration, corresponding to neuralfolio.yml.
type Config struct {
	Window      WindowConfig  `yaml:"window" koanf:"window"`
	Breakpoint  int           `yaml:"breakpoint" koanf:"breakpoint"`
	LogLevel    string        `yaml:"log_level" koanf:"log_level"`
	ContentPath string        `yaml:"content_path" koanf:"content_path"`
	Store       StoreConfig   `yaml:"store" koanf:"store"`
	Form        FormConfig    `yaml:"form" koanf:"form"`
	Field       FieldConfig   `yaml:"field" koanf:"field"`
	Profile     ProfileConfig `yaml:"profile" koanf:"profile"`
}

// WindowConfig sizes the desktop window. Ignored in the browser.
type WindowConfig struct {
	Width  int    `yaml:"width" koanf:"width"`
	Height int    `yaml:"height" koanf:"height"`
	Title  string `yaml:"title" koanf:"title"`
}

// StoreConfig selects where the theme preference is kept.
type StoreConfig struct {
	Kind StoreKind `yaml:"kind" koanf:"kind"`
	Path string    `yaml:"path" koanf:"path"`
}

// FormConfig describes the contact form endpoint.
type FormConfig struct {
	Endpoint string        `yaml:"endpoint" koanf:"endpoint"`
	Method   string        `yaml:"method" koanf:"method"`
	Timeout  time.Duration `yaml:"timeout" koanf:"timeout"`
}

// FieldConfig tunes the background animation.
type FieldConfig struct {
	// ParticleWarnThreshold logs a warning each time the particle count
	// grows past another multiple of it. Zero disables the warning.
	ParticleWarnThreshold int   `yaml:"particle_warn_threshold" koanf:"particle_warn_threshold"`
	Seed                  int64 `yaml:"seed" koanf:"seed"`
}

// ProfileConfig controls frame-drop profiling.
type ProfileConfig struct {
	Enabled      bool          `yaml:"enabled" koanf:"enabled"`
	Dir          string        `yaml:"dir" koanf:"dir"`
	FPSThreshold float64       `yaml:"fps_threshold" koanf:"fps_threshold"`
	Duration     time.Duration `yaml:"duration" koanf:"duration"`
	Cooldown     time.Duration `yaml:"cooldown" koanf:"cooldown"`
}
