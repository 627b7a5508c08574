// Package config loads neuralfolio settings from defaults, an optional YAML
// file and NEURALFOLIO_* environment variables.
package config

import (
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix for environment overrides. A double underscore
// separates nesting levels: NEURALFOLIO_FORM__ENDPOINT sets form.endpoint.
const EnvPrefix = "NEURALFOLIO_"

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Window: WindowConfig{
			Width:  1280,
			Height: 800,
			Title:  "Portfolio",
		},
		Breakpoint: 900,
		LogLevel:   "info",
		Store: StoreConfig{
			Kind: StoreFile,
			Path: "neuralfolio-prefs.yml",
		},
		Form: FormConfig{
			Endpoint: "http://127.0.0.1:8787/f/contact",
			Method:   http.MethodPost,
			Timeout:  15 * time.Second,
		},
		Field: FieldConfig{
			ParticleWarnThreshold: 300,
		},
		Profile: ProfileConfig{
			Dir:          "profiles",
			FPSThreshold: 45,
			Duration:     5 * time.Second,
			Cooldown:     10 * time.Second,
		},
	}
}

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	cfg := DefaultConfig()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("accessing config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// envKey maps NEURALFOLIO_FORM__ENDPOINT to form.endpoint.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

var validStores = map[StoreKind]bool{
	StoreFile:   true,
	StoreSQLite: true,
	StoreMemory: true,
}

// Validate checks that the configuration contains usable values.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Breakpoint < 0 {
		return fmt.Errorf("breakpoint must be non-negative")
	}

	if !validStores[c.Store.Kind] {
		return fmt.Errorf("invalid store kind %q: must be one of file, sqlite, memory", c.Store.Kind)
	}
	if c.Store.Kind != StoreMemory && c.Store.Path == "" {
		return fmt.Errorf("store path is required for %s store", c.Store.Kind)
	}

	if c.Form.Endpoint != "" {
		u, err := url.Parse(c.Form.Endpoint)
		if err != nil {
			return fmt.Errorf("invalid form endpoint: %w", err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("form endpoint must be http or https, got %q", u.Scheme)
		}
	}
	switch strings.ToUpper(c.Form.Method) {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
	default:
		return fmt.Errorf("form method %q cannot carry a body", c.Form.Method)
	}
	if c.Form.Timeout <= 0 {
		return fmt.Errorf("form timeout must be positive")
	}

	if c.Field.ParticleWarnThreshold < 0 {
		return fmt.Errorf("field.particle_warn_threshold must be non-negative")
	}

	if c.Profile.Enabled && c.Profile.Dir == "" {
		return fmt.Errorf("profile dir is required when profiling is enabled")
	}

	return nil
}
