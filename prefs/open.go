//go:build !js

package prefs

import (
	"fmt"

	"neuralfolio/config"
)

// Open creates the store selected by cfg.
func Open(cfg config.StoreConfig) (Store, error) {
	switch cfg.Kind {
	case config.StoreFile:
		return OpenFile(cfg.Path)
	case config.StoreSQLite:
		return OpenSQLite(cfg.Path)
	case config.StoreMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown store kind %q", cfg.Kind)
	}
}
