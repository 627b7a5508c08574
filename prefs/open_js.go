//go:build js

package prefs

import "neuralfolio/config"

// Open returns browser localStorage regardless of the configured kind,
// falling back to memory when storage is disabled.
func Open(cfg config.StoreConfig) (Store, error) {
	if cfg.Kind == config.StoreMemory {
		return NewMemoryStore(), nil
	}
	ls, err := OpenLocalStorage()
	if err != nil {
		return NewMemoryStore(), nil
	}
	return ls, nil
}
