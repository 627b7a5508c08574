//go:build js

package prefs

import (
	"fmt"
	"syscall/js"
)

// LocalStorage keeps preferences in the browser's window.localStorage.
type LocalStorage struct {
	storage js.Value
}

// OpenLocalStorage binds to window.localStorage.
func OpenLocalStorage() (*LocalStorage, error) {
	storage := js.Global().Get("localStorage")
	if storage.IsUndefined() || storage.IsNull() {
		return nil, fmt.Errorf("localStorage is not available")
	}
	return &LocalStorage{storage: storage}, nil
}

func (l *LocalStorage) Get(key string) (v string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("reading preference %q: %v", key, r)
		}
	}()
	item := l.storage.Call("getItem", key)
	if item.IsNull() || item.IsUndefined() {
		return "", ErrNotFound
	}
	return item.String(), nil
}

func (l *LocalStorage) Set(key, value string) (err error) {
	// setItem throws when storage is full or disabled.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("writing preference %q: %v", key, r)
		}
	}()
	l.storage.Call("setItem", key, value)
	return nil
}

func (l *LocalStorage) Close() error {
	return nil
}
