// Package storage provides the key/value backends the stopwatch persists its
// lap history and display preference through.
package storage

import (
	"errors"
	"fmt"
	"time"

	"fyne.io/fyne/v2"
)

// Keys used for persisted state.
const (
	KeyLapTimes = "stopwatch-lap-times"
	KeyDarkMode = "stopwatch-dark-mode"
)

// Backend names accepted by New.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendFyne   = "fyne"
	BackendRedis  = "redis"
)

// ErrUnknownBackend indicates a backend name New does not recognise.
var ErrUnknownBackend = errors.New("unknown storage backend")

// Store is a best-effort string key/value store.
type Store interface {
	// Load returns the value saved under key. found is false when nothing was saved.
	Load(key string) (value string, found bool, err error)
	// Save replaces the value under key.
	Save(key, value string) error
	Close() error
}

// Options selects and configures a backend.
type Options struct {
	Backend      string
	Path         string
	RedisURL     string
	RedisPrefix  string
	RedisTimeout time.Duration
}

// New builds the Store named by options.Backend. prefs backs the fyne backend
// and may be nil for the others.
func New(appName string, options Options, prefs fyne.Preferences) (Store, error) {
	switch options.Backend {
	case BackendMemory:
		return NewMemoryStore(), nil
	case "", BackendFile:
		path := options.Path
		if path == "" {
			resolved, err := DefaultFilePath(appName)
			if err != nil {
				return nil, err
			}
			path = resolved
		}
		return NewFileStore(path), nil
	case BackendFyne:
		if prefs == nil {
			return nil, fmt.Errorf("%s backend: preferences unavailable", BackendFyne)
		}
		return NewPreferencesStore(prefs), nil
	case BackendRedis:
		store, err := NewRedisStore(RedisOptions{
			URL:     options.RedisURL,
			Prefix:  options.RedisPrefix,
			Timeout: options.RedisTimeout,
		})
		if err != nil {
			return nil, fmt.Errorf("%s backend: %w", BackendRedis, err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, options.Backend)
	}
}
