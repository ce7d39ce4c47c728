// Package session mediates between the stopwatch, the lap history, the display
// preference and persistence. Every mutation is followed by an explicit save;
// persistence problems are logged and never undo in-memory state.
package session

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"stopwatch/internal/core/laps"
	"stopwatch/internal/core/model"
	"stopwatch/internal/core/stopwatch"
	"stopwatch/internal/storage"
	"stopwatch/internal/ui/preferences"
)

// Session owns one stopwatch together with its laps and preferences.
type Session struct {
	mu       sync.Mutex
	watch    *stopwatch.Stopwatch
	laps     *laps.Store
	settings preferences.Settings
	store    storage.Store
	logger   *log.Logger
}

// New creates a Session with empty laps and default settings. Call Restore to
// load persisted state.
func New(watch *stopwatch.Stopwatch, store storage.Store, logger *log.Logger) *Session {
	return &Session{
		watch:    watch,
		laps:     laps.New(),
		settings: preferences.DefaultSettings(),
		store:    store,
		logger:   logger,
	}
}

// Restore loads lap history and the display preference. Unreadable or
// malformed data is logged and replaced by defaults.
func (session *Session) Restore() {
	session.mu.Lock()
	defer session.mu.Unlock()

	raw, found, err := session.store.Load(storage.KeyLapTimes)
	switch {
	case err != nil:
		session.logger.Warn("load lap history", "err", err)
	case found:
		if err := session.laps.Load(raw); err != nil {
			session.logger.Warn("discarding lap history", "err", err)
		}
	}

	raw, found, err = session.store.Load(storage.KeyDarkMode)
	if err != nil {
		session.logger.Warn("load display mode", "err", err)
	} else if found {
		settings, ok := preferences.LoadSettings(raw)
		if !ok {
			session.logger.Warn("unrecognised display mode, using default", "value", raw, "default", settings.DisplayMode)
		}
		session.settings = settings
	}

	session.logger.Debug("session restored", "laps", session.laps.Len(), "display", session.settings.DisplayMode)
}

// Stopwatch exposes the underlying stopwatch for event subscription.
func (session *Session) Stopwatch() *stopwatch.Stopwatch {
	return session.watch
}

// ToggleRun starts or pauses the stopwatch.
func (session *Session) ToggleRun() stopwatch.State {
	return session.watch.ToggleRun()
}

// Reset stops the stopwatch and zeroes elapsed time. Laps are kept.
func (session *Session) Reset() {
	session.watch.Reset()
}

// State returns the stopwatch run state.
func (session *Session) State() stopwatch.State {
	return session.watch.State()
}

// Elapsed returns the current elapsed time.
func (session *Session) Elapsed() time.Duration {
	return session.watch.Current()
}

// Lap records the current elapsed time. Nothing is recorded before the clock
// has advanced.
func (session *Session) Lap() (model.Lap, bool) {
	elapsedMs := session.watch.Current().Milliseconds()

	session.mu.Lock()
	defer session.mu.Unlock()
	lap, ok := session.laps.Record(elapsedMs)
	if !ok {
		return model.Lap{}, false
	}
	session.saveLapsLocked()
	return lap, true
}

// ClearLaps removes every lap.
func (session *Session) ClearLaps() {
	session.mu.Lock()
	defer session.mu.Unlock()
	session.laps.Clear()
	session.saveLapsLocked()
}

// Laps returns the laps, most recent first.
func (session *Session) Laps() []model.Lap {
	session.mu.Lock()
	defer session.mu.Unlock()
	return session.laps.Laps()
}

// DisplayMode returns the current display preference.
func (session *Session) DisplayMode() model.DisplayMode {
	session.mu.Lock()
	defer session.mu.Unlock()
	return session.settings.DisplayMode
}

// ToggleDisplayMode flips the display preference and persists it.
func (session *Session) ToggleDisplayMode() model.DisplayMode {
	session.mu.Lock()
	defer session.mu.Unlock()
	mode := session.settings.ToggleDisplayMode()
	if err := session.store.Save(storage.KeyDarkMode, session.settings.Serialize()); err != nil {
		session.logger.Warn("save display mode", "err", err)
	}
	return mode
}

func (session *Session) saveLapsLocked() {
	serialized, err := session.laps.Serialize()
	if err != nil {
		session.logger.Warn("serialize laps", "err", err)
		return
	}
	if err := session.store.Save(storage.KeyLapTimes, serialized); err != nil {
		session.logger.Warn("save laps", "err", err)
	}
}
