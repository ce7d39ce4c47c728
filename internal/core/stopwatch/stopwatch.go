package stopwatch

import (
	"errors"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// DefaultTickInterval is the display refresh cadence used when none is configured.
const DefaultTickInterval = 10 * time.Millisecond

var (
	// ErrNotRunning indicates a pause was requested while the stopwatch was not running.
	ErrNotRunning = errors.New("stopwatch is not running")
	// ErrAlreadyRunning indicates a start was requested while the stopwatch was running.
	ErrAlreadyRunning = errors.New("stopwatch is already running")
)

// Config contains runtime options for Stopwatch.
type Config struct {
	TickInterval time.Duration
	Clock        clockwork.Clock
}

// Stopwatch is a run/pause/reset state machine. Elapsed time is always derived
// from the wall clock anchor, never accumulated from ticks.
type Stopwatch struct {
	mu         sync.Mutex
	options    Config
	clock      clockwork.Clock
	state      State
	base       time.Duration
	anchor     time.Time
	generation uint64
	events     []chan Event
	stopCh     chan struct{}
	closed     bool
}

// New creates an idle Stopwatch.
func New(options Config) *Stopwatch {
	if options.TickInterval <= 0 {
		options.TickInterval = DefaultTickInterval
	}
	if options.Clock == nil {
		options.Clock = clockwork.NewRealClock()
	}

	return &Stopwatch{
		options: options,
		clock:   options.Clock,
		state:   StateIdle,
	}
}

// Subscribe registers a new observer channel.
func (watch *Stopwatch) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	watch.mu.Lock()
	defer watch.mu.Unlock()
	if watch.closed {
		close(ch)
		return ch
	}
	watch.events = append(watch.events, ch)
	return ch
}

// Start moves an idle or paused stopwatch into the running state.
func (watch *Stopwatch) Start() error {
	watch.mu.Lock()
	defer watch.mu.Unlock()
	if watch.state == StateRunning {
		return ErrAlreadyRunning
	}
	watch.startLocked(watch.clock.Now())
	return nil
}

// Pause freezes elapsed time. Pausing a stopwatch that is not running is rejected.
func (watch *Stopwatch) Pause() error {
	watch.mu.Lock()
	defer watch.mu.Unlock()
	if watch.state != StateRunning {
		return ErrNotRunning
	}
	watch.pauseLocked(watch.clock.Now())
	return nil
}

// ToggleRun starts an idle or paused stopwatch and pauses a running one.
// It returns the resulting state.
func (watch *Stopwatch) ToggleRun() State {
	watch.mu.Lock()
	defer watch.mu.Unlock()
	now := watch.clock.Now()
	if watch.state == StateRunning {
		watch.pauseLocked(now)
	} else {
		watch.startLocked(now)
	}
	return watch.state
}

// Reset returns to idle with zero elapsed time from any state.
func (watch *Stopwatch) Reset() {
	watch.mu.Lock()
	defer watch.mu.Unlock()
	watch.stopTickerLocked()
	watch.state = StateIdle
	watch.base = 0
	watch.anchor = time.Time{}

	watch.emitLocked(Event{
		Type:  EventStateChange,
		State: StateIdle,
		At:    watch.clock.Now(),
	})
}

// Elapsed returns the elapsed time as observed at now.
func (watch *Stopwatch) Elapsed(now time.Time) time.Duration {
	watch.mu.Lock()
	defer watch.mu.Unlock()
	return watch.elapsedLocked(now)
}

// Current returns the elapsed time at the clock's current instant.
func (watch *Stopwatch) Current() time.Duration {
	return watch.Elapsed(watch.clock.Now())
}

// State returns the current run state.
func (watch *Stopwatch) State() State {
	watch.mu.Lock()
	defer watch.mu.Unlock()
	return watch.state
}

// Snapshot returns state and elapsed time read under one lock.
func (watch *Stopwatch) Snapshot() Snapshot {
	watch.mu.Lock()
	defer watch.mu.Unlock()
	now := watch.clock.Now()
	return Snapshot{
		State:   watch.state,
		Elapsed: watch.elapsedLocked(now),
		At:      now,
	}
}

// Close stops ticking and closes observers. The stopwatch keeps answering
// Elapsed but no longer emits events.
func (watch *Stopwatch) Close() {
	watch.mu.Lock()
	if watch.closed {
		watch.mu.Unlock()
		return
	}
	watch.closed = true
	watch.stopTickerLocked()
	events := watch.events
	watch.events = nil
	watch.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

func (watch *Stopwatch) startLocked(now time.Time) {
	watch.state = StateRunning
	watch.anchor = now
	watch.startTickerLocked()

	watch.emitLocked(Event{
		Type:    EventStateChange,
		State:   StateRunning,
		Elapsed: watch.base,
		At:      now,
	})
}

func (watch *Stopwatch) pauseLocked(now time.Time) {
	watch.base = watch.elapsedLocked(now)
	watch.anchor = time.Time{}
	watch.state = StatePaused
	watch.stopTickerLocked()

	watch.emitLocked(Event{
		Type:    EventStateChange,
		State:   StatePaused,
		Elapsed: watch.base,
		At:      now,
	})
}

func (watch *Stopwatch) elapsedLocked(now time.Time) time.Duration {
	if watch.state != StateRunning {
		return watch.base
	}
	delta := now.Sub(watch.anchor)
	if delta < 0 {
		delta = 0
	}
	return watch.base + delta
}

func (watch *Stopwatch) startTickerLocked() {
	if watch.closed {
		return
	}
	watch.stopTickerLocked()
	watch.stopCh = make(chan struct{})
	ticker := watch.clock.NewTicker(watch.options.TickInterval)
	go watch.run(ticker, watch.stopCh, watch.generation)
}

// stopTickerLocked invalidates the current tick loop. A tick already waiting on
// the mutex sees the new generation and drops itself.
func (watch *Stopwatch) stopTickerLocked() {
	watch.generation++
	if watch.stopCh != nil {
		close(watch.stopCh)
		watch.stopCh = nil
	}
}

func (watch *Stopwatch) run(ticker clockwork.Ticker, stopCh <-chan struct{}, generation uint64) {
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case tickTime := <-ticker.Chan():
			watch.tick(tickTime, generation)
		}
	}
}

func (watch *Stopwatch) tick(tickTime time.Time, generation uint64) {
	watch.mu.Lock()
	defer watch.mu.Unlock()
	if watch.state != StateRunning || watch.generation != generation {
		return
	}

	watch.emitLocked(Event{
		Type:    EventTick,
		State:   StateRunning,
		Elapsed: watch.elapsedLocked(watch.clock.Now()),
		At:      tickTime,
	})
}

func (watch *Stopwatch) emitLocked(event Event) {
	for _, ch := range watch.events {
		select {
		case ch <- event:
		default:
		}
	}
}
