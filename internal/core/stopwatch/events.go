package stopwatch

import "time"

// State represents the current run mode of the stopwatch.
type State string

const (
	StateIdle    State = "idle"
	StateRunning State = "running"
	StatePaused  State = "paused"
)

// EventType defines the type of stopwatch event.
type EventType string

const (
	EventStateChange EventType = "state_change"
	EventTick        EventType = "tick"
)

// Event represents a stopwatch update for observers.
type Event struct {
	Type    EventType
	State   State
	Elapsed time.Duration
	At      time.Time
}

// Snapshot is a consistent read of state and elapsed time.
type Snapshot struct {
	State   State
	Elapsed time.Duration
	At      time.Time
}
