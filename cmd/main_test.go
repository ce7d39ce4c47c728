package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"stopwatch/internal/core/stopwatch"
)

func TestEventIsCurrent(t *testing.T) {
	tests := []struct {
		name    string
		event   stopwatch.Event
		current stopwatch.State
		want    bool
	}{
		{
			name:    "tick while running",
			event:   stopwatch.Event{Type: stopwatch.EventTick, State: stopwatch.StateRunning},
			current: stopwatch.StateRunning,
			want:    true,
		},
		{
			name:    "tick queued before pause",
			event:   stopwatch.Event{Type: stopwatch.EventTick, State: stopwatch.StateRunning},
			current: stopwatch.StatePaused,
		},
		{
			name:    "tick queued before reset",
			event:   stopwatch.Event{Type: stopwatch.EventTick, State: stopwatch.StateRunning},
			current: stopwatch.StateIdle,
		},
		{
			name:    "start superseded by pause",
			event:   stopwatch.Event{Type: stopwatch.EventStateChange, State: stopwatch.StateRunning},
			current: stopwatch.StatePaused,
		},
		{
			name:    "pause",
			event:   stopwatch.Event{Type: stopwatch.EventStateChange, State: stopwatch.StatePaused},
			current: stopwatch.StatePaused,
			want:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, eventIsCurrent(tt.event, tt.current))
		})
	}
}

func TestStatusText(t *testing.T) {
	assert.Equal(t, "idle", statusText(stopwatch.StateIdle, 0))
	assert.Equal(t, "running 02:05", statusText(stopwatch.StateRunning, 125430*time.Millisecond))
	assert.Equal(t, "paused 00:01", statusText(stopwatch.StatePaused, 1500*time.Millisecond))
}
