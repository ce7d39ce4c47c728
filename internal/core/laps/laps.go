// Package laps keeps the ordered lap history of a stopwatch and its persisted form.
package laps

import (
	"errors"
	"fmt"
	"strings"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"stopwatch/internal/core/model"
	"stopwatch/internal/core/timefmt"
)

// ErrMalformed indicates persisted lap history that could not be restored.
var ErrMalformed = errors.New("malformed lap history")

// lapRecord is the persisted shape of a lap. Field names match the JSON
// written by earlier builds, which yaml.v3 reads as-is.
type lapRecord struct {
	ID            int    `yaml:"id"`
	Time          int64  `yaml:"time"`
	FormattedTime string `yaml:"formattedTime,omitempty"`
}

// Store holds laps in creation order.
type Store struct {
	entries []model.Lap
}

// New creates an empty Store.
func New() *Store {
	return &Store{}
}

// Record appends a lap taken at elapsedMs. Nothing is recorded for a clock
// that has not advanced.
func (store *Store) Record(elapsedMs int64) (model.Lap, bool) {
	if elapsedMs <= 0 {
		return model.Lap{}, false
	}
	lap := model.Lap{
		Ordinal:   len(store.entries) + 1,
		ElapsedMs: elapsedMs,
	}
	store.entries = append(store.entries, lap)
	return lap, true
}

// Clear removes every lap.
func (store *Store) Clear() {
	store.entries = nil
}

// Len returns the number of recorded laps.
func (store *Store) Len() int {
	return len(store.entries)
}

// Laps returns a copy of the laps, most recent first.
func (store *Store) Laps() []model.Lap {
	view := make([]model.Lap, len(store.entries))
	for i, lap := range store.entries {
		view[len(store.entries)-1-i] = lap
	}
	return view
}

// Serialize renders the laps as a YAML sequence, most recent first.
func (store *Store) Serialize() (string, error) {
	records := lo.Map(store.Laps(), func(lap model.Lap, _ int) lapRecord {
		return lapRecord{
			ID:            lap.Ordinal,
			Time:          lap.ElapsedMs,
			FormattedTime: timefmt.Format(lap.ElapsedMs),
		}
	})

	serialized, err := yaml.Marshal(records)
	if err != nil {
		return "", fmt.Errorf("marshal laps yaml: %w", err)
	}
	return string(serialized), nil
}

// Load replaces the laps with a serialized history. Empty input is treated as
// no history. On malformed input the store is left empty and the returned
// error wraps ErrMalformed.
func (store *Store) Load(raw string) error {
	store.entries = nil
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	var records []lapRecord
	if err := yaml.Unmarshal([]byte(raw), &records); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	entries, err := entriesFromRecords(records)
	if err != nil {
		return err
	}
	store.entries = entries
	return nil
}

// entriesFromRecords checks that records run from ordinal n down to 1 and
// returns them in creation order.
func entriesFromRecords(records []lapRecord) ([]model.Lap, error) {
	entries := make([]model.Lap, len(records))
	for i, record := range records {
		wantOrdinal := len(records) - i
		if record.ID != wantOrdinal {
			return nil, fmt.Errorf("%w: lap at position %d has ordinal %d, want %d", ErrMalformed, i, record.ID, wantOrdinal)
		}
		if record.Time < 0 {
			return nil, fmt.Errorf("%w: lap %d has negative time %d", ErrMalformed, record.ID, record.Time)
		}
		entries[wantOrdinal-1] = model.Lap{Ordinal: record.ID, ElapsedMs: record.Time}
	}
	return entries, nil
}
