package session

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stopwatch/internal/core/model"
	"stopwatch/internal/core/stopwatch"
	"stopwatch/internal/logging"
	"stopwatch/internal/storage"
)

type failingStore struct {
	loadErr error
	saveErr error
	saves   int
}

func (store *failingStore) Load(string) (string, bool, error) {
	return "", false, store.loadErr
}

func (store *failingStore) Save(string, string) error {
	store.saves++
	return store.saveErr
}

func (store *failingStore) Close() error {
	return nil
}

type harness struct {
	session *Session
	clock   *clockwork.FakeClock
	logs    *bytes.Buffer
}

func newHarness(t *testing.T, store storage.Store) harness {
	t.Helper()
	clock := clockwork.NewFakeClock()
	watch := stopwatch.New(stopwatch.Config{Clock: clock})
	t.Cleanup(watch.Close)

	logs := &bytes.Buffer{}
	logger, err := logging.New(logs, "debug")
	require.NoError(t, err)

	return harness{
		session: New(watch, store, logger),
		clock:   clock,
		logs:    logs,
	}
}

func TestLapScenario(t *testing.T) {
	h := newHarness(t, storage.NewMemoryStore())

	_, ok := h.session.Lap()
	assert.False(t, ok, "no lap before the clock starts")

	assert.Equal(t, stopwatch.StateRunning, h.session.ToggleRun())
	h.clock.Advance(1500 * time.Millisecond)
	lap, ok := h.session.Lap()
	require.True(t, ok)
	assert.Equal(t, model.Lap{Ordinal: 1, ElapsedMs: 1500}, lap)

	h.clock.Advance(500 * time.Millisecond)
	assert.Equal(t, stopwatch.StatePaused, h.session.ToggleRun())
	h.clock.Advance(3 * time.Second)
	assert.Equal(t, 2000*time.Millisecond, h.session.Elapsed())

	h.session.ToggleRun()
	h.clock.Advance(1200 * time.Millisecond)
	assert.Equal(t, 3200*time.Millisecond, h.session.Elapsed())

	lap, ok = h.session.Lap()
	require.True(t, ok)
	assert.Equal(t, model.Lap{Ordinal: 2, ElapsedMs: 3200}, lap)
	assert.Equal(t, []model.Lap{
		{Ordinal: 2, ElapsedMs: 3200},
		{Ordinal: 1, ElapsedMs: 1500},
	}, h.session.Laps())
}

func TestStopwatchEvents(t *testing.T) {
	h := newHarness(t, storage.NewMemoryStore())
	events := h.session.Stopwatch().Subscribe(8)

	h.session.ToggleRun()
	select {
	case event := <-events:
		assert.Equal(t, stopwatch.EventStateChange, event.Type)
		assert.Equal(t, stopwatch.StateRunning, event.State)
	default:
		t.Fatal("no state change event after ToggleRun")
	}
}

func TestResetKeepsLaps(t *testing.T) {
	h := newHarness(t, storage.NewMemoryStore())
	h.session.ToggleRun()
	h.clock.Advance(time.Second)
	h.session.Lap()

	h.session.Reset()
	assert.Equal(t, stopwatch.StateIdle, h.session.State())
	assert.Zero(t, h.session.Elapsed())
	assert.Len(t, h.session.Laps(), 1)

	_, ok := h.session.Lap()
	assert.False(t, ok)
}

func TestStatePersistsAcrossSessions(t *testing.T) {
	store := storage.NewMemoryStore()

	first := newHarness(t, store)
	first.session.Restore()
	first.session.ToggleRun()
	first.clock.Advance(1500 * time.Millisecond)
	first.session.Lap()
	first.clock.Advance(125430*time.Millisecond - 1500*time.Millisecond)
	first.session.Lap()
	assert.Equal(t, model.DisplayLight, first.session.ToggleDisplayMode())

	second := newHarness(t, store)
	second.session.Restore()
	assert.Equal(t, first.session.Laps(), second.session.Laps())
	assert.Equal(t, model.DisplayLight, second.session.DisplayMode())
	assert.Zero(t, second.session.Elapsed())
}

func TestClearLapsPersists(t *testing.T) {
	store := storage.NewMemoryStore()
	h := newHarness(t, store)
	h.session.ToggleRun()
	h.clock.Advance(time.Second)
	h.session.Lap()

	h.session.ClearLaps()
	assert.Empty(t, h.session.Laps())

	restored := newHarness(t, store)
	restored.session.Restore()
	assert.Empty(t, restored.session.Laps())
}

func TestRestoreLegacyJSON(t *testing.T) {
	store := storage.NewMemoryStore()
	require.NoError(t, store.Save(storage.KeyLapTimes, `[{"id":1,"time":1500,"formattedTime":"00:01.50"}]`))
	require.NoError(t, store.Save(storage.KeyDarkMode, "false"))

	h := newHarness(t, store)
	h.session.Restore()

	assert.Equal(t, []model.Lap{{Ordinal: 1, ElapsedMs: 1500}}, h.session.Laps())
	assert.Equal(t, model.DisplayLight, h.session.DisplayMode())
}

func TestRestoreMalformedFallsBack(t *testing.T) {
	store := storage.NewMemoryStore()
	require.NoError(t, store.Save(storage.KeyLapTimes, "[{"))
	require.NoError(t, store.Save(storage.KeyDarkMode, "sepia"))

	h := newHarness(t, store)
	h.session.Restore()

	fresh := newHarness(t, storage.NewMemoryStore())
	fresh.session.Restore()

	assert.Equal(t, fresh.session.Laps(), h.session.Laps())
	assert.Equal(t, fresh.session.DisplayMode(), h.session.DisplayMode())
	assert.Contains(t, h.logs.String(), "discarding lap history")
	assert.Contains(t, h.logs.String(), "unrecognised display mode")
}

func TestRestoreLoadFailure(t *testing.T) {
	h := newHarness(t, &failingStore{loadErr: errors.New("connection refused")})
	h.session.Restore()

	assert.Empty(t, h.session.Laps())
	assert.Equal(t, model.DisplayDark, h.session.DisplayMode())
	assert.Contains(t, h.logs.String(), "connection refused")
}

func TestSaveFailureKeepsMemoryState(t *testing.T) {
	store := &failingStore{saveErr: errors.New("disk full")}
	h := newHarness(t, store)

	h.session.ToggleRun()
	h.clock.Advance(time.Second)
	lap, ok := h.session.Lap()
	require.True(t, ok)
	assert.Equal(t, 1, lap.Ordinal)
	assert.Equal(t, model.DisplayLight, h.session.ToggleDisplayMode())
	h.session.ClearLaps()

	assert.Equal(t, 3, store.saves)
	assert.Empty(t, h.session.Laps())
	assert.Equal(t, model.DisplayLight, h.session.DisplayMode())
	assert.Contains(t, h.logs.String(), "disk full")
}

func TestRejectedLapDoesNotSave(t *testing.T) {
	store := &failingStore{}
	h := newHarness(t, store)

	_, ok := h.session.Lap()
	assert.False(t, ok)
	assert.Zero(t, store.saves)
}
