package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/spf13/pflag"

	"stopwatch/internal/config"
	"stopwatch/internal/core/stopwatch"
	"stopwatch/internal/core/timefmt"
	"stopwatch/internal/logging"
	"stopwatch/internal/platform"
	"stopwatch/internal/session"
	"stopwatch/internal/storage"
	"stopwatch/internal/ui/tray"
	"stopwatch/internal/ui/window"
	"stopwatch/resources"
)

const (
	appName = "Stopwatch"
	appID   = "com.stopwatch.app"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := config.Load(args)
	if err != nil {
		return err
	}
	logger, err := logging.New(os.Stderr, cfg.LogLevel)
	if err != nil {
		return err
	}

	guard, err := platform.AcquireSingleInstance(appID)
	if err != nil {
		if activateErr := platform.ActivateRunningInstance(appID, time.Second); activateErr != nil {
			logger.Warn("single instance", "err", err, "activate", activateErr)
		} else {
			logger.Info("stopwatch already running, bringing it forward")
		}
		return nil
	}
	defer func() {
		_ = guard.Release()
	}()

	fyneApp := app.NewWithID(appID)
	fyneApp.SetIcon(resources.MustIcon(resources.IconActive))

	store, err := storage.New(appName, cfg.Storage.Options(), fyneApp.Preferences())
	if err != nil {
		return fmt.Errorf("open %s storage: %w", cfg.Storage.Backend, err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Warn("close storage", "err", err)
		}
	}()
	logger.Debug("storage ready", "backend", cfg.Storage.Backend)

	watch := stopwatch.New(stopwatch.Config{TickInterval: cfg.TickInterval})
	defer watch.Close()

	sess := session.New(watch, store, logger.With("component", "session"))
	sess.Restore()
	events := sess.Stopwatch().Subscribe(64)

	var (
		view        *window.Window
		trayManager *tray.Manager
	)

	refresh := func() {
		elapsed := sess.Elapsed()
		running := sess.State() == stopwatch.StateRunning
		view.SetElapsed(elapsed)
		view.SetRunning(running)
		view.SetLaps(sess.Laps())
		if trayManager != nil {
			trayManager.SetRunning(running)
			trayManager.SetCanLap(elapsed.Milliseconds() > 0)
			trayManager.SetStatus(statusText(sess.State(), elapsed))
		}
	}

	toggleRun := func() {
		state := sess.ToggleRun()
		logger.Debug("toggle run", "state", state)
		refresh()
	}
	lap := func() {
		if recorded, ok := sess.Lap(); ok {
			logger.Debug("lap recorded", "ordinal", recorded.Ordinal, "elapsed", timefmt.Format(recorded.ElapsedMs))
		}
		refresh()
	}
	reset := func() {
		sess.Reset()
		refresh()
	}
	toggleTheme := func() {
		view.ApplyDisplayMode(sess.ToggleDisplayMode())
	}
	quit := func() {
		watch.Close()
		fyneApp.Quit()
	}

	view = window.New(fyneApp, window.Callbacks{
		OnToggleRun: toggleRun,
		OnLap:       lap,
		OnReset:     reset,
		OnClearLaps: func() {
			sess.ClearLaps()
			refresh()
		},
		OnToggleTheme: toggleTheme,
	})
	view.ApplyDisplayMode(sess.DisplayMode())

	if desktopApp, ok := fyneApp.(desktop.App); ok {
		trayManager = tray.New(desktopApp, tray.Callbacks{
			OnShow:        view.Show,
			OnToggleRun:   toggleRun,
			OnLap:         lap,
			OnReset:       reset,
			OnToggleTheme: toggleTheme,
			OnQuit:        quit,
		}, resources.MustIcon(resources.IconActive), resources.MustIcon(resources.IconPaused))
		view.SetCloseIntercept(view.Hide)
	} else {
		logger.Info("system tray unsupported on this platform")
	}
	refresh()
	guard.OnActivate(func() {
		fyne.Do(view.Show)
	})

	go func() {
		for event := range events {
			fyne.Do(func() {
				if !eventIsCurrent(event, sess.State()) {
					return
				}
				handleEvent(event, view, trayManager)
			})
		}
	}()

	view.Show()
	fyneApp.Run()
	logger.Debug("stopwatch exiting", "elapsed", timefmt.FormatDuration(watch.Current()), "laps", len(sess.Laps()))
	return nil
}

func handleEvent(event stopwatch.Event, view *window.Window, trayManager *tray.Manager) {
	view.SetElapsed(event.Elapsed)
	if event.Type == stopwatch.EventStateChange {
		view.SetRunning(event.State == stopwatch.StateRunning)
	}
	if trayManager == nil {
		return
	}
	trayManager.SetRunning(event.State == stopwatch.StateRunning)
	trayManager.SetCanLap(event.Elapsed.Milliseconds() > 0)
	trayManager.SetStatus(statusText(event.State, event.Elapsed))
}

// eventIsCurrent reports whether event still describes the stopwatch. Events
// queued before a later transition would otherwise undo the refresh that
// transition already applied.
func eventIsCurrent(event stopwatch.Event, current stopwatch.State) bool {
	return event.State == current
}

func statusText(state stopwatch.State, elapsed time.Duration) string {
	if state == stopwatch.StateIdle {
		return string(state)
	}
	return fmt.Sprintf("%s %s", state, timefmt.FormatCoarse(elapsed))
}
