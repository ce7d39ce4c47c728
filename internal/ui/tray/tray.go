package tray

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShow        func()
	OnToggleRun   func()
	OnLap         func()
	OnReset       func()
	OnToggleTheme func()
	OnQuit        func()
}

// Manager handles system tray state.
type Manager struct {
	app         desktop.App
	statusItem  *fyne.MenuItem
	runItem     *fyne.MenuItem
	lapItem     *fyne.MenuItem
	callbacks   Callbacks
	running     bool
	statusLabel string
	activeIcon  fyne.Resource
	pausedIcon  fyne.Resource
}

// New creates a tray manager with the provided callbacks. The icons are shown
// while running and while stopped respectively; either may be nil.
func New(app desktop.App, callbacks Callbacks, activeIcon, pausedIcon fyne.Resource) *Manager {
	manager := &Manager{
		app:         app,
		callbacks:   callbacks,
		statusLabel: "idle",
		activeIcon:  activeIcon,
		pausedIcon:  pausedIcon,
	}

	manager.statusItem = fyne.NewMenuItem("", nil)
	manager.statusItem.Disabled = true

	manager.runItem = fyne.NewMenuItem("Start", func() {
		if manager.callbacks.OnToggleRun != nil {
			manager.callbacks.OnToggleRun()
		}
	})

	manager.lapItem = fyne.NewMenuItem("Lap", func() {
		if manager.callbacks.OnLap != nil {
			manager.callbacks.OnLap()
		}
	})
	manager.lapItem.Disabled = true

	manager.refreshStatus()
	manager.refreshIcon()
	return manager
}

// SetStatus updates the status label. Unchanged labels do not rebuild the menu.
func (manager *Manager) SetStatus(status string) {
	if status == manager.statusLabel {
		return
	}
	manager.statusLabel = status
	manager.refreshStatus()
}

// SetRunning updates the run item and tray icon.
func (manager *Manager) SetRunning(running bool) {
	if running == manager.running {
		return
	}
	manager.running = running
	if running {
		manager.runItem.Label = "Pause"
	} else {
		manager.runItem.Label = "Start"
	}
	manager.refreshIcon()
	manager.refreshMenu()
}

// SetCanLap enables the lap item once elapsed time is non-zero.
func (manager *Manager) SetCanLap(canLap bool) {
	if manager.lapItem.Disabled == !canLap {
		return
	}
	manager.lapItem.Disabled = !canLap
	manager.refreshMenu()
}

func (manager *Manager) refreshStatus() {
	manager.statusItem.Label = fmt.Sprintf("Status: %s", manager.statusLabel)
	manager.refreshMenu()
}

func (manager *Manager) refreshIcon() {
	icon := manager.pausedIcon
	if manager.running {
		icon = manager.activeIcon
	}
	if manager.app != nil && icon != nil {
		manager.app.SetSystemTrayIcon(icon)
	}
}

func (manager *Manager) refreshMenu() {
	if manager.app != nil {
		manager.app.SetSystemTrayMenu(fyne.NewMenu("Stopwatch",
			manager.statusItem,
			fyne.NewMenuItem("Show stopwatch", func() {
				if manager.callbacks.OnShow != nil {
					manager.callbacks.OnShow()
				}
			}),
			fyne.NewMenuItemSeparator(),
			manager.runItem,
			manager.lapItem,
			fyne.NewMenuItem("Reset", func() {
				if manager.callbacks.OnReset != nil {
					manager.callbacks.OnReset()
				}
			}),
			fyne.NewMenuItem("Toggle dark mode", func() {
				if manager.callbacks.OnToggleTheme != nil {
					manager.callbacks.OnToggleTheme()
				}
			}),
			fyne.NewMenuItemSeparator(),
			fyne.NewMenuItem("Quit", func() {
				if manager.callbacks.OnQuit != nil {
					manager.callbacks.OnQuit()
				}
			}),
		))
	}
}
