package window

import (
	"fmt"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"stopwatch/internal/core/model"
	"stopwatch/internal/core/timefmt"
)

// Callbacks defines window action handlers.
type Callbacks struct {
	OnToggleRun   func()
	OnLap         func()
	OnReset       func()
	OnClearLaps   func()
	OnToggleTheme func()
}

// Window is the main stopwatch window.
type Window struct {
	app         fyne.App
	window      fyne.Window
	callbacks   Callbacks
	timerLabel  *canvas.Text
	captionText *canvas.Text
	runButton   *widget.Button
	lapButton   *widget.Button
	resetButton *widget.Button
	themeButton *widget.Button
	clearButton *widget.Button
	lapHeader   *widget.Label
	lapList     *widget.List
	lapPanel    *fyne.Container
	laps        []model.Lap
	running     bool
}

const (
	timerTextSize   = 48
	captionTextSize = 12
	defaultWidth    = float32(380)
	defaultHeight   = float32(520)
)

// New creates the stopwatch window. It is hidden until Show is called.
func New(app fyne.App, callbacks Callbacks) *Window {
	window := app.NewWindow("Stopwatch")
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}

	timerLabel := canvas.NewText(timefmt.Format(0), theme.Color(theme.ColorNameForeground))
	timerLabel.Alignment = fyne.TextAlignCenter
	timerLabel.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	timerLabel.TextSize = timerTextSize

	captionText := canvas.NewText("MM:SS.CC", theme.Color(theme.ColorNamePlaceHolder))
	captionText.Alignment = fyne.TextAlignCenter
	captionText.TextSize = captionTextSize

	view := &Window{
		app:         app,
		window:      window,
		callbacks:   callbacks,
		timerLabel:  timerLabel,
		captionText: captionText,
	}

	view.runButton = widget.NewButtonWithIcon("Start", theme.MediaPlayIcon(), func() {
		if view.callbacks.OnToggleRun != nil {
			view.callbacks.OnToggleRun()
		}
	})
	view.runButton.Importance = widget.HighImportance

	view.lapButton = widget.NewButtonWithIcon("Lap", theme.MediaRecordIcon(), func() {
		if view.callbacks.OnLap != nil {
			view.callbacks.OnLap()
		}
	})
	view.lapButton.Disable()

	view.resetButton = widget.NewButtonWithIcon("Reset", theme.MediaReplayIcon(), func() {
		if view.callbacks.OnReset != nil {
			view.callbacks.OnReset()
		}
	})

	view.themeButton = widget.NewButtonWithIcon("", theme.ColorPaletteIcon(), func() {
		if view.callbacks.OnToggleTheme != nil {
			view.callbacks.OnToggleTheme()
		}
	})
	view.themeButton.Importance = widget.LowImportance

	view.clearButton = widget.NewButtonWithIcon("Clear", theme.ContentClearIcon(), func() {
		if view.callbacks.OnClearLaps != nil {
			view.callbacks.OnClearLaps()
		}
	})
	view.clearButton.Importance = widget.DangerImportance

	view.lapHeader = widget.NewLabelWithStyle(lapHeaderText(0), fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	view.lapList = widget.NewList(
		func() int {
			return len(view.laps)
		},
		func() fyne.CanvasObject {
			name := widget.NewLabel("Lap 000")
			elapsed := widget.NewLabelWithStyle(timefmt.Format(0), fyne.TextAlignTrailing, fyne.TextStyle{Monospace: true})
			return container.NewBorder(nil, nil, name, elapsed)
		},
		func(id widget.ListItemID, item fyne.CanvasObject) {
			if id < 0 || id >= len(view.laps) {
				return
			}
			name, elapsed := lapRowText(view.laps[id])
			row := item.(*fyne.Container)
			// With no centre content, Border keeps leading then trailing.
			row.Objects[0].(*widget.Label).SetText(name)
			row.Objects[1].(*widget.Label).SetText(elapsed)
		},
	)

	header := container.NewBorder(nil, nil, nil, view.themeButton,
		widget.NewLabelWithStyle("Stopwatch", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}))
	timerPanel := container.New(&timerPanelLayout{}, timerLabel, captionText)
	controls := container.NewHBox(layout.NewSpacer(), view.runButton, view.lapButton, view.resetButton, layout.NewSpacer())
	view.lapPanel = container.NewBorder(
		container.NewBorder(nil, nil, nil, view.clearButton, view.lapHeader),
		nil, nil, nil,
		view.lapList,
	)
	view.lapPanel.Hide()

	top := container.NewVBox(header, timerPanel, controls, widget.NewSeparator())
	window.SetContent(container.NewBorder(top, nil, nil, nil, view.lapPanel))
	window.Resize(fyne.NewSize(defaultWidth, defaultHeight))

	return view
}

// Show displays the window.
func (view *Window) Show() {
	view.window.Show()
	view.window.RequestFocus()
}

// Hide hides the window without closing it.
func (view *Window) Hide() {
	view.window.Hide()
}

// SetCloseIntercept replaces the default close behaviour.
func (view *Window) SetCloseIntercept(handler func()) {
	view.window.SetCloseIntercept(handler)
}

// SetElapsed updates the timer label. Laps can only be taken once time has passed.
func (view *Window) SetElapsed(elapsed time.Duration) {
	view.timerLabel.Text = timefmt.FormatDuration(elapsed)
	view.timerLabel.Refresh()
	if elapsed.Milliseconds() > 0 {
		view.lapButton.Enable()
	} else {
		view.lapButton.Disable()
	}
}

// SetRunning switches the run button between start and pause.
func (view *Window) SetRunning(running bool) {
	if view.running == running {
		return
	}
	view.running = running
	label, icon := runButtonFace(running)
	view.runButton.SetText(label)
	view.runButton.SetIcon(icon)
}

// SetLaps replaces the lap list, most recent first.
func (view *Window) SetLaps(laps []model.Lap) {
	view.laps = laps
	view.lapHeader.SetText(lapHeaderText(len(laps)))
	if len(laps) == 0 {
		view.lapPanel.Hide()
	} else {
		view.lapPanel.Show()
	}
	view.lapList.Refresh()
	view.lapList.ScrollToTop()
}

// ApplyDisplayMode switches the application theme variant.
func (view *Window) ApplyDisplayMode(mode model.DisplayMode) {
	view.app.Settings().SetTheme(NewTheme(mode))
	view.timerLabel.Color = theme.Color(theme.ColorNameForeground)
	view.captionText.Color = theme.Color(theme.ColorNamePlaceHolder)
	view.timerLabel.Refresh()
	view.captionText.Refresh()
}

func runButtonFace(running bool) (string, fyne.Resource) {
	if running {
		return "Pause", theme.MediaPauseIcon()
	}
	return "Start", theme.MediaPlayIcon()
}

func lapHeaderText(count int) string {
	return fmt.Sprintf("Lap Times (%d)", count)
}

func lapRowText(lap model.Lap) (string, string) {
	return fmt.Sprintf("Lap %d", lap.Ordinal), timefmt.Format(lap.ElapsedMs)
}

type timerPanelLayout struct{}

func (panel *timerPanelLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	if len(objects) < 2 {
		return
	}
	timer := objects[0]
	caption := objects[1]

	timerSize := timer.MinSize()
	captionSize := caption.MinSize()
	contentHeight := timerSize.Height + captionSize.Height
	top := (size.Height - contentHeight) / 2
	if top < 0 {
		top = 0
	}

	timer.Move(fyne.NewPos(0, top))
	timer.Resize(fyne.NewSize(size.Width, timerSize.Height))
	caption.Move(fyne.NewPos(0, top+timerSize.Height))
	caption.Resize(fyne.NewSize(size.Width, captionSize.Height))
}

func (panel *timerPanelLayout) MinSize(objects []fyne.CanvasObject) fyne.Size {
	if len(objects) < 2 {
		return fyne.NewSize(0, 0)
	}
	timerSize := objects[0].MinSize()
	captionSize := objects[1].MinSize()
	width := timerSize.Width
	if captionSize.Width > width {
		width = captionSize.Width
	}
	return fyne.NewSize(width+20, timerSize.Height+captionSize.Height+24)
}

var _ fyne.Layout = (*timerPanelLayout)(nil)
