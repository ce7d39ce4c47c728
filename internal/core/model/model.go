package model

import "strings"

// Lap is a single recorded lap. Ordinal reflects creation order starting at 1.
type Lap struct {
	Ordinal   int
	ElapsedMs int64
}

// DisplayMode selects the light or dark appearance.
type DisplayMode string

const (
	DisplayLight DisplayMode = "light"
	DisplayDark  DisplayMode = "dark"
)

// DefaultDisplayMode is used when nothing valid has been persisted.
const DefaultDisplayMode = DisplayDark

// Toggle returns the opposite mode.
func (mode DisplayMode) Toggle() DisplayMode {
	if mode == DisplayLight {
		return DisplayDark
	}
	return DisplayLight
}

// IsDark reports whether mode is the dark appearance.
func (mode DisplayMode) IsDark() bool {
	return mode == DisplayDark
}

// ParseDisplayMode maps a mode name to a DisplayMode.
func ParseDisplayMode(value string) (DisplayMode, bool) {
	switch DisplayMode(strings.ToLower(strings.TrimSpace(value))) {
	case DisplayLight:
		return DisplayLight, true
	case DisplayDark:
		return DisplayDark, true
	}
	return DefaultDisplayMode, false
}
