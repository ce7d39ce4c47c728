package preferences

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"stopwatch/internal/core/model"
)

// Settings defines persisted user preferences.
type Settings struct {
	DisplayMode model.DisplayMode
}

// DefaultSettings returns default settings for the stopwatch.
func DefaultSettings() Settings {
	return Settings{
		DisplayMode: model.DefaultDisplayMode,
	}
}

// LoadSettings parses a persisted display preference. Booleans (true means
// dark) and mode names are accepted. Anything else yields the defaults with
// ok set to false so the caller can report it; empty input is not an error.
func LoadSettings(raw string) (Settings, bool) {
	settings := DefaultSettings()
	if strings.TrimSpace(raw) == "" {
		return settings, true
	}

	var value interface{}
	if err := yaml.Unmarshal([]byte(raw), &value); err != nil {
		return settings, false
	}

	switch typed := value.(type) {
	case bool:
		if typed {
			settings.DisplayMode = model.DisplayDark
		} else {
			settings.DisplayMode = model.DisplayLight
		}
		return settings, true
	case string:
		mode, ok := model.ParseDisplayMode(typed)
		if !ok {
			return settings, false
		}
		settings.DisplayMode = mode
		return settings, true
	}
	return settings, false
}

// ToggleDisplayMode flips between light and dark and returns the new mode.
func (settings *Settings) ToggleDisplayMode() model.DisplayMode {
	settings.DisplayMode = settings.DisplayMode.Toggle()
	return settings.DisplayMode
}

// Serialize renders the display preference as a boolean, true meaning dark.
func (settings Settings) Serialize() string {
	return fmt.Sprintf("%t", settings.DisplayMode.IsDark())
}
