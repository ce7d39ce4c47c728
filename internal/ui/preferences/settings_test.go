package preferences

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"stopwatch/internal/core/model"
)

func TestDefaultSettings(t *testing.T) {
	assert.Equal(t, model.DisplayDark, DefaultSettings().DisplayMode)
}

func TestToggleDisplayMode(t *testing.T) {
	settings := DefaultSettings()

	assert.Equal(t, model.DisplayLight, settings.ToggleDisplayMode())
	assert.Equal(t, model.DisplayLight, settings.DisplayMode)
	assert.Equal(t, model.DisplayDark, settings.ToggleDisplayMode())
}

func TestLoadSettings(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		want   model.DisplayMode
		wantOK bool
	}{
		{name: "absent", raw: "", want: model.DisplayDark, wantOK: true},
		{name: "json true", raw: "true", want: model.DisplayDark, wantOK: true},
		{name: "json false", raw: "false", want: model.DisplayLight, wantOK: true},
		{name: "trailing newline", raw: "false\n", want: model.DisplayLight, wantOK: true},
		{name: "mode name", raw: "light", want: model.DisplayLight, wantOK: true},
		{name: "mode name mixed case", raw: "Dark", want: model.DisplayDark, wantOK: true},
		{name: "unknown name", raw: "sepia", want: model.DisplayDark, wantOK: false},
		{name: "number", raw: "1", want: model.DisplayDark, wantOK: false},
		{name: "list", raw: "[true]", want: model.DisplayDark, wantOK: false},
		{name: "garbage", raw: "{{", want: model.DisplayDark, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings, ok := LoadSettings(tt.raw)
			assert.Equal(t, tt.want, settings.DisplayMode)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestSerializeRoundTrip(t *testing.T) {
	for _, mode := range []model.DisplayMode{model.DisplayDark, model.DisplayLight} {
		settings := Settings{DisplayMode: mode}

		restored, ok := LoadSettings(settings.Serialize())
		assert.True(t, ok)
		assert.Equal(t, settings, restored)
	}
	assert.Equal(t, "true", DefaultSettings().Serialize())
}
