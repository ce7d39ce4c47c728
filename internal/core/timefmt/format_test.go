package timefmt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name         string
		milliseconds int64
		want         string
	}{
		{name: "zero", milliseconds: 0, want: "00:00.00"},
		{name: "negative clamps", milliseconds: -1500, want: "00:00.00"},
		{name: "sub centisecond", milliseconds: 9, want: "00:00.00"},
		{name: "one centisecond", milliseconds: 10, want: "00:00.01"},
		{name: "lap", milliseconds: 1500, want: "00:01.50"},
		{name: "minutes and seconds", milliseconds: 125430, want: "02:05.43"},
		{name: "just under an hour", milliseconds: 3599999, want: "59:59.99"},
		{name: "minutes do not wrap", milliseconds: 6000000, want: "100:00.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.milliseconds))
		})
	}
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "02:05.43", FormatDuration(125430*time.Millisecond+999*time.Microsecond))
	assert.Equal(t, "00:00.00", FormatDuration(-time.Second))
}

func TestFormatCoarse(t *testing.T) {
	assert.Equal(t, "00:00", FormatCoarse(-time.Minute))
	assert.Equal(t, "00:59", FormatCoarse(59999*time.Millisecond))
	assert.Equal(t, "02:05", FormatCoarse(125430*time.Millisecond))
	assert.Equal(t, "61:01", FormatCoarse(time.Hour+61*time.Second))
}
