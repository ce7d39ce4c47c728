// Package timefmt renders elapsed stopwatch time for display.
package timefmt

import (
	"fmt"
	"time"
)

// Format renders milliseconds as MM:SS.CC. Negative input renders as zero and
// minutes are not wrapped, so long sessions grow a third minute digit.
func Format(milliseconds int64) string {
	if milliseconds < 0 {
		milliseconds = 0
	}
	minutes := milliseconds / 60000
	seconds := (milliseconds % 60000) / 1000
	centiseconds := (milliseconds / 10) % 100
	return fmt.Sprintf("%02d:%02d.%02d", minutes, seconds, centiseconds)
}

// FormatDuration renders a duration with Format, truncating to whole milliseconds.
func FormatDuration(elapsed time.Duration) string {
	return Format(elapsed.Milliseconds())
}

// FormatCoarse renders whole minutes and seconds as MM:SS.
func FormatCoarse(elapsed time.Duration) string {
	if elapsed < 0 {
		elapsed = 0
	}
	seconds := int64(elapsed / time.Second)
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
