// Package logging builds the application's structured logger.
package logging

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

const prefix = "stopwatch"

// New returns a logger writing to w at the named level (debug, info, warn, error).
func New(w io.Writer, level string) (*log.Logger, error) {
	parsed, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parse log level %q: %w", level, err)
	}
	return log.NewWithOptions(w, log.Options{
		Prefix:          prefix,
		Level:           parsed,
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
	}), nil
}

