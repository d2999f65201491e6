// Package logging builds the application logger.
package logging

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// New creates a [log.Logger] writing to w with timestamps enabled, at the
// named level ("debug", "info", "warn", "error", "fatal"). The writer
// defaults to [os.Stderr]; an empty level means info.
func New(w io.Writer, level string) (*log.Logger, error) {
	if w == nil {
		w = os.Stderr
	}
	lvl := log.InfoLevel
	if level != "" {
		var err error
		if lvl, err = log.ParseLevel(level); err != nil {
			return nil, err
		}
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Level:           lvl,
		Prefix:          "reel",
	}), nil
}
