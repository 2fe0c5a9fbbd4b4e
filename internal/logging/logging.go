// Package logging builds the structured loggers used across labtracker.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
)

// FileName is the log file kept in the data directory while the TUI owns
// the terminal.
const FileName = "labtracker.log"

// New returns a logger writing to w at the named level ("debug", "info",
// "warn", "error"). An empty level means info.
func New(w io.Writer, level string) (*log.Logger, error) {
	lvl := log.InfoLevel
	if level != "" {
		var err error
		lvl, err = log.ParseLevel(level)
		if err != nil {
			return nil, fmt.Errorf("log level %q: %w", level, err)
		}
	}
	return log.NewWithOptions(w, log.Options{
		Level:           lvl,
		Prefix:          "labtracker",
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
	}), nil
}

// OpenFile appends to <dir>/labtracker.log. The returned closer closes the
// file.
func OpenFile(dir, level string) (*log.Logger, io.Closer, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(filepath.Join(dir, FileName), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	l, err := New(f, level)
	if err != nil {
		_ = f.Close()
		return nil, nil, err
	}
	return l, f, nil
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.New(io.Discard)
}
