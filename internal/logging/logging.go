// Package logging configures the process-wide slog logger.
//
// The interactive menu owns the terminal, so by default logs are discarded
// unless a log file is given; debug mode lowers the level to Debug and, for
// the non-interactive commands, writes to stderr.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// Options selects where logs go and how verbose they are
type Options struct {
	Debug  bool      // Enable debug level
	File   string    // Append logs to this file; empty means Stderr or discard
	Stderr io.Writer // Used when File is empty and Debug is set; nil discards
}

// Setup installs the default logger and returns a close function for the log file
func Setup(opts Options) (func() error, error) {
	level := slog.LevelInfo
	if opts.Debug {
		level = slog.LevelDebug
	}

	var (
		w       io.Writer = io.Discard
		closeFn           = func() error { return nil }
	)
	switch {
	case opts.File != "":
		if err := os.MkdirAll(filepath.Dir(opts.File), 0755); err != nil {
			return closeFn, err
		}
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return closeFn, err
		}
		w = f
		closeFn = f.Close
	case opts.Debug && opts.Stderr != nil:
		w = opts.Stderr
	}

	slog.SetDefault(New(w, level))
	return closeFn, nil
}

// New builds a text logger writing to w
func New(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Discard returns a logger that drops everything (used in tests)
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// For returns the default logger tagged with a component name
func For(component string) *slog.Logger {
	return slog.Default().With(slog.String("component", component))
}
