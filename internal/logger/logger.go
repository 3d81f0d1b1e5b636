// Package logger configures structured logging for inkpanel.
//
// A single process-wide slog.Logger is built from the configured level and
// format. The --verbose flag lowers the level to debug at runtime, so
// services holding the logger pick up the change without being rebuilt.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

var (
	mu      sync.RWMutex
	verbose bool
)

var (
	base    = new(slog.LevelVar)
	output  = io.Writer(os.Stderr)
	format  = FormatText
	current = build()
)

// Options configure Setup.
type Options struct {
	// Level is debug, info, warn or error. Defaults to info.
	Level string

	// Format is text or json. Defaults to text.
	Format string

	// Output defaults to os.Stderr.
	Output io.Writer
}

// Setup rebuilds the process logger, installs it as the slog default and
// returns it.
func Setup(opts Options) (*slog.Logger, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}

	f := strings.ToLower(strings.TrimSpace(opts.Format))
	switch f {
	case "":
		f = FormatText
	case FormatText, FormatJSON:
	default:
		return nil, fmt.Errorf("unknown log format %q", opts.Format)
	}

	mu.Lock()
	defer mu.Unlock()

	if opts.Output != nil {
		output = opts.Output
	}
	format = f
	base.Set(level)
	applyVerbose()
	current = build()
	slog.SetDefault(current)
	return current, nil
}

// ParseLevel converts a level name. Empty means info.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}

// Default returns the process logger.
func Default() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// Discard returns a logger that drops everything. Useful in tests.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// SetVerbose enables or disables debug output.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
	applyVerbose()
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput sets the output writer and rebuilds the logger.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
	current = build()
}

// Debug logs at debug level on the process logger.
func Debug(msg string, args ...any) {
	Default().Debug(msg, args...)
}

// Info logs at info level on the process logger.
func Info(msg string, args ...any) {
	Default().Info(msg, args...)
}

// Warn logs at warn level on the process logger.
func Warn(msg string, args ...any) {
	Default().Warn(msg, args...)
}

// level is shared by every handler built here so SetVerbose applies to
// loggers that were handed out earlier.
var level = new(slog.LevelVar)

// applyVerbose must be called with mu held.
func applyVerbose() {
	if verbose {
		level.Set(slog.LevelDebug)
		return
	}
	level.Set(base.Level())
}

// build must be called with mu held, except during package init.
func build() *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if format == FormatJSON {
		return slog.New(slog.NewJSONHandler(output, opts))
	}
	return slog.New(slog.NewTextHandler(output, opts))
}
