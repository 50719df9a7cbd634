// Package logger provides a lazily-initialized slog logger that appends
// to a file under the arbor logs directory.
//
// The CLI is an interactive tool, so logs go to a file rather than the
// terminal; stderr is reserved for user-facing messages and --verbose
// output. If the log file cannot be opened, logging degrades to a no-op
// rather than failing the command.
package logger

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/mmr-tortoise/arbor/internal/paths"
)

var (
	mu       sync.Mutex
	root     *slog.Logger
	levelVar = new(slog.LevelVar)
	initDone bool
)

// DefaultLogPath returns the default log file path.
func DefaultLogPath() string {
	return filepath.Join(paths.LogsDir(), "arbor.log")
}

// SetDebug enables or disables debug level logging.
func SetDebug(enabled bool) {
	if enabled {
		levelVar.Set(slog.LevelDebug)
	} else {
		levelVar.Set(slog.LevelInfo)
	}
}

// Init initializes the logger with a custom path. If not called, the
// default path is used on first log call. Calling Init twice is a no-op.
func Init(path string) error {
	mu.Lock()
	defer mu.Unlock()

	if initDone {
		return nil
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create log directory %s: %w", dir, err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file %s: %w", path, err)
	}

	root = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: levelVar}))
	initDone = true
	return nil
}

// ensureInit initializes the logger with the default path if needed.
// Caller must hold mu. Failure leaves root nil and logging a no-op.
func ensureInit() {
	if initDone {
		return
	}

	path := DefaultLogPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		initDone = true
		return
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		initDone = true
		return
	}
	root = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: levelVar}))
	initDone = true
}

func get() *slog.Logger {
	mu.Lock()
	defer mu.Unlock()
	ensureInit()
	return root
}

// Debug logs at debug level.
func Debug(msg string, args ...any) {
	if l := get(); l != nil {
		l.Debug(msg, args...)
	}
}

// Info logs at info level.
func Info(msg string, args ...any) {
	if l := get(); l != nil {
		l.Info(msg, args...)
	}
}

// Warn logs at warn level.
func Warn(msg string, args ...any) {
	if l := get(); l != nil {
		l.Warn(msg, args...)
	}
}

// Error logs at error level.
func Error(msg string, args ...any) {
	if l := get(); l != nil {
		l.Error(msg, args...)
	}
}
