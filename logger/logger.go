// Package logger is a process-wide slog facade with a swappable sink, so
// the TUI can take over log output while it owns the terminal.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Config selects the minimum level and where log lines go.
type Config struct {
	Enabled bool
	Level   string
	Stdout  bool
	File    string
}

var (
	mu   sync.RWMutex
	cur  *slog.Logger
	cfg  Config
	file *os.File
	sink io.Writer // non-nil while the TUI has intercepted output
)

// Init builds the logger. Relative file paths resolve against dir. When
// the log file cannot be opened the remaining writers still work and the
// open error is returned for the caller to report.
func Init(c Config, dir string) error {
	mu.Lock()
	defer mu.Unlock()

	cfg = c
	if file != nil {
		file.Close()
		file = nil
	}
	if !c.Enabled {
		cur = nil
		return nil
	}

	var openErr error
	if c.File != "" {
		path := resolvePath(c.File, dir)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("logger: create log dir: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			openErr = fmt.Errorf("logger: open log file: %w", err)
		} else {
			file = f
		}
	}

	apply()
	return openErr
}

// Intercept routes stdout logging into w until Restore. The log file, if
// any, keeps receiving every line.
func Intercept(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	sink = w
	apply()
}

// Restore sends logging back to stdout after an Intercept.
func Restore() {
	mu.Lock()
	defer mu.Unlock()
	sink = nil
	apply()
}

// apply rebuilds the handler from current state; callers hold mu.
func apply() {
	if !cfg.Enabled {
		cur = nil
		return
	}

	var out []io.Writer
	switch {
	case sink != nil:
		out = append(out, sink)
	case cfg.Stdout:
		out = append(out, os.Stdout)
	}
	if file != nil {
		out = append(out, file)
	}
	if len(out) == 0 {
		out = append(out, os.Stdout)
	}

	opts := &slog.HandlerOptions{Level: parseLevel(cfg.Level)}
	cur = slog.New(slog.NewTextHandler(io.MultiWriter(out...), opts))
}

// Debug logs a debug message.
func Debug(msg string, args ...any) { emit(slog.LevelDebug, msg, args...) }

// Info logs an info message.
func Info(msg string, args ...any) { emit(slog.LevelInfo, msg, args...) }

// Warn logs a warning message.
func Warn(msg string, args ...any) { emit(slog.LevelWarn, msg, args...) }

// Error logs an error message.
func Error(msg string, args ...any) { emit(slog.LevelError, msg, args...) }

func emit(level slog.Level, msg string, args ...any) {
	mu.RLock()
	l := cur
	mu.RUnlock()

	if l == nil {
		return
	}
	l.Log(nil, level, msg, args...)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

func resolvePath(path, dir string) string {
	if strings.HasPrefix(path, "~") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	if filepath.IsAbs(path) || dir == "" {
		return path
	}
	return filepath.Join(dir, path)
}
