// Package logging provides structured JSON logging for allocator runs.
// It wraps log/slog and carries persistent attributes such as the run ID
// across child loggers.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Log levels supported by the logger
const (
	LevelDebug = "DEBUG"
	LevelInfo  = "INFO"
	LevelWarn  = "WARN"
	LevelError = "ERROR"
)

// LogFileName is the file created inside the log directory.
const LogFileName = "allocator.log"

// Logger provides structured logging with persistent attributes.
// It is safe for concurrent use.
type Logger struct {
	logger *slog.Logger
	file   *os.File
	mu     sync.Mutex
	attrs  []slog.Attr
}

// NewLogger creates a Logger that writes JSON lines to {dir}/allocator.log.
// If dir is empty, logs go to stderr. Unrecognized levels fall back to INFO.
func NewLogger(dir string, level string) (*Logger, error) {
	var writer io.Writer
	var file *os.File

	if dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}

		var err error
		file, err = os.OpenFile(filepath.Join(dir, LogFileName), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		writer = file
	} else {
		writer = os.Stderr
	}

	return newWithWriter(writer, file, level), nil
}

// NewWriterLogger creates a Logger that writes JSON lines to w.
func NewWriterLogger(w io.Writer, level string) *Logger {
	return newWithWriter(w, nil, level)
}

func newWithWriter(w io.Writer, file *os.File, level string) *Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slogLevel(level)})
	return &Logger{
		logger: slog.New(handler),
		file:   file,
	}
}

func slogLevel(level string) slog.Level {
	switch ParseLevel(level) {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// WithRun returns a child Logger that tags every entry with the run ID.
func (l *Logger) WithRun(runID string) *Logger {
	return l.With("run_id", runID)
}

// With returns a child Logger with extra key-value attributes.
// Non-string keys are skipped.
func (l *Logger) With(args ...any) *Logger {
	if len(args) == 0 {
		return l
	}

	attrs := make([]slog.Attr, 0, len(l.attrs)+len(args)/2)
	attrs = append(attrs, l.attrs...)
	for i := 0; i < len(args)-1; i += 2 {
		key, ok := args[i].(string)
		if !ok {
			continue
		}
		attrs = append(attrs, slog.Any(key, args[i+1]))
	}

	return &Logger{
		logger: l.logger,
		file:   l.file,
		attrs:  attrs,
	}
}

func (l *Logger) Debug(msg string, args ...any) { l.log(slog.LevelDebug, msg, args...) }
func (l *Logger) Info(msg string, args ...any)  { l.log(slog.LevelInfo, msg, args...) }
func (l *Logger) Warn(msg string, args ...any)  { l.log(slog.LevelWarn, msg, args...) }
func (l *Logger) Error(msg string, args ...any) { l.log(slog.LevelError, msg, args...) }

func (l *Logger) log(level slog.Level, msg string, args ...any) {
	all := make([]any, 0, len(l.attrs)*2+len(args))
	for _, attr := range l.attrs {
		all = append(all, attr.Key, attr.Value.Any())
	}
	all = append(all, args...)

	l.logger.Log(context.Background(), level, msg, all...)
}

// Close flushes and closes the log file. It is a no-op for loggers that do
// not own a file.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file != nil {
		if err := l.file.Sync(); err != nil {
			return fmt.Errorf("failed to sync log file: %w", err)
		}
		if err := l.file.Close(); err != nil {
			return fmt.Errorf("failed to close log file: %w", err)
		}
		l.file = nil
	}
	return nil
}

// NopLogger returns a Logger that discards all output.
func NopLogger() *Logger {
	return NewWriterLogger(io.Discard, LevelError)
}

// ParseLevel normalizes a level string, returning LevelInfo when it is not
// recognized.
func ParseLevel(level string) string {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case LevelDebug:
		return LevelDebug
	case LevelInfo:
		return LevelInfo
	case LevelWarn:
		return LevelWarn
	case LevelError:
		return LevelError
	default:
		return LevelInfo
	}
}

// ValidLevels returns the accepted level strings.
func ValidLevels() []string {
	return []string{LevelDebug, LevelInfo, LevelWarn, LevelError}
}

// IsValidLevel reports whether level names a supported level.
func IsValidLevel(level string) bool {
	upper := strings.ToUpper(strings.TrimSpace(level))
	for _, valid := range ValidLevels() {
		if upper == valid {
			return true
		}
	}
	return false
}
