// Package log provides a small leveled logger built on top of the standard library's slog package.
//
// A global logger writes JSON (or text if LOG_FORMAT=text) to os.Stderr. The level is
// controlled globally via SetLevel and is normally set once by the root command from
// the --log-level flag or the WPHEADER_LOG_LEVEL environment variable.
//
// SetOutput redirects log output, primarily for tests. It returns a function that
// restores the previous writer.
package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

const (
	levelDebugStr = "DEBUG"
	levelInfoStr  = "INFO"
	levelWarnStr  = "WARN"
	levelErrorStr = "ERROR"
)

var (
	mu            sync.RWMutex
	logger        *slog.Logger
	globalLeveler           = &slog.LevelVar{}
	outputWriter  io.Writer = os.Stderr

	// ErrInvalidLogLevel indicates an invalid log level string was provided.
	ErrInvalidLogLevel = fmt.Errorf("invalid log level")
)

func init() {
	globalLeveler.Set(slog.LevelInfo)
	configureLogger()
}

// configureLogger rebuilds the handler from the current writer and LOG_FORMAT.
// Timestamps are dropped from JSON output so captured logs are stable.
func configureLogger() {
	mu.Lock()
	defer mu.Unlock()

	opts := &slog.HandlerOptions{Level: globalLeveler}

	var handler slog.Handler
	if strings.EqualFold(os.Getenv("LOG_FORMAT"), "text") {
		handler = slog.NewTextHandler(outputWriter, opts)
	} else {
		opts.ReplaceAttr = func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		}
		handler = slog.NewJSONHandler(outputWriter, opts)
	}
	logger = slog.New(handler)
}

func current() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// SetOutput changes the output destination for the logger.
// It returns a function that restores the original writer.
func SetOutput(w io.Writer) (restore func()) {
	mu.Lock()
	original := outputWriter
	outputWriter = w
	mu.Unlock()
	configureLogger()

	return func() {
		mu.Lock()
		outputWriter = original
		mu.Unlock()
		configureLogger()
	}
}

// Debug logs a debug message with optional key-value pairs
func Debug(msg string, args ...any) {
	current().Debug(msg, args...)
}

// Info logs an info message with optional key-value pairs
func Info(msg string, args ...any) {
	current().Info(msg, args...)
}

// Warn logs a warning message with optional key-value pairs
func Warn(msg string, args ...any) {
	current().Warn(msg, args...)
}

// Error logs an error message with optional key-value pairs
func Error(msg string, args ...any) {
	current().Error(msg, args...)
}

// Debugf logs a printf-style debug message.
func Debugf(format string, args ...any) {
	if IsDebugEnabled() {
		current().Debug(fmt.Sprintf(format, args...))
	}
}

// Infof logs a printf-style info message.
func Infof(format string, args ...any) {
	current().Info(fmt.Sprintf(format, args...))
}

// Warnf logs a printf-style warning.
func Warnf(format string, args ...any) {
	current().Warn(fmt.Sprintf(format, args...))
}

// Errorf logs a printf-style error message.
func Errorf(format string, args ...any) {
	current().Error(fmt.Sprintf(format, args...))
}

// Logger returns the underlying slog.Logger
func Logger() *slog.Logger {
	return current()
}

// IsDebugEnabled reports whether debug messages are currently emitted.
func IsDebugEnabled() bool {
	return globalLeveler.Level() <= slog.LevelDebug
}

// SetLevel changes the log level at runtime.
func SetLevel(level Level) {
	globalLeveler.Set(slog.Level(level))
}

// CurrentLevel returns the active level.
func CurrentLevel() Level {
	return Level(globalLeveler.Level())
}

// Level is a log level compatible with slog.Level.
type Level int8

// Log level definitions.
const (
	LevelDebug Level = Level(slog.LevelDebug)
	LevelInfo  Level = Level(slog.LevelInfo)
	LevelWarn  Level = Level(slog.LevelWarn)
	LevelError Level = Level(slog.LevelError)
)

// String returns the string representation of the log level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return levelDebugStr
	case LevelInfo:
		return levelInfoStr
	case LevelWarn:
		return levelWarnStr
	case LevelError:
		return levelErrorStr
	default:
		return "UNKNOWN"
	}
}

// ParseLevel parses a level name, case-insensitively. "WARNING" is accepted as WARN.
// On failure it returns LevelInfo and an error wrapping ErrInvalidLogLevel.
func ParseLevel(levelStr string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(levelStr)) {
	case levelDebugStr:
		return LevelDebug, nil
	case levelInfoStr:
		return LevelInfo, nil
	case levelWarnStr, "WARNING":
		return LevelWarn, nil
	case levelErrorStr:
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("%w: %s", ErrInvalidLogLevel, levelStr)
	}
}
