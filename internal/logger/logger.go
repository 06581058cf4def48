// Package logger is the process-wide slog setup: readable lines on the
// console, optional JSON lines in a file, and redaction of keys and quote
// bodies on both.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/term"
)

const (
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
)

var (
	globalLogger *slog.Logger
	isTerminal   = term.IsTerminal
)

func init() {
	Init(LevelInfo, nil)
}

// ParseLevel maps a config or flag value to a level. Blank means info.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "info":
		return LevelInfo, nil
	case "debug":
		return LevelDebug, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	}
	return LevelInfo, fmt.Errorf("unknown log level %q (want debug, info, warn or error)", s)
}

// Init logs to stderr, colored only when stderr is a terminal and no log
// file is in use. logFile, when set, receives JSON lines.
func Init(level slog.Level, logFile io.Writer) {
	color := logFile == nil && isTerminal(int(os.Stderr.Fd()))
	InitWriter(level, os.Stderr, color, logFile)
}

// InitWriter is Init with an explicit console. Full-screen front ends pass
// io.Discard so log lines do not tear the display.
func InitWriter(level slog.Level, console io.Writer, color bool, logFile io.Writer) {
	opts := &slog.HandlerOptions{Level: level, ReplaceAttr: RedactAttr}

	var sinks fanout
	if console != nil && console != io.Discard {
		sinks = append(sinks, NewPrettyHandler(console, opts, color))
	}
	if logFile != nil {
		sinks = append(sinks, slog.NewJSONHandler(logFile, opts))
	}

	var h slog.Handler
	switch len(sinks) {
	case 0:
		h = slog.NewTextHandler(io.Discard, opts)
	case 1:
		h = sinks[0]
	default:
		h = sinks
	}
	globalLogger = slog.New(h)
	slog.SetDefault(globalLogger)
}

func Debug(msg string, args ...any) { globalLogger.Debug(msg, args...) }
func Info(msg string, args ...any)  { globalLogger.Info(msg, args...) }
func Warn(msg string, args ...any)  { globalLogger.Warn(msg, args...) }
func Error(msg string, args ...any) { globalLogger.Error(msg, args...) }

// Fatal logs at error level and exits with status 1.
func Fatal(msg string, args ...any) {
	globalLogger.Error(msg, args...)
	os.Exit(1)
}
