// Package logger provides the structured logger shared by all logtriage
// components. Components receive a *Logger explicitly rather than reading
// ambient global state.
package logger

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger wraps zerolog.Logger with construction helpers.
type Logger struct {
	zerolog.Logger
}

// Config holds logger configuration.
type Config struct {
	Level      string // debug, info, warn, error
	LogDir     string // when empty, file output is disabled
	Filename   string
	MaxSizeMB  int
	MaxBackups int
	Console    bool // mirror events to stderr
}

// New creates a new logger instance. Console output goes to stderr so the
// rendered report on stdout stays clean; file output rotates via lumberjack
// when LogDir is set.
func New(cfg Config) *Logger {
	if cfg.Filename == "" {
		cfg.Filename = "logtriage.log"
	}
	if cfg.MaxSizeMB == 0 {
		cfg.MaxSizeMB = 10
	}
	if cfg.MaxBackups == 0 {
		cfg.MaxBackups = 5
	}

	var writers []io.Writer

	if cfg.LogDir != "" {
		if err := os.MkdirAll(cfg.LogDir, 0755); err == nil {
			writers = append(writers, &lumberjack.Logger{
				Filename:   filepath.Join(cfg.LogDir, cfg.Filename),
				MaxSize:    cfg.MaxSizeMB,
				MaxBackups: cfg.MaxBackups,
				MaxAge:     30, // days
			})
		}
	}

	if cfg.Console || len(writers) == 0 {
		writers = append(writers, zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: "2006-01-02 15:04:05",
		})
	}

	l := zerolog.New(io.MultiWriter(writers...)).
		Level(ParseLevel(cfg.Level)).
		With().
		Timestamp().
		Logger()

	return &Logger{Logger: l}
}

// Nop returns a logger that discards all events. Used in tests.
func Nop() *Logger {
	return &Logger{Logger: zerolog.Nop()}
}

// ParseLevel converts a string log level to a zerolog level, defaulting
// to info for unknown values.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// WithComponent returns a child logger tagged with a component name.
func (l *Logger) WithComponent(name string) *Logger {
	child := l.Logger.With().Str("component", name).Logger()
	return &Logger{Logger: child}
}
