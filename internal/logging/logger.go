// Playsense - Player Mood Analytics and Game Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playsense

package logging

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Config controls the global logger.
type Config struct {
	// Level is the minimum level: trace, debug, info, warn, error, fatal,
	// panic, or disabled.
	Level string `json:"level" koanf:"level"`

	// Format is "json" for machine-readable output or "console" for
	// human-readable output during development.
	Format string `json:"format" koanf:"format"`

	// Output is the destination writer. Defaults to os.Stderr.
	Output io.Writer `json:"-" koanf:"-"`

	// Timestamp adds a timestamp field to every event.
	Timestamp bool `json:"timestamp" koanf:"timestamp"`

	// Caller adds the file:line of the log call site.
	Caller bool `json:"caller" koanf:"caller"`
}

// DefaultConfig returns the default logging configuration.
func DefaultConfig() Config {
	return Config{
		Level:     "info",
		Format:    "json",
		Output:    os.Stderr,
		Timestamp: true,
		Caller:    false,
	}
}

var (
	// log is the global logger instance.
	log zerolog.Logger

	// mu protects concurrent initialization.
	mu sync.RWMutex
)

//nolint:gochecknoinits // init ensures logging works before explicit Init() call
func init() {
	initLogger(DefaultConfig())
}

// Init initializes the global logger with the given configuration.
// Call early in startup, typically from main(). Safe to call multiple
// times; subsequent calls reconfigure the logger.
func Init(cfg Config) {
	mu.Lock()
	defer mu.Unlock()
	initLogger(cfg)
}

// initLogger configures the global logger (must be called with mu held).
func initLogger(cfg Config) {
	if cfg.Level == "" {
		cfg.Level = "info"
	}
	if cfg.Format == "" {
		cfg.Format = "json"
	}
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}

	zerolog.SetGlobalLevel(parseLevel(cfg.Level))
	zerolog.TimeFieldFormat = time.RFC3339

	output := cfg.Output
	if cfg.Format == "console" {
		output = zerolog.ConsoleWriter{
			Out:        cfg.Output,
			TimeFormat: "15:04:05",
		}
	}

	ctx := zerolog.New(output)
	if cfg.Timestamp {
		ctx = ctx.With().Timestamp().Logger()
	}
	if cfg.Caller {
		ctx = ctx.With().Caller().Logger()
	}

	log = ctx
}

// parseLevel converts a string level to zerolog.Level. Unknown strings
// fall back to info.
func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	case "panic":
		return zerolog.PanicLevel
	case "disabled":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

// Logger returns the global logger instance.
func Logger() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return log
}

// SetLogger replaces the global logger instance. Useful for testing.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func SetLogger(l zerolog.Logger) {
	mu.Lock()
	defer mu.Unlock()
	log = l
}

// With creates a child logger context with additional fields.
//
//	moodLogger := logging.With().Str("component", "mood").Logger()
func With() zerolog.Context {
	mu.RLock()
	defer mu.RUnlock()
	return log.With()
}

// WithComponent returns a child logger tagged with a component name.
func WithComponent(component string) zerolog.Logger {
	return With().Str("component", component).Logger()
}

// Debug starts a debug-level event on the global logger.
func Debug() *zerolog.Event {
	l := Logger()
	return l.Debug()
}

// Info starts an info-level event on the global logger.
func Info() *zerolog.Event {
	l := Logger()
	return l.Info()
}

// Warn starts a warn-level event on the global logger.
func Warn() *zerolog.Event {
	l := Logger()
	return l.Warn()
}

// Error starts an error-level event on the global logger.
func Error() *zerolog.Event {
	l := Logger()
	return l.Error()
}

// Fatal starts a fatal-level event on the global logger. The program
// exits after the message is written.
func Fatal() *zerolog.Event {
	l := Logger()
	return l.Fatal()
}
