package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var defaultLogger zerolog.Logger

// LogLevel is a level name as it appears in configuration
type LogLevel string

const (
	DebugLevel LogLevel = "debug"
	InfoLevel  LogLevel = "info"
	WarnLevel  LogLevel = "warn"
	ErrorLevel LogLevel = "error"
	// DisabledLevel silences all output, used by the test server mode
	DisabledLevel LogLevel = "disabled"
)

// Config represents logger configuration
type Config struct {
	Level LogLevel
	// Pretty switches from JSON lines to zerolog's console writer
	Pretty bool
	// Output defaults to os.Stdout
	Output io.Writer
}

// ParseLevel maps a configured level name to a zerolog level, defaulting to info
func ParseLevel(level LogLevel) zerolog.Level {
	switch LogLevel(strings.ToLower(string(level))) {
	case DebugLevel:
		return zerolog.DebugLevel
	case WarnLevel:
		return zerolog.WarnLevel
	case ErrorLevel:
		return zerolog.ErrorLevel
	case DisabledLevel:
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

// Configure installs the process-wide logger and returns it
func Configure(config Config) zerolog.Logger {
	if config.Output == nil {
		config.Output = os.Stdout
	}

	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.SetGlobalLevel(ParseLevel(config.Level))

	writer := config.Output
	if config.Pretty {
		writer = zerolog.ConsoleWriter{Out: config.Output, TimeFormat: time.RFC3339}
	}

	defaultLogger = zerolog.New(writer).With().Timestamp().Logger()
	log.Logger = defaultLogger
	return defaultLogger
}

// Get returns the configured logger
func Get() zerolog.Logger {
	return defaultLogger
}

func Debug() *zerolog.Event {
	return defaultLogger.Debug()
}

func Info() *zerolog.Event {
	return defaultLogger.Info()
}

func Warn() *zerolog.Event {
	return defaultLogger.Warn()
}

func Error() *zerolog.Event {
	return defaultLogger.Error()
}

// WithComponent returns a child logger tagged with a component name
func WithComponent(name string) zerolog.Logger {
	return defaultLogger.With().Str("component", name).Logger()
}

func init() {
	Configure(Config{Level: InfoLevel, Pretty: true, Output: os.Stdout})
}
