package logging

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

var Logger *log.Logger

// LogLevel represents available log levels
type LogLevel string

const (
	DebugLevel LogLevel = "debug"
	InfoLevel  LogLevel = "info"
	WarnLevel  LogLevel = "warn"
	ErrorLevel LogLevel = "error"
)

// Options configures the global logger.
type Options struct {
	Level  string
	Format string // "json", "logfmt" or "text"
	// Pretty adds timestamps and caller locations.
	Pretty bool
	Output io.Writer
}

// InitLogger initializes the global logger
func InitLogger(opts Options) *log.Logger {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	Logger = log.New(out)

	level := ParseLevel(opts.Level)
	setLogLevel(Logger, level)

	switch strings.ToLower(opts.Format) {
	case "json":
		Logger.SetFormatter(log.JSONFormatter)
	case "logfmt":
		Logger.SetFormatter(log.LogfmtFormatter)
	default:
		Logger.SetFormatter(log.TextFormatter)
	}

	Logger.SetReportTimestamp(true)
	Logger.SetReportCaller(opts.Pretty)
	Logger.SetPrefix("galaxy")

	Logger.Debug("Logger initialized successfully", "level", level, "format", opts.Format)
	return Logger
}

// ParseLevel maps a level name to a LogLevel, defaulting to info.
func ParseLevel(name string) LogLevel {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return DebugLevel
	case "info":
		return InfoLevel
	case "warn", "warning":
		return WarnLevel
	case "error":
		return ErrorLevel
	default:
		return InfoLevel
	}
}

// setLogLevel configures the logger with the specified level
func setLogLevel(logger *log.Logger, level LogLevel) {
	switch level {
	case DebugLevel:
		logger.SetLevel(log.DebugLevel)
	case WarnLevel:
		logger.SetLevel(log.WarnLevel)
	case ErrorLevel:
		logger.SetLevel(log.ErrorLevel)
	default:
		logger.SetLevel(log.InfoLevel)
	}
}

// GetLogger returns the global logger instance
func GetLogger() *log.Logger {
	if Logger == nil {
		InitLogger(Options{Level: os.Getenv("LOG_LEVEL")})
	}
	return Logger
}

// WithFields creates a logger with contextual fields
func WithFields(fields ...interface{}) *log.Logger {
	return GetLogger().With(fields...)
}

// WithComponent tags a logger with the component name
func WithComponent(component string) *log.Logger {
	return WithFields("component", component)
}

// WithCloud creates a logger with point cloud context
func WithCloud(name string) *log.Logger {
	return WithFields("cloud", name)
}
