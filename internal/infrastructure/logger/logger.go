package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

type Logger struct {
	*slog.Logger
}

// Config selects the level, format and output of a logger
type Config struct {
	Level  string
	Format string
	Output string
}

// DefaultLogger creates a logger using slog.Default()
func DefaultLogger() *Logger {
	return &Logger{
		Logger: slog.Default(),
	}
}

// NewLogger creates a configured logger based on environment variables:
// - HISTORIAN_LOG_LEVEL: DEBUG, INFO, WARN, ERROR (default: INFO)
// - HISTORIAN_LOG_FORMAT: json or text (default: text)
// - HISTORIAN_LOG_OUTPUT: stdout, stderr, or file path (default: stdout)
func NewLogger() *Logger {
	return NewLoggerWithConfig(Config{
		Level:  os.Getenv("HISTORIAN_LOG_LEVEL"),
		Format: os.Getenv("HISTORIAN_LOG_FORMAT"),
		Output: os.Getenv("HISTORIAN_LOG_OUTPUT"),
	})
}

// NewLoggerWithConfig creates a logger from resolved runtime settings
func NewLoggerWithConfig(cfg Config) *Logger {
	level := parseLogLevel(cfg.Level)
	format := strings.ToLower(cfg.Format)
	output := cfg.Output

	if format == "" {
		format = "text"
	}

	if output == "" {
		output = "stdout"
	}

	var writer io.Writer
	switch output {
	case "stdout":
		writer = os.Stdout
	case "stderr":
		writer = os.Stderr
	default:
		// File path
		file, err := os.OpenFile(output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			// Fallback to stdout if file can't be opened
			writer = os.Stdout
		} else {
			writer = file
		}
	}

	return New(writer, format, level)
}

// New creates a logger writing to w
func New(w io.Writer, format string, level slog.Level) *Logger {
	opts := &slog.HandlerOptions{
		Level: level,
	}

	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return &Logger{
		Logger: slog.New(handler),
	}
}

// Named returns a logger that tags every record with a component name
func (l *Logger) Named(component string) *Logger {
	return &Logger{Logger: l.Logger.With("component", component)}
}

// SLog exposes the underlying slog logger for libraries that take one
func (l *Logger) SLog() *slog.Logger {
	return l.Logger
}

// parseLogLevel parses log level from string
func parseLogLevel(levelStr string) slog.Level {
	switch strings.ToUpper(levelStr) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// SetDefaultLogger sets the logger as the default slog logger
func SetDefaultLogger(l *Logger) {
	slog.SetDefault(l.Logger)
}
