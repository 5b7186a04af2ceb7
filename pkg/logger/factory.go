package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Config selects the log level and an optional rotating log file.
type Config struct {
	Level string `env:"LOG_LEVEL" envDefault:"info"`

	// When set, logs are written to stdout and to this file.
	File       string `env:"LOG_FILE"`
	MaxSizeMB  int    `env:"LOG_FILE_MAX_SIZE_MB" envDefault:"100"`
	MaxBackups int    `env:"LOG_FILE_MAX_BACKUPS" envDefault:"3"`
	MaxAgeDays int    `env:"LOG_FILE_MAX_AGE_DAYS" envDefault:"28"`

	Sentry SentryConfig
}

// New creates a JSON-formatted logger at info level with optional context extractors.
func New(extractors ...ContextExtractor) *slog.Logger {
	return slog.New(NewLogHandlerDecorator(jsonHandler(os.Stdout, slog.LevelInfo), extractors...))
}

// NewFromConfig builds the application logger: JSON to stdout, mirrored to a
// rotating file when cfg.File is set, and fanned out to Sentry when a DSN is
// configured. The returned closer releases the log file.
func NewFromConfig(cfg Config, extractors ...ContextExtractor) (*slog.Logger, io.Closer) {
	level := ParseLevel(cfg.Level)

	var (
		out    io.Writer = os.Stdout
		closer io.Closer = nopCloser{}
	)
	if cfg.File != "" {
		file := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   true,
		}
		out = io.MultiWriter(os.Stdout, file)
		closer = file
	}

	handler := jsonHandler(out, level)
	if sentryHandler, ok := newSentryHandler(cfg.Sentry, handler); ok {
		handler = fanout{handler, sentryHandler}
	}

	return slog.New(NewLogHandlerDecorator(handler, extractors...)), closer
}

// ParseLevel maps debug, info, warn/warning and error to slog levels.
// Anything else yields info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func jsonHandler(w io.Writer, level slog.Level) slog.Handler {
	return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
