package logger

import (
	"context"
	"log/slog"
	"os"

	"github.com/getsentry/sentry-go"
	sentryslog "github.com/getsentry/sentry-go/slog"
)

// SentryConfig enables error reporting. With an empty DSN nothing is sent.
type SentryConfig struct {
	DSN         string `env:"SENTRY_DSN"`
	Environment string `env:"SENTRY_ENVIRONMENT" envDefault:"production"`
	Release     string `env:"SENTRY_RELEASE"`

	// Records at MinLevel or above, and never below warn, are kept as
	// Sentry logs. Error records always open an issue.
	MinLevel slog.Level
}

// NewWithSentry logs JSON to stdout and mirrors records into Sentry when a
// DSN is configured.
func NewWithSentry(cfg SentryConfig, extractors ...ContextExtractor) *slog.Logger {
	var h slog.Handler = jsonHandler(os.Stdout, slog.LevelInfo)
	if sh, ok := newSentryHandler(cfg, h); ok {
		h = fanout{h, sh}
	}
	return slog.New(NewLogHandlerDecorator(h, extractors...))
}

// newSentryHandler initializes the SDK. If that fails the error is logged
// through fallback and ok is false.
func newSentryHandler(cfg SentryConfig, fallback slog.Handler) (slog.Handler, bool) {
	if cfg.DSN == "" {
		return nil, false
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.DSN,
		Environment: cfg.Environment,
		Release:     cfg.Release,
		EnableLogs:  true,
	})
	if err != nil {
		slog.New(fallback).Error("sentry disabled: init failed", slog.Any("error", err))
		return nil, false
	}

	return sentryslog.Option{
		EventLevel: []slog.Level{slog.LevelError},
		LogLevel:   levelsFrom(max(cfg.MinLevel, slog.LevelWarn)),
	}.NewSentryHandler(context.Background()), true
}

func levelsFrom(floor slog.Level) []slog.Level {
	var out []slog.Level
	for _, l := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError} {
		if l >= floor {
			out = append(out, l)
		}
	}
	return out
}
