package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/ryob/pkg/logger"
)

type ctxKey struct{}

func userExtractor(ctx context.Context) (slog.Attr, bool) {
	if v, ok := ctx.Value(ctxKey{}).(int64); ok {
		return slog.Int64("user_id", v), true
	}
	return slog.Attr{}, false
}

func TestDecoratorInjectsExtractedAttrs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	h := logger.NewLogHandlerDecorator(slog.NewJSONHandler(&buf, nil), userExtractor, nil)
	log := slog.New(h).With(slog.String("component", "test"))

	ctx := context.WithValue(context.Background(), ctxKey{}, int64(7))
	log.InfoContext(ctx, "hello")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "hello", rec["msg"])
	assert.Equal(t, "test", rec["component"])
	assert.InDelta(t, 7, rec["user_id"], 0)
}

func TestDecoratorSkipsMissingValues(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := slog.New(logger.NewLogHandlerDecorator(slog.NewJSONHandler(&buf, nil), userExtractor))
	log.Info("anonymous")

	assert.NotContains(t, buf.String(), "user_id")
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		" error ": slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, logger.ParseLevel(in), in)
	}
}

func TestNewFromConfigWritesFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "ryob.log")
	log, closer := logger.NewFromConfig(logger.Config{Level: "warn", File: path, MaxSizeMB: 1})

	log.Info("filtered out")
	log.Warn("kept")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"kept"`)
	assert.NotContains(t, string(data), "filtered out")
}

func TestNewWithSentryWithoutDSN(t *testing.T) {
	t.Parallel()

	log := logger.NewWithSentry(logger.SentryConfig{})
	require.NotNil(t, log)
	assert.True(t, log.Enabled(context.Background(), slog.LevelInfo))
}
