// Package logger provides structured logging with context extraction,
// rotating file output and Sentry integration.
//
// Loggers are plain *slog.Logger values. A LogHandlerDecorator wraps the
// underlying handler and runs ContextExtractors on every record, so
// request-scoped values (request id, user id) appear on each line without
// being passed around.
//
// # Basic Usage
//
//	log := logger.New(middlewares.RequestIDExtractor())
//	log.InfoContext(ctx, "topic created", slog.Int64("topic_id", id))
//
// # From Configuration
//
// NewFromConfig reads a Config (LOG_LEVEL, LOG_FILE, SENTRY_DSN, ...):
//
//	var cfg logger.Config
//	_ = env.Parse(&cfg)
//
//	log, closer := logger.NewFromConfig(cfg, extractors...)
//	defer closer.Close()
//
// With LOG_FILE set, output is mirrored into a file rotated by
// gopkg.in/natefinch/lumberjack.v2. With SENTRY_DSN set, errors create Sentry
// issues and warnings are stored as Sentry logs. Without a DSN, Sentry is
// silently disabled.
//
// # Testing
//
// NewNope returns a logger that discards everything.
package logger
