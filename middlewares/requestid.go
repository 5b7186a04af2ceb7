package middlewares

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/ryob/internal"
	"github.com/dmitrymomot/ryob/pkg/id"
	"github.com/dmitrymomot/ryob/pkg/logger"
)

type requestIDKey struct{}

// RequestIDHeader is the response header carrying the request ID.
const RequestIDHeader = "X-Request-ID"

// RequestIDOption configures RequestID.
type RequestIDOption func(*requestIDConfig)

type requestIDConfig struct {
	generator func() string
	sources   []internal.ExtractorSource
}

// WithRequestIDHeaders sets the request headers trusted for an upstream ID, in order.
func WithRequestIDHeaders(headers ...string) RequestIDOption {
	return func(cfg *requestIDConfig) {
		cfg.sources = cfg.sources[:0]
		for _, h := range headers {
			cfg.sources = append(cfg.sources, internal.FromHeader(h))
		}
	}
}

// WithRequestIDGenerator replaces the ULID generator.
func WithRequestIDGenerator(gen func() string) RequestIDOption {
	return func(cfg *requestIDConfig) {
		if gen != nil {
			cfg.generator = gen
		}
	}
}

// RequestID tags each request with an ID, reusing an upstream
// X-Request-ID or X-Correlation-ID when present. The ID is echoed in the
// response and available through GetRequestID and RequestIDExtractor.
func RequestID(opts ...RequestIDOption) internal.Middleware {
	cfg := &requestIDConfig{
		generator: id.NewULID,
		sources: []internal.ExtractorSource{
			internal.FromHeader("X-Request-ID"),
			internal.FromHeader("X-Correlation-ID"),
		},
	}
	for _, opt := range opts {
		opt(cfg)
	}
	upstream := internal.NewExtractor(cfg.sources...)

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			reqID, ok := upstream.Extract(c)
			if !ok {
				reqID = cfg.generator()
			}

			c.Set(requestIDKey{}, reqID)
			c.SetHeader(RequestIDHeader, reqID)
			return next(c)
		}
	}
}

// GetRequestID returns the current request ID, or "".
func GetRequestID(c internal.Context) string {
	return internal.ContextValue[string](c, requestIDKey{})
}

// RequestIDExtractor adds "request_id" to log entries written with a request context.
func RequestIDExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		if v, ok := ctx.Value(requestIDKey{}).(string); ok && v != "" {
			return slog.String("request_id", v), true
		}
		return slog.Attr{}, false
	}
}
