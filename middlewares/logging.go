package middlewares

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/ryob/forum"
	"github.com/dmitrymomot/ryob/internal"
)

// Logging writes one access log entry per request after the handler
// returns. Client errors log at warn and server errors at error.
// Request and user IDs come from the logger's extractors.
func Logging() internal.Middleware {
	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			start := time.Now()
			err := next(c)

			rw := c.ResponseWriter()
			status := rw.Status()
			if err != nil && !rw.Written() {
				// The error handler has not rendered yet; report what it will answer.
				status = ErrorStatus(err)
			}

			attrs := []any{
				slog.String("method", c.Request().Method),
				slog.String("path", c.Request().URL.Path),
				slog.Int("status", status),
				slog.Int64("bytes", rw.Size()),
				slog.Duration("duration", time.Since(start)),
			}
			if err != nil {
				attrs = append(attrs, slog.Any("error", err))
			}

			switch {
			case status >= 500:
				c.LogError("request", attrs...)
			case status >= 400:
				c.LogWarn("request", attrs...)
			default:
				c.LogInfo("request", attrs...)
			}
			return err
		}
	}
}

// ErrorStatus maps an error returned by a handler to the status it is
// answered with.
func ErrorStatus(err error) int {
	if httpErr := internal.AsHTTPError(err); httpErr != nil {
		return httpErr.Code
	}
	if _, ok := AsTimeoutError(err); ok {
		return http.StatusServiceUnavailable
	}
	if _, ok := AsPanicError(err); ok {
		return http.StatusInternalServerError
	}
	return forum.StatusCode(err)
}
