package middlewares

import (
	"log/slog"
	"runtime"

	"github.com/dmitrymomot/ryob/internal"
)

// DefaultStackSize is the default maximum stack trace size in bytes.
const DefaultStackSize = 4096

// RecoverOption configures Recover.
type RecoverOption func(*recoverConfig)

type recoverConfig struct {
	stackSize int
	noStack   bool
}

// WithRecoverStackSize caps the captured stack trace.
func WithRecoverStackSize(size int) RecoverOption {
	return func(cfg *recoverConfig) {
		if size > 0 {
			cfg.stackSize = size
		}
	}
}

// WithoutStack disables stack capture.
func WithoutStack() RecoverOption {
	return func(cfg *recoverConfig) {
		cfg.noStack = true
	}
}

// Recover turns a panic in the handler chain into a *PanicError so the
// app's error handler can answer with a 500. The panic is logged with the
// request's log attributes.
func Recover(opts ...RecoverOption) internal.Middleware {
	cfg := &recoverConfig{stackSize: DefaultStackSize}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) (err error) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}

				pe := &PanicError{Value: r}
				attrs := []any{slog.Any("panic", r), slog.String("path", c.Request().URL.Path)}
				if !cfg.noStack {
					buf := make([]byte, cfg.stackSize)
					pe.Stack = buf[:runtime.Stack(buf, false)]
					attrs = append(attrs, slog.String("stack", string(pe.Stack)))
				}
				c.LogError("panic recovered", attrs...)
				err = pe
			}()

			return next(c)
		}
	}
}
