package middlewares

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrymomot/ryob/internal"
)

// DefaultTimeout is used when Timeout is given a non-positive duration.
const DefaultTimeout = 30 * time.Second

// Timeout bounds the request context by d. Database calls observe the
// deadline through the context. If the deadline passed and nothing was written
// yet, the handler's result is replaced by a *TimeoutError.
func Timeout(d time.Duration) internal.Middleware {
	if d <= 0 {
		d = DefaultTimeout
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			ctx, cancel := context.WithTimeout(c.Context(), d)
			defer cancel()
			c.SetContext(ctx)

			err := next(c)
			if errors.Is(ctx.Err(), context.DeadlineExceeded) && !c.Written() {
				c.LogWarn("request timeout", "timeout", d.String())
				return &TimeoutError{Duration: d}
			}
			return err
		}
	}
}
