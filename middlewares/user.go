package middlewares

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/ryob/forum"
	"github.com/dmitrymomot/ryob/internal"
	"github.com/dmitrymomot/ryob/pkg/logger"
	"github.com/dmitrymomot/ryob/pkg/session"
)

type currentUserKey struct{}

// LoadUser resolves the session's user and makes it available through
// CurrentUser. An id that is malformed or points at a user that no longer
// exists is dropped from the session and the request continues anonymously.
// Storage failures abort the request.
func LoadUser(users forum.UserFinder) internal.Middleware {
	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			sess, err := c.Session()
			if errors.Is(err, session.ErrNotConfigured) {
				return next(c)
			}
			if err != nil {
				return errors.Join(forum.ErrSessionFailure, err)
			}

			u, err := forum.ResolveCurrentUser(c, sess, users)
			switch {
			case errors.Is(err, forum.ErrSessionFailure):
				c.LogWarn("dropping malformed session user", slog.Any("error", err))
				forum.DetachUser(sess)
			case err != nil:
				return err
			case u == nil && sess.Has(forum.SessionUserKey):
				forum.DetachUser(sess)
			case u != nil:
				c.Set(currentUserKey{}, u)
			}
			return next(c)
		}
	}
}

// CurrentUser returns the authenticated user, or nil for anonymous requests.
func CurrentUser(c internal.Context) *forum.User {
	return internal.ContextValue[*forum.User](c, currentUserKey{})
}

// RequireUser redirects anonymous requests to loginPath with 302.
// It must run after LoadUser.
func RequireUser(loginPath string) internal.Middleware {
	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			if CurrentUser(c) == nil {
				return c.Redirect(http.StatusFound, loginPath)
			}
			return next(c)
		}
	}
}

// UserIDExtractor adds "user_id" to log entries of authenticated requests.
func UserIDExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		if u, ok := ctx.Value(currentUserKey{}).(*forum.User); ok && u != nil {
			return slog.Int64("user_id", u.ID.Int64()), true
		}
		return slog.Attr{}, false
	}
}
