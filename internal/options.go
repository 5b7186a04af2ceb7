package internal

import (
	"io/fs"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dmitrymomot/ryob/pkg/cookie"
	"github.com/dmitrymomot/ryob/pkg/logger"
	"github.com/dmitrymomot/ryob/pkg/session"
)

// Option configures an App in New.
type Option func(*App)

// WithMiddleware appends app-wide middleware. The first one runs outermost.
func WithMiddleware(mw ...Middleware) Option {
	return func(a *App) { a.middlewares = append(a.middlewares, mw...) }
}

// WithHandlers registers route providers.
func WithHandlers(h ...Handler) Option {
	return func(a *App) { a.handlers = append(a.handlers, h...) }
}

// WithStaticFiles serves the files below dir in fsys under prefix, which
// should end in a slash. Directory paths answer 404 instead of a listing.
// It panics if dir is not a valid path in fsys.
//
//	ryob.WithStaticFiles("/styles/", views.Assets, "static/styles")
func WithStaticFiles(prefix string, fsys fs.FS, dir string) Option {
	return func(a *App) {
		sub, err := fs.Sub(fsys, dir)
		if err != nil {
			panic(err)
		}
		a.mounts = append(a.mounts, mount{prefix: prefix, handler: staticFiles(prefix, sub)})
	}
}

func staticFiles(prefix string, fsys fs.FS) http.Handler {
	files := http.StripPrefix(strings.TrimSuffix(prefix, "/"), http.FileServerFS(fsys))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		h := w.Header()
		h.Set("Cache-Control", "public, max-age=3600")
		h.Set("X-Content-Type-Options", "nosniff")
		files.ServeHTTP(w, r)
	})
}

// WithHTTPHandler mounts h under prefix, e.g. a Prometheus handler at
// /metrics. App middleware wraps it; the error handler does not.
func WithHTTPHandler(prefix string, h http.Handler) Option {
	return func(a *App) {
		if h != nil {
			a.mounts = append(a.mounts, mount{prefix: prefix, handler: h})
		}
	}
}

// WithErrorHandler sets what renders errors returned by route handlers.
// Without one they become a plain-text 500.
func WithErrorHandler(h ErrorHandler) Option {
	return func(a *App) { a.onError = h }
}

func WithNotFoundHandler(h HandlerFunc) Option {
	return func(a *App) { a.notFound = h }
}

func WithMethodNotAllowedHandler(h HandlerFunc) Option {
	return func(a *App) { a.methodNotAllowed = h }
}

// WithHealthChecks serves liveness and readiness probes.
//
//	ryob.WithHealthChecks(
//	    ryob.WithReadinessCheck("postgres", db.Healthcheck(pool)),
//	    ryob.WithReadinessCheck("redis", redis.Healthcheck(client)),
//	)
func WithHealthChecks(opts ...HealthOption) Option {
	return func(a *App) { a.health = newHealthConfig(opts) }
}

// WithLogger logs JSON to stdout tagged with component. The extractors add
// request-scoped attributes such as request_id and user_id.
func WithLogger(component string, extractors ...logger.ContextExtractor) Option {
	return func(a *App) {
		a.log = logger.New(extractors...).With(slog.String("component", component))
	}
}

// WithCustomLogger uses l as is. Nil is ignored.
func WithCustomLogger(l *slog.Logger) Option {
	return func(a *App) {
		if l != nil {
			a.log = l
		}
	}
}

// WithCookieOptions replaces the cookie manager behind Context.Cookie and
// friends. It does not affect a session store's own manager.
func WithCookieOptions(opts ...cookie.Option) Option {
	return func(a *App) { a.cookies = cookie.New(opts...) }
}

// WithSession turns on Context.Session. The session is loaded on first use
// and saved, when changed, just before the response header is written.
//
//	ryob.WithSession(session.NewCookieStore(cookies, session.WithCookieName("ryob_session")))
func WithSession(store session.Store) Option {
	return func(a *App) {
		if store != nil {
			a.session = NewSessionManager(store)
		}
	}
}
