package internal

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/ryob/pkg/cookie"
	"github.com/dmitrymomot/ryob/pkg/logger"
)

// Server limits used by Run.
const (
	readHeaderTimeout      = 5 * time.Second
	readTimeout            = 15 * time.Second
	writeTimeout           = 30 * time.Second
	idleTimeout            = 2 * time.Minute
	maxHeaderBytes         = 1 << 20
	defaultShutdownTimeout = 30 * time.Second
)

// App is the HTTP application: routes, middleware, error pages, sessions
// and health endpoints. Options are applied once in New; the route table
// does not change afterwards.
type App struct {
	router  chi.Router
	log     *slog.Logger
	cookies *cookie.Manager
	session *SessionManager

	middlewares []Middleware
	handlers    []Handler
	mounts      []mount
	health      *healthConfig

	onError          ErrorHandler
	notFound         HandlerFunc
	methodNotAllowed HandlerFunc
}

type mount struct {
	prefix  string
	handler http.Handler
}

// New builds an App.
//
//	app := ryob.New(
//	    ryob.WithMiddleware(middlewares.RequestID(), middlewares.Recover()),
//	    ryob.WithSession(session.NewCookieStore(cookies)),
//	    ryob.WithHandlers(handlers.NewUsers(identity, v), handlers.NewTopics(content, v, 20)),
//	)
func New(opts ...Option) *App {
	a := &App{
		router:  chi.NewRouter(),
		log:     logger.NewNope(),
		cookies: cookie.New(),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.session != nil {
		a.session.SetLogger(a.log)
	}
	a.buildRoutes()
	return a
}

// Router exposes the chi router, mostly for tests and route walking.
func (a *App) Router() chi.Router {
	return a.router
}

func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.router.ServeHTTP(w, r)
}

// Run serves on addr until SIGINT, SIGTERM, a cancelled WithContext
// context or a listener error, then shuts down gracefully.
//
//	err := app.Run(":8080",
//	    ryob.Logger(log),
//	    ryob.ShutdownHook(db.Shutdown(pool)),
//	)
func (a *App) Run(addr string, opts ...RunOption) error {
	cfg := &runConfig{shutdownTimeout: defaultShutdownTimeout}
	for _, opt := range opts {
		opt(cfg)
	}
	return serve(a.router, addr, cfg)
}

// buildRoutes applies everything the options collected. Chi requires
// middleware to be registered before any route.
func (a *App) buildRoutes() {
	if a.notFound != nil {
		a.router.NotFound(a.wrapHandler(a.notFound))
	}
	if a.methodNotAllowed != nil {
		a.router.MethodNotAllowed(a.wrapHandler(a.methodNotAllowed))
	}
	for _, mw := range a.middlewares {
		a.router.Use(a.toChi(mw))
	}
	for _, m := range a.mounts {
		a.router.Mount(m.prefix, m.handler)
	}
	if a.health != nil {
		a.health.register(a.router, a.log)
	}

	root := &mux{chi: a.router, app: a}
	for _, h := range a.handlers {
		h.Routes(root)
	}
}

// wrapHandler adapts h to net/http. A returned error goes to handleError.
func (a *App) wrapHandler(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := newContext(w, r, a)
		if err := h(c); err != nil {
			a.handleError(c, err)
		}
	}
}

// handleError renders err through the error handler, or as a bare 500.
// Once the response has started it can only be logged.
func (a *App) handleError(c Context, err error) {
	switch {
	case c.Written():
		a.log.ErrorContext(c.Context(), "handler error after response was written", slog.Any("error", err))
	case a.onError == nil:
		http.Error(c.Response(), http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	default:
		if herr := a.onError(c, err); herr != nil {
			a.log.ErrorContext(c.Context(), "error handler failed",
				slog.Any("error", herr),
				slog.Any("cause", err),
			)
		}
	}
}
