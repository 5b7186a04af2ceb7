package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/ryob"
	"github.com/dmitrymomot/ryob/forum"
	"github.com/dmitrymomot/ryob/middlewares"
	"github.com/dmitrymomot/ryob/views"
)

// Accounts is what the app needs from the identity layer.
type Accounts interface {
	Identity
	forum.UserFinder
}

// Deps are the collaborators NewApp wires together.
type Deps struct {
	Accounts Accounts
	Content  Content
	Views    *views.Renderer
	Sessions ryob.SessionStore
	Logger   *slog.Logger

	// Optional.
	HTTPMetrics    *middlewares.HTTPMetrics
	MetricsHandler http.Handler
	Health         []ryob.HealthOption
	PageSize       int
	RequestTimeout time.Duration
}

// NewApp builds the forum application: middleware stack, routes, static
// styles, error pages and, when configured, /metrics and health endpoints.
func NewApp(d Deps) *ryob.App {
	mw := []ryob.Middleware{middlewares.RequestID(), middlewares.Recover()}
	if d.HTTPMetrics != nil {
		mw = append(mw, middlewares.Metrics(d.HTTPMetrics))
	}
	mw = append(mw, middlewares.LoadUser(d.Accounts), middlewares.Logging())
	if d.RequestTimeout > 0 {
		mw = append(mw, middlewares.Timeout(d.RequestTimeout))
	}

	opts := []ryob.Option{
		ryob.WithCustomLogger(d.Logger),
		ryob.WithSession(d.Sessions),
		ryob.WithMiddleware(mw...),
		ryob.WithStaticFiles("/styles/", views.Assets, "static/styles"),
		ryob.WithErrorHandler(ErrorHandler(d.Views)),
		ryob.WithNotFoundHandler(NotFound(d.Views)),
		ryob.WithMethodNotAllowedHandler(MethodNotAllowed(d.Views)),
		ryob.WithHandlers(
			NewUsers(d.Accounts, d.Views),
			NewTopics(d.Content, d.Views, d.PageSize),
		),
	}
	if d.MetricsHandler != nil {
		opts = append(opts, ryob.WithHTTPHandler("/metrics", d.MetricsHandler))
	}
	if d.Health != nil {
		opts = append(opts, ryob.WithHealthChecks(d.Health...))
	}
	return ryob.New(opts...)
}
