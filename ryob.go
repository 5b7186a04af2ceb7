package ryob

import (
	"context"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/ryob/internal"
	"github.com/dmitrymomot/ryob/pkg/cookie"
	"github.com/dmitrymomot/ryob/pkg/id"
	"github.com/dmitrymomot/ryob/pkg/logger"
	"github.com/dmitrymomot/ryob/pkg/session"
)

// Type aliases - public API
type (
	// App wires routing, middleware, sessions and the server lifecycle.
	App = internal.App

	// Router is the interface handlers use to declare routes.
	Router = internal.Router

	// Context provides request/response access and helper methods.
	Context = internal.Context

	// Handler declares routes on a router.
	Handler = internal.Handler

	// HandlerFunc is the signature for route handlers.
	HandlerFunc = internal.HandlerFunc

	// Middleware wraps a HandlerFunc to add cross-cutting concerns.
	Middleware = internal.Middleware

	// ErrorHandler handles errors returned from handlers.
	ErrorHandler = internal.ErrorHandler

	// Option configures the application.
	Option = internal.Option

	// RunOption configures the server runtime.
	RunOption = internal.RunOption

	// HealthOption configures health check endpoints.
	HealthOption = internal.HealthOption

	// Component is the interface for renderable templates.
	Component = internal.Component

	// ValidationErrors is a collection of validation errors.
	ValidationErrors = internal.ValidationErrors

	// ContextExtractor extracts a slog attribute from context.
	ContextExtractor = logger.ContextExtractor

	// CookieOption configures the cookie manager.
	CookieOption = cookie.Option

	// Session is the per-request signed-cookie session.
	Session = session.Session

	// SessionStore loads and saves sessions.
	SessionStore = session.Store

	// ResponseWriter tracks status and size and runs pre-write hooks.
	ResponseWriter = internal.ResponseWriter

	// HTTPError carries a status code and a user-facing message.
	HTTPError = internal.HTTPError

	// HTTPErrorOption configures an HTTPError.
	HTTPErrorOption = internal.HTTPErrorOption

	// Extractor pulls a value from the first matching request source.
	Extractor = internal.Extractor

	// ExtractorSource reads one candidate value from a request.
	ExtractorSource = internal.ExtractorSource

	// Scalar lists the types Param, Query and QueryDefault parse into.
	Scalar = internal.Scalar
)

// New creates a new application with the given options.
// The App is immutable after creation.
//
// Example:
//
//	app := ryob.New(
//	    ryob.WithMiddleware(middlewares.RequestID(), middlewares.Recover()),
//	    ryob.WithHandlers(handlers.NewUsers(identity), handlers.NewTopics(content)),
//	)
//
//	err := app.Run(":8080", ryob.Logger(log))
func New(opts ...Option) *App {
	return internal.New(opts...)
}

// App options

// WithMiddleware adds global middleware, applied in the order provided.
func WithMiddleware(mw ...Middleware) Option {
	return internal.WithMiddleware(mw...)
}

// WithHandlers registers handlers that declare routes.
func WithHandlers(h ...Handler) Option {
	return internal.WithHandlers(h...)
}

// WithStaticFiles serves subDir of fsys under pattern.
//
//	ryob.WithStaticFiles("/styles/", views.Assets, "static/styles")
func WithStaticFiles(pattern string, fsys fs.FS, subDir string) Option {
	return internal.WithStaticFiles(pattern, fsys, subDir)
}

// WithHTTPHandler mounts a plain http.Handler at pattern.
func WithHTTPHandler(pattern string, h http.Handler) Option {
	return internal.WithHTTPHandler(pattern, h)
}

// WithErrorHandler sets the handler for errors returned by route handlers.
func WithErrorHandler(h ErrorHandler) Option {
	return internal.WithErrorHandler(h)
}

// WithNotFoundHandler sets a custom 404 handler.
func WithNotFoundHandler(h HandlerFunc) Option {
	return internal.WithNotFoundHandler(h)
}

// WithMethodNotAllowedHandler sets a custom 405 handler.
func WithMethodNotAllowedHandler(h HandlerFunc) Option {
	return internal.WithMethodNotAllowedHandler(h)
}

// WithHealthChecks enables liveness (/health/live) and readiness
// (/health/ready) endpoints.
func WithHealthChecks(opts ...HealthOption) Option {
	return internal.WithHealthChecks(opts...)
}

// WithLogger creates a JSON logger with a component name and extractors.
func WithLogger(component string, extractors ...ContextExtractor) Option {
	return internal.WithLogger(component, extractors...)
}

// WithCustomLogger sets a fully configured logger.
func WithCustomLogger(l *slog.Logger) Option {
	return internal.WithCustomLogger(l)
}

// WithCookieOptions configures the cookie manager used by Context cookie helpers.
func WithCookieOptions(opts ...CookieOption) Option {
	return internal.WithCookieOptions(opts...)
}

// WithSession enables sessions backed by store.
func WithSession(store SessionStore) Option {
	return internal.WithSession(store)
}

// Health check options

// WithLivenessPath sets a custom liveness endpoint path.
func WithLivenessPath(path string) HealthOption {
	return internal.WithLivenessPath(path)
}

// WithReadinessPath sets a custom readiness endpoint path.
func WithReadinessPath(path string) HealthOption {
	return internal.WithReadinessPath(path)
}

// WithReadinessCheck adds a named readiness check.
func WithReadinessCheck(name string, fn func(context.Context) error) HealthOption {
	return internal.WithReadinessCheck(name, fn)
}

// Run options

// Logger sets the runtime logger.
func Logger(l *slog.Logger) RunOption {
	return internal.Logger(l)
}

// ShutdownTimeout bounds graceful shutdown. Defaults to 30 seconds.
func ShutdownTimeout(d time.Duration) RunOption {
	return internal.ShutdownTimeout(d)
}

// StartupHook runs fn before the server starts listening.
func StartupHook(fn func(context.Context) error) RunOption {
	return internal.StartupHook(fn)
}

// ShutdownHook runs fn after the server stops accepting requests.
func ShutdownHook(fn func(context.Context) error) RunOption {
	return internal.ShutdownHook(fn)
}

// WithContext sets the base context; cancelling it stops the server.
func WithContext(ctx context.Context) RunOption {
	return internal.WithContext(ctx)
}

// HTTP errors

// NewHTTPError creates an HTTPError.
func NewHTTPError(code int, message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.NewHTTPError(code, message, opts...)
}

// WithError attaches the underlying cause to an HTTPError.
func WithError(err error) HTTPErrorOption {
	return internal.WithError(err)
}

// WithRequestID attaches a request ID to an HTTPError.
func WithRequestID(requestID string) HTTPErrorOption {
	return internal.WithRequestID(requestID)
}

func ErrBadRequest(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrBadRequest(message, opts...)
}

func ErrUnauthorized(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrUnauthorized(message, opts...)
}

func ErrNotFound(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrNotFound(message, opts...)
}

func ErrConflict(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrConflict(message, opts...)
}

func ErrInternal(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrInternal(message, opts...)
}

// AsHTTPError returns the HTTPError in err's chain, or nil.
func AsHTTPError(err error) *HTTPError {
	return internal.AsHTTPError(err)
}

// Extractors

// NewExtractor creates an Extractor that tries sources in order.
func NewExtractor(sources ...ExtractorSource) Extractor {
	return internal.NewExtractor(sources...)
}

func FromHeader(name string) ExtractorSource { return internal.FromHeader(name) }
func FromQuery(name string) ExtractorSource  { return internal.FromQuery(name) }
func FromCookie(name string) ExtractorSource { return internal.FromCookie(name) }
func FromParam(name string) ExtractorSource  { return internal.FromParam(name) }
func FromForm(name string) ExtractorSource   { return internal.FromForm(name) }
func FromSession(key string) ExtractorSource { return internal.FromSession(key) }

// Generic helpers

// ContextValue returns the value stored under key, or the zero T.
func ContextValue[T any](c Context, key any) T {
	return internal.ContextValue[T](c, key)
}

// Param returns a typed URL parameter.
func Param[T Scalar](c Context, name string) T {
	return internal.Param[T](c, name)
}

// Query returns a typed query parameter.
func Query[T Scalar](c Context, name string) T {
	return internal.Query[T](c, name)
}

// QueryDefault returns a typed query parameter or defaultValue.
func QueryDefault[T Scalar](c Context, name string, defaultValue T) T {
	return internal.QueryDefault(c, name, defaultValue)
}

// ParamID parses a positive identifier from a URL parameter.
func ParamID[T any](c Context, name string) (id.ID[T], error) {
	return internal.ParamID[T](c, name)
}
