package internal

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/ryob/pkg/binder"
	"github.com/dmitrymomot/ryob/pkg/cookie"
	"github.com/dmitrymomot/ryob/pkg/sanitizer"
	"github.com/dmitrymomot/ryob/pkg/session"
	"github.com/dmitrymomot/ryob/pkg/validator"
)

// ValidationErrors lists the rule failures found by Bind.
type ValidationErrors = validator.ValidationErrors

// Component renders HTML. templ.Component satisfies it.
type Component interface {
	Render(ctx context.Context, w io.Writer) error
}

// Context is what a HandlerFunc gets for one request. It is also the
// request's context.Context, so it can be passed straight to services.
type Context interface {
	context.Context

	Request() *http.Request
	Response() http.ResponseWriter
	ResponseWriter() *ResponseWriter
	Context() context.Context
	// SetContext swaps the request context. ctx must derive from Context().
	SetContext(ctx context.Context)

	// Request input. Missing values are "".
	Param(name string) string
	Query(name string) string
	QueryDefault(name, fallback string) string
	Form(name string) string
	Header(name string) string

	// Bind decodes the form body into v, applies `sanitize` tags and
	// validates `validate` tags plus an optional Validate method. Rule
	// failures come back as ValidationErrors; err is for malformed input.
	Bind(v any) (ValidationErrors, error)
	// BindQuery is Bind over the query string.
	BindQuery(v any) (ValidationErrors, error)

	// Responses.
	SetHeader(name, value string)
	Render(code int, c Component) error
	JSON(code int, v any) error
	String(code int, s string) error
	NoContent(code int) error
	Redirect(code int, url string) error
	Written() bool
	// Error builds an HTTPError for the handler to return; it writes nothing.
	Error(code int, message string, opts ...HTTPErrorOption) *HTTPError

	// Request-scoped values, visible to every later middleware and handler.
	Set(key, value any)
	Get(key any) any

	Cookie(name string) (string, error)
	SetCookie(name, value string, maxAge int)
	DeleteCookie(name string)

	// Session loads the session on first call. Changes are flushed right
	// before the response header is sent. Without WithSession it returns
	// session.ErrNotConfigured.
	Session() (*session.Session, error)
	// DestroySession empties the session, which expires its cookie.
	DestroySession() error

	Logger() *slog.Logger
	LogDebug(msg string, attrs ...any)
	LogInfo(msg string, attrs ...any)
	LogWarn(msg string, attrs ...any)
	LogError(msg string, attrs ...any)
}

// requestState lives in the request context. Each middleware layer gets its
// own Context value, and they all find the same writer and session here.
type requestState struct {
	rw            *ResponseWriter
	session       *session.Session
	sessionLoaded bool
	flushHooked   bool
}

type requestStateKey struct{}

type requestContext struct {
	request  *http.Request
	state    *requestState
	log      *slog.Logger
	cookies  *cookie.Manager
	sessions *SessionManager
}

func newContext(w http.ResponseWriter, r *http.Request, app *App) *requestContext {
	st, ok := r.Context().Value(requestStateKey{}).(*requestState)
	if !ok {
		rw, wrapped := w.(*ResponseWriter)
		if !wrapped {
			rw = NewResponseWriter(w)
		}
		st = &requestState{rw: rw}
		r = r.WithContext(context.WithValue(r.Context(), requestStateKey{}, st))
	}
	return &requestContext{
		request:  r,
		state:    st,
		log:      app.log,
		cookies:  app.cookies,
		sessions: app.session,
	}
}

// context.Context, delegated to the request.

func (c *requestContext) Deadline() (time.Time, bool) { return c.request.Context().Deadline() }
func (c *requestContext) Done() <-chan struct{}       { return c.request.Context().Done() }
func (c *requestContext) Err() error                  { return c.request.Context().Err() }
func (c *requestContext) Value(key any) any           { return c.request.Context().Value(key) }

func (c *requestContext) Request() *http.Request           { return c.request }
func (c *requestContext) Response() http.ResponseWriter    { return c.state.rw }
func (c *requestContext) ResponseWriter() *ResponseWriter { return c.state.rw }
func (c *requestContext) Context() context.Context         { return c.request.Context() }

func (c *requestContext) SetContext(ctx context.Context) {
	c.request = c.request.WithContext(ctx)
}

func (c *requestContext) Param(name string) string  { return chi.URLParam(c.request, name) }
func (c *requestContext) Query(name string) string  { return c.request.URL.Query().Get(name) }
func (c *requestContext) Form(name string) string   { return c.request.FormValue(name) }
func (c *requestContext) Header(name string) string { return c.request.Header.Get(name) }

func (c *requestContext) QueryDefault(name, fallback string) string {
	if v := c.Query(name); v != "" {
		return v
	}
	return fallback
}

func (c *requestContext) Bind(v any) (ValidationErrors, error) {
	return c.bind(binder.Form(), v)
}

func (c *requestContext) BindQuery(v any) (ValidationErrors, error) {
	return c.bind(binder.Query(), v)
}

func (c *requestContext) bind(decode binder.Func, v any) (ValidationErrors, error) {
	if err := decode(c.request, v); err != nil {
		return nil, fmt.Errorf("bind: %w", err)
	}
	if err := sanitizer.SanitizeStruct(v); err != nil {
		return nil, fmt.Errorf("sanitize: %w", err)
	}
	err := validator.ValidateStruct(v)
	switch {
	case err == nil:
		return nil, nil
	case validator.IsValidationError(err):
		return validator.ExtractValidationErrors(err), nil
	default:
		return nil, fmt.Errorf("validate: %w", err)
	}
}

func (c *requestContext) SetHeader(name, value string) {
	c.state.rw.Header().Set(name, value)
}

// start sets the content type, when given, and sends the header.
func (c *requestContext) start(code int, contentType string) io.Writer {
	if contentType != "" {
		c.state.rw.Header().Set("Content-Type", contentType)
	}
	c.state.rw.WriteHeader(code)
	return c.state.rw
}

func (c *requestContext) Render(code int, comp Component) error {
	return comp.Render(c.request.Context(), c.start(code, "text/html; charset=utf-8"))
}

func (c *requestContext) JSON(code int, v any) error {
	return json.NewEncoder(c.start(code, "application/json; charset=utf-8")).Encode(v)
}

func (c *requestContext) String(code int, s string) error {
	_, err := io.WriteString(c.start(code, "text/plain; charset=utf-8"), s)
	return err
}

func (c *requestContext) NoContent(code int) error {
	c.start(code, "")
	return nil
}

func (c *requestContext) Redirect(code int, url string) error {
	http.Redirect(c.state.rw, c.request, url, code)
	return nil
}

func (c *requestContext) Written() bool { return c.state.rw.Written() }

func (c *requestContext) Error(code int, message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(code, message, opts...)
}

func (c *requestContext) Set(key, value any) {
	c.SetContext(context.WithValue(c.request.Context(), key, value))
}

func (c *requestContext) Get(key any) any { return c.request.Context().Value(key) }

func (c *requestContext) Cookie(name string) (string, error) {
	return c.cookies.Get(c.request, name)
}

func (c *requestContext) SetCookie(name, value string, maxAge int) {
	c.cookies.Set(c.state.rw, name, value, maxAge)
}

func (c *requestContext) DeleteCookie(name string) {
	c.cookies.Delete(c.state.rw, name)
}

func (c *requestContext) Session() (*session.Session, error) {
	if c.sessions == nil {
		return nil, session.ErrNotConfigured
	}
	st := c.state
	if st.sessionLoaded {
		return st.session, nil
	}

	sess, err := c.sessions.LoadSession(c.request)
	if err != nil {
		return nil, err
	}
	st.session, st.sessionLoaded = sess, true

	if !st.flushHooked {
		st.flushHooked = true
		st.rw.OnBeforeWrite(func() {
			if err := c.sessions.SaveSession(st.rw, st.session); err != nil {
				c.log.ErrorContext(c.request.Context(), "failed to save session", slog.Any("error", err))
			}
		})
	}
	return sess, nil
}

func (c *requestContext) DestroySession() error {
	sess, err := c.Session()
	if err != nil {
		return err
	}
	sess.Clear()
	sess.MarkDirty()
	return nil
}

func (c *requestContext) Logger() *slog.Logger { return c.log }

func (c *requestContext) LogDebug(msg string, attrs ...any) {
	c.log.DebugContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) LogInfo(msg string, attrs ...any) {
	c.log.InfoContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) LogWarn(msg string, attrs ...any) {
	c.log.WarnContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) LogError(msg string, attrs ...any) {
	c.log.ErrorContext(c.request.Context(), msg, attrs...)
}
