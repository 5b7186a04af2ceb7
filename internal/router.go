package internal

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Router declares routes. Route middleware passed to GET, POST and Handle
// runs after the app and group middleware, first listed outermost.
type Router interface {
	GET(path string, h HandlerFunc, mw ...Middleware)
	POST(path string, h HandlerFunc, mw ...Middleware)
	Handle(method, path string, h HandlerFunc, mw ...Middleware)

	// Group shares middleware between routes without adding a prefix.
	Group(fn func(r Router))
	// Route shares a path prefix, and middleware added inside fn.
	Route(prefix string, fn func(r Router))
	Use(mw ...Middleware)

	// Mount serves a plain http.Handler below prefix.
	Mount(prefix string, h http.Handler)
}

// mux implements Router on top of a chi sub-router.
type mux struct {
	chi chi.Router
	app *App
}

func (m *mux) GET(path string, h HandlerFunc, mw ...Middleware) {
	m.Handle(http.MethodGet, path, h, mw...)
}

func (m *mux) POST(path string, h HandlerFunc, mw ...Middleware) {
	m.Handle(http.MethodPost, path, h, mw...)
}

func (m *mux) Handle(method, path string, h HandlerFunc, mw ...Middleware) {
	m.chi.Method(method, path, m.app.wrapHandler(chain(h, mw)))
}

func (m *mux) Group(fn func(Router)) {
	m.chi.Group(func(sub chi.Router) { fn(m.sub(sub)) })
}

func (m *mux) Route(prefix string, fn func(Router)) {
	m.chi.Route(prefix, func(sub chi.Router) { fn(m.sub(sub)) })
}

func (m *mux) Use(mw ...Middleware) {
	for _, fn := range mw {
		m.chi.Use(m.app.toChi(fn))
	}
}

func (m *mux) Mount(prefix string, h http.Handler) {
	m.chi.Mount(prefix, h)
}

func (m *mux) sub(r chi.Router) *mux {
	return &mux{chi: r, app: m.app}
}

// chain wraps h so that mw[0] sees the request first.
func chain(h HandlerFunc, mw []Middleware) HandlerFunc {
	for i := len(mw) - 1; i >= 0; i-- {
		h = mw[i](h)
	}
	return h
}

// toChi turns a Middleware into chi middleware. The layer gets a Context of
// its own; request state travels in the request and is shared by all layers.
func (a *App) toChi(fn Middleware) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return a.wrapHandler(fn(func(c Context) error {
			next.ServeHTTP(c.Response(), c.Request())
			return nil
		}))
	}
}
