package internal_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/ryob/internal"
)

func TestAppRouting(t *testing.T) {
	t.Parallel()

	app := internal.New(internal.WithHandlers(routes(func(r internal.Router) {
		r.GET("/topics/{id}", func(c internal.Context) error {
			return c.String(http.StatusOK, "topic "+c.Param("id"))
		})
		r.POST("/topics", func(c internal.Context) error {
			return c.Redirect(http.StatusFound, "/topics/1")
		})
		r.Route("/users", func(r internal.Router) {
			r.GET("/login", func(c internal.Context) error {
				return c.String(http.StatusOK, "login")
			})
		})
	})))

	t.Run("path parameter", func(t *testing.T) {
		t.Parallel()

		rec := get(app, "/topics/42")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "topic 42", rec.Body.String())
		assert.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
	})

	t.Run("redirect", func(t *testing.T) {
		t.Parallel()

		rec := postForm(app, "/topics", nil)
		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/topics/1", rec.Header().Get("Location"))
	})

	t.Run("route prefix", func(t *testing.T) {
		t.Parallel()

		rec := get(app, "/users/login")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "login", rec.Body.String())
	})

	t.Run("unknown path", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, http.StatusNotFound, get(app, "/nope").Code)
	})

	t.Run("wrong method", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, http.StatusMethodNotAllowed, get(app, "/topics").Code)
	})
}

func TestMiddlewareOrder(t *testing.T) {
	t.Parallel()

	trace := func(name string) internal.Middleware {
		return func(next internal.HandlerFunc) internal.HandlerFunc {
			return func(c internal.Context) error {
				c.Response().Header().Add("X-Trace", name)
				return next(c)
			}
		}
	}

	app := internal.New(
		internal.WithMiddleware(trace("global-1"), trace("global-2")),
		internal.WithHandlers(routes(func(r internal.Router) {
			r.Group(func(r internal.Router) {
				r.Use(trace("group"))
				r.GET("/", func(c internal.Context) error {
					return c.NoContent(http.StatusNoContent)
				}, trace("route-1"), trace("route-2"))
			})
		})),
	)

	rec := get(app, "/")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t,
		[]string{"global-1", "global-2", "group", "route-1", "route-2"},
		rec.Header().Values("X-Trace"))
}

func TestMiddlewareSharesRequestValues(t *testing.T) {
	t.Parallel()

	type key struct{}

	app := internal.New(
		internal.WithMiddleware(func(next internal.HandlerFunc) internal.HandlerFunc {
			return func(c internal.Context) error {
				c.Set(key{}, "ada")
				return next(c)
			}
		}),
		internal.WithHandlers(routes(func(r internal.Router) {
			r.GET("/", func(c internal.Context) error {
				return c.String(http.StatusOK, internal.ContextValue[string](c, key{}))
			})
		})),
	)

	assert.Equal(t, "ada", get(app, "/").Body.String())
}

func TestErrorHandling(t *testing.T) {
	t.Parallel()

	errBoom := errors.New("boom")

	handlers := routes(func(r internal.Router) {
		r.GET("/http-error", func(c internal.Context) error {
			return c.Error(http.StatusConflict, "Name is already in use")
		})
		r.GET("/plain-error", func(c internal.Context) error {
			return errBoom
		})
		r.GET("/late-error", func(c internal.Context) error {
			_ = c.String(http.StatusOK, "partial")
			return errBoom
		})
	})

	t.Run("default handler hides the cause", func(t *testing.T) {
		t.Parallel()

		app := internal.New(internal.WithHandlers(handlers))
		rec := get(app, "/plain-error")
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), "boom")
	})

	t.Run("custom handler sees the error", func(t *testing.T) {
		t.Parallel()

		app := internal.New(
			internal.WithHandlers(handlers),
			internal.WithErrorHandler(func(c internal.Context, err error) error {
				if httpErr := internal.AsHTTPError(err); httpErr != nil {
					return c.String(httpErr.Code, httpErr.Message)
				}
				return c.String(http.StatusInternalServerError, "oops")
			}),
		)

		rec := get(app, "/http-error")
		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, "Name is already in use", rec.Body.String())

		rec = get(app, "/plain-error")
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "oops", rec.Body.String())
	})

	t.Run("error after write keeps the response", func(t *testing.T) {
		t.Parallel()

		called := false
		app := internal.New(
			internal.WithHandlers(handlers),
			internal.WithErrorHandler(func(c internal.Context, err error) error {
				called = true
				return nil
			}),
		)

		rec := get(app, "/late-error")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "partial", rec.Body.String())
		assert.False(t, called)
	})
}

func TestCustomNotFound(t *testing.T) {
	t.Parallel()

	app := internal.New(internal.WithNotFoundHandler(func(c internal.Context) error {
		return c.String(http.StatusNotFound, "no such page")
	}))

	rec := get(app, "/missing")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "no such page", rec.Body.String())
}

func TestStaticFiles(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"static/styles/style.css": {Data: []byte("body{margin:0}")},
	}
	app := internal.New(internal.WithStaticFiles("/styles/", fsys, "static/styles"))

	rec := get(app, "/styles/style.css")
	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, "body{margin:0}", string(body))
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/css")
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))

	assert.Equal(t, http.StatusNotFound, get(app, "/styles/").Code)
	assert.Equal(t, http.StatusNotFound, get(app, "/styles/missing.css").Code)
}

func TestHealthEndpoints(t *testing.T) {
	t.Parallel()

	t.Run("ready", func(t *testing.T) {
		t.Parallel()

		app := internal.New(internal.WithHealthChecks(
			internal.WithReadinessCheck("db", func(context.Context) error { return nil }),
		))
		assert.Equal(t, http.StatusOK, get(app, "/health/live").Code)
		assert.Equal(t, http.StatusOK, get(app, "/health/ready").Code)
	})

	t.Run("not ready", func(t *testing.T) {
		t.Parallel()

		app := internal.New(internal.WithHealthChecks(
			internal.WithLivenessPath("/livez"),
			internal.WithReadinessPath("/readyz"),
			internal.WithReadinessCheck("db", func(context.Context) error { return errors.New("down") }),
		))
		assert.Equal(t, http.StatusOK, get(app, "/livez").Code)
		assert.Equal(t, http.StatusServiceUnavailable, get(app, "/readyz").Code)
	})
}

func TestHTTPHandlerMount(t *testing.T) {
	t.Parallel()

	app := internal.New(internal.WithHTTPHandler("/metrics", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "ryob_posts_created_total 3\n")
	})))

	rec := get(app, "/metrics")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ryob_posts_created_total")
}
