package internal_test

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/ryob/internal"
	"github.com/dmitrymomot/ryob/pkg/cookie"
	"github.com/dmitrymomot/ryob/pkg/session"
)

func TestExtractor(t *testing.T) {
	t.Parallel()

	requestID := internal.NewExtractor(
		internal.FromHeader("X-Request-ID"),
		internal.FromQuery("request_id"),
		internal.FromCookie("request_id"),
	)

	app := internal.New(internal.WithHandlers(routes(func(r internal.Router) {
		r.GET("/", func(c internal.Context) error {
			v, ok := requestID.Extract(c)
			if !ok {
				return c.String(http.StatusOK, "none")
			}
			return c.String(http.StatusOK, v)
		})
	})))

	t.Run("first source wins", func(t *testing.T) {
		t.Parallel()

		req, _ := http.NewRequest(http.MethodGet, "/?request_id=from-query", nil)
		req.Header.Set("X-Request-ID", "from-header")
		assert.Equal(t, "from-header", serve(app, req).Body.String())
	})

	t.Run("falls through to later sources", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "from-query", get(app, "/?request_id=from-query").Body.String())
		assert.Equal(t, "from-cookie",
			get(app, "/", &http.Cookie{Name: "request_id", Value: "from-cookie"}).Body.String())
	})

	t.Run("all miss", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "none", get(app, "/").Body.String())
	})
}

func TestExtractorParamAndForm(t *testing.T) {
	t.Parallel()

	ext := internal.NewExtractor(internal.FromParam("id"), internal.FromForm("id"))

	app := internal.New(internal.WithHandlers(routes(func(r internal.Router) {
		handler := func(c internal.Context) error {
			v, _ := ext.Extract(c)
			return c.String(http.StatusOK, v)
		}
		r.GET("/topics/{id}", handler)
		r.POST("/topics", handler)
	})))

	assert.Equal(t, "9", get(app, "/topics/9").Body.String())
	assert.Equal(t, "11", postForm(app, "/topics", url.Values{"id": {"11"}}).Body.String())
}

func TestFromSession(t *testing.T) {
	t.Parallel()

	cookies := cookie.New(cookie.WithSecret(testSecret))
	userID := internal.NewExtractor(internal.FromSession("user"))

	app := internal.New(
		internal.WithSession(session.NewCookieStore(cookies)),
		internal.WithHandlers(routes(func(r internal.Router) {
			r.POST("/login", func(c internal.Context) error {
				sess, err := c.Session()
				if err != nil {
					return err
				}
				if err := sess.SetValue("user", 42); err != nil {
					return err
				}
				return c.NoContent(http.StatusNoContent)
			})
			r.GET("/", func(c internal.Context) error {
				v, ok := userID.Extract(c)
				if !ok {
					return c.String(http.StatusOK, "anonymous")
				}
				return c.String(http.StatusOK, v)
			})
		})),
	)

	assert.Equal(t, "anonymous", get(app, "/").Body.String())

	rec := postForm(app, "/login", nil)
	sc := findCookie(rec, "session")
	if assert.NotNil(t, sc) {
		assert.Equal(t, "42", get(app, "/", sc).Body.String())
	}
}
