package internal_test

import (
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/ryob/internal"
	"github.com/dmitrymomot/ryob/pkg/cookie"
	"github.com/dmitrymomot/ryob/pkg/session"
)

const (
	testSecret     = "0123456789abcdef0123456789abcdef"
	testCookieName = "ryob_session"
)

func newSessionApp(t *testing.T) *internal.App {
	t.Helper()

	cookies := cookie.New(cookie.WithSecret(testSecret))
	store := session.NewCookieStore(cookies, session.WithCookieName(testCookieName))

	return internal.New(
		internal.WithSession(store),
		internal.WithHandlers(routes(func(r internal.Router) {
			r.POST("/login", func(c internal.Context) error {
				sess, err := c.Session()
				if err != nil {
					return err
				}
				if err := sess.SetValue("user", c.Form("id")); err != nil {
					return err
				}
				return c.Redirect(http.StatusFound, "/")
			})
			r.GET("/whoami", func(c internal.Context) error {
				sess, err := c.Session()
				if err != nil {
					return err
				}
				return c.String(http.StatusOK, session.ValueOr(sess, "user", "anonymous"))
			})
			r.POST("/logout", func(c internal.Context) error {
				if err := c.DestroySession(); err != nil {
					return err
				}
				return c.Redirect(http.StatusFound, "/")
			})
		})),
	)
}

func TestSessionRoundTrip(t *testing.T) {
	t.Parallel()

	app := newSessionApp(t)

	rec := postForm(app, "/login", url.Values{"id": {"7"}})
	require.Equal(t, http.StatusFound, rec.Code)

	sc := findCookie(rec, testCookieName)
	require.NotNil(t, sc, "login must set the session cookie")
	assert.True(t, sc.HttpOnly)
	assert.Equal(t, "/", sc.Path)

	rec = get(app, "/whoami", sc)
	assert.Equal(t, "7", rec.Body.String())
	assert.Nil(t, findCookie(rec, testCookieName), "unchanged session must not be rewritten")

	rec = postForm(app, "/logout", nil, sc)
	require.Equal(t, http.StatusFound, rec.Code)
	cleared := findCookie(rec, testCookieName)
	require.NotNil(t, cleared)
	assert.Equal(t, -1, cleared.MaxAge)
}

func TestSessionAnonymous(t *testing.T) {
	t.Parallel()

	app := newSessionApp(t)

	rec := get(app, "/whoami")
	assert.Equal(t, "anonymous", rec.Body.String())
	assert.Nil(t, findCookie(rec, testCookieName))
}

func TestSessionTamperedCookie(t *testing.T) {
	t.Parallel()

	app := newSessionApp(t)

	rec := postForm(app, "/login", url.Values{"id": {"7"}})
	sc := findCookie(rec, testCookieName)
	require.NotNil(t, sc)

	payload, sig, ok := strings.Cut(sc.Value, ".")
	require.True(t, ok)
	forged := &http.Cookie{Name: testCookieName, Value: payload + "." + strings.Repeat("A", len(sig))}

	rec = get(app, "/whoami", forged)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "anonymous", rec.Body.String())

	cleared := findCookie(rec, testCookieName)
	require.NotNil(t, cleared, "a forged cookie must be cleared")
	assert.Equal(t, -1, cleared.MaxAge)
}

func TestSessionNotConfigured(t *testing.T) {
	t.Parallel()

	var sessErr error
	app := internal.New(internal.WithHandlers(routes(func(r internal.Router) {
		r.GET("/", func(c internal.Context) error {
			_, sessErr = c.Session()
			return c.NoContent(http.StatusNoContent)
		})
	})))

	get(app, "/")
	require.ErrorIs(t, sessErr, session.ErrNotConfigured)
}

func TestSessionSharedAcrossMiddleware(t *testing.T) {
	t.Parallel()

	cookies := cookie.New(cookie.WithSecret(testSecret))
	app := internal.New(
		internal.WithSession(session.NewCookieStore(cookies)),
		internal.WithMiddleware(func(next internal.HandlerFunc) internal.HandlerFunc {
			return func(c internal.Context) error {
				sess, err := c.Session()
				if err != nil {
					return err
				}
				if err := sess.SetValue("seen", true); err != nil {
					return err
				}
				return next(c)
			}
		}),
		internal.WithHandlers(routes(func(r internal.Router) {
			r.GET("/", func(c internal.Context) error {
				sess, err := c.Session()
				if err != nil {
					return err
				}
				if !session.ValueOr(sess, "seen", false) {
					return c.String(http.StatusOK, "different session")
				}
				return c.String(http.StatusOK, "same session")
			})
		})),
	)

	rec := get(app, "/")
	assert.Equal(t, "same session", rec.Body.String())
	assert.NotNil(t, findCookie(rec, "session"))
}
