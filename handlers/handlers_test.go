package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/ryob"
	"github.com/dmitrymomot/ryob/forum"
	"github.com/dmitrymomot/ryob/handlers"
	"github.com/dmitrymomot/ryob/migrations"
	"github.com/dmitrymomot/ryob/pkg/cookie"
	"github.com/dmitrymomot/ryob/pkg/db"
	"github.com/dmitrymomot/ryob/pkg/logger"
	"github.com/dmitrymomot/ryob/pkg/session"
	"github.com/dmitrymomot/ryob/repository/sqlite"
	"github.com/dmitrymomot/ryob/views"
)

const (
	testSecret     = "0123456789abcdef0123456789abcdef"
	testCookieName = "ryob_session"
)

func newApp(t *testing.T) *ryob.App {
	t.Helper()
	ctx := context.Background()

	conn, err := db.OpenSQLite(ctx, db.Config{URL: "sqlite:" + filepath.Join(t.TempDir(), "ryob.db")})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.ShutdownSQLite(conn)(ctx) })
	require.NoError(t, db.MigrateSQLite(ctx, conn, migrations.SQLite(), logger.NewNope()))
	store := sqlite.New(conn)

	v, err := views.New()
	require.NoError(t, err)

	sessions := session.NewCookieStore(
		cookie.New(cookie.WithSecret(testSecret)),
		session.WithCookieName(testCookieName),
	)

	return handlers.NewApp(handlers.Deps{
		Accounts: forum.NewIdentity(store, forum.WithHasher(forum.NewBcryptHasher(4))),
		Content:  forum.NewContent(store, store),
		Views:    v,
		Sessions: sessions,
		Logger:   logger.NewNope(),
		PageSize: 2,
	})
}

// browser replays the session cookie between requests.
type browser struct {
	t       *testing.T
	app     *ryob.App
	session *http.Cookie
}

func newBrowser(t *testing.T, app *ryob.App) *browser {
	return &browser{t: t, app: app}
}

func (b *browser) do(req *http.Request) *httptest.ResponseRecorder {
	b.t.Helper()
	if b.session != nil {
		req.AddCookie(b.session)
	}
	rec := httptest.NewRecorder()
	b.app.ServeHTTP(rec, req)

	for _, c := range rec.Result().Cookies() {
		if c.Name != testCookieName {
			continue
		}
		if c.MaxAge < 0 {
			b.session = nil
		} else {
			b.session = c
		}
	}
	return rec
}

func (b *browser) get(target string) *httptest.ResponseRecorder {
	b.t.Helper()
	return b.do(httptest.NewRequest(http.MethodGet, target, nil))
}

func (b *browser) post(target string, form url.Values) *httptest.ResponseRecorder {
	b.t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return b.do(req)
}

func (b *browser) register(name, password string) *httptest.ResponseRecorder {
	b.t.Helper()
	return b.post("/register", url.Values{
		"user_name":        {name},
		"password":         {password},
		"password_confirm": {password},
	})
}

func (b *browser) login(name, password string) *httptest.ResponseRecorder {
	b.t.Helper()
	return b.post("/users/login", url.Values{"user_name": {name}, "password": {password}})
}

func TestRegisterLoginLogout(t *testing.T) {
	t.Parallel()

	app := newApp(t)
	ada := newBrowser(t, app)

	rec := ada.register("Ada", "correcthorse")
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
	require.NotNil(t, ada.session, "registration signs the user in")

	rec = ada.get("/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Signed in as <strong>Ada</strong>")

	rec = ada.post("/users/logout", nil)
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Nil(t, ada.session)

	rec = ada.get("/")
	assert.Contains(t, rec.Body.String(), `href="/users/login"`)
	assert.NotContains(t, rec.Body.String(), "Signed in as")

	t.Run("wrong password", func(t *testing.T) {
		b := newBrowser(t, app)
		rec := b.login("Ada", "wrong")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), forum.MsgBadLogin)
		assert.Nil(t, b.session)
	})

	t.Run("unknown name", func(t *testing.T) {
		b := newBrowser(t, app)
		rec := b.login("Grace", "correcthorse")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), forum.MsgBadLogin)
	})

	t.Run("correct password", func(t *testing.T) {
		b := newBrowser(t, app)
		rec := b.login("Ada", "correcthorse")
		require.Equal(t, http.StatusFound, rec.Code)
		require.NotNil(t, b.session)
		assert.Contains(t, b.get("/").Body.String(), "Signed in as <strong>Ada</strong>")
	})

	t.Run("login trims the name", func(t *testing.T) {
		b := newBrowser(t, app)
		rec := b.login("  Ada ", "correcthorse")
		assert.Equal(t, http.StatusFound, rec.Code)
	})

	t.Run("longest accepted password", func(t *testing.T) {
		long := strings.Repeat("p4ss!", 51) + "x"
		require.Len(t, long, 256)

		b := newBrowser(t, app)
		rec := b.register("Grace", long)
		require.Equal(t, http.StatusFound, rec.Code)

		b = newBrowser(t, app)
		rec = b.login("Grace", long)
		require.Equal(t, http.StatusFound, rec.Code)
		require.NotNil(t, b.session)
		assert.Contains(t, b.get("/").Body.String(), "Signed in as <strong>Grace</strong>")
	})
}

func TestRegisterRejectsInvalidInput(t *testing.T) {
	t.Parallel()

	app := newApp(t)

	t.Run("rule violations", func(t *testing.T) {
		b := newBrowser(t, app)
		rec := b.post("/register", url.Values{
			"user_name":        {"A"},
			"password":         {"short"},
			"password_confirm": {"other"},
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, forum.MsgNameLength)
		assert.Contains(t, body, forum.MsgPasswordLength)
		assert.Contains(t, body, forum.MsgPasswordMismatch)
		assert.Nil(t, b.session)
	})

	t.Run("duplicate name after trimming", func(t *testing.T) {
		b := newBrowser(t, app)
		require.Equal(t, http.StatusFound, b.register("Ada", "correcthorse").Code)

		other := newBrowser(t, app)
		rec := other.register("  Ada  ", "batterystaple")
		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Contains(t, rec.Body.String(), forum.MsgNameInUse)
		assert.Nil(t, other.session)
	})

	t.Run("users form uses confirm_password", func(t *testing.T) {
		b := newBrowser(t, app)
		rec := b.post("/users/register", url.Values{
			"user_name":        {"Grace Hopper"},
			"password":         {"cobol1959"},
			"confirm_password": {"cobol1959"},
		})
		assert.Equal(t, http.StatusFound, rec.Code)
		assert.NotNil(t, b.session)
	})
}

func TestProtectedPagesRedirectToLogin(t *testing.T) {
	t.Parallel()

	app := newApp(t)
	anon := newBrowser(t, app)

	for _, tc := range []struct {
		method, target string
	}{
		{http.MethodGet, "/topics/new"},
		{http.MethodPost, "/topics"},
		{http.MethodPost, "/topics/1/posts"},
	} {
		t.Run(tc.method+" "+tc.target, func(t *testing.T) {
			rec := anon.do(httptest.NewRequest(tc.method, tc.target, nil))
			assert.Equal(t, http.StatusFound, rec.Code)
			assert.Equal(t, handlers.LoginPath, rec.Header().Get("Location"))
		})
	}
}

func TestTopicsAndPosts(t *testing.T) {
	t.Parallel()

	app := newApp(t)
	ada := newBrowser(t, app)
	require.Equal(t, http.StatusFound, ada.register("Ada", "correcthorse").Code)

	rec := ada.post("/topics", url.Values{"title": {"  Hello   world "}})
	require.Equal(t, http.StatusFound, rec.Code)
	topicURL := rec.Header().Get("Location")
	require.True(t, strings.HasPrefix(topicURL, "/topics/"), topicURL)
	assert.True(t, strings.HasSuffix(topicURL, "/hello-world"), topicURL)
	topicID := strings.Split(topicURL, "/")[2]

	rec = ada.get(topicURL)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<h1>Hello world</h1>")
	assert.Contains(t, rec.Body.String(), "No posts yet.")

	t.Run("home lists the topic", func(t *testing.T) {
		rec := newBrowser(t, app).get("/")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `href="`+topicURL+`"`)
		assert.Contains(t, rec.Body.String(), "by Ada")
	})

	t.Run("wrong slug redirects to canonical url", func(t *testing.T) {
		rec := ada.get("/topics/" + topicID + "/old-title?page=1")
		assert.Equal(t, http.StatusMovedPermanently, rec.Code)
		assert.Equal(t, topicURL+"?page=1", rec.Header().Get("Location"))
	})

	t.Run("bare id is served", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, ada.get("/topics/"+topicID).Code)
	})

	t.Run("unknown topic", func(t *testing.T) {
		rec := ada.get("/topics/987654")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "<h1>404</h1>")

		assert.Equal(t, http.StatusNotFound, ada.get("/topics/not-a-number").Code)
	})

	t.Run("empty title", func(t *testing.T) {
		rec := ada.post("/topics", url.Values{"title": {"   "}})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "Title is required")
	})

	t.Run("reply", func(t *testing.T) {
		rec := ada.post("/topics/"+topicID+"/posts", url.Values{"content": {"**first** reply"}})
		require.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, topicURL, rec.Header().Get("Location"))

		rec = ada.get(topicURL)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "<strong>first</strong> reply")
		assert.Contains(t, rec.Body.String(), "Ada wrote on")
	})

	t.Run("empty reply keeps the topic page", func(t *testing.T) {
		rec := ada.post("/topics/"+topicID+"/posts", url.Values{"content": {"  "}})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "Reply is required")
		assert.Contains(t, rec.Body.String(), "<h1>Hello world</h1>")
	})

	t.Run("reply to unknown topic", func(t *testing.T) {
		rec := ada.post("/topics/987654/posts", url.Values{"content": {"hi"}})
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestHomePagination(t *testing.T) {
	t.Parallel()

	app := newApp(t)
	ada := newBrowser(t, app)
	require.Equal(t, http.StatusFound, ada.register("Ada", "correcthorse").Code)

	for _, title := range []string{"One", "Two", "Three"} {
		require.Equal(t, http.StatusFound, ada.post("/topics", url.Values{"title": {title}}).Code)
	}

	rec := ada.get("/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `href="?page=2"`)
	assert.NotContains(t, rec.Body.String(), "Newer")

	rec = ada.get("/?page=2")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `href="?page=1"`)
	assert.NotContains(t, rec.Body.String(), "Older")
}

func TestNotFoundAndStyles(t *testing.T) {
	t.Parallel()

	app := newApp(t)
	b := newBrowser(t, app)

	rec := b.get("/no/such/page")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Page not found")

	rec = b.get("/styles/main.css")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/css")
}
