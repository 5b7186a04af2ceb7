package views_test

import (
	"bytes"
	"context"
	"io/fs"
	"testing"
	"time"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/ryob/forum"
	"github.com/dmitrymomot/ryob/views"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &buf))
	return buf.String()
}

func newRenderer(t *testing.T) *views.Renderer {
	t.Helper()

	r, err := views.New()
	require.NoError(t, err)
	return r
}

var (
	ada     = forum.User{ID: 1, Name: "Ada"}
	created = time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)
)

func TestHome(t *testing.T) {
	t.Parallel()

	r := newRenderer(t)

	t.Run("anonymous", func(t *testing.T) {
		t.Parallel()

		html := render(t, r.Home(views.HomePage{Pagination: views.Pagination{Page: 1}}))
		assert.Contains(t, html, `href="/users/login"`)
		assert.Contains(t, html, "No topics yet.")
		assert.NotContains(t, html, "Log out")
		assert.NotContains(t, html, `class="pager"`)
	})

	t.Run("signed in with topics", func(t *testing.T) {
		t.Parallel()

		html := render(t, r.Home(views.HomePage{
			Layout:     views.Layout{User: &ada},
			Pagination: views.Pagination{Page: 2, HasNext: true},
			Topics: []forum.TopicWithCreator{{
				Topic:   forum.Topic{ID: 7, Title: "Hello, World!", CreatedBy: 1, CreatedAt: created},
				Creator: ada,
			}},
		}))
		assert.Contains(t, html, "Signed in as <strong>Ada</strong>")
		assert.Contains(t, html, `href="/topics/7/hello-world"`)
		assert.Contains(t, html, "2024-03-01 12:30 UTC")
		assert.Contains(t, html, `href="?page=1"`)
		assert.Contains(t, html, `href="?page=3"`)
	})
}

func TestEscaping(t *testing.T) {
	t.Parallel()

	r := newRenderer(t)
	evil := forum.User{ID: 2, Name: "<script>alert(1)</script>"}

	html := render(t, r.Login(views.LoginPage{Name: `"><img src=x>`, Errors: []string{forum.MsgBadLogin}}))
	assert.NotContains(t, html, `"><img`)
	assert.Contains(t, html, forum.MsgBadLogin)

	html = render(t, r.Home(views.HomePage{Layout: views.Layout{User: &evil}}))
	assert.NotContains(t, html, "<script>alert(1)</script>")
}

func TestRegister(t *testing.T) {
	t.Parallel()

	r := newRenderer(t)
	html := render(t, r.Register(views.RegisterPage{
		Action:       "/users/register",
		ConfirmField: "confirm_password",
		Name:         "Ada",
		Errors:       []string{forum.MsgPasswordMismatch},
	}))

	assert.Contains(t, html, `action="/users/register"`)
	assert.Contains(t, html, `name="confirm_password"`)
	assert.Contains(t, html, `value="Ada"`)
	assert.Contains(t, html, forum.MsgPasswordMismatch)
	assert.NotContains(t, html, `name="password" value`)
}

func TestTopic(t *testing.T) {
	t.Parallel()

	r := newRenderer(t)
	page := views.TopicPage{
		Layout: views.Layout{User: &ada},
		Topic: forum.TopicWithCreator{
			Topic:   forum.Topic{ID: 3, Title: "Markdown", CreatedAt: created},
			Creator: ada,
		},
		Posts: []forum.PostWithCreator{{
			Post:    forum.Post{ID: 9, PostedIn: 3, Content: "**bold** <script>alert(1)</script>", CreatedAt: created},
			Creator: ada,
		}},
		Pagination: views.Pagination{Page: 1},
	}

	html := render(t, r.Topic(page))
	assert.Contains(t, html, `action="/topics/3/posts"`)
	assert.Contains(t, html, "<strong>bold</strong>")
	assert.NotContains(t, html, "<script>alert(1)</script>")
	assert.Contains(t, html, `id="post-9"`)

	page.User = nil
	html = render(t, r.Topic(page))
	assert.NotContains(t, html, `action="/topics/3/posts"`)
	assert.Contains(t, html, "to reply")
}

func TestErrorPage(t *testing.T) {
	t.Parallel()

	html := render(t, newRenderer(t).Error(views.ErrorPage{Status: 404, Message: "No such topic"}))
	assert.Contains(t, html, "<h1>404</h1>")
	assert.Contains(t, html, "No such topic")
}

func TestTopicURL(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "/topics/5/creme-brulee", views.TopicURL(5, "Crème brûlée"))
	assert.Equal(t, "/topics/5", views.TopicURL(5, "!!!"))
}

func TestAssets(t *testing.T) {
	t.Parallel()

	css, err := fs.ReadFile(views.Assets, "static/styles/main.css")
	require.NoError(t, err)
	assert.NotEmpty(t, css)
}
