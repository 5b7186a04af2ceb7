package binder_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/ryob/pkg/binder"
)

type pagination struct {
	Page int `query:"page"`
}

type registerForm struct {
	Name     string   `form:"user_name"`
	Password string   `form:"password"`
	Remember bool     `form:"remember"`
	Tags     []string `form:"tag"`
	Age      *int     `form:"age"`
	Ignored  string   `form:"-"`
	Untagged string
}

func postForm(values url.Values) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(values.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return r
}

func TestForm(t *testing.T) {
	t.Parallel()

	t.Run("binds tagged fields", func(t *testing.T) {
		t.Parallel()

		r := postForm(url.Values{
			"user_name": {"Ada"},
			"password":  {"correcthorse"},
			"remember":  {"on"},
			"tag":       {"a", "b"},
			"age":       {"36"},
			"Ignored":   {"x"},
			"Untagged":  {"y"},
		})

		var f registerForm
		require.NoError(t, binder.Form()(r, &f))
		assert.Equal(t, "Ada", f.Name)
		assert.Equal(t, "correcthorse", f.Password)
		assert.True(t, f.Remember)
		assert.Equal(t, []string{"a", "b"}, f.Tags)
		require.NotNil(t, f.Age)
		assert.Equal(t, 36, *f.Age)
		assert.Empty(t, f.Ignored)
		assert.Empty(t, f.Untagged)
	})

	t.Run("ignores query string", func(t *testing.T) {
		t.Parallel()

		r := postForm(url.Values{})
		r.URL.RawQuery = "user_name=Eve"

		var f registerForm
		require.NoError(t, binder.Form()(r, &f))
		assert.Empty(t, f.Name)
	})

	t.Run("rejects json", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{}"))
		r.Header.Set("Content-Type", "application/json")

		var f registerForm
		require.ErrorIs(t, binder.Form()(r, &f), binder.ErrUnsupportedMediaType)
	})

	t.Run("invalid target", func(t *testing.T) {
		t.Parallel()

		var f registerForm
		require.ErrorIs(t, binder.Form()(postForm(url.Values{}), f), binder.ErrInvalidTarget)
	})
}

func TestQuery(t *testing.T) {
	t.Parallel()

	t.Run("parses ints", func(t *testing.T) {
		t.Parallel()

		var p pagination
		r := httptest.NewRequest(http.MethodGet, "/?page=3", nil)
		require.NoError(t, binder.Query()(r, &p))
		assert.Equal(t, 3, p.Page)
	})

	t.Run("bad int", func(t *testing.T) {
		t.Parallel()

		var p pagination
		r := httptest.NewRequest(http.MethodGet, "/?page=three", nil)
		require.ErrorIs(t, binder.Query()(r, &p), binder.ErrInvalidValue)
	})
}

func TestJSON(t *testing.T) {
	t.Parallel()

	var out struct {
		Name string `json:"name"`
	}
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Ada"}`))
	r.Header.Set("Content-Type", "application/json")

	require.NoError(t, binder.JSON()(r, &out))
	assert.Equal(t, "Ada", out.Name)
}
