package middlewares_test

import (
	"net/http"
	"net/http/httptest"

	"github.com/dmitrymomot/ryob/internal"
)

type routes func(r internal.Router)

func (f routes) Routes(r internal.Router) { f(r) }

func get(app *internal.App, target string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)
	return rec
}
