package middlewares_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/ryob/internal"
	"github.com/dmitrymomot/ryob/middlewares"
)

func TestRecover(t *testing.T) {
	t.Parallel()

	var captured error
	newApp := func(opts ...middlewares.RecoverOption) *internal.App {
		return internal.New(
			internal.WithMiddleware(middlewares.Recover(opts...)),
			internal.WithErrorHandler(func(c internal.Context, err error) error {
				captured = err
				return c.String(middlewares.ErrorStatus(err), "Something went wrong")
			}),
			internal.WithHandlers(routes(func(r internal.Router) {
				r.GET("/panic", func(c internal.Context) error {
					panic("boom")
				})
				r.GET("/panic-error", func(c internal.Context) error {
					panic(errors.New("wrapped boom"))
				})
				r.GET("/ok", func(c internal.Context) error {
					return c.String(http.StatusOK, "fine")
				})
			})),
		)
	}

	t.Run("converts panic to 500", func(t *testing.T) {
		rec := get(newApp(), "/panic")
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "Something went wrong", rec.Body.String())

		pe, ok := middlewares.AsPanicError(captured)
		require.True(t, ok)
		assert.Equal(t, "boom", pe.Value)
		assert.NotEmpty(t, pe.Stack)
		assert.Equal(t, "panic: boom", pe.Error())
	})

	t.Run("error values stay in the chain", func(t *testing.T) {
		get(newApp(middlewares.WithoutStack()), "/panic-error")

		pe, ok := middlewares.AsPanicError(captured)
		require.True(t, ok)
		assert.Nil(t, pe.Stack)
		assert.EqualError(t, errors.Unwrap(pe), "wrapped boom")
	})

	t.Run("stack size cap", func(t *testing.T) {
		get(newApp(middlewares.WithRecoverStackSize(64)), "/panic")

		pe, ok := middlewares.AsPanicError(captured)
		require.True(t, ok)
		assert.LessOrEqual(t, len(pe.Stack), 64)
	})

	t.Run("passes through without panic", func(t *testing.T) {
		rec := get(newApp(), "/ok")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "fine", rec.Body.String())
	})
}
