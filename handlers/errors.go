package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/ryob"
	"github.com/dmitrymomot/ryob/forum"
	"github.com/dmitrymomot/ryob/middlewares"
	"github.com/dmitrymomot/ryob/views"
)

// ErrorHandler renders errors returned by handlers as an error page.
// Server errors are logged with their cause and shown with a generic message.
func ErrorHandler(v *views.Renderer) ryob.ErrorHandler {
	return func(c ryob.Context, err error) error {
		status := middlewares.ErrorStatus(err)
		msg := publicMessage(err, status)

		if status >= http.StatusInternalServerError {
			c.LogError("request failed",
				slog.Int("status", status),
				slog.String("path", c.Request().URL.Path),
				slog.Any("error", err),
			)
		}

		return c.Render(status, v.Error(views.ErrorPage{
			Layout:  layout(c, http.StatusText(status)),
			Status:  status,
			Message: msg,
		}))
	}
}

// NotFound renders the 404 page for unknown paths.
func NotFound(v *views.Renderer) ryob.HandlerFunc {
	return func(c ryob.Context) error {
		return c.Render(http.StatusNotFound, v.Error(views.ErrorPage{
			Layout:  layout(c, "Not found"),
			Status:  http.StatusNotFound,
			Message: "Page not found",
		}))
	}
}

// MethodNotAllowed renders the 405 page.
func MethodNotAllowed(v *views.Renderer) ryob.HandlerFunc {
	return func(c ryob.Context) error {
		return c.Render(http.StatusMethodNotAllowed, v.Error(views.ErrorPage{
			Layout:  layout(c, "Method not allowed"),
			Status:  http.StatusMethodNotAllowed,
			Message: http.StatusText(http.StatusMethodNotAllowed),
		}))
	}
}

func publicMessage(err error, status int) string {
	if status >= http.StatusInternalServerError {
		return "Something went wrong. Please try again later."
	}
	if httpErr := ryob.AsHTTPError(err); httpErr != nil {
		return httpErr.Message
	}
	switch {
	case errors.Is(err, forum.ErrNoSuchTopic):
		return "No such topic"
	case errors.Is(err, forum.ErrNoSuchUser):
		return "No such user"
	case errors.Is(err, forum.ErrBadLogin):
		return forum.MsgBadLogin
	case errors.Is(err, forum.ErrNameAlreadyInUse):
		return forum.MsgNameInUse
	case errors.Is(err, forum.ErrInvalidPage):
		return "Invalid page"
	}
	return http.StatusText(status)
}
