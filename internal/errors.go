package internal

import (
	"errors"
	"net/http"
)

// HTTPError is a handler error with the status and message to show the
// visitor. The wrapped Err is for logs only.
type HTTPError struct {
	Code      int
	Message   string
	RequestID string
	Err       error
}

// HTTPErrorOption sets optional HTTPError fields.
type HTTPErrorOption func(*HTTPError)

// NewHTTPError builds an HTTPError. An empty message becomes the status text.
//
//	return ryob.NewHTTPError(http.StatusForbidden, "", ryob.WithError(err))
func NewHTTPError(code int, message string, opts ...HTTPErrorOption) *HTTPError {
	e := &HTTPError{Code: code, Message: message}
	if e.Message == "" {
		e.Message = http.StatusText(code)
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *HTTPError) Error() string      { return e.Message }
func (e *HTTPError) Unwrap() error      { return e.Err }
func (e *HTTPError) StatusCode() int    { return e.Code }
func (e *HTTPError) StatusText() string { return http.StatusText(e.Code) }

// WithError attaches the underlying cause.
func WithError(err error) HTTPErrorOption {
	return func(e *HTTPError) { e.Err = err }
}

func WithRequestID(id string) HTTPErrorOption {
	return func(e *HTTPError) { e.RequestID = id }
}

// Shorthands for the statuses the forum handlers return.

func ErrBadRequest(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusBadRequest, message, opts...)
}

func ErrUnauthorized(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusUnauthorized, message, opts...)
}

func ErrNotFound(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusNotFound, message, opts...)
}

func ErrConflict(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusConflict, message, opts...)
}

func ErrInternal(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusInternalServerError, message, opts...)
}

// AsHTTPError finds an HTTPError in err's chain. It returns nil if there is none.
func AsHTTPError(err error) *HTTPError {
	var e *HTTPError
	if errors.As(err, &e) {
		return e
	}
	return nil
}
