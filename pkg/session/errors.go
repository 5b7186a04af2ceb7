package session

import "errors"

var (
	// ErrNotConfigured: the app was built without WithSession.
	ErrNotConfigured = errors.New("session: not configured")
	ErrNotFound      = errors.New("session: not found")
	// ErrInvalidToken: the cookie is unsigned, tampered with or not JSON.
	ErrInvalidToken = errors.New("session: invalid token")
	// ErrTypeMismatch: a stored value does not decode into the requested type.
	ErrTypeMismatch = errors.New("session: type mismatch")
)
