package cache

import "errors"

var (
	// ErrNotFound means a miss: the key was never set, expired or was evicted.
	ErrNotFound = errors.New("cache: entry not found")
	ErrClosed   = errors.New("cache: closed")

	ErrMarshal   = errors.New("cache: failed to marshal value")
	ErrUnmarshal = errors.New("cache: failed to unmarshal value")
)
