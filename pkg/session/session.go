// Package session implements a client-side session: a small JSON map carried
// in a signed cookie. The server stores nothing; a session is anonymous until
// a value is written into it.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Session is a map of JSON-encoded values loaded from a request.
// It is not safe for concurrent use; each request owns its own Session.
type Session struct {
	values map[string]json.RawMessage

	dirty bool // tracks if session needs saving
	isNew bool // tracks if session was created rather than loaded
}

// New creates an empty session.
func New() *Session {
	return &Session{
		values: make(map[string]json.RawMessage),
		isNew:  true,
	}
}

// Decode restores a session from its encoded form.
func Decode(data []byte) (*Session, error) {
	values := make(map[string]json.RawMessage)
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, errors.Join(ErrInvalidToken, err)
	}
	return &Session{values: values}, nil
}

// Encode serializes the session values.
func (s *Session) Encode() ([]byte, error) {
	return json.Marshal(s.values)
}

// SetValue stores val under key and marks the session dirty.
func (s *Session) SetValue(key string, val any) error {
	raw, err := json.Marshal(val)
	if err != nil {
		return fmt.Errorf("session: encode %q: %w", key, err)
	}
	if s.values == nil {
		s.values = make(map[string]json.RawMessage)
	}
	s.values[key] = raw
	s.dirty = true
	return nil
}

// GetValue returns the raw JSON stored under key.
func (s *Session) GetValue(key string) (json.RawMessage, bool) {
	val, ok := s.values[key]
	return val, ok
}

// Has reports whether key is present.
func (s *Session) Has(key string) bool {
	_, ok := s.values[key]
	return ok
}

// DeleteValue removes a value from the session.
// Marks the session as dirty only if the key existed.
func (s *Session) DeleteValue(key string) {
	if _, exists := s.values[key]; exists {
		delete(s.values, key)
		s.dirty = true
	}
}

// Clear removes every value.
func (s *Session) Clear() {
	if len(s.values) == 0 {
		return
	}
	clear(s.values)
	s.dirty = true
}

// Len returns the number of stored values.
func (s *Session) Len() int {
	return len(s.values)
}

// IsEmpty reports whether the session carries no values.
func (s *Session) IsEmpty() bool {
	return len(s.values) == 0
}

// IsDirty returns true if the session has unsaved changes.
func (s *Session) IsDirty() bool {
	return s.dirty
}

// MarkDirty forces the next save to write the session.
func (s *Session) MarkDirty() {
	s.dirty = true
}

// ClearDirty marks the session as saved.
func (s *Session) ClearDirty() {
	s.dirty = false
}

// IsNew returns true if the session was created during this request.
func (s *Session) IsNew() bool {
	return s.isNew
}

// Value decodes the value stored under key into T.
// Returns ErrNotFound if the key doesn't exist and ErrTypeMismatch
// if the stored JSON does not fit T.
func Value[T any](s *Session, key string) (T, error) {
	var zero T
	if s == nil {
		return zero, ErrNotFound
	}

	raw, ok := s.GetValue(key)
	if !ok {
		return zero, ErrNotFound
	}

	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		return zero, fmt.Errorf("%w for key %q: %w", ErrTypeMismatch, key, err)
	}
	return out, nil
}

// ValueOr is like Value but returns defaultVal on any error.
func ValueOr[T any](s *Session, key string, defaultVal T) T {
	val, err := Value[T](s, key)
	if err != nil {
		return defaultVal
	}
	return val
}
