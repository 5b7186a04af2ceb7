package session

import (
	"errors"
	"net/http"

	"github.com/dmitrymomot/ryob/pkg/cookie"
)

// Store loads and persists sessions for a request.
type Store interface {
	// Load returns the request's session. A missing cookie yields a new
	// empty session; a cookie that fails verification yields ErrInvalidToken.
	Load(r *http.Request) (*Session, error)

	// Save writes the session to the response. An empty session is
	// removed from the client.
	Save(w http.ResponseWriter, s *Session) error
}

// CookieStore keeps the whole session inside a signed cookie.
type CookieStore struct {
	cookies *cookie.Manager
	name    string
	maxAge  int
}

// CookieStoreOption configures a CookieStore.
type CookieStoreOption func(*CookieStore)

// WithCookieName overrides the cookie name. Default: "session".
func WithCookieName(name string) CookieStoreOption {
	return func(s *CookieStore) {
		s.name = name
	}
}

// WithMaxAge sets the cookie lifetime in seconds. Default 0 keeps the
// cookie until the browser closes.
func WithMaxAge(seconds int) CookieStoreOption {
	return func(s *CookieStore) {
		s.maxAge = seconds
	}
}

// NewCookieStore creates a store over a cookie manager configured with a secret.
func NewCookieStore(cookies *cookie.Manager, opts ...CookieStoreOption) *CookieStore {
	s := &CookieStore{cookies: cookies, name: "session"}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the cookie name.
func (s *CookieStore) Name() string {
	return s.name
}

// Load implements Store.
func (s *CookieStore) Load(r *http.Request) (*Session, error) {
	payload, err := s.cookies.GetSigned(r, s.name)
	switch {
	case errors.Is(err, cookie.ErrNotFound):
		return New(), nil
	case errors.Is(err, cookie.ErrBadSig):
		return nil, errors.Join(ErrInvalidToken, err)
	case err != nil:
		return nil, err
	}
	return Decode(payload)
}

// Save implements Store.
func (s *CookieStore) Save(w http.ResponseWriter, sess *Session) error {
	if sess.IsEmpty() {
		s.cookies.Delete(w, s.name)
		sess.ClearDirty()
		return nil
	}

	payload, err := sess.Encode()
	if err != nil {
		return err
	}
	if err := s.cookies.SetSigned(w, s.name, payload, s.maxAge); err != nil {
		return err
	}
	sess.ClearDirty()
	return nil
}
