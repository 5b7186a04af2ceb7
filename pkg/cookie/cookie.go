package cookie

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"net/http"
	"strings"
)

// Errors.
var (
	ErrNotFound  = errors.New("cookie: not found")
	ErrNoSecret  = errors.New("cookie: secret required")
	ErrBadSecret = errors.New("cookie: secret must be 32+ bytes")
	ErrBadSig    = errors.New("cookie: invalid signature")
)

// MinSecretLength is the shortest accepted signing secret.
const MinSecretLength = 32

// Manager reads and writes cookies that share one set of attributes.
// Plain cookies need no secret; signed ones need a secret of at least
// MinSecretLength bytes.
type Manager struct {
	secret []byte
	attrs  http.Cookie
}

// Option configures a Manager.
type Option func(*Manager)

// New returns a Manager issuing cookies with Path "/", HttpOnly and
// SameSite=Lax unless options say otherwise.
func New(opts ...Option) *Manager {
	m := &Manager{attrs: http.Cookie{
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// ValidateSecret returns ErrBadSecret for secrets too short to sign with.
func ValidateSecret(secret string) error {
	if len(secret) < MinSecretLength {
		return ErrBadSecret
	}
	return nil
}

// WithSecret enables signing. A short secret is ignored and signing stays
// off; call ValidateSecret first to fail loudly instead.
func WithSecret(secret string) Option {
	return func(m *Manager) {
		if ValidateSecret(secret) == nil {
			m.secret = []byte(secret)
		}
	}
}

func WithDomain(domain string) Option {
	return func(m *Manager) { m.attrs.Domain = domain }
}

func WithPath(path string) Option {
	return func(m *Manager) { m.attrs.Path = path }
}

// WithSecure marks cookies HTTPS-only. Turn it off only for local HTTP.
func WithSecure(secure bool) Option {
	return func(m *Manager) { m.attrs.Secure = secure }
}

func WithHTTPOnly(httpOnly bool) Option {
	return func(m *Manager) { m.attrs.HttpOnly = httpOnly }
}

func WithSameSite(ss http.SameSite) Option {
	return func(m *Manager) { m.attrs.SameSite = ss }
}

// CanSign reports whether a signing secret is configured.
func (m *Manager) CanSign() bool {
	return m.secret != nil
}

// Get returns a plain cookie value.
func (m *Manager) Get(r *http.Request, name string) (string, error) {
	c, err := r.Cookie(name)
	if err != nil {
		if errors.Is(err, http.ErrNoCookie) {
			return "", ErrNotFound
		}
		return "", err
	}
	return c.Value, nil
}

// Set writes a plain cookie. maxAge 0 makes it a browser-session cookie.
func (m *Manager) Set(w http.ResponseWriter, name, value string, maxAge int) {
	http.SetCookie(w, m.cookie(name, value, maxAge))
}

// Delete expires a cookie on the client.
func (m *Manager) Delete(w http.ResponseWriter, name string) {
	http.SetCookie(w, m.cookie(name, "", -1))
}

// GetSigned returns the verified payload of a signed cookie.
func (m *Manager) GetSigned(r *http.Request, name string) ([]byte, error) {
	if m.secret == nil {
		return nil, ErrNoSecret
	}

	raw, err := m.Get(r, name)
	if err != nil {
		return nil, err
	}

	return m.Verify(raw)
}

// SetSigned writes payload as a signed cookie.
func (m *Manager) SetSigned(w http.ResponseWriter, name string, payload []byte, maxAge int) error {
	encoded, err := m.Sign(payload)
	if err != nil {
		return err
	}
	http.SetCookie(w, m.cookie(name, encoded, maxAge))
	return nil
}

// Sign encodes payload as base64url(payload) "." base64url(hmac-sha256).
func (m *Manager) Sign(payload []byte) (string, error) {
	if m.secret == nil {
		return "", ErrNoSecret
	}
	return base64.RawURLEncoding.EncodeToString(payload) +
		"." + base64.RawURLEncoding.EncodeToString(m.mac(payload)), nil
}

// Verify decodes a value produced by Sign and checks its signature.
func (m *Manager) Verify(raw string) ([]byte, error) {
	if m.secret == nil {
		return nil, ErrNoSecret
	}

	encPayload, encSig, ok := strings.Cut(raw, ".")
	if !ok {
		return nil, ErrBadSig
	}

	payload, err := base64.RawURLEncoding.DecodeString(encPayload)
	if err != nil {
		return nil, ErrBadSig
	}
	sig, err := base64.RawURLEncoding.DecodeString(encSig)
	if err != nil {
		return nil, ErrBadSig
	}

	if !hmac.Equal(sig, m.mac(payload)) {
		return nil, ErrBadSig
	}
	return payload, nil
}

func (m *Manager) mac(payload []byte) []byte {
	h := hmac.New(sha256.New, m.secret)
	h.Write(payload)
	return h.Sum(nil)
}

func (m *Manager) cookie(name, value string, maxAge int) *http.Cookie {
	c := m.attrs
	c.Name, c.Value, c.MaxAge = name, value, maxAge
	return &c
}
