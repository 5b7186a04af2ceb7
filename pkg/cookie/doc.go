// Package cookie provides HTTP cookie management with optional HMAC signing.
//
// A Manager carries the attributes shared by every cookie it writes (path,
// domain, Secure, HttpOnly, SameSite). Plain cookies need no configuration.
// Signed cookies require a secret of at least [MinSecretLength] bytes; without
// one, signed operations return [ErrNoSecret].
//
// # Usage
//
//	m := cookie.New(
//		cookie.WithSecret(os.Getenv("COOKIE_SECRET")),
//		cookie.WithSecure(true),
//	)
//
//	if err := m.SetSigned(w, "ryob_session", payload, 0); err != nil {
//		return err
//	}
//
//	payload, err := m.GetSigned(r, "ryob_session")
//	switch {
//	case errors.Is(err, cookie.ErrNotFound):
//		// no cookie yet
//	case errors.Is(err, cookie.ErrBadSig):
//		// tampered or signed with another secret
//	}
//
// # Format
//
// A signed value is base64url(payload) "." base64url(HMAC-SHA256(secret, payload)),
// both without padding. The payload is readable by the client but cannot be
// altered without invalidating the signature.
package cookie
