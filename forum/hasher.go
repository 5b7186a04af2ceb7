package forum

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// DefaultBcryptCost is the work factor used for stored passwords.
const DefaultBcryptCost = 10

// bcryptMaxInput is the number of password bytes bcrypt reads.
const bcryptMaxInput = 72

// PasswordHasher is a salted one-way password function.
type PasswordHasher interface {
	Hash(password string) (string, error)
	// Verify reports whether password matches hash. A mismatch is (false, nil);
	// errors mean the hash itself could not be checked.
	Verify(hash, password string) (bool, error)
}

// BcryptHasher implements PasswordHasher with golang.org/x/crypto/bcrypt.
type BcryptHasher struct {
	Cost int
}

// NewBcryptHasher returns a hasher with the given cost; values outside
// bcrypt's range fall back to DefaultBcryptCost.
func NewBcryptHasher(cost int) BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultBcryptCost
	}
	return BcryptHasher{Cost: cost}
}

// Hash hashes the first 72 bytes of password. Longer passwords are accepted
// and truncated, so they keep matching the hashes bcrypt implementations
// that truncate silently have stored.
func (h BcryptHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(bcryptInput(password), h.Cost)
	if err != nil {
		return "", errors.Join(ErrHashFailure, err)
	}
	return string(hash), nil
}

func (h BcryptHasher) Verify(hash, password string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), bcryptInput(password))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, errors.Join(ErrHashFailure, err)
	}
}

func bcryptInput(password string) []byte {
	b := []byte(password)
	if len(b) > bcryptMaxInput {
		b = b[:bcryptMaxInput]
	}
	return b
}
