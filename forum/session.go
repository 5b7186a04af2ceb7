package forum

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// SessionUserKey is the session key holding the authenticated user's id.
const SessionUserKey = "user"

// SessionValues is the part of a request session the bridge needs.
// *session.Session satisfies it.
type SessionValues interface {
	SetValue(key string, value any) error
	GetValue(key string) (json.RawMessage, bool)
	DeleteValue(key string)
}

// UserFinder resolves user ids. *Identity satisfies it.
type UserFinder interface {
	FindByID(ctx context.Context, id UserID) (User, error)
}

// ResolveCurrentUser returns the user whose id is stored in sess.
// It returns (nil, nil) for an anonymous session and for an id whose user no
// longer exists. A malformed id yields ErrSessionFailure.
func ResolveCurrentUser(ctx context.Context, sess SessionValues, users UserFinder) (*User, error) {
	if sess == nil {
		return nil, nil
	}
	raw, ok := sess.GetValue(SessionUserKey)
	if !ok {
		return nil, nil
	}

	var id UserID
	if err := json.Unmarshal(raw, &id); err != nil {
		return nil, errors.Join(ErrSessionFailure, err)
	}
	if id.Int64() <= 0 {
		return nil, fmt.Errorf("%w: invalid user id %d", ErrSessionFailure, id.Int64())
	}

	u, err := users.FindByID(ctx, id)
	switch {
	case errors.Is(err, ErrNoSuchUser):
		return nil, nil
	case err != nil:
		return nil, err
	}
	return &u, nil
}

// AttachUser marks sess as authenticated as u.
func AttachUser(sess SessionValues, u User) error {
	if sess == nil {
		return ErrSessionFailure
	}
	if err := sess.SetValue(SessionUserKey, u.ID); err != nil {
		return errors.Join(ErrSessionFailure, err)
	}
	return nil
}

// DetachUser returns sess to the anonymous state.
func DetachUser(sess SessionValues) {
	if sess != nil {
		sess.DeleteValue(SessionUserKey)
	}
}
