package forum

import (
	"context"

	"github.com/dmitrymomot/ryob/pkg/cache"
)

// CachedUsers decorates a UserRepository with a read-through cache for
// UserByID. Users are never mutated, so entries only expire by TTL.
type CachedUsers struct {
	UserRepository
	byID *cache.Loader[User]
}

// NewCachedUsers wraps repo. User.PasswordHash is not serialized, so users
// read back from a remote cache have an empty hash. Login reads through
// UserByName, which is never cached.
func NewCachedUsers(repo UserRepository, loader *cache.Loader[User]) *CachedUsers {
	return &CachedUsers{UserRepository: repo, byID: loader}
}

// UserByID returns the cached user or loads it from the repository.
// Absent users are not cached.
func (c *CachedUsers) UserByID(ctx context.Context, id UserID) (User, error) {
	return c.byID.Get(ctx, "user:"+id.String(), func(ctx context.Context) (User, error) {
		return c.UserRepository.UserByID(ctx, id)
	})
}
