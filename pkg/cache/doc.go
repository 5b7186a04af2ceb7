// Package cache provides a generic key-value cache with in-memory and Redis
// backends.
//
// Memory is a process-local LRU with per-entry TTL and a background janitor.
// Redis stores JSON-encoded values (or a custom Marshaler) under an optional
// key prefix, so several app instances share one cache. Nop disables caching
// behind the same interface.
//
// Loader adds read-through semantics with request coalescing via
// golang.org/x/sync/singleflight:
//
//	users := cache.NewLoader[forum.User](cache.NewMemory[forum.User](), 10*time.Minute)
//	u, err := users.Get(ctx, "user:42", func(ctx context.Context) (forum.User, error) {
//		return repo.UserByID(ctx, 42)
//	})
package cache
