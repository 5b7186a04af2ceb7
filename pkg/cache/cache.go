package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"golang.org/x/sync/singleflight"
)

// Cache is a generic key-value cache with TTL support.
//
// TTL semantics for Set:
//   - Positive duration: item expires after this duration
//   - Zero: use the cache's configured default TTL
//   - Negative: item never expires
type Cache[V any] interface {
	// Get returns ErrNotFound if the key does not exist or has expired.
	Get(ctx context.Context, key string) (V, error)
	Set(ctx context.Context, key string, value V, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
	Close() error
}

// Marshaler serializes cache values for byte-oriented backends.
type Marshaler[V any] interface {
	Marshal(v V) ([]byte, error)
	Unmarshal(data []byte) (V, error)
}

// JSON is the default Marshaler.
type JSON[V any] struct{}

func (JSON[V]) Marshal(v V) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Join(ErrMarshal, err)
	}
	return data, nil
}

func (JSON[V]) Unmarshal(data []byte) (V, error) {
	var v V
	if err := json.Unmarshal(data, &v); err != nil {
		return v, errors.Join(ErrUnmarshal, err)
	}
	return v, nil
}

// Loader reads through a cache, computing misses once per key even under
// concurrent requests.
type Loader[V any] struct {
	cache Cache[V]
	ttl   time.Duration
	group singleflight.Group
}

// NewLoader wraps c. Loaded values are stored with ttl.
func NewLoader[V any](c Cache[V], ttl time.Duration) *Loader[V] {
	return &Loader[V]{cache: c, ttl: ttl}
}

// Get returns the cached value for key or calls load on a miss.
// load errors are returned as-is and nothing is cached. Cache read and write
// failures degrade to calling load.
func (l *Loader[V]) Get(ctx context.Context, key string, load func(ctx context.Context) (V, error)) (V, error) {
	if v, err := l.cache.Get(ctx, key); err == nil {
		return v, nil
	}

	v, err, _ := l.group.Do(key, func() (any, error) {
		val, err := load(ctx)
		if err != nil {
			return nil, err
		}
		_ = l.cache.Set(ctx, key, val, l.ttl)
		return val, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}
	return v.(V), nil
}

// Forget removes key from the underlying cache.
func (l *Loader[V]) Forget(ctx context.Context, key string) error {
	l.group.Forget(key)
	return l.cache.Delete(ctx, key)
}

// Nop never stores anything. Every Get misses.
type Nop[V any] struct{}

func (Nop[V]) Get(context.Context, string) (V, error) {
	var zero V
	return zero, ErrNotFound
}
func (Nop[V]) Set(context.Context, string, V, time.Duration) error { return nil }
func (Nop[V]) Delete(context.Context, string) error { return nil }
func (Nop[V]) Clear(context.Context) error { return nil }
func (Nop[V]) Close() error { return nil }

var _ Cache[any] = Nop[any]{}
