package cache

import (
	"container/list"
	"context"
	"sync"
	"time"
)

type entry[V any] struct {
	key       string
	value     V
	expiresAt time.Time // zero = never
}

func (e *entry[V]) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// MemoryOption configures the in-memory cache.
type MemoryOption func(*memoryOptions)

type memoryOptions struct {
	defaultTTL      time.Duration
	cleanupInterval time.Duration
	maxEntries      int
}

// WithDefaultTTL sets the TTL used when Set is called with zero. Default: 1 hour.
func WithDefaultTTL(d time.Duration) MemoryOption {
	return func(o *memoryOptions) { o.defaultTTL = d }
}

// WithCleanupInterval sets how often expired entries are purged. Zero disables
// the background janitor; expired entries are then dropped lazily on Get.
// Default: 1 minute.
func WithCleanupInterval(d time.Duration) MemoryOption {
	return func(o *memoryOptions) { o.cleanupInterval = d }
}

// WithMaxEntries bounds the cache; the least recently used entry is evicted
// first. Zero means unlimited.
func WithMaxEntries(n int) MemoryOption {
	return func(o *memoryOptions) { o.maxEntries = n }
}

// Memory is an in-process LRU cache with per-entry TTL.
type Memory[V any] struct {
	mu     sync.Mutex
	items  map[string]*list.Element
	lru    *list.List // front = most recently used
	opts   memoryOptions
	done   chan struct{}
	closed bool
}

// NewMemory creates an in-memory cache. Call Close to stop the janitor.
func NewMemory[V any](opts ...MemoryOption) *Memory[V] {
	o := memoryOptions{defaultTTL: time.Hour, cleanupInterval: time.Minute}
	for _, opt := range opts {
		opt(&o)
	}

	m := &Memory[V]{
		items: make(map[string]*list.Element),
		lru:   list.New(),
		opts:  o,
		done:  make(chan struct{}),
	}
	if o.cleanupInterval > 0 {
		go m.janitor()
	}
	return m
}

func (m *Memory[V]) Get(_ context.Context, key string) (V, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var zero V
	if m.closed {
		return zero, ErrClosed
	}

	el, ok := m.items[key]
	if !ok {
		return zero, ErrNotFound
	}
	e := el.Value.(*entry[V])
	if e.expired(time.Now()) {
		m.remove(el)
		return zero, ErrNotFound
	}
	m.lru.MoveToFront(el)
	return e.value, nil
}

func (m *Memory[V]) Set(_ context.Context, key string, value V, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}

	if ttl == 0 {
		ttl = m.opts.defaultTTL
	}
	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = time.Now().Add(ttl)
	}

	if el, ok := m.items[key]; ok {
		e := el.Value.(*entry[V])
		e.value, e.expiresAt = value, expiresAt
		m.lru.MoveToFront(el)
		return nil
	}

	m.items[key] = m.lru.PushFront(&entry[V]{key: key, value: value, expiresAt: expiresAt})
	if m.opts.maxEntries > 0 && m.lru.Len() > m.opts.maxEntries {
		m.remove(m.lru.Back())
	}
	return nil
}

func (m *Memory[V]) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	if el, ok := m.items[key]; ok {
		m.remove(el)
	}
	return nil
}

func (m *Memory[V]) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	clear(m.items)
	m.lru.Init()
	return nil
}

// Len returns the number of stored entries, expired ones included until purged.
func (m *Memory[V]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lru.Len()
}

// Close stops the janitor and drops all entries. Further calls return ErrClosed.
func (m *Memory[V]) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil
	}
	m.closed = true
	close(m.done)
	clear(m.items)
	m.lru.Init()
	return nil
}

func (m *Memory[V]) remove(el *list.Element) {
	m.lru.Remove(el)
	delete(m.items, el.Value.(*entry[V]).key)
}

func (m *Memory[V]) janitor() {
	ticker := time.NewTicker(m.opts.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-m.done:
			return
		case now := <-ticker.C:
			m.purge(now)
		}
	}
}

func (m *Memory[V]) purge(now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for el := m.lru.Back(); el != nil; {
		prev := el.Prev()
		if el.Value.(*entry[V]).expired(now) {
			m.remove(el)
		}
		el = prev
	}
}

var _ Cache[any] = (*Memory[any])(nil)
