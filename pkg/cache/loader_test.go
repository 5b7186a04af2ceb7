package cache_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/ryob/pkg/cache"
)

func TestLoader(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("caches loaded values", func(t *testing.T) {
		t.Parallel()

		mem := cache.NewMemory[string](cache.WithCleanupInterval(0))
		t.Cleanup(func() { _ = mem.Close() })
		l := cache.NewLoader[string](mem, time.Minute)

		var calls atomic.Int32
		load := func(context.Context) (string, error) {
			calls.Add(1)
			return "Ada", nil
		}

		for range 3 {
			v, err := l.Get(ctx, "user:1", load)
			require.NoError(t, err)
			assert.Equal(t, "Ada", v)
		}
		assert.Equal(t, int32(1), calls.Load())

		require.NoError(t, l.Forget(ctx, "user:1"))
		_, err := l.Get(ctx, "user:1", load)
		require.NoError(t, err)
		assert.Equal(t, int32(2), calls.Load())
	})

	t.Run("errors are not cached", func(t *testing.T) {
		t.Parallel()

		mem := cache.NewMemory[string](cache.WithCleanupInterval(0))
		t.Cleanup(func() { _ = mem.Close() })
		l := cache.NewLoader[string](mem, time.Minute)

		boom := errors.New("boom")
		_, err := l.Get(ctx, "k", func(context.Context) (string, error) { return "", boom })
		require.ErrorIs(t, err, boom)

		_, err = mem.Get(ctx, "k")
		require.ErrorIs(t, err, cache.ErrNotFound)
	})

	t.Run("coalesces concurrent misses", func(t *testing.T) {
		t.Parallel()

		l := cache.NewLoader[int](cache.Nop[int]{}, time.Minute)

		var calls atomic.Int32
		release := make(chan struct{})
		load := func(context.Context) (int, error) {
			calls.Add(1)
			<-release
			return 42, nil
		}

		var wg sync.WaitGroup
		results := make([]int, 10)
		for i := range results {
			wg.Go(func() {
				v, err := l.Get(ctx, "k", load)
				assert.NoError(t, err)
				results[i] = v
			})
		}

		require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, time.Millisecond)
		time.Sleep(20 * time.Millisecond)
		close(release)
		wg.Wait()

		for _, v := range results {
			assert.Equal(t, 42, v)
		}
		assert.LessOrEqual(t, calls.Load(), int32(2))
	})
}

func TestNop(t *testing.T) {
	t.Parallel()

	var c cache.Cache[string] = cache.Nop[string]{}
	require.NoError(t, c.Set(context.Background(), "k", "v", 0))
	_, err := c.Get(context.Background(), "k")
	require.ErrorIs(t, err, cache.ErrNotFound)
}
