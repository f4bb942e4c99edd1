package cache

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	current time.Time
}

func (c *fakeClock) now() time.Time { return c.current }

func (c *fakeClock) advance(d time.Duration) { c.current = c.current.Add(d) }

func TestTTL(t *testing.T) {
	clock := &fakeClock{current: time.Unix(1000, 0)}
	cache := NewTTL[int](time.Minute, clock.now)

	t.Run("miss on empty cache", func(t *testing.T) {
		_, ok := cache.Get("a")
		assert.False(t, ok)
	})

	t.Run("hit within ttl", func(t *testing.T) {
		cache.Set("a", 42)
		clock.advance(59 * time.Second)

		got, ok := cache.Get("a")
		require.True(t, ok)
		assert.Equal(t, 42, got)
	})

	t.Run("miss after expiry", func(t *testing.T) {
		clock.advance(2 * time.Second)
		_, ok := cache.Get("a")
		assert.False(t, ok)
	})

	t.Run("set resets expiry", func(t *testing.T) {
		cache.Set("a", 7)
		clock.advance(30 * time.Second)
		cache.Set("a", 8)
		clock.advance(45 * time.Second)

		got, ok := cache.Get("a")
		require.True(t, ok)
		assert.Equal(t, 8, got)
	})
}

func TestGetOrFetch(t *testing.T) {
	clock := &fakeClock{current: time.Unix(1000, 0)}
	cache := NewTTL[string](time.Minute, clock.now)

	var fetches int
	fetch := func(context.Context) (string, error) {
		fetches++
		return "fresh", nil
	}

	got, err := cache.GetOrFetch(context.Background(), "k", fetch)
	require.NoError(t, err)
	assert.Equal(t, "fresh", got)

	// cached: fetch not re-invoked
	_, err = cache.GetOrFetch(context.Background(), "k", fetch)
	require.NoError(t, err)
	assert.Equal(t, 1, fetches)

	clock.advance(2 * time.Minute)
	_, err = cache.GetOrFetch(context.Background(), "k", fetch)
	require.NoError(t, err)
	assert.Equal(t, 2, fetches)
}

func TestGetOrFetchErrorNotCached(t *testing.T) {
	cache := NewTTL[string](time.Minute, nil)

	boom := errors.New("provider down")
	_, err := cache.GetOrFetch(context.Background(), "k", func(context.Context) (string, error) {
		return "", boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := cache.GetOrFetch(context.Background(), "k", func(context.Context) (string, error) {
		return "recovered", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "recovered", got)
}
