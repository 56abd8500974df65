package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oy3o/sccodec/storage"
)

func newBigCache(t *testing.T) *BigCache {
	t.Helper()
	c, err := NewBigCache(BigCacheConfig{LifeWindow: time.Minute, MaxEntrySize: 64, HardMaxCacheSizeMB: 1})
	require.NoError(t, err)
	return c
}

func TestReadThrough(t *testing.T) {
	ctx := context.Background()
	backend := storage.NewMemory()
	c := newBigCache(t)
	s := New(backend, c, nil)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, backend.Set(ctx, []byte("k"), []byte("v1")))
	v, err := s.Get(ctx, []byte("k"))
	require.NoError(t, err)
	assert.Equal(t, []byte("v1"), v)

	// A write that bypasses the cache is not observed until invalidation.
	require.NoError(t, backend.Set(ctx, []byte("k"), []byte("v2")))
	v, err = s.Get(ctx, []byte("k"))
	require.NoError(t, err)
	assert.Equal(t, []byte("v1"), v)

	require.NoError(t, s.Set(ctx, []byte("k"), []byte("v3")))
	v, err = s.Get(ctx, []byte("k"))
	require.NoError(t, err)
	assert.Equal(t, []byte("v3"), v)
}

func TestClearInvalidates(t *testing.T) {
	ctx := context.Background()
	s := New(storage.NewMemory(), newBigCache(t), nil)

	require.NoError(t, s.Set(ctx, []byte("k"), []byte("v")))
	_, err := s.Get(ctx, []byte("k"))
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, []byte("k"), nil))

	v, err := s.Get(ctx, []byte("k"))
	require.NoError(t, err)
	assert.Empty(t, v)
}

func TestApplyInvalidates(t *testing.T) {
	ctx := context.Background()
	backend := storage.NewMemory()
	s := New(backend, newBigCache(t), nil)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, backend.Set(ctx, []byte("a"), []byte("old")))
	_, err := s.Get(ctx, []byte("a"))
	require.NoError(t, err)

	require.NoError(t, storage.Apply(ctx, s, []storage.Write{
		{Key: []byte("a"), Value: []byte("new")},
		{Key: []byte("b"), Value: []byte("b")},
	}))
	v, err := s.Get(ctx, []byte("a"))
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), v)
	v, err = s.Get(ctx, []byte("b"))
	require.NoError(t, err)
	assert.Equal(t, []byte("b"), v)
}

func TestCachedValuesAreCopies(t *testing.T) {
	ctx := context.Background()
	s := New(storage.NewMemory(), newBigCache(t), nil)
	require.NoError(t, s.Set(ctx, []byte("k"), []byte("abc")))

	v, err := s.Get(ctx, []byte("k"))
	require.NoError(t, err)
	v[0] = 'X'

	v, err = s.Get(ctx, []byte("k"))
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), v)
}

func TestRistretto(t *testing.T) {
	r, err := NewRistretto(RistrettoConfig{NumCounters: 1000, MaxCost: 1 << 20, BufferItems: 64})
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })

	r.Set("k", []byte("value"))
	r.Wait()
	v, ok := r.Get("k")
	require.True(t, ok)
	assert.Equal(t, []byte("value"), v)

	r.Del("k")
	_, ok = r.Get("k")
	assert.False(t, ok)

	_, err = NewRistretto(RistrettoConfig{})
	assert.Error(t, err)
}

func TestRistrettoStore(t *testing.T) {
	ctx := context.Background()
	r, err := NewRistretto(RistrettoConfig{NumCounters: 1000, MaxCost: 1 << 20, BufferItems: 64})
	require.NoError(t, err)
	s := New(storage.NewMemory(), r, nil)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.Set(ctx, []byte("k"), []byte{1, 2, 3}))
	v, err := s.Get(ctx, []byte("k"))
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, v)
}
