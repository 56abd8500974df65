// Package cache puts an in-process read cache in front of a storage.Store.
package cache

import (
	"context"

	"github.com/oy3o/sccodec/logging"
	"github.com/oy3o/sccodec/storage"
)

// Cache is a byte cache. Implementations may drop entries at any time.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte)
	Del(key string)
	Close() error
}

// Store is a read-through, write-invalidate cache over a backend.
type Store struct {
	next storage.Store
	c    Cache
	log  logging.Logger
}

var (
	_ storage.Store   = (*Store)(nil)
	_ storage.Batcher = (*Store)(nil)
)

func New(next storage.Store, c Cache, log logging.Logger) *Store {
	return &Store{next: next, c: c, log: logging.OrNop(log)}
}

func (s *Store) Get(ctx context.Context, key []byte) ([]byte, error) {
	k := string(key)
	if v, ok := s.c.Get(k); ok {
		return append([]byte(nil), v...), nil
	}
	v, err := s.next.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if len(v) > 0 {
		s.c.Set(k, append([]byte(nil), v...))
	}
	return v, nil
}

func (s *Store) Set(ctx context.Context, key, value []byte) error {
	// Invalidate on both sides of the write so a concurrent fill cannot
	// leave a stale entry behind for long.
	s.c.Del(string(key))
	err := s.next.Set(ctx, key, value)
	s.c.Del(string(key))
	if err != nil {
		s.log.Warn("cache: backend write failed", logging.Fields{"key": string(key), "err": err.Error()})
	}
	return err
}

// Apply forwards the batch to the backend, invalidating every key on both
// sides of it.
func (s *Store) Apply(ctx context.Context, writes []storage.Write) error {
	s.invalidate(writes)
	err := storage.Apply(ctx, s.next, writes)
	s.invalidate(writes)
	if err != nil {
		s.log.Warn("cache: backend batch failed", logging.Fields{"writes": len(writes), "err": err.Error()})
	}
	return err
}

func (s *Store) invalidate(writes []storage.Write) {
	for _, w := range writes {
		s.c.Del(string(w.Key))
	}
}

// Close closes the cache; the backend is left open.
func (s *Store) Close() error { return s.c.Close() }
