package storage

import (
	"context"

	codec "github.com/oy3o/sccodec"
)

// SingleValue manages one top-encoded item under a fixed key.
type SingleValue[T any, PT codec.CodecPtr[T]] struct {
	store Store
	key   []byte
	h     codec.ErrorHandler
}

// NewSingleValue binds a mapper to key in s. Failures go through h.
func NewSingleValue[T any, PT codec.CodecPtr[T]](s Store, key []byte, h codec.ErrorHandler) *SingleValue[T, PT] {
	return &SingleValue[T, PT]{store: s, key: append([]byte(nil), key...), h: h}
}

// Key returns the storage key of the mapper.
func (m *SingleValue[T, PT]) Key() []byte { return m.key }

// Get retrieves the current value.
func (m *SingleValue[T, PT]) Get(ctx context.Context) (T, error) {
	return Get[T, PT](ctx, m.store, m.key, m.h)
}

// Set saves v.
func (m *SingleValue[T, PT]) Set(ctx context.Context, v T) error {
	return Set(ctx, m.store, m.key, PT(&v), m.h)
}

// IsEmpty reports whether the stored value has zero raw length.
func (m *SingleValue[T, PT]) IsEmpty(ctx context.Context) (bool, error) {
	return IsEmpty(ctx, m.store, m.key, m.h)
}

// SetIfEmpty saves v only if nothing is stored. It reports whether it wrote.
func (m *SingleValue[T, PT]) SetIfEmpty(ctx context.Context, v T) (bool, error) {
	empty, err := m.IsEmpty(ctx)
	if err != nil || !empty {
		return false, err
	}
	return true, m.Set(ctx, v)
}

// Update loads the value, applies f and saves the result. Nothing is saved
// if f fails.
func (m *SingleValue[T, PT]) Update(ctx context.Context, f func(*T) error) error {
	v, err := m.Get(ctx)
	if err != nil {
		return err
	}
	if err := f(&v); err != nil {
		return err
	}
	return m.Set(ctx, v)
}

// Clear removes the stored value.
func (m *SingleValue[T, PT]) Clear(ctx context.Context) error {
	return Clear(ctx, m.store, m.key, m.h)
}

// RawByteLength returns the length of the stored top encoding.
func (m *SingleValue[T, PT]) RawByteLength(ctx context.Context) (int, error) {
	return Len(ctx, m.store, m.key, m.h)
}
