// Package storage is the persistent key-value boundary of the codec.
//
// Values are stored in top-level form. A key that was never written and a
// key written with an empty value are the same thing: both read back as an
// empty byte string, which every top decoder accepts as its default value.
package storage

import (
	"bytes"
	"context"
	"errors"
)

// ReservedPrefix marks keys owned by the protocol. Contract code may read
// them but never write them.
const ReservedPrefix = "ELROND"

var (
	// ErrReservedKey is returned when a write targets a key under ReservedPrefix.
	ErrReservedKey = errors.New("storage: cannot write to storage under Elrond reserved key")

	// ErrClosed is returned by backends used after Close.
	ErrClosed = errors.New("storage: store is closed")
)

// Store is a byte store. Implementations must be safe for concurrent use and
// byte-for-byte transparent.
type Store interface {
	// Get returns the value under key, or an empty result if there is none.
	Get(ctx context.Context, key []byte) ([]byte, error)

	// Set stores value under key. An empty value clears the key.
	Set(ctx context.Context, key, value []byte) error
}

// IsReserved reports whether key falls under ReservedPrefix.
func IsReserved(key []byte) bool {
	return bytes.HasPrefix(key, []byte(ReservedPrefix))
}

// Guard rejects writes to reserved keys before they reach next. Batches are
// forwarded whole, so next still applies them atomically if it can.
func Guard(next Store) Store { return guard{next} }

type guard struct{ next Store }

var _ Batcher = guard{}

func (g guard) Get(ctx context.Context, key []byte) ([]byte, error) {
	return g.next.Get(ctx, key)
}

func (g guard) Set(ctx context.Context, key, value []byte) error {
	if IsReserved(key) {
		return ErrReservedKey
	}
	return g.next.Set(ctx, key, value)
}

// Apply checks every key before any write reaches next.
func (g guard) Apply(ctx context.Context, writes []Write) error {
	for _, w := range writes {
		if IsReserved(w.Key) {
			return ErrReservedKey
		}
	}
	return Apply(ctx, g.next, writes)
}
