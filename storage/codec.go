package storage

import (
	"context"
	"fmt"

	codec "github.com/oy3o/sccodec"
)

// Every helper routes failures, including backend errors, through h so a
// caller running under an exit handler never sees a returned error.

// Get top-decodes the value stored under key. A missing key decodes from
// empty input.
func Get[T any, PT codec.DecoderPtr[T]](ctx context.Context, s Store, key []byte, h codec.ErrorHandler) (T, error) {
	raw, err := s.Get(ctx, key)
	if err != nil {
		var zero T
		return zero, h.HandleError(fmt.Errorf("storage: get %q: %w", key, err))
	}
	return codec.DecodeTop[T, PT](raw, h)
}

// Set top-encodes v and stores it under key. Values whose top encoding is
// empty clear the key.
func Set(ctx context.Context, s Store, key []byte, v codec.TopEncoder, h codec.ErrorHandler) error {
	raw, err := codec.EncodeTop(v, h)
	if err != nil {
		return err
	}
	if err := s.Set(ctx, key, raw); err != nil {
		return h.HandleError(fmt.Errorf("storage: set %q: %w", key, err))
	}
	return nil
}

// Len returns the raw byte length of the value under key.
func Len(ctx context.Context, s Store, key []byte, h codec.ErrorHandler) (int, error) {
	raw, err := s.Get(ctx, key)
	if err != nil {
		return 0, h.HandleError(fmt.Errorf("storage: get %q: %w", key, err))
	}
	return len(raw), nil
}

// IsEmpty reports whether nothing is stored under key. It looks at the raw
// length only and never attempts a decode.
func IsEmpty(ctx context.Context, s Store, key []byte, h codec.ErrorHandler) (bool, error) {
	n, err := Len(ctx, s, key, h)
	return n == 0, err
}

// Clear removes the value under key.
func Clear(ctx context.Context, s Store, key []byte, h codec.ErrorHandler) error {
	if err := s.Set(ctx, key, nil); err != nil {
		return h.HandleError(fmt.Errorf("storage: clear %q: %w", key, err))
	}
	return nil
}
