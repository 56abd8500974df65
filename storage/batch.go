package storage

import "context"

// Write is one buffered key-value write. An empty Value clears the key.
type Write struct {
	Key   []byte
	Value []byte
}

// Batcher is implemented by stores that can apply several writes at once.
type Batcher interface {
	Apply(ctx context.Context, writes []Write) error
}

// Apply commits writes to s in order, in a single batch when s supports it.
func Apply(ctx context.Context, s Store, writes []Write) error {
	if b, ok := s.(Batcher); ok {
		return b.Apply(ctx, writes)
	}
	for _, w := range writes {
		if err := s.Set(ctx, w.Key, w.Value); err != nil {
			return err
		}
	}
	return nil
}
