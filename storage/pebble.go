package storage

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/cockroachdb/pebble"

	"github.com/oy3o/sccodec/logging"
)

// Pebble is a Store persisted in a pebble database.
type Pebble struct {
	db     *pebble.DB
	log    logging.Logger
	closed atomic.Bool
}

var _ Store = (*Pebble)(nil)

// OpenPebble opens (or creates) the database at path. opts may be nil.
func OpenPebble(path string, opts *pebble.Options, log logging.Logger) (*Pebble, error) {
	if opts == nil {
		opts = &pebble.Options{}
	}
	db, err := pebble.Open(path, opts)
	if err != nil {
		return nil, err
	}
	log = logging.OrNop(log)
	log.Debug("pebble store opened", logging.Fields{"path": path})
	return &Pebble{db: db, log: log}, nil
}

func (s *Pebble) Get(_ context.Context, key []byte) ([]byte, error) {
	if s.closed.Load() {
		return nil, ErrClosed
	}
	data, closer, err := s.db.Get(key)
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer closer.Close()
	// data is only valid until closer is closed.
	return append([]byte(nil), data...), nil
}

func (s *Pebble) Set(_ context.Context, key, value []byte) error {
	if s.closed.Load() {
		return ErrClosed
	}
	if len(value) == 0 {
		return s.db.Delete(key, pebble.Sync)
	}
	return s.db.Set(key, value, pebble.Sync)
}

// Apply writes every entry of writes in one atomic batch. Empty values are
// deletions.
func (s *Pebble) Apply(_ context.Context, writes []Write) error {
	if s.closed.Load() {
		return ErrClosed
	}
	b := s.db.NewBatch()
	defer b.Close()
	for _, w := range writes {
		var err error
		if len(w.Value) == 0 {
			err = b.Delete(w.Key, nil)
		} else {
			err = b.Set(w.Key, w.Value, nil)
		}
		if err != nil {
			return err
		}
	}
	return b.Commit(pebble.Sync)
}

func (s *Pebble) Close() error {
	if s.closed.Swap(true) {
		return nil
	}
	s.log.Debug("pebble store closed", nil)
	return s.db.Close()
}
