package storage

import (
	"context"
	"errors"

	goredis "github.com/redis/go-redis/v9"
)

var ErrNilClient = errors.New("storage: nil redis client")

// Redis is a Store backed by a redis server. Keys are namespaced by Prefix.
type Redis struct {
	rdb         goredis.UniversalClient
	prefix      string
	closeClient bool
}

var _ Store = (*Redis)(nil)

type RedisConfig struct {
	Client      goredis.UniversalClient
	Prefix      string
	CloseClient bool // set true only if this store exclusively owns the client
}

func NewRedis(cfg RedisConfig) (*Redis, error) {
	if cfg.Client == nil {
		return nil, ErrNilClient
	}
	return &Redis{rdb: cfg.Client, prefix: cfg.Prefix, closeClient: cfg.CloseClient}, nil
}

func (s *Redis) key(k []byte) string { return s.prefix + string(k) }

func (s *Redis) Get(ctx context.Context, key []byte) ([]byte, error) {
	b, err := s.rdb.Get(ctx, s.key(key)).Bytes()
	if err == goredis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (s *Redis) Set(ctx context.Context, key, value []byte) error {
	if len(value) == 0 {
		return s.rdb.Del(ctx, s.key(key)).Err()
	}
	return s.rdb.Set(ctx, s.key(key), value, 0).Err()
}

// Apply writes every entry in one MULTI/EXEC transaction.
func (s *Redis) Apply(ctx context.Context, writes []Write) error {
	_, err := s.rdb.TxPipelined(ctx, func(p goredis.Pipeliner) error {
		for _, w := range writes {
			if len(w.Value) == 0 {
				p.Del(ctx, s.key(w.Key))
			} else {
				p.Set(ctx, s.key(w.Key), w.Value, 0)
			}
		}
		return nil
	})
	return err
}

// Close releases the underlying client only when this store owns it.
// Safe to call multiple times; repeated calls become no-ops.
func (s *Redis) Close() error {
	if s.closeClient {
		if err := s.rdb.Close(); err != nil && !errors.Is(err, goredis.ErrClosed) {
			return err
		}
	}
	return nil
}
