package cache

import (
	"errors"

	rc "github.com/dgraph-io/ristretto"
)

type Ristretto struct {
	c *rc.Cache
}

var _ Cache = (*Ristretto)(nil)

type RistrettoConfig struct {
	NumCounters int64
	MaxCost     int64 // bytes; entries cost their length
	BufferItems int64
	Metrics     bool
}

func NewRistretto(cfg RistrettoConfig) (*Ristretto, error) {
	if cfg.NumCounters <= 0 || cfg.MaxCost <= 0 || cfg.BufferItems <= 0 {
		return nil, errors.New("ristretto: invalid config")
	}
	c, err := rc.NewCache(&rc.Config{
		NumCounters: cfg.NumCounters,
		MaxCost:     cfg.MaxCost,
		BufferItems: cfg.BufferItems,
		Metrics:     cfg.Metrics,
	})
	if err != nil {
		return nil, err
	}
	return &Ristretto{c: c}, nil
}

func (r *Ristretto) Get(key string) ([]byte, bool) {
	v, ok := r.c.Get(key)
	if !ok {
		return nil, false
	}
	b, _ := v.([]byte)
	if b == nil {
		// self-heal: drop unexpected entry shape
		r.c.Del(key)
		return nil, false
	}
	return b, true
}

// Set is asynchronous; the entry becomes visible after the buffers drain.
func (r *Ristretto) Set(key string, value []byte) {
	r.c.Set(key, value, int64(len(value)))
}

func (r *Ristretto) Del(key string) { r.c.Del(key) }

// Wait blocks until pending sets are applied.
func (r *Ristretto) Wait() { r.c.Wait() }

func (r *Ristretto) Close() error {
	r.c.Wait()
	r.c.Close()
	return nil
}

// Metrics exposes ristretto's hit/miss counters when enabled.
func (r *Ristretto) Metrics() *rc.Metrics { return r.c.Metrics }
