package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	goredis "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	codec "github.com/oy3o/sccodec"
	"github.com/oy3o/sccodec/config"
	"github.com/oy3o/sccodec/logging"
	"github.com/oy3o/sccodec/schema"
	"github.com/oy3o/sccodec/storage"
	"github.com/oy3o/sccodec/storage/cache"
)

// backend is an opened storage stack and the resources to release with it.
type backend struct {
	storage.Store
	reg     *prometheus.Registry
	closers []io.Closer
}

func (b *backend) Close() error {
	var first error
	for i := len(b.closers) - 1; i >= 0; i-- {
		if err := b.closers[i].Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// openBackend builds backend -> read cache -> metering -> reserved-key guard
// from the storage section of the configuration.
func openBackend(cfg config.Storage, log logging.Logger) (*backend, error) {
	b := &backend{reg: prometheus.NewRegistry()}

	var s storage.Store
	switch cfg.Backend {
	case "memory":
		s = storage.NewMemory()
	case "pebble":
		p, err := storage.OpenPebble(cfg.Path, nil, log)
		if err != nil {
			return nil, fmt.Errorf("failed to open pebble store: %w", err)
		}
		b.closers = append(b.closers, p)
		s = p
	case "redis":
		client := goredis.NewClient(&goredis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		r, err := storage.NewRedis(storage.RedisConfig{Client: client, Prefix: cfg.Redis.Prefix, CloseClient: true})
		if err != nil {
			return nil, err
		}
		b.closers = append(b.closers, r)
		s = r
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}

	c, err := newCache(cfg.Cache)
	if err != nil {
		_ = b.Close()
		return nil, err
	}
	if c != nil {
		cs := cache.New(s, c, log)
		b.closers = append(b.closers, cs)
		s = cs
	}

	s = storage.NewMetered(s, storage.NewMetrics(b.reg))
	b.Store = storage.Guard(s)
	return b, nil
}

func newCache(cfg config.Cache) (cache.Cache, error) {
	switch cfg.Kind {
	case "", "none":
		return nil, nil
	case "bigcache":
		life, err := time.ParseDuration(cfg.LifeWindow)
		if err != nil {
			return nil, fmt.Errorf("invalid storage.cache.life_window: %w", err)
		}
		return cache.NewBigCache(cache.BigCacheConfig{
			LifeWindow:         life,
			HardMaxCacheSizeMB: int(max(cfg.MaxCost>>20, 1)),
		})
	case "ristretto":
		return cache.NewRistretto(cache.RistrettoConfig{
			NumCounters: 1e5,
			MaxCost:     cfg.MaxCost,
			BufferItems: 64,
		})
	}
	return nil, fmt.Errorf("unknown cache kind %q", cfg.Kind)
}

// withStore opens the configured backend for the duration of fn and logs
// the traffic counters afterwards.
func (a *app) withStore(cmd *cobra.Command, fn func(ctx context.Context, s storage.Store) error) error {
	b, err := openBackend(a.cfg.Storage, a.log)
	if err != nil {
		return err
	}
	defer func() {
		if err := b.Close(); err != nil {
			a.log.Warn("failed to close store", logging.Fields{"err": err.Error()})
		}
	}()

	err = fn(cmd.Context(), b)
	a.logTraffic(b.reg)
	return err
}

func (a *app) logTraffic(reg *prometheus.Registry) {
	families, err := reg.Gather()
	if err != nil {
		return
	}
	f := logging.Fields{}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			name := mf.GetName()
			for _, lp := range m.GetLabel() {
				name += "." + lp.GetValue()
			}
			f[name] = m.GetCounter().GetValue()
		}
	}
	a.log.Debug("storage traffic", f)
}

func newStoreCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "store",
		Short: "Read and write typed values in the configured storage backend",
	}
	h := codec.ResultHandler{}

	cmd.AddCommand(&cobra.Command{
		Use:   "get <type> <key>",
		Short: "Top-decode the value under key and print it as YAML",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := schema.Parse(args[0])
			if err != nil {
				return err
			}
			src, err := codecFor("wire", t, a.cfg.Limits.MaxDecode)
			if err != nil {
				return err
			}
			dst, _ := codecFor("yaml", t, 0)
			return a.withStore(cmd, func(ctx context.Context, s storage.Store) error {
				raw, err := s.Get(ctx, []byte(args[1]))
				if err != nil {
					return fmt.Errorf("storage: get %q: %w", args[1], err)
				}
				v, err := src.Decode(raw)
				if err != nil {
					return err
				}
				out, err := dst.Encode(v)
				if err != nil {
					return err
				}
				printOutput(cmd, "yaml", out)
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set <type> <key> <literal>",
		Short: "Top-encode a YAML literal and store it under key",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := schema.Parse(args[0])
			if err != nil {
				return err
			}
			v, err := schema.ParseLiteral(t, args[2])
			if err != nil {
				return err
			}
			return a.withStore(cmd, func(ctx context.Context, s storage.Store) error {
				return storage.Set(ctx, s, []byte(args[1]), schema.Value{T: t, V: v}, h)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "len <key>",
		Short: "Print the stored byte length under key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(cmd, func(ctx context.Context, s storage.Store) error {
				n, err := storage.Len(ctx, s, []byte(args[0]), h)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), n)
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clear <key>",
		Short: "Remove the value under key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(cmd, func(ctx context.Context, s storage.Store) error {
				return storage.Clear(ctx, s, []byte(args[0]), h)
			})
		},
	})
	return cmd
}
