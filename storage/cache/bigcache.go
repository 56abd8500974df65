package cache

import (
	"time"

	bc "github.com/allegro/bigcache/v3"
)

type BigCache struct {
	c *bc.BigCache
}

var _ Cache = (*BigCache)(nil)

type BigCacheConfig struct {
	LifeWindow         time.Duration
	CleanWindow        time.Duration
	MaxEntriesInWindow int
	MaxEntrySize       int
	HardMaxCacheSizeMB int // ~ memory limit; 0 = unlimited
}

func NewBigCache(cfg BigCacheConfig) (*BigCache, error) {
	conf := bc.DefaultConfig(cfg.LifeWindow)
	if cfg.CleanWindow > 0 {
		conf.CleanWindow = cfg.CleanWindow
	}
	if cfg.MaxEntriesInWindow > 0 {
		conf.MaxEntriesInWindow = cfg.MaxEntriesInWindow
	}
	if cfg.MaxEntrySize > 0 {
		conf.MaxEntrySize = cfg.MaxEntrySize
	}
	if cfg.HardMaxCacheSizeMB > 0 {
		conf.HardMaxCacheSize = cfg.HardMaxCacheSizeMB
	}
	c, err := bc.NewBigCache(conf)
	if err != nil {
		return nil, err
	}
	return &BigCache{c: c}, nil
}

func (b *BigCache) Get(key string) ([]byte, bool) {
	v, err := b.c.Get(key)
	return v, err == nil
}

// Set ignores rejections; a dropped entry is only a miss later.
func (b *BigCache) Set(key string, value []byte) { _ = b.c.Set(key, value) }

func (b *BigCache) Del(key string) { _ = b.c.Delete(key) }

func (b *BigCache) Close() error { return b.c.Close() }
