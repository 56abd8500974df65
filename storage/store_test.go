package storage

import (
	"context"
	"os"
	"testing"

	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/vfs"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// StoreTestSuite checks the Store contract against one backend.
type StoreTestSuite struct {
	suite.Suite
	open  func(t *testing.T) Store
	store Store
	ctx   context.Context
}

func (s *StoreTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = s.open(s.T())
}

func (s *StoreTestSuite) TestMissingKeyIsEmpty() {
	v, err := s.store.Get(s.ctx, []byte("absent"))
	s.Require().NoError(err)
	s.Assert().Empty(v)
}

func (s *StoreTestSuite) TestSetGetOverwrite() {
	key := []byte("counter")
	s.Require().NoError(s.store.Set(s.ctx, key, []byte{1, 2}))
	s.Require().NoError(s.store.Set(s.ctx, key, []byte{3}))

	v, err := s.store.Get(s.ctx, key)
	s.Require().NoError(err)
	s.Assert().Equal([]byte{3}, v)
}

func (s *StoreTestSuite) TestEmptyValueClears() {
	key := []byte("flag")
	s.Require().NoError(s.store.Set(s.ctx, key, []byte{1}))
	s.Require().NoError(s.store.Set(s.ctx, key, nil))

	v, err := s.store.Get(s.ctx, key)
	s.Require().NoError(err)
	s.Assert().Empty(v)
}

func (s *StoreTestSuite) TestValuesAreCopied() {
	key := []byte("buf")
	in := []byte("abc")
	s.Require().NoError(s.store.Set(s.ctx, key, in))
	in[0] = 'X'

	v, err := s.store.Get(s.ctx, key)
	s.Require().NoError(err)
	s.Assert().Equal([]byte("abc"), v)
}

func (s *StoreTestSuite) TestApply() {
	s.Require().NoError(s.store.Set(s.ctx, []byte("gone"), []byte{9}))
	err := Apply(s.ctx, s.store, []Write{
		{Key: []byte("a"), Value: []byte{1}},
		{Key: []byte("gone")},
		{Key: []byte("a"), Value: []byte{2}},
	})
	s.Require().NoError(err)

	a, err := s.store.Get(s.ctx, []byte("a"))
	s.Require().NoError(err)
	s.Assert().Equal([]byte{2}, a)
	gone, err := s.store.Get(s.ctx, []byte("gone"))
	s.Require().NoError(err)
	s.Assert().Empty(gone)
}

func TestMemoryStore(t *testing.T) {
	suite.Run(t, &StoreTestSuite{open: func(*testing.T) Store { return NewMemory() }})
}

func TestPebbleStore(t *testing.T) {
	suite.Run(t, &StoreTestSuite{open: func(t *testing.T) Store {
		p, err := OpenPebble("", &pebble.Options{FS: vfs.NewMem()}, nil)
		require.NoError(t, err)
		t.Cleanup(func() { _ = p.Close() })
		return p
	}})
}

func TestMeteredStore(t *testing.T) {
	suite.Run(t, &StoreTestSuite{open: func(*testing.T) Store {
		return NewMetered(NewMemory(), NewMetrics(prometheus.NewRegistry()))
	}})
}

// Set SCCODEC_REDIS_ADDR to run the contract against a live server.
func TestRedisStore(t *testing.T) {
	addr := os.Getenv("SCCODEC_REDIS_ADDR")
	if addr == "" {
		t.Skip("SCCODEC_REDIS_ADDR not set")
	}
	suite.Run(t, &StoreTestSuite{open: func(t *testing.T) Store {
		rdb := goredis.NewClient(&goredis.Options{Addr: addr})
		prefix := "sccodec-test:" + t.Name() + ":"
		r, err := NewRedis(RedisConfig{Client: rdb, Prefix: prefix, CloseClient: true})
		require.NoError(t, err)
		t.Cleanup(func() {
			keys, _ := rdb.Keys(context.Background(), prefix+"*").Result()
			if len(keys) > 0 {
				rdb.Del(context.Background(), keys...)
			}
			_ = r.Close()
		})
		return r
	}})
}

func TestNewRedisRequiresClient(t *testing.T) {
	_, err := NewRedis(RedisConfig{})
	assert.ErrorIs(t, err, ErrNilClient)
}

func TestPebbleClosed(t *testing.T) {
	p, err := OpenPebble("", &pebble.Options{FS: vfs.NewMem()}, nil)
	require.NoError(t, err)
	require.NoError(t, p.Close())
	require.NoError(t, p.Close())

	_, err = p.Get(context.Background(), []byte("k"))
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, p.Set(context.Background(), []byte("k"), []byte{1}), ErrClosed)
}

func TestGuard(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory()
	g := Guard(mem)

	assert.True(t, IsReserved([]byte("ELRONDesdt")))
	assert.False(t, IsReserved([]byte("elrond")))

	assert.ErrorIs(t, g.Set(ctx, []byte("ELRONDnonce"), []byte{1}), ErrReservedKey)
	assert.Zero(t, mem.Len())

	require.NoError(t, mem.Set(ctx, []byte("ELRONDnonce"), []byte{1}))
	v, err := g.Get(ctx, []byte("ELRONDnonce"))
	require.NoError(t, err)
	assert.Equal(t, []byte{1}, v, "reserved keys stay readable")
}

func TestGuardApply(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory()
	g := Guard(mem)

	err := Apply(ctx, g, []Write{
		{Key: []byte("a"), Value: []byte{1}},
		{Key: []byte("ELRONDb"), Value: []byte{2}},
	})
	assert.ErrorIs(t, err, ErrReservedKey)
	assert.Zero(t, mem.Len(), "no write of a rejected batch lands")

	require.NoError(t, Apply(ctx, g, []Write{{Key: []byte("a"), Value: []byte{1}}}))
	assert.Equal(t, 1, mem.Len())
}

func TestMetrics(t *testing.T) {
	ctx := context.Background()
	m := NewMetrics(prometheus.NewRegistry())
	s := NewMetered(Guard(NewMemory()), m)

	require.NoError(t, s.Set(ctx, []byte("k"), []byte("four")))
	_, err := s.Get(ctx, []byte("k"))
	require.NoError(t, err)
	assert.Error(t, s.Set(ctx, []byte("ELRONDk"), []byte{1}))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.opsTotal.WithLabelValues("set", statusSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.opsTotal.WithLabelValues("set", statusError)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.opsTotal.WithLabelValues("get", statusSuccess)))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.bytesTotal.WithLabelValues("set")))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.bytesTotal.WithLabelValues("get")))

	require.NoError(t, s.Apply(ctx, []Write{{Key: []byte("x"), Value: []byte("ab")}, {Key: []byte("y"), Value: []byte("c")}}))
	assert.Error(t, s.Apply(ctx, []Write{{Key: []byte("ELRONDx"), Value: []byte{1}}}))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.opsTotal.WithLabelValues("apply", statusSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.opsTotal.WithLabelValues("apply", statusError)))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.bytesTotal.WithLabelValues("apply")))
}
