package host

import (
	"context"

	codec "github.com/oy3o/sccodec"
	"github.com/oy3o/sccodec/call"
	"github.com/oy3o/sccodec/logging"
	"github.com/oy3o/sccodec/storage"
)

// Call is the state of one execution. It is also the contract's view of
// storage: reads see the call's own pending writes.
type Call struct {
	ctx     context.Context
	host    *Host
	h       codec.ExitHandler[*Call]
	args    *call.Args
	results *call.Results
	pay     Payment
	pending map[string][]byte
	writes  []storage.Write
}

var _ storage.Store = (*Call)(nil)

func newCall(ctx context.Context, host *Host, args [][]byte, pay Payment) *Call {
	c := &Call{
		ctx:     ctx,
		host:    host,
		pay:     pay,
		pending: make(map[string][]byte),
	}
	c.h = codec.Exit(c, codec.Trap[*Call])
	c.args = call.NewArgs(args, c.h)
	c.results = call.NewResults(c.h)
	return c
}

func (c *Call) Context() context.Context { return c.ctx }

// Handler is the exit handler of the call: any failure reported to it ends
// the execution.
func (c *Call) Handler() codec.ErrorHandler { return c.h }

func (c *Call) Args() *call.Args       { return c.args }
func (c *Call) Results() *call.Results { return c.results }
func (c *Call) Logger() logging.Logger { return c.host.log }

// SignalError ends the execution with a user error.
func (c *Call) SignalError(msg string) {
	_ = c.h.HandleError(&UserError{Message: msg})
}

// Require signals msg unless cond holds.
func (c *Call) Require(cond bool, msg string) {
	if !cond {
		c.SignalError(msg)
	}
}

// MemStore accounts for n bytes written to memory at offset.
func (c *Call) MemStore(offset, n uint32) {
	if err := c.host.mem.Store(offset, n); err != nil {
		_ = c.h.HandleError(err)
	}
}

func (c *Call) Get(ctx context.Context, key []byte) ([]byte, error) {
	if v, ok := c.pending[string(key)]; ok {
		return append([]byte(nil), v...), nil
	}
	return c.host.store.Get(ctx, key)
}

func (c *Call) Set(_ context.Context, key, value []byte) error {
	if storage.IsReserved(key) {
		return storage.ErrReservedKey
	}
	k := append([]byte(nil), key...)
	v := append([]byte(nil), value...)
	c.pending[string(k)] = v
	c.writes = append(c.writes, storage.Write{Key: k, Value: v})
	return nil
}

// Arg decodes the next endpoint argument, staging it in memory first.
func Arg[T any, PT codec.DecoderPtr[T]](c *Call) T {
	raw, _ := c.args.Raw()
	c.MemStore(0, uint32(len(raw)))
	v, _ := codec.DecodeTop[T, PT](raw, c.h)
	return v
}

// Finish appends v to the results of the call.
func Finish(c *Call, v codec.TopEncoder) {
	_ = c.results.Finish(v)
}

// Load reads the value stored under key.
func Load[T any, PT codec.DecoderPtr[T]](c *Call, key []byte) T {
	v, _ := storage.Get[T, PT](c.ctx, c, key, c.h)
	return v
}

// Store writes v under key.
func Store(c *Call, key []byte, v codec.TopEncoder) {
	_ = storage.Set(c.ctx, c, key, v, c.h)
}

// IsEmpty reports whether nothing is stored under key.
func IsEmpty(c *Call, key []byte) bool {
	empty, _ := storage.IsEmpty(c.ctx, c, key, c.h)
	return empty
}

// Mapper binds a SingleValue mapper to the call's storage.
func Mapper[T any, PT codec.CodecPtr[T]](c *Call, key []byte) *storage.SingleValue[T, PT] {
	return storage.NewSingleValue[T, PT](c, key, c.h)
}
