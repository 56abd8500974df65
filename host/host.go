// Package host runs contract endpoints against a key-value store, the way a
// virtual machine would: inside one unit of execution that either completes
// and commits its storage writes or aborts and leaves no trace.
package host

import (
	"context"
	"sync"

	codec "github.com/oy3o/sccodec"
	"github.com/oy3o/sccodec/logging"
	"github.com/oy3o/sccodec/storage"
)

// Endpoint is a contract entry point. It fails by aborting through the
// call's handler and never by returning an error.
type Endpoint func(c *Call)

// Host owns the persistent store of one contract.
type Host struct {
	mu    sync.Mutex
	store storage.Store
	log   logging.Logger
	mem   *Memory
}

type Option func(*Host)

func WithLogger(l logging.Logger) Option {
	return func(h *Host) { h.log = logging.OrNop(l) }
}

func WithMemory(m *Memory) Option {
	return func(h *Host) { h.mem = m }
}

func New(store storage.Store, opts ...Option) *Host {
	h := &Host{store: store, log: logging.Nop{}, mem: &Memory{}}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Memory returns the memory fixture of the host.
func (h *Host) Memory() *Memory { return h.mem }

// Execute runs ep with args and no payment. Executions are serialized.
// Storage writes made by ep are committed in order if and only if it
// returns normally.
func (h *Host) Execute(ctx context.Context, args [][]byte, ep Endpoint) Result {
	return h.ExecutePayable(ctx, args, Payment{}, ep)
}

// ExecutePayable is Execute for a call that carries pay.
func (h *Host) ExecutePayable(ctx context.Context, args [][]byte, pay Payment, ep Endpoint) Result {
	h.mu.Lock()
	defer h.mu.Unlock()

	c := newCall(ctx, h, args, pay)
	if err := codec.Catch(func() { ep(c) }); err != nil {
		res := Result{Status: statusOf(err), Message: messageOf(err)}
		h.log.Warn("endpoint aborted", logging.Fields{
			"status":  res.Status.String(),
			"message": res.Message,
			"dropped": len(c.writes),
		})
		return res
	}

	if err := storage.Apply(ctx, h.store, c.writes); err != nil {
		h.log.Error("commit failed", logging.Fields{"err": err.Error()})
		return Result{Status: StatusExecutionFailed, Message: err.Error()}
	}
	h.log.Debug("endpoint finished", logging.Fields{
		"writes":  len(c.writes),
		"results": len(c.results.Values()),
	})
	return Result{Status: StatusOK, Results: c.results.Values()}
}
