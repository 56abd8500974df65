package storage

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

// Metrics counts storage traffic. Byte counters are what storage fees are
// charged on.
type Metrics struct {
	opsTotal   *prometheus.CounterVec
	bytesTotal *prometheus.CounterVec
}

// NewMetrics creates the storage metrics and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		opsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sccodec_storage_operations_total",
				Help: "Total number of storage operations",
			},
			[]string{"operation", "status"},
		),
		bytesTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sccodec_storage_bytes_total",
				Help: "Total number of value bytes read from or written to storage",
			},
			[]string{"operation"},
		),
	}
}

// Metered records Metrics for every operation on the wrapped Store.
type Metered struct {
	next Store
	m    *Metrics
}

var (
	_ Store   = (*Metered)(nil)
	_ Batcher = (*Metered)(nil)
)

func NewMetered(next Store, m *Metrics) *Metered {
	return &Metered{next: next, m: m}
}

func (s *Metered) Get(ctx context.Context, key []byte) ([]byte, error) {
	v, err := s.next.Get(ctx, key)
	s.record("get", len(v), err)
	return v, err
}

func (s *Metered) Set(ctx context.Context, key, value []byte) error {
	err := s.next.Set(ctx, key, value)
	s.record("set", len(value), err)
	return err
}

// Apply forwards the batch and counts it as one operation.
func (s *Metered) Apply(ctx context.Context, writes []Write) error {
	err := Apply(ctx, s.next, writes)
	n := 0
	for _, w := range writes {
		n += len(w.Value)
	}
	s.record("apply", n, err)
	return err
}

func (s *Metered) record(op string, n int, err error) {
	if err != nil {
		s.m.opsTotal.WithLabelValues(op, statusError).Inc()
		return
	}
	s.m.opsTotal.WithLabelValues(op, statusSuccess).Inc()
	s.m.bytesTotal.WithLabelValues(op).Add(float64(n))
}
