package overlay

import (
	"context"
	"errors"
	"time"

	"github.com/medboard/hospital-api/pkg/metrics"
)

type instrumentedStore struct {
	next    Store
	metrics *metrics.Metrics
}

// WithMetrics wraps a store so every operation is counted and timed.
// A nil metrics handle returns the store unwrapped.
func WithMetrics(next Store, m *metrics.Metrics) Store {
	if m == nil {
		return next
	}
	return &instrumentedStore{next: next, metrics: m}
}

func (s *instrumentedStore) observe(op string, start time.Time, err error) {
	status := "ok"
	switch {
	case errors.Is(err, ErrNotFound):
		status = "not_found"
	case err != nil:
		status = "error"
	}
	s.metrics.OverlayOperations.WithLabelValues(op, status).Inc()
	s.metrics.OverlayLatency.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

func (s *instrumentedStore) Get(ctx context.Context, key string) ([]byte, error) {
	start := time.Now()
	raw, err := s.next.Get(ctx, key)
	s.observe("get", start, err)
	return raw, err
}

func (s *instrumentedStore) Put(ctx context.Context, key string, value []byte) error {
	start := time.Now()
	err := s.next.Put(ctx, key, value)
	s.observe("put", start, err)
	return err
}

func (s *instrumentedStore) Delete(ctx context.Context, key string) error {
	start := time.Now()
	err := s.next.Delete(ctx, key)
	s.observe("delete", start, err)
	return err
}

func (s *instrumentedStore) Keys(ctx context.Context, prefix string) ([]string, error) {
	start := time.Now()
	keys, err := s.next.Keys(ctx, prefix)
	s.observe("keys", start, err)
	return keys, err
}
