package overlay

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medboard/hospital-api/pkg/metrics"
)

func TestInstrumentedStoreCountsOperations(t *testing.T) {
	inner, err := NewFileStore(filepath.Join(t.TempDir(), "overlay.json"))
	require.NoError(t, err)

	m := metrics.NewMetrics("test", "overlay")
	ov := WithMetrics(inner, m)
	ctx := context.Background()

	require.NoError(t, ov.Put(ctx, "staff:1:draft", []byte(`{"step":2}`)))
	_, err = ov.Get(ctx, "staff:1:draft")
	require.NoError(t, err)
	_, err = ov.Get(ctx, "staff:2:draft")
	assert.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, ov.Delete(ctx, "staff:1:draft"))
	_, err = ov.Keys(ctx, "staff:")
	require.NoError(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.OverlayOperations.WithLabelValues("put", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.OverlayOperations.WithLabelValues("get", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.OverlayOperations.WithLabelValues("get", "not_found")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.OverlayOperations.WithLabelValues("delete", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.OverlayOperations.WithLabelValues("keys", "ok")))
}

func TestWithMetricsNilPassesThrough(t *testing.T) {
	inner, err := NewFileStore(filepath.Join(t.TempDir(), "overlay.json"))
	require.NoError(t, err)
	assert.Equal(t, inner, WithMetrics(inner, nil))
}
