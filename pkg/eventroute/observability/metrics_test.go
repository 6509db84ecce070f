package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

// setupMetricsTest installs a test meter provider and returns its reader.
func setupMetricsTest(t *testing.T) *sdkmetric.ManualReader {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	original := otel.GetMeterProvider()
	otel.SetMeterProvider(provider)

	t.Cleanup(func() {
		otel.SetMeterProvider(original)
		if err := provider.Shutdown(context.Background()); err != nil {
			t.Logf("Error shutting down meter provider: %v", err)
		}
	})

	return reader
}

func collectMetrics(t *testing.T, reader *sdkmetric.ManualReader) *metricdata.ResourceMetrics {
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	return &rm
}

func findMetric(rm *metricdata.ResourceMetrics, name string) *metricdata.Metrics {
	for _, sm := range rm.ScopeMetrics {
		for i := range sm.Metrics {
			if sm.Metrics[i].Name == name {
				return &sm.Metrics[i]
			}
		}
	}
	return nil
}

func sumInt64(t *testing.T, m *metricdata.Metrics) int64 {
	t.Helper()
	require.NotNil(t, m)
	sum, ok := m.Data.(metricdata.Sum[int64])
	require.True(t, ok, "expected Sum[int64]")
	var total int64
	for _, dp := range sum.DataPoints {
		total += dp.Value
	}
	return total
}

func TestNewMetricsRecorder(t *testing.T) {
	setupMetricsTest(t)

	recorder := NewMetricsRecorder()
	require.NotNil(t, recorder)

	_, isNoop := recorder.(NoopMetrics)
	assert.False(t, isNoop, "expected real metrics recorder, got noop")
}

func TestRecordDispatch(t *testing.T) {
	reader := setupMetricsTest(t)

	m, err := newOtelMetrics()
	require.NoError(t, err)

	ctx := context.Background()
	m.RecordDispatch(ctx, "info", "user", 3, 2*time.Millisecond, nil)
	m.RecordDispatch(ctx, "error", "error", 1, time.Millisecond, errors.New("consumer failed"))

	rm := collectMetrics(t, reader)

	assert.Equal(t, int64(2), sumInt64(t, findMetric(rm, "eventroute.dispatch.events")))
	assert.Equal(t, int64(4), sumInt64(t, findMetric(rm, "eventroute.dispatch.deliveries")))
	assert.Equal(t, int64(1), sumInt64(t, findMetric(rm, "eventroute.dispatch.errors")))

	latency := findMetric(rm, "eventroute.dispatch.latency_ms")
	require.NotNil(t, latency)
	hist, ok := latency.Data.(metricdata.Histogram[float64])
	require.True(t, ok)
	var count uint64
	for _, dp := range hist.DataPoints {
		count += dp.Count
	}
	assert.Equal(t, uint64(2), count)
}

func TestRecordDispatchAttributes(t *testing.T) {
	reader := setupMetricsTest(t)

	m, err := newOtelMetrics()
	require.NoError(t, err)

	m.RecordDispatch(context.Background(), "warning", "navigation", 1, 0, nil)

	rm := collectMetrics(t, reader)
	metric := findMetric(rm, "eventroute.dispatch.events")
	require.NotNil(t, metric)
	sum := metric.Data.(metricdata.Sum[int64])
	require.Len(t, sum.DataPoints, 1)

	level, ok := sum.DataPoints[0].Attributes.Value("level")
	require.True(t, ok)
	assert.Equal(t, "warning", level.AsString())
	tag, ok := sum.DataPoints[0].Attributes.Value("tag")
	require.True(t, ok)
	assert.Equal(t, "navigation", tag.AsString())
}

func TestRecordRegistration(t *testing.T) {
	reader := setupMetricsTest(t)

	m, err := newOtelMetrics()
	require.NoError(t, err)

	m.RecordRegistration(context.Background(), "grover", true)
	m.RecordRegistration(context.Background(), "snuffy", false)

	rm := collectMetrics(t, reader)
	assert.Equal(t, int64(2), sumInt64(t, findMetric(rm, "eventroute.registry.registrations")))
}
