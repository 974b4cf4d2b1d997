package observability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

// setupMetricsTest creates a test meter provider and returns a function to collect metrics.
func setupMetricsTest(t *testing.T) (*sdkmetric.ManualReader, func()) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	originalProvider := otel.GetMeterProvider()
	otel.SetMeterProvider(provider)

	cleanup := func() {
		otel.SetMeterProvider(originalProvider)
		if err := provider.Shutdown(context.Background()); err != nil {
			t.Logf("Error shutting down meter provider: %v", err)
		}
	}

	return reader, cleanup
}

// collectMetrics collects all metrics from the reader.
func collectMetrics(t *testing.T, reader *sdkmetric.ManualReader) *metricdata.ResourceMetrics {
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	return &rm
}

// findMetric finds a metric by name in the collected data.
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

// sumFor returns the summed counter value for datapoints carrying the
// given string attribute.
func sumFor(t *testing.T, m *metricdata.Metrics, key, value string) int64 {
	t.Helper()
	sum, ok := m.Data.(metricdata.Sum[int64])
	require.True(t, ok, "Expected Sum type")

	var total int64
	for _, dp := range sum.DataPoints {
		if v, ok := dp.Attributes.Value(attribute.Key(key)); ok && v.AsString() == value {
			total += dp.Value
		}
	}
	return total
}

func TestNewMetricsRecorder(t *testing.T) {
	_, cleanup := setupMetricsTest(t)
	defer cleanup()

	recorder := NewMetricsRecorder()
	require.NotNil(t, recorder)

	_, isNoop := recorder.(NoopMetrics)
	assert.False(t, isNoop, "Expected real metrics recorder, got noop")
}

func TestRecordCompile(t *testing.T) {
	reader, cleanup := setupMetricsTest(t)
	defer cleanup()

	m, err := newOtelMetrics()
	require.NoError(t, err)
	ctx := context.Background()

	t.Run("counts compiles by shape", func(t *testing.T) {
		m.RecordCompile(ctx, "narrative", false, 3*time.Millisecond)
		m.RecordCompile(ctx, "narrative", false, time.Millisecond)
		m.RecordCompile(ctx, "canonical", false, time.Millisecond)

		rm := collectMetrics(t, reader)
		count := findMetric(rm, "flowchart.compile.count")
		require.NotNil(t, count)
		assert.Equal(t, int64(2), sumFor(t, count, "shape", "narrative"))
		assert.Equal(t, int64(1), sumFor(t, count, "shape", "canonical"))

		latency := findMetric(rm, "flowchart.compile.latency_ms")
		require.NotNil(t, latency)
		hist, ok := latency.Data.(metricdata.Histogram[float64])
		require.True(t, ok, "Expected Histogram type")
		assert.NotEmpty(t, hist.DataPoints)
	})

	t.Run("counts fallbacks", func(t *testing.T) {
		m.RecordCompile(ctx, "fallback", true, time.Millisecond)

		rm := collectMetrics(t, reader)
		fallbacks := findMetric(rm, "flowchart.compile.fallbacks")
		require.NotNil(t, fallbacks)

		sum, ok := fallbacks.Data.(metricdata.Sum[int64])
		require.True(t, ok)
		require.Len(t, sum.DataPoints, 1)
		assert.Equal(t, int64(1), sum.DataPoints[0].Value)
	})
}

func TestRecordGraph(t *testing.T) {
	reader, cleanup := setupMetricsTest(t)
	defer cleanup()

	m, err := newOtelMetrics()
	require.NoError(t, err)

	m.RecordGraph(context.Background(), "canonical", 3, 2)

	rm := collectMetrics(t, reader)
	for _, name := range []string{"flowchart.graph.nodes", "flowchart.graph.edges"} {
		metric := findMetric(rm, name)
		require.NotNil(t, metric, name)
		hist, ok := metric.Data.(metricdata.Histogram[int64])
		require.True(t, ok, name)
		require.Len(t, hist.DataPoints, 1)
		assert.Equal(t, uint64(1), hist.DataPoints[0].Count)
	}

	nodes := findMetric(rm, "flowchart.graph.nodes").Data.(metricdata.Histogram[int64])
	assert.Equal(t, int64(3), nodes.DataPoints[0].Sum)
}

func TestRecordValidation(t *testing.T) {
	reader, cleanup := setupMetricsTest(t)
	defer cleanup()

	m, err := newOtelMetrics()
	require.NoError(t, err)

	m.RecordValidation(context.Background(), 0)
	m.RecordValidation(context.Background(), 4)

	rm := collectMetrics(t, reader)
	metric := findMetric(rm, "flowchart.validate.violations")
	require.NotNil(t, metric)

	hist, ok := metric.Data.(metricdata.Histogram[int64])
	require.True(t, ok)
	assert.Len(t, hist.DataPoints, 2, "one datapoint per valid attribute value")
}
