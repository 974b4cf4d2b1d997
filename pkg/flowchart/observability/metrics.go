package observability

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsRecorder records compiler metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordCompile records one compile with the recognized shape
	// ("fallback" when the default graph was returned) and its duration.
	RecordCompile(ctx context.Context, shape string, fallback bool, duration time.Duration)

	// RecordGraph records the size of a compiled graph.
	RecordGraph(ctx context.Context, shape string, nodes, edges int)

	// RecordValidation records a validation outcome.
	RecordValidation(ctx context.Context, violations int)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	compiles   metric.Int64Counter
	latency    metric.Float64Histogram
	fallbacks  metric.Int64Counter
	graphNodes metric.Int64Histogram
	graphEdges metric.Int64Histogram
	violations metric.Int64Histogram
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

// getDefaultMetrics returns the default OTel metrics instance.
// Lazily initializes the metrics on first call.
func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics()
	})
	return defaultMetrics, defaultMetricsErr
}

// newOtelMetrics creates a new OTel metrics instance.
func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("flowchart")

	compiles, err := meter.Int64Counter("flowchart.compile.count",
		metric.WithDescription("Number of compile calls"),
	)
	if err != nil {
		return nil, err
	}

	latency, err := meter.Float64Histogram("flowchart.compile.latency_ms",
		metric.WithDescription("Compile latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	fallbacks, err := meter.Int64Counter("flowchart.compile.fallbacks",
		metric.WithDescription("Number of compiles that returned the default graph"),
	)
	if err != nil {
		return nil, err
	}

	graphNodes, err := meter.Int64Histogram("flowchart.graph.nodes",
		metric.WithDescription("Nodes per compiled graph"),
	)
	if err != nil {
		return nil, err
	}

	graphEdges, err := meter.Int64Histogram("flowchart.graph.edges",
		metric.WithDescription("Edges per compiled graph"),
	)
	if err != nil {
		return nil, err
	}

	violations, err := meter.Int64Histogram("flowchart.validate.violations",
		metric.WithDescription("Structural violations per validated graph"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		compiles:   compiles,
		latency:    latency,
		fallbacks:  fallbacks,
		graphNodes: graphNodes,
		graphEdges: graphEdges,
		violations: violations,
	}, nil
}

// NewMetricsRecorder returns a MetricsRecorder that uses OpenTelemetry.
// If metrics initialization fails, returns a no-op recorder.
//
// The recorder uses the global OTel meter provider. Configure the provider
// before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetMeterProvider(yourProvider)
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		slog.Warn("metrics initialization failed, using no-op recorder",
			slog.String("error", err.Error()))
		return NoopMetrics{}
	}
	return m
}

// RecordCompile records a compile.
func (m *otelMetrics) RecordCompile(ctx context.Context, shape string, fallback bool, duration time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String("shape", shape),
		attribute.Bool("fallback", fallback),
	)
	m.compiles.Add(ctx, 1, attrs)
	m.latency.Record(ctx, float64(duration.Microseconds())/1000, attrs)

	if fallback {
		m.fallbacks.Add(ctx, 1)
	}
}

// RecordGraph records compiled graph size.
func (m *otelMetrics) RecordGraph(ctx context.Context, shape string, nodes, edges int) {
	attrs := metric.WithAttributes(attribute.String("shape", shape))
	m.graphNodes.Record(ctx, int64(nodes), attrs)
	m.graphEdges.Record(ctx, int64(edges), attrs)
}

// RecordValidation records a validation outcome.
func (m *otelMetrics) RecordValidation(ctx context.Context, violations int) {
	m.violations.Record(ctx, int64(violations),
		metric.WithAttributes(attribute.Bool("valid", violations == 0)),
	)
}
