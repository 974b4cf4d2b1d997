package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// tracer is the flowchart tracer instance.
// Uses the global OTel tracer provider.
var tracer = otel.Tracer("flowchart")

// SpanManager handles trace span lifecycle.
// Use NewSpanManager() for OTel tracing or NoopSpanManager{} when disabled.
type SpanManager interface {
	// StartCompileSpan starts a span covering one compile call.
	StartCompileSpan(ctx context.Context, compileID string) (context.Context, trace.Span)

	// StartStageSpan starts a span for a compile stage (extract, normalize, validate).
	// The stage span should be a child of the compile span.
	StartStageSpan(ctx context.Context, stage string) (context.Context, trace.Span)

	// EndSpanWithError completes a span, optionally recording an error.
	EndSpanWithError(span trace.Span, err error)

	// AddSpanEvent adds an event to the current span in context.
	AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue)

	// SetCompileOutcome annotates a compile span with what the call produced.
	SetCompileOutcome(span trace.Span, outcome CompileOutcome)
}

// CompileOutcome describes the graph a compile call returned.
// Strategy and Shape are empty when the call fell back.
type CompileOutcome struct {
	Strategy string
	Shape    string
	Nodes    int
	Edges    int
	Fallback bool
}

// Attributes returns the outcome as span attributes.
func (o CompileOutcome) Attributes() []attribute.KeyValue {
	attrs := []attribute.KeyValue{
		attribute.Int("graph.nodes", o.Nodes),
		attribute.Int("graph.edges", o.Edges),
		attribute.Bool("compile.fallback", o.Fallback),
	}
	if o.Strategy != "" {
		attrs = append(attrs, attribute.String("compile.strategy", o.Strategy))
	}
	if o.Shape != "" {
		attrs = append(attrs, attribute.String("compile.shape", o.Shape))
	}
	return attrs
}

// otelSpanManager implements SpanManager using OpenTelemetry.
type otelSpanManager struct{}

// NewSpanManager returns a SpanManager that uses OpenTelemetry.
//
// The span manager uses the global OTel tracer provider. Configure the provider
// before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetTracerProvider(yourProvider)
func NewSpanManager() SpanManager {
	return &otelSpanManager{}
}

func (m *otelSpanManager) StartCompileSpan(ctx context.Context, compileID string) (context.Context, trace.Span) {
	return StartCompileSpan(ctx, compileID)
}

func (m *otelSpanManager) StartStageSpan(ctx context.Context, stage string) (context.Context, trace.Span) {
	return StartStageSpan(ctx, stage)
}

func (m *otelSpanManager) EndSpanWithError(span trace.Span, err error) {
	EndSpanWithError(span, err)
}

func (m *otelSpanManager) AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue) {
	AddSpanEvent(ctx, name, attrs...)
}

func (m *otelSpanManager) SetCompileOutcome(span trace.Span, outcome CompileOutcome) {
	if span == nil {
		return
	}
	span.SetAttributes(outcome.Attributes()...)
}

// StartCompileSpan starts the root span of one compile call.
func StartCompileSpan(ctx context.Context, compileID string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "flowchart.compile",
		trace.WithAttributes(attribute.String("compile.id", compileID)),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// StartStageSpan starts a child span named flowchart.stage.<stage>.
func StartStageSpan(ctx context.Context, stage string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "flowchart.stage."+stage,
		trace.WithAttributes(attribute.String("compile.stage", stage)),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// EndSpanWithError completes a span, optionally recording an error.
func EndSpanWithError(span trace.Span, err error) {
	if span == nil {
		return
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

// AddSpanEvent adds an event to the current span in context.
func AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue) {
	span := trace.SpanFromContext(ctx)
	if span == nil || !span.IsRecording() {
		return
	}
	span.AddEvent(name, trace.WithAttributes(attrs...))
}
