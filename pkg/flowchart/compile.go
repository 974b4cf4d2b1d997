package flowchart

import (
	"context"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/randalmurphal/flowchart/pkg/flowchart/observability"
)

// Compiler turns model output into a flow graph.
//
// A Compiler holds no per-call state and is safe for concurrent use.
type Compiler struct {
	logger       *slog.Logger
	metrics      observability.MetricsRecorder
	spans        observability.SpanManager
	validateOpts []ValidateOption

	extractFn   func(string) (any, Strategy, bool)
	normalizeFn func(any) (*Graph, Shape, bool)
}

// NewCompiler creates a Compiler. Without options it logs through
// slog.Default() and has metrics and tracing disabled.
func NewCompiler(opts ...Option) *Compiler {
	c := &Compiler{
		logger:      slog.Default(),
		metrics:     observability.NoopMetrics{},
		spans:       observability.NoopSpanManager{},
		extractFn:   extract,
		normalizeFn: normalize,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compile converts text into a Graph using a default Compiler.
// It never fails: see Compiler.Compile.
func Compile(text string) *Graph {
	return NewCompiler().Compile(context.Background(), text)
}

// Compile extracts, normalizes and self-checks a flow from text.
//
// It always returns a renderable graph. When no payload can be extracted,
// the payload has no recognizable shape, or compilation panics, the
// failure is logged and a copy of FallbackGraph is returned. A recognized
// graph is returned as-is even if validation finds violations.
func (c *Compiler) Compile(ctx context.Context, text string) *Graph {
	g, _ := c.run(ctx, text, true)
	return g
}

// TryCompile runs the same pipeline as Compile but returns the failure
// instead of the fallback graph. Errors wrap ErrNoPayload or
// ErrUnrecognizedShape, or are a *PanicError.
func (c *Compiler) TryCompile(ctx context.Context, text string) (*Graph, error) {
	return c.run(ctx, text, false)
}

func (c *Compiler) run(ctx context.Context, text string, fallback bool) (*Graph, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	start := time.Now()
	compileID := uuid.NewString()
	ctx, span := c.spans.StartCompileSpan(ctx, compileID)
	observability.LogCompileStart(c.logger, compileID, len(text))

	res, err := c.stages(ctx, compileID, text)
	elapsed := time.Since(start)
	durationMs := float64(elapsed.Microseconds()) / 1000

	if err != nil {
		c.spans.EndSpanWithError(span, err)
		if !fallback {
			observability.LogCompileError(c.logger, compileID, err, durationMs)
			c.metrics.RecordCompile(ctx, "none", false, elapsed)
			return nil, err
		}
		g := FallbackGraph()
		c.spans.SetCompileOutcome(span, observability.CompileOutcome{
			Nodes: len(g.Nodes), Edges: len(g.Edges), Fallback: true,
		})
		observability.LogFallback(c.logger, compileID, err, durationMs)
		c.metrics.RecordCompile(ctx, "fallback", true, elapsed)
		return g, nil
	}

	observability.LogCompileComplete(c.logger, compileID, string(res.strategy), string(res.shape),
		len(res.graph.Nodes), len(res.graph.Edges), durationMs)
	c.metrics.RecordCompile(ctx, string(res.shape), false, elapsed)
	c.metrics.RecordGraph(ctx, string(res.shape), len(res.graph.Nodes), len(res.graph.Edges))
	c.spans.SetCompileOutcome(span, observability.CompileOutcome{
		Strategy: string(res.strategy),
		Shape:    string(res.shape),
		Nodes:    len(res.graph.Nodes),
		Edges:    len(res.graph.Edges),
	})
	c.spans.EndSpanWithError(span, nil)

	return res.graph, nil
}

// compileResult is what a successful pass through the stages produced.
type compileResult struct {
	graph    *Graph
	strategy Strategy
	shape    Shape
}

// stages runs extract, normalize and validate. Panics in any stage are
// recovered into a *PanicError naming the stage.
func (c *Compiler) stages(ctx context.Context, compileID, text string) (res compileResult, err error) {
	stage := StageExtract
	var span trace.Span

	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Stage: stage, Value: r, Stack: string(debug.Stack())}
			if log := observability.EnrichLogger(c.logger, compileID, stage); log != nil {
				log.Error("compile stage panicked", slog.Any("panic", r))
			}
			c.spans.EndSpanWithError(span, err)
			res = compileResult{}
		}
	}()

	stageCtx, span := c.spans.StartStageSpan(ctx, StageExtract)
	value, strategy, ok := c.extractFn(text)
	if !ok {
		err = &StageError{Stage: StageExtract, Err: ErrNoPayload}
		c.spans.EndSpanWithError(span, err)
		return res, err
	}
	c.spans.AddSpanEvent(stageCtx, "payload extracted", attribute.String("strategy", string(strategy)))
	c.spans.EndSpanWithError(span, nil)

	stage = StageNormalize
	stageCtx, span = c.spans.StartStageSpan(ctx, StageNormalize)
	g, shape, ok := c.normalizeFn(value)
	if !ok {
		err = &StageError{Stage: StageNormalize, Strategy: strategy, Err: ErrUnrecognizedShape}
		c.spans.EndSpanWithError(span, err)
		return res, err
	}
	c.spans.AddSpanEvent(stageCtx, "shape recognized", attribute.String("shape", string(shape)))
	c.spans.EndSpanWithError(span, nil)

	stage = StageValidate
	_, span = c.spans.StartStageSpan(ctx, StageValidate)
	report := Validate(g, c.validateOpts...)
	c.spans.EndSpanWithError(span, nil)
	observability.LogValidation(c.logger, compileID, report.Valid, report.Errors)
	c.metrics.RecordValidation(ctx, len(report.Errors))

	return compileResult{graph: g, strategy: strategy, shape: shape}, nil
}
