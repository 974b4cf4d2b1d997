package flowchart

import (
	"log/slog"

	"github.com/randalmurphal/flowchart/pkg/flowchart/observability"
)

// Option configures a Compiler.
type Option func(*Compiler)

// WithLogger sets the structured logger. Default: slog.Default().
// A nil logger disables logging.
//
// Example:
//
//	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
//	c := flowchart.NewCompiler(flowchart.WithLogger(logger))
func WithLogger(logger *slog.Logger) Option {
	return func(c *Compiler) {
		c.logger = logger
	}
}

// WithMetrics enables OpenTelemetry metrics using the global meter provider.
// Default: disabled.
func WithMetrics(enabled bool) Option {
	return func(c *Compiler) {
		if enabled {
			c.metrics = observability.NewMetricsRecorder()
		} else {
			c.metrics = observability.NoopMetrics{}
		}
	}
}

// WithTracing enables OpenTelemetry spans using the global tracer provider.
// Default: disabled.
func WithTracing(enabled bool) Option {
	return func(c *Compiler) {
		if enabled {
			c.spans = observability.NewSpanManager()
		} else {
			c.spans = observability.NoopSpanManager{}
		}
	}
}

// WithMetricsRecorder sets a custom metrics recorder.
func WithMetricsRecorder(m observability.MetricsRecorder) Option {
	return func(c *Compiler) {
		if m != nil {
			c.metrics = m
		}
	}
}

// WithValidateOptions sets the options used for the compiler's own
// validation pass. The pass only logs and records metrics; it never
// rejects a graph.
func WithValidateOptions(opts ...ValidateOption) Option {
	return func(c *Compiler) {
		c.validateOpts = append([]ValidateOption(nil), opts...)
	}
}
