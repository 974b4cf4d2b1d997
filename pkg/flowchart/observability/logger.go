// Package observability provides logging, metrics and tracing for the
// flow compiler.
//
// Features:
//   - Structured logging via slog (Go stdlib)
//   - Metrics via OpenTelemetry
//   - Tracing via OpenTelemetry
//
// All features are opt-in and have no-op implementations when disabled.
package observability

import (
	"log/slog"
	"time"
)

// EnrichLogger adds compile context to a logger.
// Returns a new logger with compile_id and stage fields.
//
// Example:
//
//	enriched := EnrichLogger(logger, "c0ffee", "normalize")
//	enriched.Debug("expanding narrative") // includes compile_id, stage
func EnrichLogger(logger *slog.Logger, compileID, stage string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(
		slog.String("compile_id", compileID),
		slog.String("stage", stage),
	)
}

// LogCompileStart logs the start of a compile.
func LogCompileStart(logger *slog.Logger, compileID string, inputBytes int) {
	if logger == nil {
		return
	}
	logger.Debug("flow compile starting",
		slog.String("compile_id", compileID),
		slog.Int("input_bytes", inputBytes),
	)
}

// LogCompileComplete logs a compile that produced a graph from the input.
func LogCompileComplete(logger *slog.Logger, compileID, strategy, shape string, nodes, edges int, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Info("flow compiled",
		slog.String("compile_id", compileID),
		slog.String("strategy", strategy),
		slog.String("shape", shape),
		slog.Int("nodes", nodes),
		slog.Int("edges", edges),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogFallback logs a compile that fell back to the default graph.
func LogFallback(logger *slog.Logger, compileID string, err error, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Warn("flow compile fell back to default graph",
		slog.String("compile_id", compileID),
		slog.String("error", err.Error()),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogCompileError logs a compile failure returned to the caller.
func LogCompileError(logger *slog.Logger, compileID string, err error, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Info("flow compile failed",
		slog.String("compile_id", compileID),
		slog.String("error", err.Error()),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogValidation logs the structural validation outcome of a compiled graph.
// Violations are informational; the compiler still returns the graph.
func LogValidation(logger *slog.Logger, compileID string, valid bool, violations []string) {
	if logger == nil {
		return
	}
	if valid {
		logger.Debug("flow is structurally valid",
			slog.String("compile_id", compileID),
		)
		return
	}
	logger.Debug("flow has structural violations",
		slog.String("compile_id", compileID),
		slog.Int("violations", len(violations)),
		slog.Any("errors", violations),
	)
}

// LogStoreError logs an artifact store failure.
func LogStoreError(logger *slog.Logger, projectID, op string, err error) {
	if logger == nil {
		return
	}
	logger.Error("flow artifact store failed",
		slog.String("project_id", projectID),
		slog.String("operation", op),
		slog.String("error", err.Error()),
	)
}

// LogFlowSaved logs a flow written to the artifact store. Dropped counts
// the nodes and edges removed by sanitizing before the write.
func LogFlowSaved(logger *slog.Logger, projectID string, nodes, edges, dropped int, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Debug("flow saved",
		slog.String("project_id", projectID),
		slog.Int("nodes", nodes),
		slog.Int("edges", edges),
		slog.Int("dropped", dropped),
		slog.Float64("duration_ms", durationMs),
	)
}

// TimedOperation measures the duration of an operation.
// Returns a function that, when called, returns the elapsed time in milliseconds.
//
// Example:
//
//	done := TimedOperation()
//	// ... do work ...
//	durationMs := done()
func TimedOperation() func() float64 {
	start := time.Now()
	return func() float64 {
		return float64(time.Since(start).Microseconds()) / 1000
	}
}
