package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/attribute"
)

func TestNoopMetrics_ImplementsInterface(t *testing.T) {
	var _ MetricsRecorder = NoopMetrics{}
}

func TestNoopMetrics(t *testing.T) {
	m := NoopMetrics{}

	t.Run("does not panic with valid args", func(t *testing.T) {
		assert.NotPanics(t, func() {
			m.RecordCompile(context.Background(), "canonical", false, time.Millisecond)
			m.RecordGraph(context.Background(), "canonical", 3, 2)
			m.RecordValidation(context.Background(), 1)
		})
	})

	t.Run("does not panic with nil context", func(t *testing.T) {
		assert.NotPanics(t, func() {
			m.RecordCompile(nil, "", true, 0)
			m.RecordGraph(nil, "", 0, 0)
			m.RecordValidation(nil, 0)
		})
	})
}

func TestNoopSpanManager_ImplementsInterface(t *testing.T) {
	var _ SpanManager = NoopSpanManager{}
}

func TestNoopSpanManager(t *testing.T) {
	m := NoopSpanManager{}
	ctx := context.Background()

	t.Run("returns context unchanged", func(t *testing.T) {
		newCtx, span := m.StartCompileSpan(ctx, "c-1")
		assert.Equal(t, ctx, newCtx)
		assert.NotNil(t, span)
		assert.False(t, span.IsRecording())

		newCtx, span = m.StartStageSpan(ctx, "extract")
		assert.Equal(t, ctx, newCtx)
		assert.False(t, span.IsRecording())
	})

	t.Run("end and events do not panic", func(t *testing.T) {
		_, span := m.StartStageSpan(ctx, "validate")
		assert.NotPanics(t, func() {
			m.EndSpanWithError(span, errors.New("x"))
			m.EndSpanWithError(nil, nil)
			m.AddSpanEvent(ctx, "event", attribute.String("k", "v"))
			m.SetCompileOutcome(nil, CompileOutcome{Fallback: true})
		})
	})
}
