package observability

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNewLogger_Levels(t *testing.T) {
	tests := []struct {
		level string
		want  zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"WARN", zapcore.WarnLevel},
		{"", zapcore.InfoLevel},
		{"verbose", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logger, err := NewLogger(tt.level)

			require.NoError(t, err)
			assert.True(t, logger.Core().Enabled(tt.want))
			assert.False(t, logger.Core().Enabled(tt.want-1))
		})
	}
}

func TestFromContext(t *testing.T) {
	logger := zap.NewExample()

	ctx := WithLogger(context.Background(), logger)

	assert.Same(t, logger, FromContext(ctx))
	assert.NotNil(t, FromContext(context.Background()))
	assert.Equal(t, context.Background(), WithLogger(context.Background(), nil))
}

func TestMetrics_Handler(t *testing.T) {
	m := NewMetrics()
	m.Transitions.WithLabelValues("pending", "confirmed").Inc()
	m.Unmapped.WithLabelValues("order_status").Add(2)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `laundry_order_transitions_total{from="pending",to="confirmed"} 1`)
	assert.InDelta(t, 2, testutil.ToFloat64(m.Unmapped.WithLabelValues("order_status")), 0)
}

func TestNewMetrics_IndependentRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		NewMetrics()
		NewMetrics()
	})
}

func TestTraceFields(t *testing.T) {
	assert.Nil(t, TraceFields(context.Background()))

	traceID, err := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	require.NoError(t, err)
	spanID, err := trace.SpanIDFromHex("00f067aa0ba902b7")
	require.NoError(t, err)
	ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID: traceID,
		SpanID:  spanID,
	}))

	fields := TraceFields(ctx)

	require.Len(t, fields, 2)
	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", fields[0].String)
	assert.Equal(t, "00f067aa0ba902b7", fields[1].String)
}
