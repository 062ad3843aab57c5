package observe

import (
	"context"
	"io"
	"testing"
	"time"
)

// BenchmarkLogger_Info measures logging throughput.
func BenchmarkLogger_Info(b *testing.B) {
	logger := NewLoggerWithWriter("info", io.Discard)
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		logger.Info(ctx, "benchmark message", Field{Key: "iteration", Value: i})
	}
}

// BenchmarkLogger_LevelFiltering measures the cost of filtered messages.
func BenchmarkLogger_LevelFiltering(b *testing.B) {
	logger := NewLoggerWithWriter("error", io.Discard)
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		logger.Debug(ctx, "filtered debug")
	}
}

// BenchmarkMiddleware_Wrap measures the instrumentation overhead of one generation.
func BenchmarkMiddleware_Wrap(b *testing.B) {
	mw := NewMiddleware(NopTracer(), NopMetrics(), NopLogger())
	wrapped := mw.Wrap(func(context.Context, TypeMeta) (any, error) { return nil, nil })
	meta := TypeMeta{Operation: OpGetType, RequestedType: "Customer"}
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = wrapped(ctx, meta)
	}
}

// BenchmarkNopMetrics_RecordGeneration measures the disabled metrics path.
func BenchmarkNopMetrics_RecordGeneration(b *testing.B) {
	m := NopMetrics()
	ctx := context.Background()
	meta := TypeMeta{Operation: OpGetType}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m.RecordGeneration(ctx, meta, time.Millisecond, nil)
	}
}
