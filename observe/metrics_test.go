package observe

import (
	"context"
	"errors"
	"testing"
	"time"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func newTestMetrics(t *testing.T) (*metricsImpl, *sdkmetric.ManualReader) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	m, err := newMetrics(mp.Meter("test"))
	if err != nil {
		t.Fatalf("failed to create metrics: %v", err)
	}
	return m, reader
}

func collect(t *testing.T, reader *sdkmetric.ManualReader) metricdata.ResourceMetrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("failed to collect metrics: %v", err)
	}
	return rm
}

func findMetric(rm metricdata.ResourceMetrics, name string) *metricdata.Metrics {
	for _, sm := range rm.ScopeMetrics {
		for i := range sm.Metrics {
			if sm.Metrics[i].Name == name {
				return &sm.Metrics[i]
			}
		}
	}
	return nil
}

func sumOf(t *testing.T, rm metricdata.ResourceMetrics, name string) int64 {
	t.Helper()
	found := findMetric(rm, name)
	if found == nil {
		return 0
	}
	sum, ok := found.Data.(metricdata.Sum[int64])
	if !ok {
		t.Fatalf("%s: expected Sum[int64], got %T", name, found.Data)
	}
	var total int64
	for _, dp := range sum.DataPoints {
		total += dp.Value
	}
	return total
}

// TestMetrics_Lookups verifies lookups and hits are counted separately.
func TestMetrics_Lookups(t *testing.T) {
	m, reader := newTestMetrics(t)
	ctx := context.Background()
	meta := TypeMeta{Operation: OpGetType, RequestedType: "Customer"}

	m.RecordLookup(ctx, meta, true)
	m.RecordLookup(ctx, meta, true)
	m.RecordLookup(ctx, meta, false)

	rm := collect(t, reader)
	if got := sumOf(t, rm, "typepipe.cache.lookups"); got != 3 {
		t.Errorf("lookups = %d, want 3", got)
	}
	if got := sumOf(t, rm, "typepipe.cache.hits"); got != 2 {
		t.Errorf("hits = %d, want 2", got)
	}
}

// TestMetrics_Generation verifies generation counters and the duration histogram.
func TestMetrics_Generation(t *testing.T) {
	m, reader := newTestMetrics(t)
	ctx := context.Background()
	meta := TypeMeta{Operation: OpGetType, RequestedType: "Customer"}

	m.RecordGeneration(ctx, meta, 5*time.Millisecond, nil)
	m.RecordGeneration(ctx, meta, 7*time.Millisecond, errors.New("participant failed"))

	rm := collect(t, reader)
	if got := sumOf(t, rm, "typepipe.generation.total"); got != 2 {
		t.Errorf("generations = %d, want 2", got)
	}
	if got := sumOf(t, rm, "typepipe.generation.errors"); got != 1 {
		t.Errorf("errors = %d, want 1", got)
	}

	found := findMetric(rm, "typepipe.generation.duration_ms")
	if found == nil {
		t.Fatal("typepipe.generation.duration_ms metric not found")
	}
	hist, ok := found.Data.(metricdata.Histogram[float64])
	if !ok {
		t.Fatalf("expected Histogram[float64], got %T", found.Data)
	}
	if len(hist.DataPoints) != 1 || hist.DataPoints[0].Count != 2 {
		t.Errorf("expected one data point with count 2, got %+v", hist.DataPoints)
	}
}

// TestMetrics_Load verifies registered and skipped types are reported.
func TestMetrics_Load(t *testing.T) {
	m, reader := newTestMetrics(t)
	m.RecordLoad(context.Background(), 3, 2)

	if got := sumOf(t, collect(t, reader), "typepipe.load.types"); got != 5 {
		t.Errorf("load.types = %d, want 5", got)
	}
}

// TestNopMetrics_NoPanic verifies the no-op implementation accepts all calls.
func TestNopMetrics_NoPanic(t *testing.T) {
	m := NopMetrics()
	ctx := context.Background()
	m.RecordLookup(ctx, TypeMeta{}, true)
	m.RecordGeneration(ctx, TypeMeta{}, time.Second, errors.New("x"))
	m.RecordLoad(ctx, 1, 1)
}
