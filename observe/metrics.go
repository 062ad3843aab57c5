package observe

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics records type cache activity.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: implementations must not panic.
type Metrics interface {
	// RecordLookup records a fast-path cache lookup and whether it hit.
	RecordLookup(ctx context.Context, meta TypeMeta, hit bool)

	// RecordGeneration records one miss-path generation.
	RecordGeneration(ctx context.Context, meta TypeMeta, duration time.Duration, err error)

	// RecordLoad records the outcome of loading flushed code.
	RecordLoad(ctx context.Context, registered, skipped int)
}

type metricsImpl struct {
	lookups      metric.Int64Counter
	hits         metric.Int64Counter
	generations  metric.Int64Counter
	genErrors    metric.Int64Counter
	durationHist metric.Float64Histogram
	loaded       metric.Int64Counter
}

// NewMetrics creates Metrics backed by the given meter.
func NewMetrics(meter metric.Meter) (Metrics, error) {
	return newMetrics(meter)
}

func newMetrics(meter metric.Meter) (*metricsImpl, error) {
	lookups, err := meter.Int64Counter(
		"typepipe.cache.lookups",
		metric.WithDescription("Total number of type cache lookups"),
		metric.WithUnit("{lookup}"),
	)
	if err != nil {
		return nil, err
	}

	hits, err := meter.Int64Counter(
		"typepipe.cache.hits",
		metric.WithDescription("Type cache lookups answered without generation"),
		metric.WithUnit("{lookup}"),
	)
	if err != nil {
		return nil, err
	}

	generations, err := meter.Int64Counter(
		"typepipe.generation.total",
		metric.WithDescription("Total number of generation attempts"),
		metric.WithUnit("{generation}"),
	)
	if err != nil {
		return nil, err
	}

	genErrors, err := meter.Int64Counter(
		"typepipe.generation.errors",
		metric.WithDescription("Generation attempts that failed"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, err
	}

	durationHist, err := meter.Float64Histogram(
		"typepipe.generation.duration_ms",
		metric.WithDescription("Generation duration in milliseconds, lock wait included"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	loaded, err := meter.Int64Counter(
		"typepipe.load.types",
		metric.WithDescription("Proxy types seen while loading flushed code"),
		metric.WithUnit("{type}"),
	)
	if err != nil {
		return nil, err
	}

	return &metricsImpl{
		lookups:      lookups,
		hits:         hits,
		generations:  generations,
		genErrors:    genErrors,
		durationHist: durationHist,
		loaded:       loaded,
	}, nil
}

func attrsFor(meta TypeMeta) metric.MeasurementOption {
	attrs := []attribute.KeyValue{
		attribute.String("typepipe.operation", meta.Operation),
	}
	if meta.RequestedType != "" {
		attrs = append(attrs, attribute.String("typepipe.requested_type", meta.RequestedType))
	}
	return metric.WithAttributes(attrs...)
}

func (m *metricsImpl) RecordLookup(ctx context.Context, meta TypeMeta, hit bool) {
	opt := attrsFor(meta)
	m.lookups.Add(ctx, 1, opt)
	if hit {
		m.hits.Add(ctx, 1, opt)
	}
}

func (m *metricsImpl) RecordGeneration(ctx context.Context, meta TypeMeta, duration time.Duration, err error) {
	opt := attrsFor(meta)
	m.generations.Add(ctx, 1, opt)
	if err != nil {
		m.genErrors.Add(ctx, 1, opt)
	}
	m.durationHist.Record(ctx, float64(duration.Microseconds())/1000.0, opt)
}

func (m *metricsImpl) RecordLoad(ctx context.Context, registered, skipped int) {
	m.loaded.Add(ctx, int64(registered), metric.WithAttributes(attribute.String("typepipe.load.outcome", "registered")))
	m.loaded.Add(ctx, int64(skipped), metric.WithAttributes(attribute.String("typepipe.load.outcome", "skipped")))
}

// NopMetrics returns Metrics that record nothing.
func NopMetrics() Metrics { return noopMetrics{} }

type noopMetrics struct{}

func (noopMetrics) RecordLookup(context.Context, TypeMeta, bool)                     {}
func (noopMetrics) RecordGeneration(context.Context, TypeMeta, time.Duration, error) {}
func (noopMetrics) RecordLoad(context.Context, int, int)                             {}
