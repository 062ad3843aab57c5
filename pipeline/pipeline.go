package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/jonwraymond/typepipe/assembler"
	"github.com/jonwraymond/typepipe/config"
	"github.com/jonwraymond/typepipe/flush"
	"github.com/jonwraymond/typepipe/health"
	"github.com/jonwraymond/typepipe/observe"
	"github.com/jonwraymond/typepipe/participant"
	"github.com/jonwraymond/typepipe/resilience"
	"github.com/jonwraymond/typepipe/typecache"
	"github.com/jonwraymond/typepipe/typemodel"
)

// Health check defaults.
const (
	HealthLockTimeout    = time.Second
	HealthBacklogMaximum = 1024
)

// DefaultShape is the parameterless delegate shape used by Create unless
// WithDefaultShape is given.
var DefaultShape typemodel.Type = typemodel.NewDelegateShape("func() any", nil)

// Pipeline generates, caches, flushes and reloads assembled types.
//
// Contract:
//   - Concurrency: all methods are safe for concurrent use.
//   - Errors: participant and missing-member errors are returned unchanged.
//     Errors marked with resilience.MarkTransient are retried when
//     cfg.Retry.MaxAttempts > 1.
type Pipeline struct {
	cfg      config.Config
	cache    *typecache.Cache
	recorder *flush.Recorder
	resolver flush.Resolver
	retry    *resilience.Retry
	logger   observe.Logger
	shape    typemodel.Type

	// owned is the observer built from cfg.Observe, nil when the caller
	// supplied one.
	owned observe.Observer
}

// New validates cfg and builds a Pipeline.
//
// Unless WithObserver or WithLogger is given, logging, metrics and tracing
// are set up from cfg.Observe; call Shutdown to flush them.
func New(
	cfg config.Config,
	participants []participant.Participant,
	factory typemodel.MutableTypeFactory,
	materializer typemodel.Materializer,
	finder typemodel.ConstructorFinder,
	delegates typemodel.DelegateFactory,
	opts ...Option,
) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if materializer == nil {
		return nil, fmt.Errorf("%w: materializer", typecache.ErrNilDependency)
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	obs := o.observer
	var owned observe.Observer
	if obs == nil && o.logger == nil {
		built, err := observe.NewObserver(context.Background(), cfg.Observe)
		if err != nil {
			return nil, fmt.Errorf("pipeline: create observer: %w", err)
		}
		obs, owned = built, built
	}

	p, err := build(cfg, participants, factory, materializer, finder, delegates, obs, o)
	if err != nil {
		if owned != nil {
			_ = owned.Shutdown(context.Background())
		}
		return nil, err
	}
	p.owned = owned
	return p, nil
}

func build(
	cfg config.Config,
	participants []participant.Participant,
	factory typemodel.MutableTypeFactory,
	materializer typemodel.Materializer,
	finder typemodel.ConstructorFinder,
	delegates typemodel.DelegateFactory,
	obs observe.Observer,
	o options,
) (*Pipeline, error) {
	logger := o.logger
	if logger == nil && obs != nil {
		logger = obs.Logger()
	}
	if logger == nil {
		logger = observe.NopLogger()
	}

	asm, err := assembler.New(cfg.ParticipantConfigurationID, participants, factory, assembler.WithLogger(logger))
	if err != nil {
		return nil, err
	}

	cacheOpts := []typecache.Option{typecache.WithLogger(logger)}
	if obs != nil {
		metrics, err := observe.NewMetrics(obs.Meter())
		if err != nil {
			return nil, fmt.Errorf("pipeline: create metrics: %w", err)
		}
		cacheOpts = append(cacheOpts,
			typecache.WithMetrics(metrics),
			typecache.WithTracer(observe.NewTracer(obs.Tracer())),
		)
	}

	recorder := flush.NewRecorder(materializer, cfg.ParticipantConfigurationID)
	cache, err := typecache.New(asm, recorder, finder, delegates, cacheOpts...)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		cfg:      cfg,
		cache:    cache,
		recorder: recorder,
		resolver: o.resolver,
		logger:   logger,
		shape:    o.defaultShape,
	}
	if p.resolver == nil {
		p.resolver = flush.NewRegistry(o.types...)
	}
	if p.shape == nil {
		p.shape = DefaultShape
	}
	if cfg.Retry.MaxAttempts > 1 {
		rc := cfg.Retry.Resilience()
		rc.OnRetry = func(attempt int, err error, delay time.Duration) {
			logger.Warn(context.Background(), "retrying transient failure",
				observe.Field{Key: "attempt", Value: attempt},
				observe.Field{Key: "delay_ms", Value: delay.Milliseconds()},
				observe.Field{Key: "error", Value: err.Error()},
			)
		}
		p.retry = resilience.NewRetry(rc)
	}
	return p, nil
}

// Shutdown flushes and stops the telemetry the pipeline set up from
// cfg.Observe. An observer passed with WithObserver is left to its owner.
func (p *Pipeline) Shutdown(ctx context.Context) error {
	if p.owned == nil {
		return nil
	}
	return p.owned.Shutdown(ctx)
}

// ParticipantConfigurationID returns the configuration ID of the pipeline.
func (p *Pipeline) ParticipantConfigurationID() string { return p.cfg.ParticipantConfigurationID }

// Cache returns the underlying type cache.
func (p *Pipeline) Cache() *typecache.Cache { return p.cache }

// Stats returns the cache counters.
func (p *Pipeline) Stats() typecache.Stats { return p.cache.Stats() }

// PendingFlush returns how many generated types the next FlushCode writes.
func (p *Pipeline) PendingFlush() int { return p.recorder.Pending() }

// Health returns an aggregator with the generation lock, flush directory and
// flush backlog checkers registered.
func (p *Pipeline) Health() *health.Aggregator {
	agg := health.NewAggregator()
	agg.Register(health.NewGenerationLockChecker(p.cache, HealthLockTimeout))
	agg.Register(health.NewFlushDirectoryChecker(p.cfg.FlushDirectory))
	agg.Register(health.NewBacklogChecker(p.PendingFlush, HealthBacklogMaximum))
	return agg
}

// GetAssembledType returns the assembled type for requested.
func (p *Pipeline) GetAssembledType(ctx context.Context, requested typemodel.Type) (typemodel.Type, error) {
	var t typemodel.Type
	err := p.do(ctx, func(ctx context.Context) error {
		var err error
		t, err = p.cache.GetOrCreateType(ctx, requested)
		return err
	})
	return t, err
}

// GetConstructorCall returns the delegate invoking the constructor of the
// assembled type for requested that matches shape.
func (p *Pipeline) GetConstructorCall(ctx context.Context, requested, shape typemodel.Type, allowNonPublic bool) (*typemodel.Delegate, error) {
	var d *typemodel.Delegate
	err := p.do(ctx, func(ctx context.Context) error {
		var err error
		d, err = p.cache.GetOrCreateConstructorCall(ctx, requested, shape, allowNonPublic)
		return err
	})
	return d, err
}

// Create instantiates the assembled type for requested through its public
// constructor matching the default shape.
func (p *Pipeline) Create(ctx context.Context, requested typemodel.Type, args ...any) (any, error) {
	d, err := p.GetConstructorCall(ctx, requested, p.shape, false)
	if err != nil {
		return nil, err
	}
	return d.Invoke(args...)
}

// FlushCode writes every type generated since the previous flush to a new
// manifest in the flush directory and returns its path, or "" when nothing
// was generated.
func (p *Pipeline) FlushCode(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	path, err := p.recorder.Flush(p.cfg.FlushDirectory)
	if err != nil {
		p.logger.Error(ctx, "flush failed", observe.Field{Key: "error", Value: err.Error()})
		return "", err
	}
	if path != "" {
		p.logger.Info(ctx, "generated code flushed", observe.Field{Key: "path", Value: path})
	}
	return path, nil
}

// LoadFlushedCode registers the types of the manifest at path.
func (p *Pipeline) LoadFlushedCode(ctx context.Context, path string) error {
	m, err := flush.Read(path)
	if err != nil {
		return err
	}
	return p.load(ctx, m)
}

// LoadFlushedDir registers every manifest in the flush directory, in file
// name order, and returns how many were loaded. It stops at the first error.
func (p *Pipeline) LoadFlushedDir(ctx context.Context) (int, error) {
	manifests, err := flush.ReadDir(ctx, p.cfg.FlushDirectory)
	if err != nil {
		return 0, err
	}
	for i, m := range manifests {
		if err := p.load(ctx, m); err != nil {
			return i, err
		}
	}
	return len(manifests), nil
}

func (p *Pipeline) load(ctx context.Context, m *flush.Manifest) error {
	if m.ConfigurationID != p.cfg.ParticipantConfigurationID {
		return fmt.Errorf("%w: manifest was generated for %q, pipeline uses %q",
			typecache.ErrConfigurationMismatch, m.ConfigurationID, p.cfg.ParticipantConfigurationID)
	}
	assembly, err := flush.Assembly(m, p.resolver)
	if err != nil {
		return err
	}
	return p.cache.LoadFlushedCode(ctx, assembly)
}

func (p *Pipeline) do(ctx context.Context, op func(context.Context) error) error {
	if p.retry == nil {
		return op(ctx)
	}
	return p.retry.Execute(ctx, op)
}
