package typecache

import (
	"context"
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/semaphore"

	"github.com/jonwraymond/typepipe/assembler"
	"github.com/jonwraymond/typepipe/cachekey"
	"github.com/jonwraymond/typepipe/observe"
	"github.com/jonwraymond/typepipe/participant"
	"github.com/jonwraymond/typepipe/typemodel"
)

// constructorSlots is the number of reserved call-site slots in a
// constructor-tier key: the delegate shape and the allowNonPublic flag.
const constructorSlots = 2

// Assembler is the subset of *assembler.TypeAssembler the cache depends on.
type Assembler interface {
	ParticipantConfigurationID() string
	Participants() []participant.Participant
	BuildCompoundKey(sel assembler.Selector, t typemodel.Type, reserved int) cachekey.Compound
	AssembleType(ctx context.Context, requested typemodel.Type, state *participant.State, m typemodel.Materializer) (typemodel.Type, error)
	RebuildParticipantState(ctx context.Context, loaded *participant.LoadedTypesContext) error
}

// Assembly is a batch of previously generated types, typically read back
// from flushed output.
type Assembly interface {
	// ParticipantConfigurationID returns the configuration the types were
	// generated with, or "" when the assembly carries no marker.
	ParticipantConfigurationID() string
	ProxyTypes() []typemodel.Type
	AdditionalTypes() []typemodel.Type
}

// Stats is a point-in-time snapshot of cache counters.
type Stats struct {
	Types            int
	ConstructorCalls int
	Generations      int64
	Hits             int64
	Misses           int64
}

// Cache memoizes assembled types and constructor-call delegates.
//
// Contract:
//   - Concurrency: all methods are safe for concurrent use. Hits never block.
//   - Exactly once: a key is generated at most once per Cache.
//   - Errors: failures are returned to the caller and never cached.
//   - Context: ctx bounds the wait for the generation lock. A context
//     without deadline waits indefinitely.
type Cache struct {
	asm          Assembler
	materializer typemodel.Materializer
	finder       typemodel.ConstructorFinder
	delegates    typemodel.DelegateFactory

	participants int

	state   *participant.State
	logger  observe.Logger
	metrics observe.Metrics
	tracer  observe.Tracer
	mw      *observe.Middleware

	// lock is the generation lock. It is not reentrant; code running under it
	// calls the *Locked helpers.
	lock *semaphore.Weighted

	types *store
	calls *store

	generations atomic.Int64
	hits        atomic.Int64
	misses      atomic.Int64
}

// New creates a Cache.
func New(asm Assembler, materializer typemodel.Materializer, finder typemodel.ConstructorFinder, delegates typemodel.DelegateFactory, opts ...Option) (*Cache, error) {
	switch {
	case asm == nil:
		return nil, fmt.Errorf("%w: assembler", ErrNilDependency)
	case materializer == nil:
		return nil, fmt.Errorf("%w: materializer", ErrNilDependency)
	case finder == nil:
		return nil, fmt.Errorf("%w: constructor finder", ErrNilDependency)
	case delegates == nil:
		return nil, fmt.Errorf("%w: delegate factory", ErrNilDependency)
	}

	c := &Cache{
		asm:          asm,
		participants: len(asm.Participants()),
		materializer: materializer,
		finder:       finder,
		delegates:    delegates,
		state:        participant.NewState(),
		logger:       observe.NopLogger(),
		metrics:      observe.NopMetrics(),
		tracer:       observe.NopTracer(),
		lock:         semaphore.NewWeighted(1),
		types:        &store{},
		calls:        &store{},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.mw = observe.NewMiddleware(c.tracer, c.metrics, c.logger)
	return c, nil
}

// State returns the participant state shared by assembly and reconciliation.
func (c *Cache) State() *participant.State { return c.state }

// ParticipantConfigurationID returns the configuration ID of the assembler.
func (c *Cache) ParticipantConfigurationID() string { return c.asm.ParticipantConfigurationID() }

// GetOrCreateType returns the assembled type for requested, generating it on
// first use.
func (c *Cache) GetOrCreateType(ctx context.Context, requested typemodel.Type) (typemodel.Type, error) {
	if requested == nil {
		return nil, ErrNilType
	}

	key := c.asm.BuildCompoundKey(assembler.Forward, requested, 0)
	meta := c.meta(observe.OpGetType, requested, key)

	if v, ok := c.types.Load(key); ok {
		c.recordLookup(ctx, meta, true)
		return v.(typemodel.Type), nil
	}
	c.recordLookup(ctx, meta, false)

	if err := c.acquire(ctx); err != nil {
		return nil, err
	}
	defer c.lock.Release(1)

	return c.getOrCreateTypeLocked(ctx, requested, key)
}

// GetOrCreateConstructorCall returns a delegate invoking the constructor of
// the assembled type for requested whose parameters match shape. The same
// *Delegate is returned for the same inputs.
func (c *Cache) GetOrCreateConstructorCall(ctx context.Context, requested, shape typemodel.Type, allowNonPublic bool) (*typemodel.Delegate, error) {
	if requested == nil {
		return nil, ErrNilType
	}
	if shape == nil {
		return nil, fmt.Errorf("%w: delegate shape", ErrNilType)
	}

	key := c.asm.BuildCompoundKey(assembler.Forward, requested, constructorSlots).
		Fill(cachekey.TypePart(shape), cachekey.BoolPart(allowNonPublic))
	meta := c.meta(observe.OpConstructorCall, requested, key)

	if v, ok := c.calls.Load(key); ok {
		c.recordLookup(ctx, meta, true)
		return v.(*typemodel.Delegate), nil
	}
	c.recordLookup(ctx, meta, false)

	if err := c.acquire(ctx); err != nil {
		return nil, err
	}
	defer c.lock.Release(1)

	if v, ok := c.calls.Load(key); ok {
		return v.(*typemodel.Delegate), nil
	}

	result, err := c.mw.Wrap(func(ctx context.Context, _ observe.TypeMeta) (any, error) {
		generated, err := c.getOrCreateTypeLocked(ctx, requested, key.Suffix(constructorSlots))
		if err != nil {
			return nil, err
		}
		params, _, err := c.delegates.Signature(shape)
		if err != nil {
			return nil, err
		}
		ctor, err := c.finder.GetConstructor(generated, params, allowNonPublic, requested, params)
		if err != nil {
			return nil, err
		}
		return c.delegates.CreateConstructorCall(ctor, shape)
	})(ctx, meta)
	if err != nil {
		return nil, err
	}

	actual, _ := c.calls.LoadOrStore(key, result)
	return actual.(*typemodel.Delegate), nil
}

// getOrCreateTypeLocked is GetOrCreateType for callers already holding the
// generation lock.
func (c *Cache) getOrCreateTypeLocked(ctx context.Context, requested typemodel.Type, key cachekey.Compound) (typemodel.Type, error) {
	if v, ok := c.types.Load(key); ok {
		return v.(typemodel.Type), nil
	}

	result, err := c.mw.Wrap(func(ctx context.Context, _ observe.TypeMeta) (any, error) {
		return c.asm.AssembleType(ctx, requested, c.state, c.materializer)
	})(ctx, c.meta(observe.OpGetType, requested, key))
	if err != nil {
		return nil, err
	}

	c.generations.Add(1)
	actual, _ := c.types.LoadOrStore(key, result)
	return actual.(typemodel.Type), nil
}

// LoadFlushedCode registers the proxy types of a previously generated
// assembly and lets participants rebuild their state.
//
// The assembly must come from the same participant configuration; otherwise
// ErrConfigurationMismatch is returned before anything is registered. Every
// proxy type must be non-nil and identify its requested type; otherwise the
// load fails and nothing is registered. Proxy types whose key is already
// cached are skipped. RebuildParticipantState runs
// exactly once per call, even when every proxy was skipped.
func (c *Cache) LoadFlushedCode(ctx context.Context, assembly Assembly) error {
	if assembly == nil {
		return ErrNilAssembly
	}
	want := c.asm.ParticipantConfigurationID()
	if got := assembly.ParticipantConfigurationID(); got != want {
		return fmt.Errorf("%w: assembly was generated for %q, pipeline uses %q", ErrConfigurationMismatch, got, want)
	}

	if err := c.acquire(ctx); err != nil {
		return err
	}
	defer c.lock.Release(1)

	meta := observe.TypeMeta{
		Operation:    observe.OpLoadFlushedCode,
		Participants: c.participants,
	}
	_, err := c.mw.Wrap(func(ctx context.Context, _ observe.TypeMeta) (any, error) {
		return nil, c.loadLocked(ctx, assembly)
	})(ctx, meta)
	return err
}

func (c *Cache) loadLocked(ctx context.Context, assembly Assembly) error {
	proxies := assembly.ProxyTypes()

	// Validate everything before the first insert so a bad assembly leaves
	// the cache untouched.
	keys := make([]cachekey.Compound, len(proxies))
	for i, generated := range proxies {
		if generated == nil {
			return fmt.Errorf("%w: proxy type %d in assembly", ErrNilType, i)
		}
		if assembler.RequestedTypeOf(generated) == nil {
			return fmt.Errorf("%w: %s", ErrUnidentifiedProxy, generated.Name())
		}
		keys[i] = c.asm.BuildCompoundKey(assembler.Reverse, generated, 0)
	}

	loaded := make([]participant.LoadedProxyType, 0, len(proxies))
	skipped := 0
	for i, generated := range proxies {
		if _, exists := c.types.LoadOrStore(keys[i], generated); exists {
			skipped++
			continue
		}
		loaded = append(loaded, participant.LoadedProxyType{
			Generated: generated,
			Requested: assembler.RequestedTypeOf(generated),
		})
	}

	c.metrics.RecordLoad(ctx, len(loaded), skipped)
	c.logger.Info(ctx, "flushed code loaded",
		observe.Field{Key: "registered", Value: len(loaded)},
		observe.Field{Key: "skipped", Value: skipped},
		observe.Field{Key: "additional_types", Value: len(assembly.AdditionalTypes())},
	)

	return c.asm.RebuildParticipantState(ctx,
		participant.NewLoadedTypesContext(loaded, assembly.AdditionalTypes(), c.state))
}

// Stats returns a snapshot of the cache counters.
func (c *Cache) Stats() Stats {
	return Stats{
		Types:            c.types.Len(),
		ConstructorCalls: c.calls.Len(),
		Generations:      c.generations.Load(),
		Hits:             c.hits.Load(),
		Misses:           c.misses.Load(),
	}
}

// ProbeGenerationLock acquires and immediately releases the generation lock.
// It fails when ctx ends first, which means a generation is stuck or slow.
func (c *Cache) ProbeGenerationLock(ctx context.Context) error {
	if err := c.acquire(ctx); err != nil {
		return err
	}
	c.lock.Release(1)
	return nil
}

func (c *Cache) acquire(ctx context.Context) error {
	if err := c.lock.Acquire(ctx, 1); err != nil {
		return fmt.Errorf("typecache: acquire generation lock: %w", err)
	}
	return nil
}

func (c *Cache) recordLookup(ctx context.Context, meta observe.TypeMeta, hit bool) {
	if hit {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}
	c.metrics.RecordLookup(ctx, meta, hit)
}

func (c *Cache) meta(op string, requested typemodel.Type, key cachekey.Compound) observe.TypeMeta {
	return observe.TypeMeta{
		Operation:     op,
		RequestedType: requested.Name(),
		KeySlots:      key.Len(),
		Participants:  c.participants,
	}
}

var _ Assembler = (*assembler.TypeAssembler)(nil)
