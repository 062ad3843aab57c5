package assembler

import (
	"context"
	"fmt"

	"github.com/jonwraymond/typepipe/cachekey"
	"github.com/jonwraymond/typepipe/observe"
	"github.com/jonwraymond/typepipe/participant"
	"github.com/jonwraymond/typepipe/typemodel"
)

// TypeAssembler builds compound keys and assembles proxy types.
type TypeAssembler struct {
	configID     string
	participants []participant.Participant
	providers    []participant.CacheKeyProvider
	factory      typemodel.MutableTypeFactory
	logger       observe.Logger
}

// Option configures a TypeAssembler.
type Option func(*TypeAssembler)

// WithLogger sets the logger used for participant diagnostics.
func WithLogger(l observe.Logger) Option {
	return func(a *TypeAssembler) {
		if l != nil {
			a.logger = l
		}
	}
}

// New creates a TypeAssembler. The participant order given here fixes both
// the modification order and the key slot layout.
func New(configID string, participants []participant.Participant, factory typemodel.MutableTypeFactory, opts ...Option) (*TypeAssembler, error) {
	if configID == "" {
		return nil, ErrMissingConfigurationID
	}
	if factory == nil {
		return nil, ErrNilFactory
	}

	a := &TypeAssembler{
		configID:     configID,
		participants: make([]participant.Participant, 0, len(participants)),
		factory:      factory,
		logger:       observe.NopLogger(),
	}
	for i, p := range participants {
		if p == nil {
			return nil, fmt.Errorf("%w: index %d", ErrNilParticipant, i)
		}
		a.participants = append(a.participants, p)
		if provider := p.CacheKeyProvider(); provider != nil {
			a.providers = append(a.providers, provider)
		}
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// ParticipantConfigurationID identifies the participant set this assembler
// generates for. Flushed output records it and is rejected on mismatch.
func (a *TypeAssembler) ParticipantConfigurationID() string { return a.configID }

// Participants returns the participants in registration order.
func (a *TypeAssembler) Participants() []participant.Participant {
	return append([]participant.Participant(nil), a.participants...)
}

// ProviderCount returns how many participants contribute key slots.
func (a *TypeAssembler) ProviderCount() int { return len(a.providers) }

// BuildCompoundKey returns a key of reserved+1+ProviderCount() slots. The
// reserved slots are left empty for the caller; slot `reserved` holds the
// identity selected from t and the remaining slots hold provider keys in
// provider order.
func (a *TypeAssembler) BuildCompoundKey(sel Selector, t typemodel.Type, reserved int) cachekey.Compound {
	identity := sel.identity(t)
	b := cachekey.NewBuilder(reserved + 1 + len(a.providers))
	b.Set(reserved, cachekey.TypePart(identity))
	for i, p := range a.providers {
		b.Set(reserved+1+i, cachekey.KeyPart(sel.key(p, t, identity)))
	}
	return b.Build()
}

// AssembleType lets every participant modify a fresh proxy description of
// requested and materializes the result. Participant errors are returned
// unchanged. The caller must hold the generation lock.
func (a *TypeAssembler) AssembleType(ctx context.Context, requested typemodel.Type, state *participant.State, m typemodel.Materializer) (typemodel.Type, error) {
	if requested == nil {
		return nil, ErrNilRequestedType
	}
	if m == nil {
		return nil, ErrNilMaterializer
	}
	if typemodel.IsSealed(requested) {
		return nil, fmt.Errorf("%w: %s", ErrNotSubclassable, requested.Name())
	}

	proxy, err := a.factory.CreateProxy(requested)
	if err != nil {
		return nil, fmt.Errorf("assembler: create proxy for %s: %w", requested.Name(), err)
	}

	pctx := participant.NewProxyTypeContext(requested, proxy, state, a.factory)
	for i, p := range a.participants {
		if err := p.ModifyType(pctx); err != nil {
			a.logger.Warn(ctx, "participant failed",
				observe.Field{Key: "requested_type", Value: requested.Name()},
				observe.Field{Key: "participant", Value: i},
				observe.Field{Key: "error", Value: err.Error()},
			)
			return nil, err
		}
	}

	generated, additional, err := m.Materialize(proxy, pctx.AdditionalTypes())
	if err != nil {
		return nil, fmt.Errorf("assembler: generate %s: %w", requested.Name(), err)
	}

	a.logger.Debug(ctx, "type assembled",
		observe.Field{Key: "requested_type", Value: requested.Name()},
		observe.Field{Key: "generated_type", Value: generated.Name()},
		observe.Field{Key: "additional_types", Value: len(additional)},
	)
	return generated, nil
}

// RebuildParticipantState replays participant bookkeeping for loaded types.
// The caller must hold the generation lock.
func (a *TypeAssembler) RebuildParticipantState(ctx context.Context, loaded *participant.LoadedTypesContext) error {
	for i, p := range a.participants {
		if err := p.RebuildState(loaded); err != nil {
			a.logger.Warn(ctx, "participant state rebuild failed",
				observe.Field{Key: "participant", Value: i},
				observe.Field{Key: "error", Value: err.Error()},
			)
			return err
		}
	}
	return nil
}
