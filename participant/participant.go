package participant

import (
	"github.com/jonwraymond/typepipe/cachekey"
	"github.com/jonwraymond/typepipe/typemodel"
)

// CacheKeyProvider contributes a participant's discriminator for a requested
// type.
//
// Contract:
//   - Purity: CacheKey must be a function of the requested type and the
//     provider's own configuration only.
//   - Granularity: logically equivalent requests must yield Equal keys.
//   - A nil result means "no discrimination". A provider either always or
//     never returns nil; mixing the two is undefined.
type CacheKeyProvider interface {
	CacheKey(requested typemodel.Type) cachekey.CacheKey
}

// ProviderFunc adapts a function to CacheKeyProvider.
type ProviderFunc func(requested typemodel.Type) cachekey.CacheKey

// CacheKey calls f.
func (f ProviderFunc) CacheKey(requested typemodel.Type) cachekey.CacheKey {
	return f(requested)
}

// ConstantProvider returns a provider that contributes the same key for every
// requested type.
func ConstantProvider(k cachekey.CacheKey) CacheKeyProvider {
	return ProviderFunc(func(typemodel.Type) cachekey.CacheKey { return k })
}

// Participant is a pluggable unit of type modification.
//
// Contract:
//   - Concurrency: ModifyType and RebuildState are only called while the
//     pipeline's generation lock is held; they are never called concurrently.
//   - Errors: an error aborts the current assembly; nothing is cached.
type Participant interface {
	// CacheKeyProvider returns the discriminator provider, or nil when the
	// participant never discriminates.
	CacheKeyProvider() CacheKeyProvider

	// ModifyType edits the proxy under assembly.
	ModifyType(ctx *ProxyTypeContext) error

	// RebuildState replays bookkeeping for types loaded from flushed output.
	RebuildState(ctx *LoadedTypesContext) error
}

// Base is an embeddable Participant that does nothing.
type Base struct{}

// CacheKeyProvider returns nil, so Base never discriminates cache keys.
func (Base) CacheKeyProvider() CacheKeyProvider { return nil }

// ModifyType leaves the proxy unchanged.
func (Base) ModifyType(*ProxyTypeContext) error { return nil }

// RebuildState keeps no state.
func (Base) RebuildState(*LoadedTypesContext) error { return nil }

// Func is a Participant assembled from optional functions.
type Func struct {
	Provider CacheKeyProvider
	Modify   func(ctx *ProxyTypeContext) error
	Rebuild  func(ctx *LoadedTypesContext) error
}

// CacheKeyProvider returns f.Provider, which may be nil.
func (f *Func) CacheKeyProvider() CacheKeyProvider { return f.Provider }

// ModifyType calls f.Modify when set.
func (f *Func) ModifyType(ctx *ProxyTypeContext) error {
	if f.Modify == nil {
		return nil
	}
	return f.Modify(ctx)
}

// RebuildState calls f.Rebuild when set.
func (f *Func) RebuildState(ctx *LoadedTypesContext) error {
	if f.Rebuild == nil {
		return nil
	}
	return f.Rebuild(ctx)
}

var (
	_ Participant      = Base{}
	_ Participant      = (*Func)(nil)
	_ CacheKeyProvider = ProviderFunc(nil)
)
