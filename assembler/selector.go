package assembler

import (
	"github.com/jonwraymond/typepipe/cachekey"
	"github.com/jonwraymond/typepipe/participant"
	"github.com/jonwraymond/typepipe/typemodel"
)

// KeyRebuilder is implemented by providers that can recover their key from a
// generated type instead of its requested type.
type KeyRebuilder interface {
	RebuildCacheKey(generated typemodel.Type) cachekey.CacheKey
}

// Selector derives the identity slot and provider keys of a compound key.
type Selector struct {
	name     string
	identity func(t typemodel.Type) typemodel.Type
	key      func(p participant.CacheKeyProvider, t, identity typemodel.Type) cachekey.CacheKey
}

func (s Selector) String() string { return s.name }

// Forward keys a requested type.
var Forward = Selector{
	name:     "forward",
	identity: func(t typemodel.Type) typemodel.Type { return t },
	key: func(p participant.CacheKeyProvider, _, identity typemodel.Type) cachekey.CacheKey {
		return p.CacheKey(identity)
	},
}

// Reverse keys an already generated type so that it lands on the same entry
// its requested type would.
var Reverse = Selector{
	name:     "reverse",
	identity: RequestedTypeOf,
	key: func(p participant.CacheKeyProvider, generated, identity typemodel.Type) cachekey.CacheKey {
		if r, ok := p.(KeyRebuilder); ok {
			return r.RebuildCacheKey(generated)
		}
		return p.CacheKey(identity)
	},
}

// RequestedTypeOf returns the requested type an assembled type was generated
// for: its RequestedTyper marker when present, otherwise its declared base.
func RequestedTypeOf(t typemodel.Type) typemodel.Type {
	if t == nil {
		return nil
	}
	if rt, ok := t.(typemodel.RequestedTyper); ok {
		if requested := rt.RequestedType(); requested != nil {
			return requested
		}
	}
	return t.BaseType()
}

// IsAssembledType reports whether t carries the assembled-type marker.
func IsAssembledType(t typemodel.Type) bool {
	rt, ok := t.(typemodel.RequestedTyper)
	return ok && rt.RequestedType() != nil
}
