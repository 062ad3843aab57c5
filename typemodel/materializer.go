package typemodel

import "sync/atomic"

// Materializer is the code generator that turns mutable descriptions into
// concrete types.
//
// Contract:
//   - Concurrency: NOT reentrant. Callers serialize access (typepipe holds its
//     generation lock around every call).
//   - Errors: a failed call leaves no partially registered types behind.
type Materializer interface {
	Materialize(proxy MutableType, additional []MutableType) (Type, []Type, error)
}

// InMemoryMaterializer materializes descriptions as Descriptors. Proxies
// inherit the constructors of their base type and carry the RequestedTyper
// marker. Overlapping calls fail with ErrReentrantGeneration.
type InMemoryMaterializer struct {
	busy  atomic.Bool
	count atomic.Int64
}

// NewMaterializer creates an InMemoryMaterializer.
func NewMaterializer() *InMemoryMaterializer {
	return &InMemoryMaterializer{}
}

// Materialize implements Materializer.
func (m *InMemoryMaterializer) Materialize(proxy MutableType, additional []MutableType) (Type, []Type, error) {
	if !m.busy.CompareAndSwap(false, true) {
		return nil, nil, ErrReentrantGeneration
	}
	defer m.busy.Store(false)

	if proxy == nil || proxy.BaseType() == nil {
		return nil, nil, ErrNilType
	}

	generated := NewProxy(proxy.Name(), proxy.BaseType(), proxyOptions(proxy)...)

	extra := make([]Type, 0, len(additional))
	for _, a := range additional {
		extra = append(extra, NewType(a.Name(), a.BaseType(), WithMembers(a.Members()...)))
	}

	m.count.Add(int64(1 + len(extra)))
	return generated, extra, nil
}

// Generated returns how many types were materialized so far.
func (m *InMemoryMaterializer) Generated() int64 {
	return m.count.Load()
}

func proxyOptions(proxy MutableType) []DescriptorOption {
	opts := []DescriptorOption{WithMembers(proxy.Members()...)}
	for _, mb := range proxy.Members() {
		if mb.Kind == MemberConstructor {
			opts = append(opts, WithConstructor(mb.Public, nil, mb.Parameters...))
		}
	}
	return opts
}

var _ Materializer = (*InMemoryMaterializer)(nil)
