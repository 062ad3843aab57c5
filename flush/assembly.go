package flush

import (
	"fmt"
	"sync"

	"github.com/jonwraymond/typepipe/typecache"
	"github.com/jonwraymond/typepipe/typemodel"
)

// Resolver maps a type name recorded in a manifest back to a type.
type Resolver interface {
	Resolve(name string) (typemodel.Type, bool)
}

// ResolverFunc adapts a function to Resolver.
type ResolverFunc func(name string) (typemodel.Type, bool)

// Resolve calls f.
func (f ResolverFunc) Resolve(name string) (typemodel.Type, bool) { return f(name) }

// Registry is a Resolver backed by registered types.
type Registry struct {
	mu    sync.RWMutex
	types map[string]typemodel.Type
}

// NewRegistry creates a Registry holding types.
func NewRegistry(types ...typemodel.Type) *Registry {
	r := &Registry{types: make(map[string]typemodel.Type, len(types))}
	for _, t := range types {
		r.Register(t)
	}
	return r
}

// Register adds t under its name, replacing any previous type of that name.
func (r *Registry) Register(t typemodel.Type) {
	if t == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.types[t.Name()] = t
}

// Resolve implements Resolver.
func (r *Registry) Resolve(name string) (typemodel.Type, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.types[name]
	return t, ok
}

// LoadedAssembly is the typecache.Assembly view of a Manifest.
type LoadedAssembly struct {
	configID   string
	proxies    []typemodel.Type
	additional []typemodel.Type
}

// ParticipantConfigurationID returns the configuration ID stamped on the
// manifest.
func (a *LoadedAssembly) ParticipantConfigurationID() string { return a.configID }

// ProxyTypes returns the resolved proxy types in manifest order.
func (a *LoadedAssembly) ProxyTypes() []typemodel.Type { return a.proxies }

// AdditionalTypes returns the resolved additional types in manifest order.
func (a *LoadedAssembly) AdditionalTypes() []typemodel.Type { return a.additional }

// Assembly resolves the types named by m.
//
// Proxy types the resolver knows are used as is. Otherwise a proxy descriptor
// is derived from its requested type, which must resolve. Unknown additional
// types become plain descriptors.
func Assembly(m *Manifest, r Resolver) (*LoadedAssembly, error) {
	if m == nil {
		return nil, ErrNilManifest
	}

	a := &LoadedAssembly{
		configID:   m.ConfigurationID,
		proxies:    make([]typemodel.Type, 0, len(m.ProxyTypes)),
		additional: make([]typemodel.Type, 0, len(m.AdditionalTypes)),
	}
	for _, e := range m.ProxyTypes {
		if t, ok := r.Resolve(e.Name); ok {
			a.proxies = append(a.proxies, t)
			continue
		}
		requested, ok := r.Resolve(e.RequestedType)
		if !ok {
			return nil, fmt.Errorf("%w: %q requested by %q", ErrUnresolvedType, e.RequestedType, e.Name)
		}
		a.proxies = append(a.proxies, typemodel.NewProxy(e.Name, requested))
	}
	for _, name := range m.AdditionalTypes {
		t, ok := r.Resolve(name)
		if !ok {
			t = typemodel.NewType(name, nil)
		}
		a.additional = append(a.additional, t)
	}
	return a, nil
}

var _ typecache.Assembly = (*LoadedAssembly)(nil)
