package participant

import (
	"github.com/jonwraymond/typepipe/typemodel"
)

// ProxyTypeContext is handed to every participant during one assembly.
type ProxyTypeContext struct {
	requested  typemodel.Type
	proxy      typemodel.MutableType
	state      *State
	factory    typemodel.MutableTypeFactory
	additional []typemodel.MutableType
}

// NewProxyTypeContext creates the context for assembling requested.
func NewProxyTypeContext(requested typemodel.Type, proxy typemodel.MutableType, state *State, factory typemodel.MutableTypeFactory) *ProxyTypeContext {
	return &ProxyTypeContext{
		requested: requested,
		proxy:     proxy,
		state:     state,
		factory:   factory,
	}
}

// RequestedType returns the type the proxy is generated for.
func (c *ProxyTypeContext) RequestedType() typemodel.Type { return c.requested }

// ProxyType returns the mutable proxy description.
func (c *ProxyTypeContext) ProxyType() typemodel.MutableType { return c.proxy }

// State returns the pipeline-wide participant state.
func (c *ProxyTypeContext) State() *State { return c.state }

// CreateAdditionalType adds a free-standing type generated alongside the
// proxy.
func (c *ProxyTypeContext) CreateAdditionalType(name string, base typemodel.Type) (typemodel.MutableType, error) {
	t, err := c.factory.CreateAdditional(name, base)
	if err != nil {
		return nil, err
	}
	c.additional = append(c.additional, t)
	return t, nil
}

// AdditionalTypes returns the additional types created so far.
func (c *ProxyTypeContext) AdditionalTypes() []typemodel.MutableType {
	return append([]typemodel.MutableType(nil), c.additional...)
}

// LoadedProxyType pairs a proxy loaded from flushed output with the type it
// was generated for.
type LoadedProxyType struct {
	Generated typemodel.Type
	Requested typemodel.Type
}

// LoadedTypesContext describes one batch of types loaded from flushed output.
type LoadedTypesContext struct {
	ProxyTypes      []LoadedProxyType
	AdditionalTypes []typemodel.Type
	state           *State
}

// NewLoadedTypesContext creates a reconciliation context.
func NewLoadedTypesContext(proxies []LoadedProxyType, additional []typemodel.Type, state *State) *LoadedTypesContext {
	return &LoadedTypesContext{
		ProxyTypes:      proxies,
		AdditionalTypes: additional,
		state:           state,
	}
}

// State returns the pipeline-wide participant state.
func (c *LoadedTypesContext) State() *State { return c.state }
