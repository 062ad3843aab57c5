package typemodel

// Constructor is a constructor handle on a generated type.
type Constructor interface {
	DeclaringType() Type
	ParameterTypes() []Type
	IsPublic() bool
}

// Invoker is implemented by constructors that can be called in-process.
type Invoker interface {
	Invoke(args []any) (any, error)
}

// ConstructorFinder locates the constructor an invocation delegate binds to.
//
// Contract:
// - Errors: lookup failures are *MissingMemberError values.
// - requested and requestedParams are only used for diagnostics.
type ConstructorFinder interface {
	GetConstructor(generated Type, params []Type, allowNonPublic bool, requested Type, requestedParams []Type) (Constructor, error)
}

// ConstructorInfo is the Constructor used by Descriptor.
type ConstructorInfo struct {
	declaring Type
	params    []Type
	public    bool
	newFn     func(args []any) (any, error)
}

// DeclaringType returns the type the constructor belongs to.
func (c *ConstructorInfo) DeclaringType() Type { return c.declaring }

// ParameterTypes returns a copy of the parameter types, in order.
func (c *ConstructorInfo) ParameterTypes() []Type { return append([]Type(nil), c.params...) }

// IsPublic reports whether the constructor is publicly accessible.
func (c *ConstructorInfo) IsPublic() bool { return c.public }

// Invoke calls the constructor body.
func (c *ConstructorInfo) Invoke(args []any) (any, error) {
	if c.newFn == nil {
		return nil, ErrNotInvocable
	}
	return c.newFn(args)
}

// DefaultConstructorFinder matches constructors of ConstructorLister types by
// exact parameter types.
type DefaultConstructorFinder struct{}

// GetConstructor returns the constructor of generated whose parameters equal
// params.
func (DefaultConstructorFinder) GetConstructor(generated Type, params []Type, allowNonPublic bool, requested Type, requestedParams []Type) (Constructor, error) {
	missing := &MissingMemberError{
		Kind:            NoMatchingConstructor,
		GeneratedType:   generated,
		RequestedType:   requested,
		Parameters:      params,
		RequestedParams: requestedParams,
	}

	lister, ok := generated.(ConstructorLister)
	if !ok {
		return nil, missing
	}
	for _, ctor := range lister.Constructors() {
		if !sameTypes(ctor.ParameterTypes(), params) {
			continue
		}
		if !ctor.IsPublic() && !allowNonPublic {
			missing.Kind = ConstructorNotPublic
			return nil, missing
		}
		return ctor, nil
	}
	return nil, missing
}

func sameTypes(a, b []Type) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

var (
	_ Constructor       = (*ConstructorInfo)(nil)
	_ Invoker           = (*ConstructorInfo)(nil)
	_ ConstructorFinder = DefaultConstructorFinder{}
)
