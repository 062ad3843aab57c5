package typemodel

import "fmt"

// DelegateFactory builds constructor-invocation delegates.
type DelegateFactory interface {
	// Signature returns the parameter and return types of a delegate shape.
	Signature(shape Type) (params []Type, ret Type, err error)

	// CreateConstructorCall binds ctor to the given delegate shape.
	CreateConstructorCall(ctor Constructor, shape Type) (*Delegate, error)
}

// Delegate is an invocable constructor call. Callers compare delegates by
// pointer; the cache hands out the same *Delegate for the same key.
type Delegate struct {
	shape Type
	ctor  Constructor
	call  func(args ...any) (any, error)
}

// NewDelegate wraps call as a Delegate.
func NewDelegate(shape Type, ctor Constructor, call func(args ...any) (any, error)) *Delegate {
	return &Delegate{shape: shape, ctor: ctor, call: call}
}

// Shape returns the delegate shape the delegate was built for.
func (d *Delegate) Shape() Type { return d.shape }

// Constructor returns the bound constructor.
func (d *Delegate) Constructor() Constructor { return d.ctor }

// Invoke runs the constructor call.
func (d *Delegate) Invoke(args ...any) (any, error) {
	return d.call(args...)
}

// DelegateShape is a Type describing a constructor-call signature.
type DelegateShape struct {
	name   string
	params []Type
	ret    Type
}

// NewDelegateShape creates a delegate shape returning ret from params.
func NewDelegateShape(name string, ret Type, params ...Type) *DelegateShape {
	return &DelegateShape{name: name, params: append([]Type(nil), params...), ret: ret}
}

// Name returns the shape name.
func (s *DelegateShape) Name() string { return s.name }

// BaseType returns nil; shapes have no base.
func (s *DelegateShape) BaseType() Type { return nil }

// Parameters returns a copy of the parameter types.
func (s *DelegateShape) Parameters() []Type { return append([]Type(nil), s.params...) }

// ReturnType returns the type the delegate produces.
func (s *DelegateShape) ReturnType() Type { return s.ret }

func (s *DelegateShape) String() string { return s.name + FormatSignature(s.params) }

// StandardDelegateFactory works with *DelegateShape shapes and Invoker
// constructors.
type StandardDelegateFactory struct{}

// Signature returns the shape's parameters and return type.
func (StandardDelegateFactory) Signature(shape Type) ([]Type, Type, error) {
	s, ok := shape.(*DelegateShape)
	if !ok {
		return nil, nil, fmt.Errorf("%w: %s", ErrInvalidDelegate, NameOf(shape))
	}
	return s.Parameters(), s.ReturnType(), nil
}

// CreateConstructorCall returns a delegate invoking ctor. Argument count is
// checked on every call.
func (StandardDelegateFactory) CreateConstructorCall(ctor Constructor, shape Type) (*Delegate, error) {
	inv, ok := ctor.(Invoker)
	if !ok {
		return nil, fmt.Errorf("%w: %s%s", ErrNotInvocable,
			NameOf(ctor.DeclaringType()), FormatSignature(ctor.ParameterTypes()))
	}
	arity := len(ctor.ParameterTypes())
	return NewDelegate(shape, ctor, func(args ...any) (any, error) {
		if len(args) != arity {
			return nil, fmt.Errorf("typemodel: %s expects %d arguments, got %d", NameOf(shape), arity, len(args))
		}
		return inv.Invoke(args)
	}), nil
}

var (
	_ Type            = (*DelegateShape)(nil)
	_ DelegateFactory = StandardDelegateFactory{}
)
