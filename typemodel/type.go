package typemodel

import (
	"reflect"
	"strings"
)

// Type identifies a requested or generated type.
//
// Contract:
//   - Identity: two Type values denote the same type iff Same reports true.
//     Implementations should be pointers or other comparable values; Same
//     falls back to deep equality for non-comparable values.
//   - Concurrency: implementations must be safe for concurrent reads.
type Type interface {
	// Name returns the fully qualified type name used in diagnostics.
	Name() string

	// BaseType returns the declared supertype, or nil for root types.
	BaseType() Type
}

// Same reports whether a and b denote the same type. Unlike a == b it does
// not panic when the dynamic type is not comparable.
func Same(a, b Type) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta := reflect.TypeOf(a)
	if ta != reflect.TypeOf(b) {
		return false
	}
	if ta.Comparable() && comparableValue(reflect.ValueOf(a)) {
		return a == b
	}
	return reflect.DeepEqual(a, b)
}

// comparableValue reports whether == on v cannot panic. Struct and array
// types can be comparable while holding interface values that are not.
func comparableValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Interface:
		if v.IsNil() {
			return true
		}
		return v.Elem().Type().Comparable() && comparableValue(v.Elem())
	case reflect.Struct:
		for i := 0; i < v.NumField(); i++ {
			if !comparableValue(v.Field(i)) {
				return false
			}
		}
	case reflect.Array:
		for i := 0; i < v.Len(); i++ {
			if !comparableValue(v.Index(i)) {
				return false
			}
		}
	}
	return true
}

// Sealed is implemented by types that cannot be used as a proxy base.
type Sealed interface {
	IsSealed() bool
}

// RequestedTyper is the identifying marker carried by assembled types.
// When an assembled type does not implement it, its declared base type
// identifies the requested type.
type RequestedTyper interface {
	RequestedType() Type
}

// ConstructorLister is implemented by types that expose their constructors.
type ConstructorLister interface {
	Constructors() []Constructor
}

// IsSealed reports whether t declares itself sealed.
func IsSealed(t Type) bool {
	s, ok := t.(Sealed)
	return ok && s.IsSealed()
}

// NameOf returns t.Name(), or "<nil>" for a nil type.
func NameOf(t Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.Name()
}

// FormatSignature renders a parameter list as "(A, B, C)".
func FormatSignature(params []Type) string {
	names := make([]string, len(params))
	for i, p := range params {
		names[i] = NameOf(p)
	}
	return "(" + strings.Join(names, ", ") + ")"
}

// Descriptor is an immutable in-memory Type.
type Descriptor struct {
	name      string
	base      Type
	requested Type
	sealed    bool
	ctors     []Constructor
	members   []Member
}

// DescriptorOption configures a Descriptor.
type DescriptorOption func(*Descriptor)

// AsSealed marks the descriptor as sealed.
func AsSealed() DescriptorOption {
	return func(d *Descriptor) { d.sealed = true }
}

// WithRequestedType attaches the assembled-type marker.
func WithRequestedType(t Type) DescriptorOption {
	return func(d *Descriptor) { d.requested = t }
}

// WithConstructor declares a constructor on the descriptor. newFn may be nil
// for constructors that are only looked up, never invoked.
func WithConstructor(public bool, newFn func(args []any) (any, error), params ...Type) DescriptorOption {
	return func(d *Descriptor) {
		d.ctors = append(d.ctors, &ConstructorInfo{
			declaring: d,
			params:    append([]Type(nil), params...),
			public:    public,
			newFn:     newFn,
		})
	}
}

// WithMembers records members on the descriptor.
func WithMembers(members ...Member) DescriptorOption {
	return func(d *Descriptor) { d.members = append(d.members, members...) }
}

// NewType creates a Descriptor with the given name and base type.
func NewType(name string, base Type, opts ...DescriptorOption) *Descriptor {
	d := &Descriptor{name: name, base: base}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// NewProxy creates the descriptor of a type generated for requested. It
// carries the RequestedTyper marker and inherits the constructors of
// requested when it lists any.
func NewProxy(name string, requested Type, opts ...DescriptorOption) *Descriptor {
	base := []DescriptorOption{WithRequestedType(requested)}
	if lister, ok := requested.(ConstructorLister); ok {
		for _, ctor := range lister.Constructors() {
			var newFn func(args []any) (any, error)
			if inv, ok := ctor.(Invoker); ok {
				newFn = inv.Invoke
			}
			base = append(base, WithConstructor(ctor.IsPublic(), newFn, ctor.ParameterTypes()...))
		}
	}
	return NewType(name, requested, append(base, opts...)...)
}

// Name returns the type name.
func (d *Descriptor) Name() string { return d.name }

// BaseType returns the declared base type, or nil for a root type.
func (d *Descriptor) BaseType() Type { return d.base }

// IsSealed reports whether the type was declared with AsSealed.
func (d *Descriptor) IsSealed() bool { return d.sealed }

func (d *Descriptor) String() string { return d.name }

// RequestedType returns the marker set with WithRequestedType, or nil.
func (d *Descriptor) RequestedType() Type { return d.requested }

// Constructors returns the declared constructors.
func (d *Descriptor) Constructors() []Constructor {
	return append([]Constructor(nil), d.ctors...)
}

// Members returns the recorded members.
func (d *Descriptor) Members() []Member {
	return append([]Member(nil), d.members...)
}

var (
	_ Type              = (*Descriptor)(nil)
	_ Sealed            = (*Descriptor)(nil)
	_ RequestedTyper    = (*Descriptor)(nil)
	_ ConstructorLister = (*Descriptor)(nil)
)
