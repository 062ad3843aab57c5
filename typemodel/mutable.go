package typemodel

import (
	"fmt"
	"sync/atomic"
)

// MemberKind classifies a Member.
type MemberKind int

const (
	MemberField MemberKind = iota
	MemberMethod
	MemberProperty
	MemberConstructor
)

func (k MemberKind) String() string {
	switch k {
	case MemberField:
		return "field"
	case MemberMethod:
		return "method"
	case MemberProperty:
		return "property"
	case MemberConstructor:
		return "constructor"
	default:
		return "unknown"
	}
}

// Member is a member added to a mutable type description.
type Member struct {
	Name       string
	Kind       MemberKind
	Parameters []Type
	Public     bool
}

// MutableType is the editable description of a type under assembly.
//
// Contract:
//   - Concurrency: not safe for concurrent use; participants edit it while the
//     generation lock is held.
type MutableType interface {
	Name() string
	SetName(name string)
	BaseType() Type
	Interfaces() []Type
	AddInterface(t Type)
	Members() []Member
	AddMember(m Member)
}

// MutableTypeFactory creates mutable descriptions for proxies and for the
// additional types participants request.
type MutableTypeFactory interface {
	CreateProxy(requested Type) (MutableType, error)
	CreateAdditional(name string, base Type) (MutableType, error)
}

type mutableType struct {
	name       string
	base       Type
	interfaces []Type
	members    []Member
}

// NewMutableType returns an empty description deriving from base.
func NewMutableType(name string, base Type) MutableType {
	return &mutableType{name: name, base: base}
}

func (m *mutableType) Name() string        { return m.name }
func (m *mutableType) SetName(name string) { m.name = name }
func (m *mutableType) BaseType() Type      { return m.base }
func (m *mutableType) Interfaces() []Type  { return append([]Type(nil), m.interfaces...) }
func (m *mutableType) AddInterface(t Type) { m.interfaces = append(m.interfaces, t) }
func (m *mutableType) Members() []Member   { return append([]Member(nil), m.members...) }
func (m *mutableType) AddMember(mb Member) { m.members = append(m.members, mb) }

// DefaultFactory names proxies "<Requested>_Proxy_<n>" with a counter that is
// unique per factory.
type DefaultFactory struct {
	counter atomic.Int64
}

// NewDefaultFactory creates a DefaultFactory.
func NewDefaultFactory() *DefaultFactory {
	return &DefaultFactory{}
}

// CreateProxy returns a description deriving from requested.
func (f *DefaultFactory) CreateProxy(requested Type) (MutableType, error) {
	if requested == nil {
		return nil, ErrNilType
	}
	n := f.counter.Add(1)
	return NewMutableType(fmt.Sprintf("%s_Proxy_%d", requested.Name(), n), requested), nil
}

// CreateAdditional returns a free-standing description.
func (f *DefaultFactory) CreateAdditional(name string, base Type) (MutableType, error) {
	if name == "" {
		return nil, ErrEmptyTypeName
	}
	return NewMutableType(name, base), nil
}

var _ MutableTypeFactory = (*DefaultFactory)(nil)
