package cachekey

import (
	"fmt"
	"strconv"

	"github.com/cespare/xxhash/v2"

	"github.com/jonwraymond/typepipe/typemodel"
)

// Kind tags the payload of a Part.
type Kind uint8

const (
	// KindNone is an empty slot.
	KindNone Kind = iota
	// KindType holds a type identity.
	KindType
	// KindBool holds a boolean call-site discriminator.
	KindBool
	// KindKey holds a participant CacheKey.
	KindKey
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindType:
		return "type"
	case KindBool:
		return "bool"
	case KindKey:
		return "key"
	default:
		return "unknown"
	}
}

// Part is one slot of a Compound key.
type Part struct {
	kind Kind
	typ  typemodel.Type
	b    bool
	key  CacheKey
}

// None returns an empty slot.
func None() Part { return Part{} }

// TypePart returns a type-identity slot. A nil type yields None.
func TypePart(t typemodel.Type) Part {
	if t == nil {
		return Part{}
	}
	return Part{kind: KindType, typ: t}
}

// BoolPart returns a boolean slot.
func BoolPart(b bool) Part { return Part{kind: KindBool, b: b} }

// KeyPart returns a participant-key slot. A nil key yields None.
func KeyPart(k CacheKey) Part {
	if k == nil {
		return Part{}
	}
	return Part{kind: KindKey, key: k}
}

// Kind returns the slot tag.
func (p Part) Kind() Kind { return p.kind }

// Type returns the type identity of a KindType slot.
func (p Part) Type() typemodel.Type { return p.typ }

// Bool returns the value of a KindBool slot.
func (p Part) Bool() bool { return p.b }

// Key returns the participant key of a KindKey slot.
func (p Part) Key() CacheKey { return p.key }

// Equal reports whether two slots hold the same tag and payload.
func (p Part) Equal(o Part) bool {
	if p.kind != o.kind {
		return false
	}
	switch p.kind {
	case KindType:
		return typemodel.Same(p.typ, o.typ)
	case KindBool:
		return p.b == o.b
	case KindKey:
		return p.key.Equal(o.key)
	default:
		return true
	}
}

// Hash returns a hash consistent with Equal.
func (p Part) Hash() uint64 {
	switch p.kind {
	case KindType:
		return xxhash.Sum64String("t:" + p.typ.Name())
	case KindBool:
		if p.b {
			return 1
		}
		return 2
	case KindKey:
		return p.key.Hash()
	default:
		return 0
	}
}

func (p Part) String() string {
	switch p.kind {
	case KindType:
		return p.typ.Name()
	case KindBool:
		return strconv.FormatBool(p.b)
	case KindKey:
		if s, ok := p.key.(fmt.Stringer); ok {
			return s.String()
		}
		return fmt.Sprintf("%v", p.key)
	default:
		return "-"
	}
}
