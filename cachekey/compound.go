package cachekey

import (
	"encoding/binary"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Compound is an ordered, fixed-length key:
//
//	[reserved call-site slots] + [identity slot] + [one slot per key provider]
//
// Compound values are immutable; Builder and the With/Fill/Suffix helpers
// always copy.
type Compound struct {
	parts []Part
	hash  uint64
}

// Of returns a Compound holding parts in order.
func Of(parts ...Part) Compound {
	return newCompound(append([]Part(nil), parts...))
}

func newCompound(parts []Part) Compound {
	return Compound{parts: parts, hash: combine(parts)}
}

// Len returns the slot count.
func (c Compound) Len() int { return len(c.parts) }

// At returns slot i.
func (c Compound) At(i int) Part { return c.parts[i] }

// Hash returns the order-preserving hash of all slots.
func (c Compound) Hash() uint64 { return c.hash }

// Equal reports same length and positional slot equality.
func (c Compound) Equal(o Compound) bool {
	if len(c.parts) != len(o.parts) || c.hash != o.hash {
		return false
	}
	if len(c.parts) == 0 || &c.parts[0] == &o.parts[0] {
		return true
	}
	for i := range c.parts {
		if !c.parts[i].Equal(o.parts[i]) {
			return false
		}
	}
	return true
}

// With returns a copy with slot i replaced.
func (c Compound) With(i int, p Part) Compound {
	parts := append([]Part(nil), c.parts...)
	parts[i] = p
	return newCompound(parts)
}

// Fill returns a copy whose leading slots are replaced by parts. It panics if
// more parts are given than the key has slots.
func (c Compound) Fill(parts ...Part) Compound {
	if len(parts) > len(c.parts) {
		panic("cachekey: Fill exceeds key length")
	}
	cp := append([]Part(nil), c.parts...)
	copy(cp, parts)
	return newCompound(cp)
}

// Suffix returns the key without its first skip slots.
func (c Compound) Suffix(skip int) Compound {
	return newCompound(append([]Part(nil), c.parts[skip:]...))
}

func (c Compound) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, p := range c.parts {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.String())
	}
	b.WriteByte(']')
	return b.String()
}

// Builder assembles a Compound slot by slot. Unset slots are None.
type Builder struct {
	parts []Part
}

// NewBuilder returns a Builder for a key of n slots.
func NewBuilder(n int) *Builder {
	return &Builder{parts: make([]Part, n)}
}

// Set writes slot i.
func (b *Builder) Set(i int, p Part) *Builder {
	b.parts[i] = p
	return b
}

// Build returns the finished key. The builder must not be reused.
func (b *Builder) Build() Compound {
	parts := b.parts
	b.parts = nil
	return newCompound(parts)
}

func combine(parts []Part) uint64 {
	d := xxhash.New()
	var buf [9]byte
	binary.LittleEndian.PutUint64(buf[:8], uint64(len(parts)))
	_, _ = d.Write(buf[:8])
	for _, p := range parts {
		buf[0] = byte(p.kind)
		binary.LittleEndian.PutUint64(buf[1:], p.Hash())
		_, _ = d.Write(buf[:])
	}
	return d.Sum64()
}
