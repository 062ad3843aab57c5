package cachekey

import (
	"fmt"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// CacheKey is a participant-defined discriminator.
//
// Contract:
//   - Immutability: a key must not change after it is handed to the assembler.
//   - Equality: Equal must be reflexive, symmetric and transitive, and equal
//     keys must return equal hashes.
//   - Concurrency: implementations must be safe for concurrent use.
type CacheKey interface {
	Equal(other CacheKey) bool
	Hash() uint64
}

type stringKey string

// String returns a CacheKey comparing by string value.
func String(s string) CacheKey { return stringKey(s) }

func (k stringKey) Equal(other CacheKey) bool {
	o, ok := other.(stringKey)
	return ok && o == k
}

func (k stringKey) Hash() uint64   { return xxhash.Sum64String("s:" + string(k)) }
func (k stringKey) String() string { return strconv.Quote(string(k)) }

type intKey int64

// Int returns a CacheKey comparing by integer value.
func Int(n int64) CacheKey { return intKey(n) }

func (k intKey) Equal(other CacheKey) bool {
	o, ok := other.(intKey)
	return ok && o == k
}

func (k intKey) Hash() uint64   { return xxhash.Sum64String("i:" + strconv.FormatInt(int64(k), 10)) }
func (k intKey) String() string { return strconv.FormatInt(int64(k), 10) }

type valueKey[T comparable] struct {
	v T
}

// Value returns a CacheKey comparing by ==. The hash is derived from the
// value's %v rendering, so values that print identically merely collide.
func Value[T comparable](v T) CacheKey { return valueKey[T]{v: v} }

func (k valueKey[T]) Equal(other CacheKey) bool {
	o, ok := other.(valueKey[T])
	return ok && o.v == k.v
}

func (k valueKey[T]) Hash() uint64 {
	return xxhash.Sum64String(fmt.Sprintf("v:%T:%v", k.v, k.v))
}

func (k valueKey[T]) String() string { return fmt.Sprintf("%v", k.v) }

// Equal compares two possibly-nil keys.
func Equal(a, b CacheKey) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(b)
}
