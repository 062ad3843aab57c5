package typecache

import (
	"sync"
	"sync/atomic"

	"github.com/jonwraymond/typepipe/cachekey"
)

// store maps compound keys to values. Readers never lock. Writers publish a
// new immutable bucket per hash with compare-and-swap, so an existing entry
// is never overwritten.
type store struct {
	buckets sync.Map // uint64 -> *bucket
	size    atomic.Int64
}

type entry struct {
	key   cachekey.Compound
	value any
}

type bucket struct {
	entries []entry
}

func (b *bucket) find(key cachekey.Compound) (any, bool) {
	for _, e := range b.entries {
		if e.key.Equal(key) {
			return e.value, true
		}
	}
	return nil, false
}

func (b *bucket) with(key cachekey.Compound, value any) *bucket {
	entries := make([]entry, len(b.entries), len(b.entries)+1)
	copy(entries, b.entries)
	return &bucket{entries: append(entries, entry{key: key, value: value})}
}

// Load returns the value stored under key.
func (s *store) Load(key cachekey.Compound) (any, bool) {
	v, ok := s.buckets.Load(key.Hash())
	if !ok {
		return nil, false
	}
	return v.(*bucket).find(key)
}

// LoadOrStore returns the existing value for key if present. Otherwise it
// stores value and returns it with loaded == false.
func (s *store) LoadOrStore(key cachekey.Compound, value any) (actual any, loaded bool) {
	h := key.Hash()
	for {
		v, ok := s.buckets.Load(h)
		if !ok {
			fresh := &bucket{entries: []entry{{key: key, value: value}}}
			if _, raced := s.buckets.LoadOrStore(h, fresh); !raced {
				s.size.Add(1)
				return value, false
			}
			continue
		}

		b := v.(*bucket)
		if existing, found := b.find(key); found {
			return existing, true
		}
		if s.buckets.CompareAndSwap(h, b, b.with(key, value)) {
			s.size.Add(1)
			return value, false
		}
	}
}

// Len returns the number of stored entries.
func (s *store) Len() int {
	return int(s.size.Load())
}
