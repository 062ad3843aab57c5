package participant

import (
	"sort"
	"sync"
)

// State is the shared, string-keyed participant state of one pipeline.
// Entries live as long as the pipeline and are never cleared. Writes happen
// under the generation lock; the internal mutex only keeps stray readers
// race free.
type State struct {
	mu sync.RWMutex
	m  map[string]any
}

// NewState creates an empty State.
func NewState() *State {
	return &State{m: make(map[string]any)}
}

// Get returns the value stored under key.
func (s *State) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.m[key]
	return v, ok
}

// Set stores value under key, replacing any previous value.
func (s *State) Set(key string, value any) {
	s.mu.Lock()
	s.m[key] = value
	s.mu.Unlock()
}

// GetOrAdd returns the existing value for key, or stores and returns the
// result of create.
func (s *State) GetOrAdd(key string, create func() any) any {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v, ok := s.m[key]; ok {
		return v
	}
	v := create()
	s.m[key] = v
	return v
}

// Len returns the number of entries.
func (s *State) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.m)
}

// Keys returns the keys in sorted order.
func (s *State) Keys() []string {
	s.mu.RLock()
	keys := make([]string, 0, len(s.m))
	for k := range s.m {
		keys = append(keys, k)
	}
	s.mu.RUnlock()
	sort.Strings(keys)
	return keys
}
