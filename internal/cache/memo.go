// Package cache memoizes deterministic chart results in process memory.
package cache

import (
	"sync"
	"sync/atomic"

	"github.com/golang/groupcache/lru"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

// Memo is a bounded least-recently-used store with duplicate suppression.
// A size of zero disables storage; GetOrCompute then always computes.
type Memo[V any] struct {
	mu    sync.Mutex
	lru   *lru.Cache
	size  int
	group singleflight.Group

	hits   atomic.Int64
	misses atomic.Int64

	log zerolog.Logger
}

// Stats reports cache effectiveness.
type Stats struct {
	Entries int   `json:"entries"`
	Hits    int64 `json:"hits"`
	Misses  int64 `json:"misses"`
}

// New creates a memo holding at most size entries.
func New[V any](name string, size int, log zerolog.Logger) *Memo[V] {
	if size < 0 {
		size = 0
	}
	m := &Memo[V]{
		size: size,
		log:  log.With().Str("cache", name).Logger(),
	}
	if size > 0 {
		m.lru = lru.New(size)
	}
	return m
}

// Get returns a stored value.
func (m *Memo[V]) Get(key string) (V, bool) {
	var zero V
	if m.lru == nil {
		return zero, false
	}

	m.mu.Lock()
	v, ok := m.lru.Get(key)
	m.mu.Unlock()

	if !ok {
		return zero, false
	}
	return v.(V), true
}

// Set stores a value, evicting the least recently used entry when full.
func (m *Memo[V]) Set(key string, value V) {
	if m.lru == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.lru.Add(key, value)
}

// Len returns the number of stored entries.
func (m *Memo[V]) Len() int {
	if m.lru == nil {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lru.Len()
}

// Stats returns a snapshot of the counters.
func (m *Memo[V]) Stats() Stats {
	return Stats{Entries: m.Len(), Hits: m.hits.Load(), Misses: m.misses.Load()}
}

// GetOrCompute returns the stored value for key or runs compute once, sharing
// the result with concurrent callers of the same key. Errors are not stored.
func (m *Memo[V]) GetOrCompute(key string, compute func() (V, error)) (V, error) {
	if v, ok := m.Get(key); ok {
		m.hits.Add(1)
		return v, nil
	}
	m.misses.Add(1)

	v, err, shared := m.group.Do(key, func() (interface{}, error) {
		if v, ok := m.Get(key); ok {
			return v, nil
		}
		v, err := compute()
		if err != nil {
			return v, err
		}
		m.Set(key, v)
		return v, nil
	})
	if shared {
		m.log.Debug().Str("key", key).Msg("Shared in-flight computation")
	}
	if err != nil {
		var zero V
		return zero, err
	}
	return v.(V), nil
}
