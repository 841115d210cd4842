// Package cache provides the query cache implementations: an in-process
// store for the common single-sidecar case and a Redis-backed variant for
// shared deployments. Both honour the begin/complete generation protocol
// that rejects superseded fetch results.
package cache

import (
	"sync"
	"time"

	"github.com/aexy/console-state/internal/api/metrics"
	"github.com/aexy/console-state/internal/core/ports"
)

type memoryEntry struct {
	value   []byte
	expires time.Time
}

// Memory is the in-process query cache. A generation counter per key is
// advanced on every invalidation; a fetch result carries the generation
// observed before the network call and is dropped if the key has moved on.
type Memory struct {
	mu      sync.Mutex
	entries map[ports.CacheKey]memoryEntry
	gens    map[ports.CacheKey]uint64
	now     func() time.Time
}

func NewMemory() *Memory {
	return &Memory{
		entries: make(map[ports.CacheKey]memoryEntry),
		gens:    make(map[ports.CacheKey]uint64),
		now:     time.Now,
	}
}

func (m *Memory) Get(key ports.CacheKey) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok {
		return nil, false
	}
	if m.now().After(e.expires) {
		delete(m.entries, key)
		return nil, false
	}
	return e.value, true
}

func (m *Memory) Begin(key ports.CacheKey) uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Materialize the generation so Clear's sweep advances it even when
	// the key has never been written or invalidated before.
	if _, ok := m.gens[key]; !ok {
		m.gens[key] = 0
	}
	return m.gens[key]
}

func (m *Memory) Complete(key ports.CacheKey, gen uint64, value []byte, ttl time.Duration) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.gens[key] != gen {
		metrics.CacheStaleRejectionsTotal.Inc()
		return false
	}
	// The first accepted completion advances the generation, fencing any
	// other in-flight fetch that observed the same one.
	m.gens[key]++
	m.entries[key] = memoryEntry{value: value, expires: m.now().Add(ttl)}
	return true
}

func (m *Memory) Invalidate(key ports.CacheKey) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
	m.gens[key]++
}

func (m *Memory) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = make(map[ports.CacheKey]memoryEntry)
	for key := range m.gens {
		m.gens[key]++
	}
}
