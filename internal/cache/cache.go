package cache

import (
	"context"
	"sync"
	"time"
)

// ComputeFunc produces a value for a cache key on miss.
type ComputeFunc[V any] func(ctx context.Context) (V, error)

// Cache is TTL-bounded memoization keyed by string. A fresh hit returns the
// stored value without invoking compute; a miss or stale hit computes, stores
// the result with the current timestamp, and returns it. Errors from compute
// are never stored.
type Cache[V any] interface {
	GetOrCompute(ctx context.Context, key string, compute ComputeFunc[V]) (V, error)
}

// Passthrough is the disabled cache: it always computes and never stores.
type Passthrough[V any] struct{}

// NewPassthrough returns a cache that always recomputes (ENABLE_CACHE=false).
func NewPassthrough[V any]() *Passthrough[V] {
	return &Passthrough[V]{}
}

func (p *Passthrough[V]) GetOrCompute(ctx context.Context, key string, compute ComputeFunc[V]) (V, error) {
	return compute(ctx)
}

type entry[V any] struct {
	value    V
	storedAt time.Time
}

// Memory is an in-process TTL cache. Stale entries are evicted lazily on the
// next lookup; there is no background sweeper. Concurrent callers missing on
// the same key may each compute (computation is pure, so the redundant work is
// only a recompute cost), but a reader never observes a half-written entry.
type Memory[V any] struct {
	mu      sync.RWMutex
	entries map[string]entry[V]
	ttl     time.Duration
	now     func() time.Time
}

// MemoryOption configures a Memory cache.
type MemoryOption[V any] func(*Memory[V])

// WithClock injects a clock, letting tests advance time deterministically.
func WithClock[V any](now func() time.Time) MemoryOption[V] {
	return func(m *Memory[V]) {
		m.now = now
	}
}

// NewMemory creates an in-memory TTL cache. A TTL of zero or less makes every
// call recompute.
func NewMemory[V any](ttl time.Duration, opts ...MemoryOption[V]) *Memory[V] {
	m := &Memory[V]{
		entries: make(map[string]entry[V]),
		ttl:     ttl,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Memory[V]) GetOrCompute(ctx context.Context, key string, compute ComputeFunc[V]) (V, error) {
	if m.ttl > 0 {
		m.mu.RLock()
		e, ok := m.entries[key]
		m.mu.RUnlock()

		if ok && m.now().Sub(e.storedAt) <= m.ttl {
			return e.value, nil
		}
	}

	value, err := compute(ctx)
	if err != nil {
		var zero V
		return zero, err
	}

	if m.ttl > 0 {
		m.mu.Lock()
		m.entries[key] = entry[V]{value: value, storedAt: m.now()}
		m.mu.Unlock()
	}

	return value, nil
}

// Len reports the number of stored entries, stale included.
func (m *Memory[V]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
