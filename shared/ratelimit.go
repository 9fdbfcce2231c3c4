package shared

import (
	"context"
	"sync"
	"time"
)

// RateLimitRule is a per-route fixed-window limit, attached at route
// registration and immutable for the process lifetime.
type RateLimitRule struct {
	MaxRequests int
	Window      time.Duration
}

func (r RateLimitRule) Valid() bool {
	return r.MaxRequests > 0 && r.Window > 0
}

// CounterStore is the shared counter backing the rate limiter. Incr must be
// atomic per key: the returned count is the post-increment value and ttl the
// remaining window time. Implementations start a new window (count 1, full
// window TTL) when the key is absent or expired.
type CounterStore interface {
	Incr(ctx context.Context, key string, window time.Duration) (count int64, ttl time.Duration, err error)
	Reset(ctx context.Context, key string) error
}

// MemoryCounterStore is a single-process CounterStore used by tests and by
// deployments without Redis. Production multi-instance setups use the Redis
// store so limits hold across servers.
type MemoryCounterStore struct {
	mu       sync.Mutex
	counters map[string]*memoryCounter

	// now is swappable so window expiry can be tested without sleeping.
	now func() time.Time
}

type memoryCounter struct {
	count       int64
	windowStart time.Time
	window      time.Duration
}

func NewMemoryCounterStore() *MemoryCounterStore {
	return &MemoryCounterStore{
		counters: make(map[string]*memoryCounter),
		now:      time.Now,
	}
}

func (s *MemoryCounterStore) Incr(_ context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	counter, ok := s.counters[key]
	if !ok || now.Sub(counter.windowStart) >= counter.window {
		counter = &memoryCounter{count: 0, windowStart: now, window: window}
		s.counters[key] = counter
	}

	counter.count++
	remaining := counter.window - now.Sub(counter.windowStart)
	return counter.count, remaining, nil
}

func (s *MemoryCounterStore) Reset(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.counters, key)
	return nil
}

// SetClock overrides the store's time source. Test hook.
func (s *MemoryCounterStore) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.now = now
}
