package ratelimiter

import (
	"context"
	"sync"
	"time"
)

// bucketState holds per-key token bucket state.
type bucketState struct {
	tokens     int
	lastRefill time.Time
	lastAccess time.Time // used by cleanup to drop stale buckets
}

// MemoryStore implements Store with in-process state. Suitable for a
// single-instance deployment; the per-request pipeline itself carries no
// shared state beyond this.
type MemoryStore struct {
	mu      sync.Mutex
	buckets map[string]*bucketState

	cleanupInterval time.Duration
	stopCleanup     chan struct{}
	closeOnce       sync.Once
}

// NewMemoryStore creates an in-memory store. Stale buckets are swept
// every cleanupInterval; pass 0 to disable sweeping.
func NewMemoryStore(cleanupInterval time.Duration) *MemoryStore {
	ms := &MemoryStore{
		buckets:         make(map[string]*bucketState),
		cleanupInterval: cleanupInterval,
		stopCleanup:     make(chan struct{}),
	}

	if ms.cleanupInterval > 0 {
		go ms.cleanupLoop()
	}

	return ms
}

func (ms *MemoryStore) ConsumeTokens(_ context.Context, key string, tokens int, config Config) (int, time.Time, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	now := time.Now()
	b, exists := ms.buckets[key]
	if !exists {
		b = &bucketState{tokens: config.Capacity, lastRefill: now}
		ms.buckets[key] = b
	}

	// Add tokens for each full refill interval since the last refill.
	// Intervals are capped so high-capacity/low-rate configs cannot
	// overflow the arithmetic.
	elapsed := now.Sub(b.lastRefill)
	maxIntervals := int64(config.Capacity/config.RefillRate + 1)
	intervalsElapsed := int(min(int64(elapsed/config.RefillInterval), maxIntervals))

	if intervalsElapsed > 0 {
		b.tokens = min(b.tokens+intervalsElapsed*config.RefillRate, config.Capacity)
		b.lastRefill = now
	}

	b.tokens -= tokens
	b.lastAccess = now

	return b.tokens, b.lastRefill.Add(config.RefillInterval), nil
}

func (ms *MemoryStore) Reset(_ context.Context, key string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	delete(ms.buckets, key)
	return nil
}

func (ms *MemoryStore) cleanupLoop() {
	ticker := time.NewTicker(ms.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			ms.removeStale()
		case <-ms.stopCleanup:
			return
		}
	}
}

// removeStale drops buckets idle for over an hour to bound memory use.
func (ms *MemoryStore) removeStale() {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	now := time.Now()
	for key, b := range ms.buckets {
		if now.Sub(b.lastAccess) > time.Hour {
			delete(ms.buckets, key)
		}
	}
}

// Close stops the cleanup goroutine. Safe to call multiple times.
func (ms *MemoryStore) Close() {
	ms.closeOnce.Do(func() { close(ms.stopCleanup) })
}
