package service

import (
	"sync"
	"time"
)

// TokenBucket is an in-memory per-client rate limiter using the token bucket
// algorithm. It is safe for concurrent use. Idle buckets are evicted by a
// background goroutine until Close is called.
type TokenBucket struct {
	mu       sync.Mutex
	buckets  map[string]*bucket
	rate     float64 // tokens added per second
	capacity float64 // maximum tokens
	now      func() time.Time
	done     chan struct{}
	once     sync.Once
}

type bucket struct {
	tokens float64
	last   time.Time
}

const (
	bucketIdleTTL        = 10 * time.Minute
	bucketEvictionPeriod = 5 * time.Minute
)

// NewTokenBucket creates a rate limiter that allows bursts of up to capacity
// requests per key, refilling at rate tokens per second.
func NewTokenBucket(rate, capacity float64) *TokenBucket {
	return newTokenBucket(rate, capacity, time.Now)
}

func newTokenBucket(rate, capacity float64, now func() time.Time) *TokenBucket {
	tb := &TokenBucket{
		buckets:  make(map[string]*bucket),
		rate:     rate,
		capacity: capacity,
		now:      now,
		done:     make(chan struct{}),
	}
	go tb.evictLoop()
	return tb
}

// Allow reports whether key may proceed, consuming one token if so.
func (tb *TokenBucket) Allow(key string) bool {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	now := tb.now()
	b, ok := tb.buckets[key]
	if !ok {
		b = &bucket{tokens: tb.capacity, last: now}
		tb.buckets[key] = b
	}

	elapsed := now.Sub(b.last).Seconds()
	b.tokens = min(b.tokens+elapsed*tb.rate, tb.capacity)
	b.last = now

	if b.tokens >= 1 {
		b.tokens--
		return true
	}
	return false
}

// Close stops the eviction goroutine.
func (tb *TokenBucket) Close() {
	tb.once.Do(func() { close(tb.done) })
}

func (tb *TokenBucket) evictLoop() {
	ticker := time.NewTicker(bucketEvictionPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			tb.evictIdle()
		case <-tb.done:
			return
		}
	}
}

// evictIdle drops buckets untouched for longer than bucketIdleTTL.
func (tb *TokenBucket) evictIdle() {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	cutoff := tb.now().Add(-bucketIdleTTL)
	for key, b := range tb.buckets {
		if b.last.Before(cutoff) {
			delete(tb.buckets, key)
		}
	}
}
