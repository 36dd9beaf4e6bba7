package service

import (
	"testing"
	"time"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestBucket(t *testing.T, rate, capacity float64) (*TokenBucket, *fakeClock) {
	t.Helper()
	clock := &fakeClock{t: time.Date(2024, 12, 10, 0, 0, 0, 0, time.UTC)}
	tb := newTokenBucket(rate, capacity, clock.now)
	t.Cleanup(tb.Close)
	return tb, clock
}

func TestTokenBucket_AllowsUpToCapacity(t *testing.T) {
	tb, _ := newTestBucket(t, 1, 3)

	for i := 0; i < 3; i++ {
		if !tb.Allow("client") {
			t.Fatalf("request %d should be allowed (bucket not yet empty)", i+1)
		}
	}
	if tb.Allow("client") {
		t.Fatal("4th request should be denied (bucket empty)")
	}
}

func TestTokenBucket_Refills(t *testing.T) {
	tb, clock := newTestBucket(t, 2, 1)

	if !tb.Allow("client") {
		t.Fatal("first request should be allowed")
	}
	if tb.Allow("client") {
		t.Fatal("second request should be denied")
	}

	clock.advance(500 * time.Millisecond) // one token at 2/s
	if !tb.Allow("client") {
		t.Fatal("request after refill should be allowed")
	}
}

func TestTokenBucket_RefillCappedAtCapacity(t *testing.T) {
	tb, clock := newTestBucket(t, 10, 2)

	tb.Allow("client")
	tb.Allow("client")
	clock.advance(time.Hour)

	allowed := 0
	for range 5 {
		if tb.Allow("client") {
			allowed++
		}
	}
	if allowed != 2 {
		t.Fatalf("expected refill capped at 2, got %d", allowed)
	}
}

func TestTokenBucket_DifferentKeysAreIndependent(t *testing.T) {
	tb, _ := newTestBucket(t, 1, 1)

	if !tb.Allow("ip-a") {
		t.Fatal("ip-a first request should be allowed")
	}
	if tb.Allow("ip-a") {
		t.Fatal("ip-a second request should be denied")
	}
	if !tb.Allow("ip-b") {
		t.Fatal("ip-b first request should be allowed (independent bucket)")
	}
}

func TestTokenBucket_EvictIdle(t *testing.T) {
	tb, clock := newTestBucket(t, 0, 1)

	tb.Allow("stale")
	clock.advance(bucketIdleTTL + time.Second)
	tb.Allow("fresh")
	tb.evictIdle()

	tb.mu.Lock()
	_, staleKept := tb.buckets["stale"]
	_, freshKept := tb.buckets["fresh"]
	tb.mu.Unlock()

	if staleKept {
		t.Fatal("expected idle bucket to be evicted")
	}
	if !freshKept {
		t.Fatal("expected recent bucket to be kept")
	}
}

func TestTokenBucket_CloseIsIdempotent(t *testing.T) {
	tb := NewTokenBucket(1, 1)
	tb.Close()
	tb.Close()
}
