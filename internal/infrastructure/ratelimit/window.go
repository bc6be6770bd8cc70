package ratelimit

import (
	"sync"
	"time"
)

type bucket struct {
	count   int
	resetAt time.Time
}

// Limiter is a per-client windowed counter: each key gets max admissions per
// window, the window resets wholesale rather than rolling. Buckets live only
// in process memory; losing them on restart is acceptable because the
// limiter is advisory, not security-critical.
type Limiter struct {
	max    int
	window time.Duration
	now    func() time.Time

	mu      sync.Mutex
	buckets map[string]*bucket
}

func New(max int, window time.Duration) *Limiter {
	return NewWithClock(max, window, time.Now)
}

// NewWithClock injects the clock so tests can advance virtual time.
func NewWithClock(max int, window time.Duration, now func() time.Time) *Limiter {
	return &Limiter{
		max:     max,
		window:  window,
		now:     now,
		buckets: make(map[string]*bucket),
	}
}

// Allow reports whether a request from key is admitted. On rejection it also
// returns how long until the key's window resets. The check and increment
// happen under one lock acquisition, so concurrent bursts from the same key
// cannot exceed max.
func (l *Limiter) Allow(key string) (bool, time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	b, ok := l.buckets[key]
	if !ok || now.After(b.resetAt) {
		l.buckets[key] = &bucket{count: 1, resetAt: now.Add(l.window)}
		return true, 0
	}
	if b.count >= l.max {
		return false, b.resetAt.Sub(now)
	}
	b.count++
	return true, 0
}

// Sweep drops expired buckets and returns how many were removed. Bucket
// churn is bounded by real client cardinality, but a periodic sweep keeps
// long-running processes from accumulating dead entries.
func (l *Limiter) Sweep() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	removed := 0
	for key, b := range l.buckets {
		if now.After(b.resetAt) {
			delete(l.buckets, key)
			removed++
		}
	}
	return removed
}
