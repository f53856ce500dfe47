package server

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// minIdle bounds how often idle buckets are swept.
const minIdle = time.Minute

type bucket struct {
	limiter *rate.Limiter
	seen    time.Time
}

// keyedLimiter gives every key its own token bucket. Buckets left alone long
// enough to refill completely are dropped, since a fresh bucket behaves the
// same.
type keyedLimiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	limit   rate.Limit
	burst   int
	idle    time.Duration
	swept   time.Time
	now     func() time.Time
}

func newKeyedLimiter(rps float64, burst int) *keyedLimiter {
	if burst < 1 {
		burst = 1
	}
	limit := rate.Limit(rps)
	idle := minIdle
	if rps <= 0 {
		limit = rate.Inf
	} else if refill := time.Duration(float64(burst) / rps * float64(time.Second)); refill > idle {
		idle = refill
	}
	return &keyedLimiter{
		buckets: make(map[string]*bucket),
		limit:   limit,
		burst:   burst,
		idle:    idle,
		now:     time.Now,
	}
}

// Allow reports whether one more event for key fits in its bucket.
func (k *keyedLimiter) Allow(key string) bool {
	now := k.now()

	k.mu.Lock()
	b, ok := k.buckets[key]
	if !ok {
		k.sweepLocked(now)
		b = &bucket{limiter: rate.NewLimiter(k.limit, k.burst)}
		k.buckets[key] = b
	}
	b.seen = now
	k.mu.Unlock()

	return b.limiter.AllowN(now, 1)
}

// Len returns the number of buckets held.
func (k *keyedLimiter) Len() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.buckets)
}

func (k *keyedLimiter) sweepLocked(now time.Time) {
	if now.Sub(k.swept) < k.idle {
		return
	}
	k.swept = now
	for key, b := range k.buckets {
		if now.Sub(b.seen) > k.idle {
			delete(k.buckets, key)
		}
	}
}
