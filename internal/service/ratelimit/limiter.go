package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type bucket struct {
	lim  *rate.Limiter
	seen time.Time
}

// Limiter keeps one token bucket per client key. Buckets idle for longer than
// idleTTL are evicted on the next call after a sweep interval.
type Limiter struct {
	mu        sync.Mutex
	m         map[string]*bucket
	capacity  int
	refill    rate.Limit
	idleTTL   time.Duration
	lastSweep time.Time
	now       func() time.Time
}

func New(capacity, refillPerSec float64) *Limiter {
	if capacity < 1 {
		capacity = 1
	}
	return &Limiter{
		m:        make(map[string]*bucket),
		capacity: int(capacity),
		refill:   rate.Limit(refillPerSec),
		idleTTL:  10 * time.Minute,
		now:      time.Now,
	}
}

// Allow returns true if one token can be consumed for key.
func (l *Limiter) Allow(key string) bool {
	now := l.now()
	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastSweep) > l.idleTTL {
		for k, b := range l.m {
			if now.Sub(b.seen) > l.idleTTL {
				delete(l.m, k)
			}
		}
		l.lastSweep = now
	}

	b, ok := l.m[key]
	if !ok {
		b = &bucket{lim: rate.NewLimiter(l.refill, l.capacity)}
		l.m[key] = b
	}
	b.seen = now
	return b.lim.AllowN(now, 1)
}
