package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"
)

const (
	localMaxKeys = 1000
	localKeyTTL  = 5 * time.Minute
)

// localLimiter keeps one token bucket per key in an expiring LRU, so idle
// keys are dropped without a janitor goroutine.
type localLimiter struct {
	mu       sync.Mutex // makes get-or-create atomic per key
	limiters *expirable.LRU[string, *rate.Limiter]
	rate     rate.Limit
	burst    int
}

// NewLocal returns an in-process limiter allowing requestsPerMin per key,
// with a burst of a tenth of that (at least one).
func NewLocal(requestsPerMin int) Limiter {
	burst := requestsPerMin / 10
	if burst < 1 {
		burst = 1
	}
	return &localLimiter{
		limiters: expirable.NewLRU[string, *rate.Limiter](localMaxKeys, nil, localKeyTTL),
		rate:     rate.Limit(float64(requestsPerMin) / 60.0),
		burst:    burst,
	}
}

func (l *localLimiter) Allow(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	limiter, ok := l.limiters.Get(key)
	if !ok {
		limiter = rate.NewLimiter(l.rate, l.burst)
		l.limiters.Add(key, limiter)
	}
	l.mu.Unlock()

	return limiter.Allow(), nil
}
