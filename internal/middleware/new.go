package middleware

import (
	"webhook-receiver/pkg/log"
	"webhook-receiver/pkg/metrics"
	"webhook-receiver/pkg/ratelimit"
)

type Middleware struct {
	l           log.Logger
	metrics     *metrics.Metrics
	limiter     ratelimit.Limiter
	maxBodySize int64
}

// New builds the middleware set. m and limiter may be nil; a nil limiter
// makes RateLimit a no-op.
func New(l log.Logger, m *metrics.Metrics, limiter ratelimit.Limiter, maxBodySize int64) Middleware {
	return Middleware{
		l:           l,
		metrics:     m,
		limiter:     limiter,
		maxBodySize: maxBodySize,
	}
}
