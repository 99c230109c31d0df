package middleware

import (
	"github.com/gin-gonic/gin"

	"webhook-receiver/pkg/response"
)

// RateLimit limits requests per caller address. Backend errors are logged
// and the request goes through.
func (mw Middleware) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if mw.limiter == nil {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		key := c.ClientIP()

		allowed, err := mw.limiter.Allow(ctx, key)
		if err != nil {
			mw.l.Warnf(ctx, "middleware.RateLimit: limiter backend: %v", err)
			mw.metrics.ObserveRateLimitError()
		}
		if !allowed {
			mw.l.Warnf(ctx, "middleware.RateLimit: rate limit exceeded for %s", key)
			mw.metrics.ObserveRateLimited()
			response.TooManyRequests(c)
			return
		}

		c.Next()
	}
}
