package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// AccessLog logs one line per request, at a level chosen by status class,
// and records the request in metrics.
func (mw Middleware) AccessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		ctx := c.Request.Context()

		// Path only; the handshake query carries the verify token.
		mw.l.Debugf(ctx, "%s %s", c.Request.Method, c.Request.URL.Path)

		c.Next()

		status := c.Writer.Status()
		elapsed := time.Since(start)
		mw.metrics.ObserveHTTP(c.Request.Method, c.FullPath(), status, elapsed)

		format := "%s %s %d %s ip=%s"
		args := []interface{}{c.Request.Method, c.Request.URL.Path, status, elapsed, c.ClientIP()}
		switch {
		case status >= http.StatusInternalServerError:
			mw.l.Errorf(ctx, format, args...)
		case status >= http.StatusBadRequest:
			mw.l.Warnf(ctx, format, args...)
		default:
			mw.l.Infof(ctx, format, args...)
		}
	}
}
