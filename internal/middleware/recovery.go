package middleware

import (
	"errors"
	"io"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"webhook-receiver/pkg/response"
)

// Recovery turns a panic in any later handler into a 500 for that request
// only. gin's own output is discarded; the panic goes through our logger.
func (mw Middleware) Recovery() gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(io.Discard, func(c *gin.Context, recovered any) {
		mw.l.Errorf(c.Request.Context(), "middleware.Recovery: panic: %v\n%s", recovered, debug.Stack())
		response.InternalError(c, errors.New("panic recovered"))
	})
}
