package http

import (
	"github.com/gin-gonic/gin"

	"webhook-receiver/internal/middleware"
)

// RegisterRoutes maps the handshake and the delivery endpoint on rg.
// Only deliveries are rate limited and have their body captured.
func RegisterRoutes(rg *gin.RouterGroup, h Handler, mw middleware.Middleware) {
	rg.GET("", h.VerifyChallenge)
	rg.POST("", mw.RateLimit(), mw.RawBody(), h.ReceiveDelivery)
}
