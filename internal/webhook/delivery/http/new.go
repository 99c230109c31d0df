package http

import (
	"github.com/gin-gonic/gin"

	"webhook-receiver/internal/webhook"
	"webhook-receiver/pkg/log"
)

// Handler is the public interface for the webhook HTTP delivery layer.
type Handler interface {
	VerifyChallenge(c *gin.Context)
	ReceiveDelivery(c *gin.Context)
}

type handler struct {
	l  log.Logger
	uc webhook.UseCase
}

// New creates a new HTTP handler for the webhook domain.
func New(l log.Logger, uc webhook.UseCase) Handler {
	return &handler{
		l:  l,
		uc: uc,
	}
}
