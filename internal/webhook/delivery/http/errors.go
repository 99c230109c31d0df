package http

import (
	"errors"

	"github.com/gin-gonic/gin"

	"webhook-receiver/internal/webhook"
	"webhook-receiver/pkg/response"
)

// mapError writes the response for a use-case error. Unknown errors are
// internal errors and never leak their text.
func (h *handler) mapError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, webhook.ErrChallengeRejected):
		response.Forbidden(c)
	case errors.Is(err, webhook.ErrOriginRejected):
		response.Forbidden(c)
	case errors.Is(err, webhook.ErrSignatureMissing):
		response.Unauthorized(c, "Signature header missing")
	case errors.Is(err, webhook.ErrSignatureMismatch):
		response.Unauthorized(c, "Invalid signature")
	case errors.Is(err, webhook.ErrMalformedPayload):
		response.BadRequest(c, "Body must be a JSON object")
	case errors.Is(err, webhook.ErrMissingObject):
		response.NotFound(c, "Unknown event object")
	default:
		response.InternalError(c, err)
	}
}
