package http

import (
	"errors"

	"github.com/gin-gonic/gin"

	"webhook-receiver/internal/middleware"
	"webhook-receiver/internal/webhook"
)

var errNoRawBody = errors.New("raw body not captured")

// processChallengeReq reads the handshake query parameters. Missing
// parameters stay empty; the use case decides what that means.
func (h *handler) processChallengeReq(c *gin.Context) challengeReq {
	return challengeReq{
		Mode:      c.Query("hub.mode"),
		Token:     c.Query("hub.verify_token"),
		Challenge: c.Query("hub.challenge"),
	}
}

// processDeliveryReq collects the exact body bytes captured by the RawBody
// middleware together with the signature and caller address.
func (h *handler) processDeliveryReq(c *gin.Context) (deliveryReq, error) {
	body, ok := middleware.GetRawBody(c)
	if !ok {
		return deliveryReq{}, errNoRawBody
	}

	return deliveryReq{
		Body:      body,
		Signature: c.GetHeader(webhook.SignatureHeader),
		RemoteIP:  c.ClientIP(),
		RequestID: middleware.GetRequestID(c),
	}, nil
}
