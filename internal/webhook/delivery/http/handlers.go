package http

import (
	"github.com/gin-gonic/gin"

	"webhook-receiver/pkg/response"
)

// VerifyChallenge godoc
// @Summary     Subscription verification handshake
// @Description Echoes hub.challenge as text/plain when hub.mode is accepted and hub.verify_token matches the configured token.
// @Tags        Webhook
// @Produce     plain
// @Param       hub.mode         query string true "Subscription mode, e.g. subscribe"
// @Param       hub.verify_token query string true "Verify token shared with the platform"
// @Param       hub.challenge    query string true "Value to echo back"
// @Success     200 {string} string "The challenge, verbatim"
// @Failure     403 {object} response.Resp "Forbidden"
// @Router      /webhook [GET]
func (h *handler) VerifyChallenge(c *gin.Context) {
	ctx := c.Request.Context()

	req := h.processChallengeReq(c)

	challenge, err := h.uc.VerifyChallenge(ctx, req.toInput())
	if err != nil {
		h.mapError(c, err)
		return
	}

	response.Text(c, challenge)
}

// ReceiveDelivery godoc
// @Summary     Receive an event delivery
// @Description Authenticates the delivery (allowlist, X-Hub-Signature-256) and hands the JSON body to the configured sinks.
// @Tags        Webhook
// @Accept      json
// @Produce     json
// @Param       X-Hub-Signature-256 header string true "sha256=<hex HMAC-SHA256 of the raw body>"
// @Param       body body object true "Event payload with a top-level object field"
// @Success     200 {object} ackResp
// @Failure     400 {object} response.Resp "Body is not a JSON object"
// @Failure     401 {object} response.Resp "Signature missing or invalid"
// @Failure     403 {object} response.Resp "Caller not in allowlist"
// @Failure     404 {object} response.Resp "Unknown event object"
// @Failure     413 {object} response.Resp "Payload Too Large"
// @Failure     429 {object} response.Resp "Too Many Requests"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /webhook [POST]
func (h *handler) ReceiveDelivery(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processDeliveryReq(c)
	if err != nil {
		h.l.Errorf(ctx, "webhook.http.ReceiveDelivery: %v", err)
		response.InternalError(c, err)
		return
	}

	output, err := h.uc.AcceptDelivery(ctx, req.toInput())
	if err != nil {
		h.mapError(c, err)
		return
	}

	response.OK(c, h.newAckResp(output))
}
