package http

import (
	"webhook-receiver/internal/webhook"
	"webhook-receiver/pkg/response"
)

const statusEventReceived = "EVENT_RECEIVED"

// --- Request DTOs ---

type challengeReq struct {
	Mode      string
	Token     string
	Challenge string
}

func (r challengeReq) toInput() webhook.ChallengeInput {
	return webhook.ChallengeInput{
		Mode:      r.Mode,
		Token:     r.Token,
		Challenge: r.Challenge,
	}
}

// ---

type deliveryReq struct {
	Body      []byte
	Signature string
	RemoteIP  string
	RequestID string
}

func (r deliveryReq) toInput() webhook.DeliveryInput {
	return webhook.DeliveryInput{
		Body:      r.Body,
		Signature: r.Signature,
		RemoteIP:  r.RemoteIP,
		RequestID: r.RequestID,
	}
}

// --- Response DTOs ---

type ackResp struct {
	Status     string            `json:"status"`
	DeliveryID string            `json:"delivery_id"`
	Object     string            `json:"object"`
	ReceivedAt response.DateTime `json:"received_at"`
}

func (h *handler) newAckResp(out webhook.DeliveryOutput) ackResp {
	return ackResp{
		Status:     statusEventReceived,
		DeliveryID: out.Delivery.ID,
		Object:     out.Delivery.Object,
		ReceivedAt: response.DateTime(out.Delivery.ReceivedAt),
	}
}
