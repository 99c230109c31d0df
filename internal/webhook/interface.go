package webhook

import (
	"context"

	"webhook-receiver/internal/model"
)

type UseCase interface {
	// VerifyChallenge returns the challenge to echo back, or ErrChallengeRejected.
	VerifyChallenge(ctx context.Context, input ChallengeInput) (string, error)

	// AcceptDelivery runs origin, signature and body checks, then hands the
	// delivery to the sink.
	AcceptDelivery(ctx context.Context, input DeliveryInput) (DeliveryOutput, error)
}

// Sink receives accepted deliveries. Implementations must be safe for
// concurrent use.
type Sink interface {
	Publish(ctx context.Context, d model.Delivery) error
}
