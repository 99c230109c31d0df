package usecase

import (
	"context"
	"crypto/subtle"

	"webhook-receiver/internal/webhook"
)

// VerifyChallenge answers the subscription handshake. It never looks at the
// allowlist or the signature.
func (uc *implUseCase) VerifyChallenge(ctx context.Context, input webhook.ChallengeInput) (string, error) {
	if !uc.modeAccepted(input.Mode) || !tokenEqual(input.Token, uc.cfg.VerifyToken) {
		uc.l.Warnf(ctx, "webhook.usecase.VerifyChallenge: rejected mode=%q", input.Mode)
		uc.metrics.ObserveChallenge("rejected")
		return "", webhook.ErrChallengeRejected
	}

	uc.l.Infof(ctx, "webhook.usecase.VerifyChallenge: subscription verified")
	uc.metrics.ObserveChallenge("verified")
	return input.Challenge, nil
}

func (uc *implUseCase) modeAccepted(mode string) bool {
	if mode == "" {
		return false
	}
	return uc.cfg.SubscribeMode == "" || mode == uc.cfg.SubscribeMode
}

// tokenEqual compares in constant time. An empty expected token never matches.
func tokenEqual(got, want string) bool {
	if want == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}
