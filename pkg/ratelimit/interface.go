package ratelimit

import "context"

// Limiter decides whether one more request for key may pass.
// A non-nil error means the backend failed; callers should treat the
// returned bool as authoritative (backends fail open).
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}
