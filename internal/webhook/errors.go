package webhook

import "errors"

var (
	ErrChallengeRejected = errors.New("subscription verification failed")
	ErrOriginRejected    = errors.New("caller address not allowed")
	ErrSignatureMissing  = errors.New("signature header missing")
	ErrSignatureMismatch = errors.New("signature mismatch")
	ErrMalformedPayload  = errors.New("payload is not a JSON object")
	ErrMissingObject     = errors.New("payload object marker missing or unexpected")
	ErrSinkFailed        = errors.New("event sink failed")
	ErrInvalidAllowlist  = errors.New("invalid allowlist entry")
)
