package webhook

import "webhook-receiver/internal/model"

// VerificationResult is the outcome of an authentication check.
type VerificationResult int

const (
	Verified VerificationResult = iota
	SignatureMissing
	SignatureMismatch
	OriginRejected
)

func (r VerificationResult) String() string {
	switch r {
	case Verified:
		return "verified"
	case SignatureMissing:
		return "signature_missing"
	case SignatureMismatch:
		return "signature_mismatch"
	case OriginRejected:
		return "origin_rejected"
	default:
		return "unknown"
	}
}

// SecurityConfig holds the settings the authentication pipeline needs.
type SecurityConfig struct {
	Secret         string   // Shared secret for signature verification
	VerifyToken    string   // Token expected in the subscription handshake
	SubscribeMode  string   // Required hub.mode value; empty accepts any non-empty mode
	ExpectedObject string   // Required "object" value; empty accepts any non-empty value
	AllowedIPs     []string // IP / CIDR allowlist (optional)
}

// ChallengeInput carries the handshake query parameters.
type ChallengeInput struct {
	Mode      string
	Token     string
	Challenge string
}

// DeliveryInput is everything the pipeline looks at for one POST.
type DeliveryInput struct {
	Body      []byte // Raw body, byte-exact
	Signature string // X-Hub-Signature-256 header value
	RemoteIP  string // Caller address as observed by the server
	RequestID string
}

// DeliveryOutput is returned once the sink took the delivery.
type DeliveryOutput struct {
	Delivery model.Delivery
}
