package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// SignatureHeader carries "sha256=<hex>" on every delivery.
const SignatureHeader = "X-Hub-Signature-256"

const signaturePrefix = "sha256="

// Sign returns the header value a sender holding secret would put on body.
func Sign(body []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return signaturePrefix + hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature checks header against HMAC-SHA256(secret, body).
// body must be the exact bytes received, never a re-encoded form.
func VerifySignature(body []byte, secret, header string) VerificationResult {
	header = strings.TrimSpace(header)
	if header == "" {
		return SignatureMissing
	}

	// An empty key must never verify anything.
	if secret == "" {
		return SignatureMismatch
	}

	if !strings.HasPrefix(header, signaturePrefix) {
		return SignatureMismatch
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	expectedHex := hex.EncodeToString(mac.Sum(nil))

	// Constant-time comparison of the lowercase hex digest, so any altered
	// character, including a case change, is a mismatch.
	if !hmac.Equal([]byte(header[len(signaturePrefix):]), []byte(expectedHex)) {
		return SignatureMismatch
	}

	return Verified
}
