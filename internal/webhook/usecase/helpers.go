package usecase

import (
	"encoding/json"
	"errors"
	"fmt"

	"webhook-receiver/internal/webhook"
)

// decodePayload parses body as a JSON object and returns it together with
// its top-level "object" marker.
func decodePayload(body []byte) (map[string]any, string, error) {
	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, "", fmt.Errorf("%w: %v", webhook.ErrMalformedPayload, err)
	}
	// "null" unmarshals into a nil map without error.
	if payload == nil {
		return nil, "", webhook.ErrMalformedPayload
	}

	object, _ := payload["object"].(string)
	if object == "" {
		return nil, "", webhook.ErrMissingObject
	}

	return payload, object, nil
}

// resultLabel turns a pipeline error into a metrics label.
func resultLabel(err error) string {
	switch {
	case errors.Is(err, webhook.ErrOriginRejected):
		return "origin_rejected"
	case errors.Is(err, webhook.ErrSignatureMissing):
		return "signature_missing"
	case errors.Is(err, webhook.ErrSignatureMismatch):
		return "signature_mismatch"
	case errors.Is(err, webhook.ErrMalformedPayload):
		return "malformed_payload"
	case errors.Is(err, webhook.ErrMissingObject):
		return "missing_object"
	case errors.Is(err, webhook.ErrSinkFailed):
		return "sink_failed"
	default:
		return "error"
	}
}
