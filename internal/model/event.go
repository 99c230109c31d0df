package model

import (
	"encoding/json"
	"time"
)

// Delivery is one authenticated event notification, alive for a single request.
type Delivery struct {
	ID         string          // Generated delivery id (uuid)
	RequestID  string          // Correlates with access logs
	Object     string          // Top-level "object" marker, e.g. "page"
	Body       json.RawMessage // Exact bytes received on the wire
	Payload    map[string]any  // Decoded body
	SourceIP   string          // Normalized caller address
	ReceivedAt time.Time
}
