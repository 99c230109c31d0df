package sink

import (
	"context"
	"encoding/json"

	"webhook-receiver/internal/model"
	"webhook-receiver/internal/webhook"
	"webhook-receiver/pkg/log"
)

type logSink struct {
	l log.Logger
}

// NewLog returns a sink that only logs deliveries: a summary line at info
// and the indented payload at debug.
func NewLog(l log.Logger) webhook.Sink {
	return &logSink{l: l}
}

func (s *logSink) Publish(ctx context.Context, d model.Delivery) error {
	s.l.Infof(ctx, "webhook.sink.log: delivery=%s object=%s source=%s bytes=%d", d.ID, d.Object, d.SourceIP, len(d.Body))

	pretty, err := json.MarshalIndent(d.Payload, "", "  ")
	if err != nil {
		// The payload came from json.Unmarshal, so this should not happen.
		s.l.Warnf(ctx, "webhook.sink.log: indent payload: %v", err)
		return nil
	}
	s.l.Debugf(ctx, "webhook.sink.log: payload %s", pretty)
	return nil
}
