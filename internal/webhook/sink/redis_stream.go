package sink

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"webhook-receiver/internal/model"
	"webhook-receiver/internal/webhook"
)

const defaultStreamMaxLen = 10000

type redisStreamSink struct {
	rdb    *redis.Client
	stream string
	maxLen int64
}

// NewRedisStream returns a sink that appends every delivery to a Redis
// stream, trimmed approximately to maxLen entries (0 selects a default).
func NewRedisStream(rdb *redis.Client, stream string, maxLen int64) webhook.Sink {
	if maxLen <= 0 {
		maxLen = defaultStreamMaxLen
	}
	return &redisStreamSink{rdb: rdb, stream: stream, maxLen: maxLen}
}

func (s *redisStreamSink) Publish(ctx context.Context, d model.Delivery) error {
	err := s.rdb.XAdd(ctx, &redis.XAddArgs{
		Stream: s.stream,
		MaxLen: s.maxLen,
		Approx: true,
		Values: map[string]interface{}{
			"delivery_id": d.ID,
			"request_id":  d.RequestID,
			"object":      d.Object,
			"source_ip":   d.SourceIP,
			"received_at": d.ReceivedAt.UTC().Format(time.RFC3339Nano),
			"body":        string(d.Body),
		},
	}).Err()
	if err != nil {
		return fmt.Errorf("xadd %s: %w", s.stream, err)
	}
	return nil
}
