package sink

import (
	"context"
	"errors"

	"webhook-receiver/internal/model"
	"webhook-receiver/internal/webhook"
)

type multiSink []webhook.Sink

// Multi fans a delivery out to every sink in order. All sinks are tried;
// their errors are joined.
func Multi(sinks ...webhook.Sink) webhook.Sink {
	if len(sinks) == 1 {
		return sinks[0]
	}
	return multiSink(sinks)
}

func (m multiSink) Publish(ctx context.Context, d model.Delivery) error {
	var errs []error
	for _, s := range m {
		if err := s.Publish(ctx, d); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
