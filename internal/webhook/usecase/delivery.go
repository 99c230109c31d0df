package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"webhook-receiver/internal/model"
	"webhook-receiver/internal/webhook"
)

// stage is one step of the delivery pipeline. A non-nil error stops the
// pipeline; later stages never run.
type stage struct {
	name string
	run  func(ctx context.Context, in webhook.DeliveryInput, d *model.Delivery) error
}

// AcceptDelivery runs origin guard, signature check, payload validation and
// the sink, in that order.
func (uc *implUseCase) AcceptDelivery(ctx context.Context, input webhook.DeliveryInput) (webhook.DeliveryOutput, error) {
	d := model.Delivery{
		ID:         uuid.NewString(),
		RequestID:  input.RequestID,
		Body:       input.Body,
		SourceIP:   input.RemoteIP,
		ReceivedAt: time.Now(),
	}

	for _, s := range uc.stages {
		if err := s.run(ctx, input, &d); err != nil {
			uc.metrics.ObserveDelivery(resultLabel(err))
			return webhook.DeliveryOutput{}, err
		}
	}

	uc.metrics.ObserveDelivery("accepted")
	uc.l.Infof(ctx, "webhook.usecase.AcceptDelivery: delivery %s accepted object=%s source=%s", d.ID, d.Object, d.SourceIP)
	return webhook.DeliveryOutput{Delivery: d}, nil
}

func (uc *implUseCase) checkOrigin(ctx context.Context, in webhook.DeliveryInput, d *model.Delivery) error {
	if uc.allowlist.Check(in.RemoteIP) != webhook.Verified {
		uc.l.Warnf(ctx, "webhook.usecase.checkOrigin: caller %q not in allowlist", in.RemoteIP)
		return webhook.ErrOriginRejected
	}
	if addr, ok := webhook.NormalizeAddr(in.RemoteIP); ok {
		d.SourceIP = addr.String()
	}
	return nil
}

func (uc *implUseCase) checkSignature(ctx context.Context, in webhook.DeliveryInput, _ *model.Delivery) error {
	switch res := webhook.VerifySignature(in.Body, uc.cfg.Secret, in.Signature); res {
	case webhook.Verified:
		return nil
	case webhook.SignatureMissing:
		uc.l.Warnf(ctx, "webhook.usecase.checkSignature: %s header missing, caller=%s", webhook.SignatureHeader, in.RemoteIP)
		return webhook.ErrSignatureMissing
	default:
		uc.l.Warnf(ctx, "webhook.usecase.checkSignature: %s, caller=%s", res, in.RemoteIP)
		return webhook.ErrSignatureMismatch
	}
}

func (uc *implUseCase) validatePayload(ctx context.Context, in webhook.DeliveryInput, d *model.Delivery) error {
	payload, object, err := decodePayload(in.Body)
	if err != nil {
		uc.l.Warnf(ctx, "webhook.usecase.validatePayload: %v", err)
		return err
	}
	if uc.cfg.ExpectedObject != "" && object != uc.cfg.ExpectedObject {
		uc.l.Warnf(ctx, "webhook.usecase.validatePayload: unexpected object %q", object)
		return webhook.ErrMissingObject
	}

	d.Payload = payload
	d.Object = object
	return nil
}

func (uc *implUseCase) publish(ctx context.Context, _ webhook.DeliveryInput, d *model.Delivery) error {
	if err := uc.sink.Publish(ctx, *d); err != nil {
		uc.l.Errorf(ctx, "webhook.usecase.publish: delivery %s: %v", d.ID, err)
		return errors.Join(webhook.ErrSinkFailed, err)
	}
	return nil
}
