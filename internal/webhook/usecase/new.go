package usecase

import (
	"fmt"

	"webhook-receiver/internal/webhook"
	"webhook-receiver/pkg/log"
	"webhook-receiver/pkg/metrics"
)

// implUseCase is the private implementation of webhook.UseCase.
type implUseCase struct {
	l         log.Logger
	cfg       webhook.SecurityConfig
	allowlist webhook.Allowlist
	sink      webhook.Sink
	metrics   *metrics.Metrics
	stages    []stage
}

// New creates a webhook UseCase. The allowlist is parsed once here; a bad
// entry is a configuration error. m may be nil.
func New(l log.Logger, cfg webhook.SecurityConfig, sink webhook.Sink, m *metrics.Metrics) (webhook.UseCase, error) {
	if sink == nil {
		return nil, fmt.Errorf("webhook sink is required")
	}

	allowlist, err := webhook.ParseAllowlist(cfg.AllowedIPs)
	if err != nil {
		return nil, err
	}

	uc := &implUseCase{
		l:         l,
		cfg:       cfg,
		allowlist: allowlist,
		sink:      sink,
		metrics:   m,
	}
	uc.stages = []stage{
		{name: "origin", run: uc.checkOrigin},
		{name: "signature", run: uc.checkSignature},
		{name: "payload", run: uc.validatePayload},
		{name: "sink", run: uc.publish},
	}

	return uc, nil
}
