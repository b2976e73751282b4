package nats

import (
	"context"
	"errors"

	"github.com/nats-io/nats.go"

	"github.com/kirillkom/talentoplus/internal/core/domain"
	"github.com/kirillkom/talentoplus/internal/infrastructure/resilience"
)

var transientNATSErrors = []error{
	nats.ErrNoServers,
	nats.ErrTimeout,
	nats.ErrConnectionClosed,
	nats.ErrDisconnected,
	nats.ErrConnectionReconnecting,
}

func classifyNATSError(err error) resilience.Outcome {
	switch {
	case err == nil:
		return resilience.Outcome{}
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return resilience.Outcome{}
	case resilience.IsCircuitOpen(err):
		return resilience.Outcome{Retry: true, CountsAsFailure: true}
	}
	for _, transient := range transientNATSErrors {
		if errors.Is(err, transient) {
			return resilience.Outcome{Retry: true, CountsAsFailure: true}
		}
	}
	return resilience.Outcome{CountsAsFailure: true}
}

func wrapTemporary(err error) error {
	if err == nil || domain.IsKind(err, domain.ErrTemporary) {
		return err
	}
	if classifyNATSError(err).Retry {
		return domain.WrapError(domain.ErrTemporary, "nats publish", err)
	}
	return err
}
