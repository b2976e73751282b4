package gemini

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/kirillkom/talentoplus/internal/core/domain"
	"github.com/kirillkom/talentoplus/internal/infrastructure/resilience"
)

func classifyGeminiError(err error) resilience.Outcome {
	if err == nil {
		return resilience.Outcome{}
	}
	if errors.Is(err, context.Canceled) {
		return resilience.Outcome{}
	}
	if errors.Is(err, context.DeadlineExceeded) || resilience.IsCircuitOpen(err) {
		return resilience.Outcome{Retry: true, CountsAsFailure: true}
	}

	var statusErr *HTTPStatusError
	if errors.As(err, &statusErr) {
		if retryableStatus(statusErr.StatusCode) {
			return resilience.Outcome{Retry: true, CountsAsFailure: true}
		}
		return resilience.Outcome{}
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return resilience.Outcome{Retry: true, CountsAsFailure: true}
	}
	return resilience.Outcome{CountsAsFailure: true}
}

// wrapTemporary tags transient failures with domain.ErrTemporary so callers
// can tell an outage from a bad answer.
func wrapTemporary(err error) error {
	if err == nil || domain.IsKind(err, domain.ErrTemporary) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return err
	}
	if classifyGeminiError(err).Retry {
		return domain.WrapError(domain.ErrTemporary, "gemini classify", err)
	}
	return err
}

func retryableStatus(code int) bool {
	switch code {
	case http.StatusRequestTimeout, http.StatusTooManyRequests,
		http.StatusInternalServerError, http.StatusBadGateway,
		http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	default:
		return false
	}
}
