package resilience

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
)

// Outcome tells the executor what to do with a failed call.
type Outcome struct {
	Retry bool
	// CountsAsFailure feeds the breaker; caller mistakes (4xx, canceled
	// contexts) should not trip it.
	CountsAsFailure bool
}

type Classifier func(err error) Outcome

type Executor struct {
	cfg    Config
	logger *zap.Logger

	mu       sync.Mutex
	breakers map[string]*gobreaker.CircuitBreaker[struct{}]
}

func NewExecutor(cfg Config, logger *zap.Logger) *Executor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Executor{
		cfg:      cfg.withDefaults(),
		logger:   logger,
		breakers: make(map[string]*gobreaker.CircuitBreaker[struct{}]),
	}
}

func (e *Executor) Execute(ctx context.Context, operation string, fn func(context.Context) error, classify Classifier) error {
	if fn == nil {
		return errors.New("resilience: nil operation")
	}
	operation = strings.TrimSpace(operation)
	if operation == "" {
		operation = "unknown"
	}
	if classify == nil {
		classify = countEveryFailure
	}

	if !e.cfg.BreakerEnabled {
		return e.attempt(ctx, operation, fn, classify)
	}
	_, err := e.breaker(operation, classify).Execute(func() (struct{}, error) {
		return struct{}{}, e.attempt(ctx, operation, fn, classify)
	})
	return err
}

func (e *Executor) attempt(ctx context.Context, operation string, fn func(context.Context) error, classify Classifier) error {
	wait := e.cfg.InitialBackoff
	var lastErr error

	for n := 1; n <= e.cfg.MaxAttempts; n++ {
		if err := ctx.Err(); err != nil {
			if lastErr != nil {
				return lastErr
			}
			return err
		}

		lastErr = fn(ctx)
		if lastErr == nil {
			return nil
		}
		if !classify(lastErr).Retry || n == e.cfg.MaxAttempts {
			return lastErr
		}

		e.logger.Warn("retry_attempt",
			zap.String("operation", operation),
			zap.Int("attempt", n),
			zap.Int("max_attempts", e.cfg.MaxAttempts),
			zap.Duration("backoff", wait),
			zap.Error(lastErr),
		)

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return fmt.Errorf("%w (retry aborted: %v)", lastErr, ctx.Err())
		case <-timer.C:
		}
		wait = min(time.Duration(float64(wait)*e.cfg.Multiplier), e.cfg.MaxBackoff)
	}
	return lastErr
}

func (e *Executor) breaker(operation string, classify Classifier) *gobreaker.CircuitBreaker[struct{}] {
	e.mu.Lock()
	defer e.mu.Unlock()

	if cb, ok := e.breakers[operation]; ok {
		return cb
	}
	cb := gobreaker.NewCircuitBreaker[struct{}](gobreaker.Settings{
		Name:        operation,
		MaxRequests: e.cfg.BreakerProbeCalls,
		Timeout:     e.cfg.BreakerOpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < e.cfg.BreakerMinRequests {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= e.cfg.BreakerFailureRatio
		},
		IsSuccessful: func(err error) bool {
			return err == nil || !classify(err).CountsAsFailure
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			e.logger.Warn("circuit_breaker_state_change",
				zap.String("operation", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})
	e.breakers[operation] = cb
	return cb
}

// IsCircuitOpen reports whether err was produced by a breaker rejecting the call.
func IsCircuitOpen(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}

func countEveryFailure(error) Outcome {
	return Outcome{CountsAsFailure: true}
}
