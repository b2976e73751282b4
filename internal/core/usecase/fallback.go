package usecase

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/kirillkom/talentoplus/internal/core/domain"
	"github.com/kirillkom/talentoplus/internal/core/ports"
)

const (
	SourceAI        = "ai"
	SourceHeuristic = "heuristic"
)

// ClassificationObserver receives classifier outcomes, typically for metrics.
type ClassificationObserver interface {
	RecordClassification(source, kind string)
	RecordClassifierFallback(reason string)
}

// FallbackClassifier tries the primary classifier once and substitutes the
// fallback on any failure. A nil primary means no external classifier is
// configured. Classify never returns an error.
type FallbackClassifier struct {
	primary  ports.QueryClassifier
	fallback ports.QueryClassifier
	logger   *zap.Logger
	observer ClassificationObserver
}

func NewFallbackClassifier(
	primary ports.QueryClassifier,
	fallback ports.QueryClassifier,
	logger *zap.Logger,
	observer ClassificationObserver,
) *FallbackClassifier {
	if fallback == nil {
		fallback = NewHeuristicClassifier()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FallbackClassifier{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
		observer: observer,
	}
}

func (c *FallbackClassifier) Classify(ctx context.Context, question string) (domain.CanonicalQuery, error) {
	if c.primary == nil {
		c.recordFallback("not_configured")
		return c.classifyFallback(ctx, question), nil
	}

	query, err := c.primary.Classify(ctx, question)
	if err != nil {
		reason := fallbackReason(err)
		c.logger.Warn("query_classifier_fallback",
			zap.String("reason", reason),
			zap.Error(err),
		)
		c.recordFallback(reason)
		return c.classifyFallback(ctx, question), nil
	}

	c.recordClassification(SourceAI, query)
	return query, nil
}

func (c *FallbackClassifier) classifyFallback(ctx context.Context, question string) domain.CanonicalQuery {
	query, err := c.fallback.Classify(ctx, question)
	if err != nil {
		// Only a misbehaving custom fallback gets here.
		c.logger.Error("query_classifier_fallback_failed", zap.Error(err))
		query = classifyByKeywords(question)
	}
	c.recordClassification(SourceHeuristic, query)
	return query
}

func (c *FallbackClassifier) recordClassification(source string, query domain.CanonicalQuery) {
	if c.observer != nil {
		c.observer.RecordClassification(source, query.Kind.String())
	}
}

func (c *FallbackClassifier) recordFallback(reason string) {
	if c.observer != nil {
		c.observer.RecordClassifierFallback(reason)
	}
}

func fallbackReason(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	case domain.IsKind(err, domain.ErrTemporary):
		return "unavailable"
	case domain.IsKind(err, domain.ErrInvalidInput):
		return "invalid_response"
	default:
		return "error"
	}
}
