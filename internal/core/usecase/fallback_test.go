package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kirillkom/talentoplus/internal/core/domain"
)

type observerFake struct {
	classifications []string
	fallbacks       []string
}

func (o *observerFake) RecordClassification(source, kind string) {
	o.classifications = append(o.classifications, source+":"+kind)
}

func (o *observerFake) RecordClassifierFallback(reason string) {
	o.fallbacks = append(o.fallbacks, reason)
}

func TestFallbackClassifierWithoutPrimaryUsesHeuristic(t *testing.T) {
	observer := &observerFake{}
	classifier := NewFallbackClassifier(nil, NewHeuristicClassifier(), nil, observer)

	query, err := classifier.Classify(context.Background(), "¿Cuántos están inactivos?")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusQuery(domain.EmployeeInactive), query)
	assert.Equal(t, []string{"not_configured"}, observer.fallbacks)
	assert.Equal(t, []string{"heuristic:status"}, observer.classifications)
}

func TestFallbackClassifierReturnsPrimaryResult(t *testing.T) {
	observer := &observerFake{}
	primary := rawClassifierFake(`DEPARTAMENTO:"Ventas"`)
	classifier := NewFallbackClassifier(primary, nil, nil, observer)

	query, err := classifier.Classify(context.Background(), "¿Cuántos inactivos?")
	require.NoError(t, err)
	assert.Equal(t, domain.DepartmentQuery("Ventas"), query)
	assert.Empty(t, observer.fallbacks)
	assert.Equal(t, []string{"ai:department"}, observer.classifications)
}

func TestFallbackClassifierAbsorbsPrimaryErrors(t *testing.T) {
	cases := map[string]error{
		"timeout":          fmt.Errorf("call: %w", context.DeadlineExceeded),
		"canceled":         context.Canceled,
		"unavailable":      domain.WrapError(domain.ErrTemporary, "gemini", errors.New("503")),
		"invalid_response": domain.WrapError(domain.ErrInvalidInput, "gemini", errors.New("no text")),
		"error":            errors.New("boom"),
	}
	for reason, primaryErr := range cases {
		observer := &observerFake{}
		primary := &classifierFake{err: primaryErr}
		classifier := NewFallbackClassifier(primary, NewHeuristicClassifier(), nil, observer)

		query, err := classifier.Classify(context.Background(), "Total de empleados")
		require.NoError(t, err, reason)
		assert.Equal(t, domain.TotalQuery(), query, reason)
		assert.Equal(t, 1, primary.calls, reason)
		assert.Equal(t, []string{reason}, observer.fallbacks)
	}
}

func TestFallbackClassifierSurvivesCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	primary := &classifierFake{err: context.Canceled}
	query, err := NewFallbackClassifier(primary, nil, nil, nil).Classify(ctx, "vacaciones")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusQuery(domain.EmployeeVacation), query)
}
