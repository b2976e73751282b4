package usecase

import (
	"context"
	"fmt"

	"github.com/kirillkom/talentoplus/internal/core/domain"
	"github.com/kirillkom/talentoplus/internal/core/ports"
)

type DashboardUseCase struct {
	store ports.CountStore
}

func NewDashboardUseCase(store ports.CountStore) *DashboardUseCase {
	return &DashboardUseCase{store: store}
}

func (uc *DashboardUseCase) Metrics(ctx context.Context, scope domain.Scope) (*domain.DashboardMetrics, error) {
	total, err := uc.store.CountAll(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("count all employees: %w", err)
	}
	vacation, err := uc.store.CountByStatus(ctx, scope, domain.EmployeeVacation)
	if err != nil {
		return nil, fmt.Errorf("count employees on vacation: %w", err)
	}
	active, err := uc.store.CountByStatus(ctx, scope, domain.EmployeeActive)
	if err != nil {
		return nil, fmt.Errorf("count active employees: %w", err)
	}

	return &domain.DashboardMetrics{
		Total:    total,
		Vacation: vacation,
		Active:   active,
	}, nil
}
