package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kirillkom/talentoplus/internal/core/domain"
	"github.com/kirillkom/talentoplus/internal/core/ports"
)

// ProcessImportUseCase applies an uploaded spreadsheet: each row upserts its
// department by name and its employee by document.
type ProcessImportUseCase struct {
	jobs        ports.ImportJobRepository
	storage     ports.ObjectStorage
	codec       ports.SpreadsheetCodec
	employees   ports.EmployeeRepository
	departments ports.DepartmentRepository
	logger      *zap.Logger
	now         func() time.Time
}

func NewProcessImportUseCase(
	jobs ports.ImportJobRepository,
	storage ports.ObjectStorage,
	codec ports.SpreadsheetCodec,
	employees ports.EmployeeRepository,
	departments ports.DepartmentRepository,
	logger *zap.Logger,
) *ProcessImportUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProcessImportUseCase{
		jobs:        jobs,
		storage:     storage,
		codec:       codec,
		employees:   employees,
		departments: departments,
		logger:      logger,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (uc *ProcessImportUseCase) ProcessByID(ctx context.Context, jobID string) error {
	job, err := uc.jobs.GetByID(ctx, jobID)
	if err != nil {
		return fmt.Errorf("fetch import job: %w", err)
	}
	if err := uc.jobs.UpdateStatus(ctx, jobID, domain.ImportProcessing, 0, ""); err != nil {
		return fmt.Errorf("set status=processing: %w", err)
	}

	rows, err := uc.apply(ctx, job)
	if err != nil {
		if failErr := uc.jobs.UpdateStatus(ctx, jobID, domain.ImportFailed, rows, err.Error()); failErr != nil {
			return fmt.Errorf("%w; mark failed status: %v", err, failErr)
		}
		return err
	}

	if err := uc.jobs.UpdateStatus(ctx, jobID, domain.ImportCompleted, rows, ""); err != nil {
		return fmt.Errorf("set status=completed: %w", err)
	}
	uc.logger.Info("import_completed", zap.String("job_id", jobID), zap.Int("rows", rows))
	return nil
}

func (uc *ProcessImportUseCase) apply(ctx context.Context, job *domain.ImportJob) (int, error) {
	reader, err := uc.storage.Open(ctx, job.StoragePath)
	if err != nil {
		return 0, fmt.Errorf("open spreadsheet: %w", err)
	}
	defer reader.Close()

	parsed, err := uc.codec.ReadEmployees(ctx, reader)
	if err != nil {
		return 0, fmt.Errorf("read spreadsheet: %w", err)
	}

	scope := domain.Scope{OwnerID: job.OwnerID}
	departments := make(map[string]*domain.Department)
	applied := 0
	for _, row := range parsed {
		if err := ctx.Err(); err != nil {
			return applied, err
		}
		department, err := uc.ensureDepartment(ctx, departments, row.DepartmentName)
		if err != nil {
			return applied, fmt.Errorf("row %d: %w", row.Line, err)
		}
		if err := uc.upsertEmployee(ctx, scope, row, department); err != nil {
			return applied, fmt.Errorf("row %d: %w", row.Line, err)
		}
		applied++
	}
	return applied, nil
}

func (uc *ProcessImportUseCase) ensureDepartment(
	ctx context.Context,
	cache map[string]*domain.Department,
	name string,
) (*domain.Department, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if department, ok := cache[key]; ok {
		return department, nil
	}

	department, err := uc.departments.GetByName(ctx, name)
	switch {
	case err == nil:
	case domain.IsKind(err, domain.ErrDepartmentNotFound):
		department = &domain.Department{ID: uuid.NewString(), Name: strings.TrimSpace(name)}
		if err := uc.departments.Create(ctx, department); err != nil {
			return nil, fmt.Errorf("create department %q: %w", name, err)
		}
	default:
		return nil, fmt.Errorf("lookup department %q: %w", name, err)
	}

	cache[key] = department
	return department, nil
}

func (uc *ProcessImportUseCase) upsertEmployee(
	ctx context.Context,
	scope domain.Scope,
	row domain.EmployeeRow,
	department *domain.Department,
) error {
	now := uc.now()
	existing, err := uc.employees.GetByDocument(ctx, scope, row.Document)
	isNew := false
	switch {
	case err == nil:
	case domain.IsKind(err, domain.ErrEmployeeNotFound):
		isNew = true
		existing = &domain.Employee{
			ID:        uuid.NewString(),
			Document:  row.Document,
			OwnerID:   scope.OwnerID,
			CreatedAt: now,
		}
	default:
		return fmt.Errorf("lookup employee %s: %w", row.Document, err)
	}

	existing.FirstName = row.FirstName
	existing.LastName = row.LastName
	existing.Address = row.Address
	existing.Phone = row.Phone
	existing.Email = row.Email
	existing.Position = row.Position
	existing.Salary = row.Salary
	existing.HireDate = row.HireDate
	existing.Status = row.Status
	existing.EducationLevel = row.EducationLevel
	existing.Profile = row.Profile
	existing.DepartmentID = department.ID
	existing.DepartmentName = department.Name
	existing.UpdatedAt = now

	if isNew {
		return uc.employees.Create(ctx, existing)
	}
	return uc.employees.Update(ctx, existing)
}
