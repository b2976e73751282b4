package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kirillkom/talentoplus/internal/core/domain"
	"github.com/kirillkom/talentoplus/internal/core/ports"
)

type EmployeeUseCase struct {
	employees   ports.EmployeeRepository
	departments ports.DepartmentRepository
	codec       ports.SpreadsheetCodec
	now         func() time.Time
}

func NewEmployeeUseCase(
	employees ports.EmployeeRepository,
	departments ports.DepartmentRepository,
	codec ports.SpreadsheetCodec,
) *EmployeeUseCase {
	return &EmployeeUseCase{
		employees:   employees,
		departments: departments,
		codec:       codec,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (uc *EmployeeUseCase) List(ctx context.Context, scope domain.Scope) ([]domain.Employee, error) {
	employees, err := uc.employees.List(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	return employees, nil
}

func (uc *EmployeeUseCase) GetByID(ctx context.Context, scope domain.Scope, id string) (*domain.Employee, error) {
	return uc.employees.GetByID(ctx, scope, id)
}

func (uc *EmployeeUseCase) Create(ctx context.Context, scope domain.Scope, employee domain.Employee) (*domain.Employee, error) {
	if err := validateEmployee(&employee); err != nil {
		return nil, err
	}
	department, err := uc.departments.GetByID(ctx, employee.DepartmentID)
	if err != nil {
		return nil, uc.departmentError("create employee", err)
	}

	now := uc.now()
	employee.ID = uuid.NewString()
	employee.OwnerID = scope.OwnerID
	employee.DepartmentName = department.Name
	employee.CreatedAt = now
	employee.UpdatedAt = now

	if err := uc.employees.Create(ctx, &employee); err != nil {
		return nil, fmt.Errorf("create employee: %w", err)
	}
	return &employee, nil
}

func (uc *EmployeeUseCase) Update(ctx context.Context, scope domain.Scope, employee domain.Employee) (*domain.Employee, error) {
	if err := validateEmployee(&employee); err != nil {
		return nil, err
	}
	existing, err := uc.employees.GetByID(ctx, scope, employee.ID)
	if err != nil {
		return nil, err
	}
	department, err := uc.departments.GetByID(ctx, employee.DepartmentID)
	if err != nil {
		return nil, uc.departmentError("update employee", err)
	}

	employee.OwnerID = existing.OwnerID
	employee.CreatedAt = existing.CreatedAt
	employee.UpdatedAt = uc.now()
	employee.DepartmentName = department.Name

	if err := uc.employees.Update(ctx, &employee); err != nil {
		return nil, fmt.Errorf("update employee: %w", err)
	}
	return &employee, nil
}

// Delete is a no-op for unknown ids.
func (uc *EmployeeUseCase) Delete(ctx context.Context, scope domain.Scope, id string) error {
	if _, err := uc.employees.GetByID(ctx, scope, id); err != nil {
		if domain.IsKind(err, domain.ErrEmployeeNotFound) {
			return nil
		}
		return fmt.Errorf("load employee for delete: %w", err)
	}
	if err := uc.employees.Delete(ctx, scope, id); err != nil {
		return fmt.Errorf("delete employee: %w", err)
	}
	return nil
}

func (uc *EmployeeUseCase) Export(ctx context.Context, scope domain.Scope, w io.Writer) error {
	employees, err := uc.employees.List(ctx, scope)
	if err != nil {
		return fmt.Errorf("list employees for export: %w", err)
	}
	if err := uc.codec.WriteEmployees(ctx, w, employees); err != nil {
		return fmt.Errorf("write employee spreadsheet: %w", err)
	}
	return nil
}

func (uc *EmployeeUseCase) departmentError(operation string, err error) error {
	if domain.IsKind(err, domain.ErrDepartmentNotFound) {
		return domain.WrapError(domain.ErrInvalidInput, operation, err)
	}
	return fmt.Errorf("%s: load department: %w", operation, err)
}

func validateEmployee(employee *domain.Employee) error {
	employee.Document = strings.TrimSpace(employee.Document)
	employee.FirstName = strings.TrimSpace(employee.FirstName)
	employee.LastName = strings.TrimSpace(employee.LastName)
	employee.Email = strings.TrimSpace(employee.Email)

	var problems []string
	if employee.Document == "" {
		problems = append(problems, "document is required")
	}
	if employee.FirstName == "" || employee.LastName == "" {
		problems = append(problems, "first and last name are required")
	}
	if _, err := mail.ParseAddress(employee.Email); err != nil {
		problems = append(problems, "email is invalid")
	}
	if strings.TrimSpace(employee.DepartmentID) == "" {
		problems = append(problems, "department_id is required")
	}
	if employee.Salary < 0 {
		problems = append(problems, "salary must not be negative")
	}
	if employee.Status == "" {
		employee.Status = domain.EmployeeActive
	}
	if !employee.Status.Valid() {
		problems = append(problems, "status is invalid")
	}
	if employee.EducationLevel == "" {
		employee.EducationLevel = domain.EducationNone
	}
	if len(problems) > 0 {
		return domain.WrapError(domain.ErrInvalidInput, "validate employee", errors.New(strings.Join(problems, "; ")))
	}
	return nil
}
