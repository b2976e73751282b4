package usecase

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/kirillkom/talentoplus/internal/core/domain"
)

type employeeRepoFake struct {
	countStoreFake
	byID    map[string]*domain.Employee
	created []string
	updated []string
	deleted []string
	getErr  error
}

func newEmployeeRepoFake(employees ...domain.Employee) *employeeRepoFake {
	repo := &employeeRepoFake{byID: map[string]*domain.Employee{}}
	for i := range employees {
		employee := employees[i]
		repo.byID[employee.ID] = &employee
	}
	return repo
}

func (f *employeeRepoFake) Create(_ context.Context, employee *domain.Employee) error {
	copyEmployee := *employee
	f.byID[employee.ID] = &copyEmployee
	f.created = append(f.created, employee.ID)
	return nil
}

func (f *employeeRepoFake) Update(_ context.Context, employee *domain.Employee) error {
	copyEmployee := *employee
	f.byID[employee.ID] = &copyEmployee
	f.updated = append(f.updated, employee.ID)
	return nil
}

func (f *employeeRepoFake) Delete(_ context.Context, _ domain.Scope, id string) error {
	delete(f.byID, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *employeeRepoFake) GetByID(_ context.Context, _ domain.Scope, id string) (*domain.Employee, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	employee, ok := f.byID[id]
	if !ok {
		return nil, domain.WrapError(domain.ErrEmployeeNotFound, "get employee", fmt.Errorf("id=%s", id))
	}
	copyEmployee := *employee
	return &copyEmployee, nil
}

func (f *employeeRepoFake) GetByDocument(_ context.Context, _ domain.Scope, document string) (*domain.Employee, error) {
	for _, employee := range f.byID {
		if employee.Document == document {
			copyEmployee := *employee
			return &copyEmployee, nil
		}
	}
	return nil, domain.WrapError(domain.ErrEmployeeNotFound, "get employee", fmt.Errorf("document=%s", document))
}

func (f *employeeRepoFake) List(context.Context, domain.Scope) ([]domain.Employee, error) {
	out := make([]domain.Employee, 0, len(f.byID))
	for _, employee := range f.byID {
		out = append(out, *employee)
	}
	return out, nil
}

type departmentRepoFake struct {
	byID    map[string]domain.Department
	created []string
}

func newDepartmentRepoFake(departments ...domain.Department) *departmentRepoFake {
	repo := &departmentRepoFake{byID: map[string]domain.Department{}}
	for _, department := range departments {
		repo.byID[department.ID] = department
	}
	return repo
}

func (f *departmentRepoFake) List(context.Context) ([]domain.Department, error) {
	out := make([]domain.Department, 0, len(f.byID))
	for _, department := range f.byID {
		out = append(out, department)
	}
	return out, nil
}

func (f *departmentRepoFake) GetByID(_ context.Context, id string) (*domain.Department, error) {
	department, ok := f.byID[id]
	if !ok {
		return nil, domain.WrapError(domain.ErrDepartmentNotFound, "get department", fmt.Errorf("id=%s", id))
	}
	return &department, nil
}

func (f *departmentRepoFake) GetByName(_ context.Context, name string) (*domain.Department, error) {
	for _, department := range f.byID {
		if strings.EqualFold(department.Name, strings.TrimSpace(name)) {
			found := department
			return &found, nil
		}
	}
	return nil, domain.WrapError(domain.ErrDepartmentNotFound, "get department", fmt.Errorf("name=%s", name))
}

func (f *departmentRepoFake) Create(_ context.Context, department *domain.Department) error {
	f.byID[department.ID] = *department
	f.created = append(f.created, department.Name)
	return nil
}

type statusUpdate struct {
	status domain.ImportStatus
	rows   int
	errMsg string
}

type importJobRepoFake struct {
	jobs    map[string]*domain.ImportJob
	updates []statusUpdate
}

func (f *importJobRepoFake) Create(_ context.Context, job *domain.ImportJob) error {
	if f.jobs == nil {
		f.jobs = map[string]*domain.ImportJob{}
	}
	copyJob := *job
	f.jobs[job.ID] = &copyJob
	return nil
}

func (f *importJobRepoFake) GetByID(_ context.Context, id string) (*domain.ImportJob, error) {
	job, ok := f.jobs[id]
	if !ok {
		return nil, domain.WrapError(domain.ErrImportJobNotFound, "get import job", fmt.Errorf("id=%s", id))
	}
	copyJob := *job
	return &copyJob, nil
}

func (f *importJobRepoFake) UpdateStatus(_ context.Context, _ string, status domain.ImportStatus, rows int, errMessage string) error {
	f.updates = append(f.updates, statusUpdate{status: status, rows: rows, errMsg: errMessage})
	return nil
}

type storageFake struct {
	files map[string][]byte
}

func (f *storageFake) Save(_ context.Context, key string, data io.Reader) error {
	if f.files == nil {
		f.files = map[string][]byte{}
	}
	raw, err := io.ReadAll(data)
	if err != nil {
		return err
	}
	f.files[key] = raw
	return nil
}

func (f *storageFake) Open(_ context.Context, key string) (io.ReadCloser, error) {
	raw, ok := f.files[key]
	if !ok {
		return nil, fmt.Errorf("open file: %s missing", key)
	}
	return io.NopCloser(bytes.NewReader(raw)), nil
}

type queueFake struct {
	published []string
	err       error
}

func (f *queueFake) PublishImportRequested(_ context.Context, jobID string) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, jobID)
	return nil
}

func (f *queueFake) SubscribeImportRequested(context.Context, func(context.Context, string) error) error {
	return nil
}

type codecFake struct {
	rows    []domain.EmployeeRow
	readErr error
	written []domain.Employee
}

func (f *codecFake) ReadEmployees(context.Context, io.Reader) ([]domain.EmployeeRow, error) {
	return f.rows, f.readErr
}

func (f *codecFake) WriteEmployees(_ context.Context, w io.Writer, employees []domain.Employee) error {
	f.written = employees
	_, err := w.Write([]byte("xlsx"))
	return err
}
