package httpadapter

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/kirillkom/talentoplus/internal/config"
	"github.com/kirillkom/talentoplus/internal/core/domain"
)

type questionsFake struct {
	gotQuestion string
	gotScope    domain.Scope
	err         error
}

func (f *questionsFake) Ask(_ context.Context, question string, scope domain.Scope) (*domain.QueryResult, error) {
	f.gotQuestion = question
	f.gotScope = scope
	if f.err != nil {
		return nil, f.err
	}
	return &domain.QueryResult{Question: question, SQLLikeQuery: "contar todos los empleados", Result: "5"}, nil
}

type dashboardFake struct{}

func (dashboardFake) Metrics(context.Context, domain.Scope) (*domain.DashboardMetrics, error) {
	return &domain.DashboardMetrics{Total: 5, Vacation: 1, Active: 3}, nil
}

type employeesFake struct {
	created domain.Employee
	err     error
}

func (f *employeesFake) List(context.Context, domain.Scope) ([]domain.Employee, error) {
	return []domain.Employee{{ID: "emp-1", FirstName: "Ana"}}, f.err
}

func (f *employeesFake) GetByID(_ context.Context, _ domain.Scope, id string) (*domain.Employee, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Employee{ID: id}, nil
}

func (f *employeesFake) Create(_ context.Context, scope domain.Scope, employee domain.Employee) (*domain.Employee, error) {
	if f.err != nil {
		return nil, f.err
	}
	employee.ID = "emp-new"
	employee.OwnerID = scope.OwnerID
	f.created = employee
	return &employee, nil
}

func (f *employeesFake) Update(_ context.Context, _ domain.Scope, employee domain.Employee) (*domain.Employee, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &employee, nil
}

func (f *employeesFake) Delete(context.Context, domain.Scope, string) error {
	return f.err
}

func (f *employeesFake) Export(_ context.Context, _ domain.Scope, w io.Writer) error {
	if f.err != nil {
		return f.err
	}
	_, err := w.Write([]byte("PK-xlsx"))
	return err
}

type departmentsFake struct{}

func (departmentsFake) List(context.Context) ([]domain.Department, error) {
	return []domain.Department{{ID: "dep-1", Name: "Tecnología"}}, nil
}

type importsFake struct {
	gotFilename string
	gotBody     string
}

func (f *importsFake) Upload(_ context.Context, scope domain.Scope, filename string, body io.Reader) (*domain.ImportJob, error) {
	raw, err := io.ReadAll(body)
	if err != nil {
		return nil, err
	}
	f.gotFilename = filename
	f.gotBody = string(raw)
	return &domain.ImportJob{ID: "job-1", Filename: filename, OwnerID: scope.OwnerID, Status: domain.ImportUploaded}, nil
}

type importJobsFake struct{}

func (importJobsFake) GetByID(_ context.Context, id string) (*domain.ImportJob, error) {
	if id != "job-1" {
		return nil, domain.WrapError(domain.ErrImportJobNotFound, "get import job", errors.New("id="+id))
	}
	return &domain.ImportJob{ID: id, OwnerID: "owner-a", Status: domain.ImportCompleted, Rows: 3}, nil
}

type testRouter struct {
	handler   http.Handler
	questions *questionsFake
	employees *employeesFake
	imports   *importsFake
}

func newTestRouter(cfg config.Config) testRouter {
	tr := testRouter{
		questions: &questionsFake{},
		employees: &employeesFake{},
		imports:   &importsFake{},
	}
	tr.handler = NewRouter(cfg, Dependencies{
		Questions:   tr.questions,
		Dashboard:   dashboardFake{},
		Employees:   tr.employees,
		Departments: departmentsFake{},
		Imports:     tr.imports,
		ImportJobs:  importJobsFake{},
	}).Handler()
	return tr
}
