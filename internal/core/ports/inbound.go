package ports

import (
	"context"
	"io"

	"github.com/kirillkom/talentoplus/internal/core/domain"
)

// QuestionAnswerer is the inbound contract for natural-language count questions.
type QuestionAnswerer interface {
	Ask(ctx context.Context, question string, scope domain.Scope) (*domain.QueryResult, error)
}

// DashboardReader serves the head-count cards.
type DashboardReader interface {
	Metrics(ctx context.Context, scope domain.Scope) (*domain.DashboardMetrics, error)
}

// EmployeeService is the inbound contract for employee maintenance.
type EmployeeService interface {
	List(ctx context.Context, scope domain.Scope) ([]domain.Employee, error)
	GetByID(ctx context.Context, scope domain.Scope, id string) (*domain.Employee, error)
	Create(ctx context.Context, scope domain.Scope, employee domain.Employee) (*domain.Employee, error)
	Update(ctx context.Context, scope domain.Scope, employee domain.Employee) (*domain.Employee, error)
	Delete(ctx context.Context, scope domain.Scope, id string) error
	Export(ctx context.Context, scope domain.Scope, w io.Writer) error
}

// DepartmentReader lists departments.
type DepartmentReader interface {
	List(ctx context.Context) ([]domain.Department, error)
}

// ImportUploader accepts spreadsheets for asynchronous import.
type ImportUploader interface {
	Upload(ctx context.Context, scope domain.Scope, filename string, body io.Reader) (*domain.ImportJob, error)
}

// ImportReader reads import job state.
type ImportReader interface {
	GetByID(ctx context.Context, id string) (*domain.ImportJob, error)
}

// ImportProcessor is the inbound contract for the import worker.
type ImportProcessor interface {
	ProcessByID(ctx context.Context, jobID string) error
}
