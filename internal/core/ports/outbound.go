package ports

import (
	"context"
	"io"

	"github.com/kirillkom/talentoplus/internal/core/domain"
)

// CountStore answers exact filtered head counts. It is the only source of
// numbers behind natural-language answers.
type CountStore interface {
	CountAll(ctx context.Context, scope domain.Scope) (int, error)
	CountByStatus(ctx context.Context, scope domain.Scope, status domain.EmployeeStatus) (int, error)
	// CountByDepartmentName matches the department name case-insensitively.
	CountByDepartmentName(ctx context.Context, scope domain.Scope, name string) (int, error)
	// CountByPosition matches a case-insensitive substring of the position.
	CountByPosition(ctx context.Context, scope domain.Scope, text string) (int, error)
}

// QueryClassifier turns a free-form question into a canonical count query.
type QueryClassifier interface {
	Classify(ctx context.Context, question string) (domain.CanonicalQuery, error)
}

// EmployeeRepository persists employee records.
type EmployeeRepository interface {
	CountStore

	Create(ctx context.Context, employee *domain.Employee) error
	Update(ctx context.Context, employee *domain.Employee) error
	Delete(ctx context.Context, scope domain.Scope, id string) error
	GetByID(ctx context.Context, scope domain.Scope, id string) (*domain.Employee, error)
	GetByDocument(ctx context.Context, scope domain.Scope, document string) (*domain.Employee, error)
	List(ctx context.Context, scope domain.Scope) ([]domain.Employee, error)
}

// DepartmentRepository persists departments.
type DepartmentRepository interface {
	List(ctx context.Context) ([]domain.Department, error)
	GetByID(ctx context.Context, id string) (*domain.Department, error)
	GetByName(ctx context.Context, name string) (*domain.Department, error)
	Create(ctx context.Context, department *domain.Department) error
}

// ImportJobRepository persists spreadsheet import jobs.
type ImportJobRepository interface {
	Create(ctx context.Context, job *domain.ImportJob) error
	GetByID(ctx context.Context, id string) (*domain.ImportJob, error)
	UpdateStatus(ctx context.Context, id string, status domain.ImportStatus, rows int, errMessage string) error
}

// ObjectStorage stores uploaded spreadsheets.
type ObjectStorage interface {
	Save(ctx context.Context, key string, data io.Reader) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}

// MessageQueue publishes/consumes import events.
type MessageQueue interface {
	PublishImportRequested(ctx context.Context, jobID string) error
	SubscribeImportRequested(ctx context.Context, handler func(context.Context, string) error) error
}

// SpreadsheetCodec reads and writes the employee spreadsheet layout.
type SpreadsheetCodec interface {
	ReadEmployees(ctx context.Context, r io.Reader) ([]domain.EmployeeRow, error)
	WriteEmployees(ctx context.Context, w io.Writer, employees []domain.Employee) error
}
