package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/kirillkom/talentoplus/internal/core/domain"
)

type EmployeeRepository struct {
	db *sql.DB
}

func NewEmployeeRepository(db *sql.DB) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

const employeeColumns = `
e.id, e.document, e.first_name, e.last_name, e.email, e.phone, e.address, e.position, e.salary,
e.hire_date, e.status, e.education_level, e.profile, e.department_id, d.name, e.owner_id,
e.created_at, e.updated_at`

const employeeFrom = `
FROM employees e
JOIN departments d ON d.id = e.department_id`

func (r *EmployeeRepository) Create(ctx context.Context, employee *domain.Employee) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO employees (
	id, document, first_name, last_name, email, phone, address, position, salary,
	hire_date, status, education_level, profile, department_id, owner_id, created_at, updated_at
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)
`,
		employee.ID, employee.Document, employee.FirstName, employee.LastName, employee.Email,
		employee.Phone, employee.Address, employee.Position, employee.Salary, employee.HireDate,
		string(employee.Status), string(employee.EducationLevel), employee.Profile,
		employee.DepartmentID, employee.OwnerID, employee.CreatedAt, employee.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert employee: %w", err)
	}
	return nil
}

func (r *EmployeeRepository) Update(ctx context.Context, employee *domain.Employee) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE employees
SET document = $2, first_name = $3, last_name = $4, email = $5, phone = $6, address = $7,
	position = $8, salary = $9, hire_date = $10, status = $11, education_level = $12,
	profile = $13, department_id = $14, updated_at = $15
WHERE id = $1
`,
		employee.ID, employee.Document, employee.FirstName, employee.LastName, employee.Email,
		employee.Phone, employee.Address, employee.Position, employee.Salary, employee.HireDate,
		string(employee.Status), string(employee.EducationLevel), employee.Profile,
		employee.DepartmentID, employee.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update employee: %w", err)
	}
	return requireAffected(res, domain.ErrEmployeeNotFound, "update employee", employee.ID)
}

func (r *EmployeeRepository) Delete(ctx context.Context, scope domain.Scope, id string) error {
	res, err := r.db.ExecContext(ctx, `
DELETE FROM employees e
WHERE `+ownerFilter+` AND e.id = $2
`, scope.OwnerID, id)
	if err != nil {
		return fmt.Errorf("delete employee: %w", err)
	}
	return requireAffected(res, domain.ErrEmployeeNotFound, "delete employee", id)
}

func (r *EmployeeRepository) GetByID(ctx context.Context, scope domain.Scope, id string) (*domain.Employee, error) {
	row := r.db.QueryRowContext(ctx, `SELECT`+employeeColumns+employeeFrom+`
WHERE `+ownerFilter+` AND e.id = $2
`, scope.OwnerID, id)
	return scanOneEmployee(row, "id="+id)
}

func (r *EmployeeRepository) GetByDocument(ctx context.Context, scope domain.Scope, document string) (*domain.Employee, error) {
	row := r.db.QueryRowContext(ctx, `SELECT`+employeeColumns+employeeFrom+`
WHERE `+ownerFilter+` AND e.document = $2
`, scope.OwnerID, document)
	return scanOneEmployee(row, "document="+document)
}

func (r *EmployeeRepository) List(ctx context.Context, scope domain.Scope) ([]domain.Employee, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT`+employeeColumns+employeeFrom+`
WHERE `+ownerFilter+`
ORDER BY e.last_name, e.first_name, e.id
`, scope.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Employee, 0)
	for rows.Next() {
		employee, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, employee)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate employees: %w", err)
	}
	return out, nil
}

func (r *EmployeeRepository) CountAll(ctx context.Context, scope domain.Scope) (int, error) {
	return r.count(ctx, "all", `SELECT COUNT(*) FROM employees e WHERE `+ownerFilter, scope.OwnerID)
}

func (r *EmployeeRepository) CountByStatus(ctx context.Context, scope domain.Scope, status domain.EmployeeStatus) (int, error) {
	return r.count(ctx, "status", `
SELECT COUNT(*) FROM employees e
WHERE `+ownerFilter+` AND e.status = $2`, scope.OwnerID, string(status))
}

func (r *EmployeeRepository) CountByDepartmentName(ctx context.Context, scope domain.Scope, name string) (int, error) {
	return r.count(ctx, "department", `
SELECT COUNT(*)`+employeeFrom+`
WHERE `+ownerFilter+` AND LOWER(d.name) = LOWER($2)`, scope.OwnerID, name)
}

// CountByPosition uses strpos rather than LIKE so % and _ in the text are literal.
func (r *EmployeeRepository) CountByPosition(ctx context.Context, scope domain.Scope, text string) (int, error) {
	return r.count(ctx, "position", `
SELECT COUNT(*) FROM employees e
WHERE `+ownerFilter+` AND strpos(LOWER(e.position), LOWER($2)) > 0`, scope.OwnerID, text)
}

func (r *EmployeeRepository) count(ctx context.Context, filter, query string, args ...any) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count employees (%s): %w", filter, err)
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOneEmployee(row rowScanner, key string) (*domain.Employee, error) {
	employee, err := scanEmployee(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.WrapError(domain.ErrEmployeeNotFound, "get employee", fmt.Errorf("%s: %w", key, err))
		}
		return nil, err
	}
	return &employee, nil
}

func scanEmployee(row rowScanner) (domain.Employee, error) {
	var employee domain.Employee
	var status, education string
	err := row.Scan(
		&employee.ID, &employee.Document, &employee.FirstName, &employee.LastName, &employee.Email,
		&employee.Phone, &employee.Address, &employee.Position, &employee.Salary, &employee.HireDate,
		&status, &education, &employee.Profile, &employee.DepartmentID, &employee.DepartmentName,
		&employee.OwnerID, &employee.CreatedAt, &employee.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Employee{}, err
		}
		return domain.Employee{}, fmt.Errorf("scan employee: %w", err)
	}
	employee.Status = domain.EmployeeStatus(status)
	employee.EducationLevel = domain.EducationLevel(education)
	return employee, nil
}

func requireAffected(res sql.Result, kind error, operation, id string) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s rows affected: %w", operation, err)
	}
	if affected == 0 {
		return domain.WrapError(kind, operation, fmt.Errorf("id=%s", id))
	}
	return nil
}
