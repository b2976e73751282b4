package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/kirillkom/talentoplus/internal/core/domain"
)

type DepartmentRepository struct {
	db *sql.DB
}

func NewDepartmentRepository(db *sql.DB) *DepartmentRepository {
	return &DepartmentRepository{db: db}
}

func (r *DepartmentRepository) List(ctx context.Context) ([]domain.Department, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM departments ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list departments: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Department, 0)
	for rows.Next() {
		var department domain.Department
		if err := rows.Scan(&department.ID, &department.Name); err != nil {
			return nil, fmt.Errorf("scan department: %w", err)
		}
		out = append(out, department)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate departments: %w", err)
	}
	return out, nil
}

func (r *DepartmentRepository) GetByID(ctx context.Context, id string) (*domain.Department, error) {
	return r.getOne(ctx, `SELECT id, name FROM departments WHERE id = $1`, id)
}

func (r *DepartmentRepository) GetByName(ctx context.Context, name string) (*domain.Department, error) {
	return r.getOne(ctx, `SELECT id, name FROM departments WHERE LOWER(name) = LOWER($1)`, strings.TrimSpace(name))
}

func (r *DepartmentRepository) Create(ctx context.Context, department *domain.Department) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO departments (id, name) VALUES ($1, $2)`, department.ID, department.Name)
	if err != nil {
		return fmt.Errorf("insert department: %w", err)
	}
	return nil
}

func (r *DepartmentRepository) getOne(ctx context.Context, query, arg string) (*domain.Department, error) {
	var department domain.Department
	err := r.db.QueryRowContext(ctx, query, arg).Scan(&department.ID, &department.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.WrapError(domain.ErrDepartmentNotFound, "get department", fmt.Errorf("%s: %w", arg, err))
		}
		return nil, fmt.Errorf("scan department: %w", err)
	}
	return &department, nil
}
