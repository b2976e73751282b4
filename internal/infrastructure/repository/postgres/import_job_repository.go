package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/kirillkom/talentoplus/internal/core/domain"
)

type ImportJobRepository struct {
	db  *sql.DB
	now func() time.Time
}

func NewImportJobRepository(db *sql.DB) *ImportJobRepository {
	return &ImportJobRepository{db: db, now: func() time.Time { return time.Now().UTC() }}
}

func (r *ImportJobRepository) Create(ctx context.Context, job *domain.ImportJob) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO import_jobs (id, filename, storage_path, owner_id, status, rows_processed, error_message, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
`, job.ID, job.Filename, job.StoragePath, job.OwnerID, string(job.Status), job.Rows, job.Error, job.CreatedAt, job.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert import job: %w", err)
	}
	return nil
}

func (r *ImportJobRepository) GetByID(ctx context.Context, id string) (*domain.ImportJob, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, filename, storage_path, owner_id, status, rows_processed, error_message, created_at, updated_at
FROM import_jobs
WHERE id = $1
`, id)

	var job domain.ImportJob
	var status string
	err := row.Scan(&job.ID, &job.Filename, &job.StoragePath, &job.OwnerID, &status, &job.Rows, &job.Error, &job.CreatedAt, &job.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.WrapError(domain.ErrImportJobNotFound, "get import job", fmt.Errorf("id=%s: %w", id, err))
		}
		return nil, fmt.Errorf("scan import job: %w", err)
	}
	job.Status = domain.ImportStatus(status)
	return &job, nil
}

func (r *ImportJobRepository) UpdateStatus(ctx context.Context, id string, status domain.ImportStatus, rows int, errMessage string) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE import_jobs
SET status = $2, rows_processed = $3, error_message = $4, updated_at = $5
WHERE id = $1
`, id, string(status), rows, errMessage, r.now())
	if err != nil {
		return fmt.Errorf("update import job status: %w", err)
	}
	return requireAffected(res, domain.ErrImportJobNotFound, "update import job status", id)
}
