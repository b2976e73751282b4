package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kirillkom/talentoplus/internal/core/domain"
	"github.com/kirillkom/talentoplus/internal/core/ports"
)

type ImportEmployeesUseCase struct {
	jobs    ports.ImportJobRepository
	storage ports.ObjectStorage
	queue   ports.MessageQueue
}

func NewImportEmployeesUseCase(
	jobs ports.ImportJobRepository,
	storage ports.ObjectStorage,
	queue ports.MessageQueue,
) *ImportEmployeesUseCase {
	return &ImportEmployeesUseCase{
		jobs:    jobs,
		storage: storage,
		queue:   queue,
	}
}

func (uc *ImportEmployeesUseCase) Upload(
	ctx context.Context,
	scope domain.Scope,
	filename string,
	body io.Reader,
) (*domain.ImportJob, error) {
	if !strings.EqualFold(filepath.Ext(filename), ".xlsx") {
		return nil, domain.WrapError(domain.ErrInvalidInput, "upload import", errors.New("only .xlsx spreadsheets are supported"))
	}

	id := uuid.NewString()
	storageKey := fmt.Sprintf("%s_%s", id, sanitizeFilename(filename))
	now := time.Now().UTC()

	if err := uc.storage.Save(ctx, storageKey, body); err != nil {
		return nil, fmt.Errorf("save to object storage: %w", err)
	}

	job := &domain.ImportJob{
		ID:          id,
		Filename:    filename,
		StoragePath: storageKey,
		OwnerID:     scope.OwnerID,
		Status:      domain.ImportUploaded,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.jobs.Create(ctx, job); err != nil {
		return nil, fmt.Errorf("create import job: %w", err)
	}

	if err := uc.queue.PublishImportRequested(ctx, job.ID); err != nil {
		return nil, fmt.Errorf("publish import event: %w", err)
	}
	return job, nil
}

func (uc *ImportEmployeesUseCase) GetByID(ctx context.Context, id string) (*domain.ImportJob, error) {
	return uc.jobs.GetByID(ctx, id)
}

func sanitizeFilename(name string) string {
	base := filepath.Base(name)
	base = strings.ReplaceAll(base, " ", "_")
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z':
			return r
		case r >= 'A' && r <= 'Z':
			return r
		case r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, base)
	if base == "" || base == "." {
		return "employees.xlsx"
	}
	return base
}
