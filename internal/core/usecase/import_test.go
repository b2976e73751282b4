package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kirillkom/talentoplus/internal/core/domain"
)

func TestImportUploadStoresCreatesAndPublishes(t *testing.T) {
	jobs := &importJobRepoFake{}
	storage := &storageFake{}
	queue := &queueFake{}
	uc := NewImportEmployeesUseCase(jobs, storage, queue)

	job, err := uc.Upload(context.Background(), domain.Scope{OwnerID: "owner-a"}, "nómina 2024.xlsx", strings.NewReader("data"))
	require.NoError(t, err)

	assert.Equal(t, domain.ImportUploaded, job.Status)
	assert.Equal(t, "owner-a", job.OwnerID)
	assert.True(t, strings.HasSuffix(job.StoragePath, "_n_mina_2024.xlsx"), job.StoragePath)
	assert.Equal(t, []byte("data"), storage.files[job.StoragePath])
	assert.Equal(t, []string{job.ID}, queue.published)
	assert.Contains(t, jobs.jobs, job.ID)
}

func TestImportUploadRejectsNonSpreadsheet(t *testing.T) {
	uc := NewImportEmployeesUseCase(&importJobRepoFake{}, &storageFake{}, &queueFake{})
	_, err := uc.Upload(context.Background(), domain.Scope{}, "employees.csv", strings.NewReader("a,b"))
	assert.True(t, domain.IsKind(err, domain.ErrInvalidInput))
}

func TestImportUploadPublishError(t *testing.T) {
	uc := NewImportEmployeesUseCase(&importJobRepoFake{}, &storageFake{}, &queueFake{err: errors.New("nats down")})
	_, err := uc.Upload(context.Background(), domain.Scope{}, "employees.xlsx", strings.NewReader("x"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "publish import event")
}

func newProcessFixture(rows []domain.EmployeeRow, readErr error) (*ProcessImportUseCase, *importJobRepoFake, *employeeRepoFake, *departmentRepoFake) {
	jobs := &importJobRepoFake{jobs: map[string]*domain.ImportJob{
		"job-1": {ID: "job-1", StoragePath: "job-1.xlsx", OwnerID: "owner-a"},
	}}
	storage := &storageFake{files: map[string][]byte{"job-1.xlsx": []byte("xlsx")}}
	existing := domain.Employee{ID: "emp-1", Document: "1001", FirstName: "Old", OwnerID: "owner-a"}
	employees := newEmployeeRepoFake(existing)
	departments := newDepartmentRepoFake(domain.Department{ID: "dep-1", Name: "Tecnología"})
	uc := NewProcessImportUseCase(jobs, storage, &codecFake{rows: rows, readErr: readErr}, employees, departments, nil)
	return uc, jobs, employees, departments
}

func TestProcessImportUpsertsRows(t *testing.T) {
	hired := time.Date(2021, 3, 1, 0, 0, 0, 0, time.UTC)
	rows := []domain.EmployeeRow{
		{Line: 2, Document: "1001", FirstName: "Ana", DepartmentName: "tecnología", Status: domain.EmployeeActive, HireDate: hired},
		{Line: 3, Document: "1002", FirstName: "Luis", DepartmentName: "Operaciones", Status: domain.EmployeeInactive},
		{Line: 4, Document: "1003", FirstName: "Eva", DepartmentName: "operaciones ", Status: domain.EmployeeVacation},
	}
	uc, jobs, employees, departments := newProcessFixture(rows, nil)

	require.NoError(t, uc.ProcessByID(context.Background(), "job-1"))

	assert.Equal(t, []statusUpdate{
		{status: domain.ImportProcessing},
		{status: domain.ImportCompleted, rows: 3},
	}, jobs.updates)
	assert.Equal(t, []string{"emp-1"}, employees.updated)
	assert.Len(t, employees.created, 2)
	assert.Equal(t, []string{"Operaciones"}, departments.created)

	updated := employees.byID["emp-1"]
	assert.Equal(t, "Ana", updated.FirstName)
	assert.Equal(t, "dep-1", updated.DepartmentID)
	assert.Equal(t, hired, updated.HireDate)
	for _, id := range employees.created {
		assert.Equal(t, "owner-a", employees.byID[id].OwnerID)
		assert.Equal(t, "Operaciones", employees.byID[id].DepartmentName)
	}
}

func TestProcessImportMarksFailedOnReadError(t *testing.T) {
	uc, jobs, _, _ := newProcessFixture(nil, domain.WrapError(domain.ErrInvalidInput, "read", errors.New("bad header")))

	err := uc.ProcessByID(context.Background(), "job-1")
	require.Error(t, err)
	require.Len(t, jobs.updates, 2)
	assert.Equal(t, domain.ImportFailed, jobs.updates[1].status)
	assert.Contains(t, jobs.updates[1].errMsg, "bad header")
}

func TestProcessImportUnknownJob(t *testing.T) {
	uc, jobs, _, _ := newProcessFixture(nil, nil)
	err := uc.ProcessByID(context.Background(), "missing")
	assert.True(t, domain.IsKind(err, domain.ErrImportJobNotFound))
	assert.Empty(t, jobs.updates)
}
