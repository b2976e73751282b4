package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kirillkom/talentoplus/internal/core/domain"
)

func TestDepartmentGetByNameIsCaseInsensitive(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery(`WHERE LOWER\(name\) = LOWER\(\$1\)`).
		WithArgs("recursos humanos").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow("dep-2", "Recursos Humanos"))

	department, err := NewDepartmentRepository(db).GetByName(context.Background(), "  recursos humanos ")
	require.NoError(t, err)
	assert.Equal(t, &domain.Department{ID: "dep-2", Name: "Recursos Humanos"}, department)
}

func TestDepartmentGetByIDNotFound(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery(`FROM departments WHERE id`).WithArgs("nope").WillReturnError(sql.ErrNoRows)

	_, err := NewDepartmentRepository(db).GetByID(context.Background(), "nope")
	assert.True(t, domain.IsKind(err, domain.ErrDepartmentNotFound), "got %v", err)
}

func TestImportJobUpdateStatusNotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewImportJobRepository(db)
	fixed := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return fixed }

	mock.ExpectExec(`UPDATE import_jobs`).
		WithArgs("missing", "failed", 2, "row 3: boom", fixed).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateStatus(context.Background(), "missing", domain.ImportFailed, 2, "row 3: boom")
	assert.True(t, domain.IsKind(err, domain.ErrImportJobNotFound), "got %v", err)
}

func TestEnsureSchemaTakesAdvisoryLock(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectBegin()
	mock.ExpectExec(`SELECT pg_advisory_xact_lock`).WithArgs(schemaLockID).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS departments`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	require.NoError(t, EnsureSchema(context.Background(), db))
}
