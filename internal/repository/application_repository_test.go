package repository

import (
	"context"
	"testing"
	"time"

	"job-portal/internal/domain/application"
	"job-portal/internal/domain/job"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var applicationCols = []string{"id", "job_id", "applicant_id", "status", "applied_at"}

func TestApplicationRepository_Create(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostgresApplicationRepository(db)
	now := time.Now().UTC()

	mock.ExpectQuery(`INSERT INTO job_applications`).
		WithArgs(int64(10), int64(3), "Pending").
		WillReturnRows(sqlmock.NewRows(applicationCols).AddRow(int64(1), int64(10), int64(3), "Pending", now))

	got, err := repo.Create(context.Background(), 10, 3)
	require.NoError(t, err)
	assert.Equal(t, application.StatusPending, got.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplicationRepository_CreateDuplicate(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostgresApplicationRepository(db)

	mock.ExpectQuery(`INSERT INTO job_applications`).WillReturnError(uniqueViolation("job_applications_job_applicant_key"))

	_, err := repo.Create(context.Background(), 10, 3)
	assert.ErrorIs(t, err, application.ErrDuplicate)
}

func TestApplicationRepository_CreateForDeletedJob(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostgresApplicationRepository(db)

	mock.ExpectQuery(`INSERT INTO job_applications`).WillReturnError(fkViolation())

	_, err := repo.Create(context.Background(), 10, 3)
	assert.ErrorIs(t, err, job.ErrNotFound)
}

func TestApplicationRepository_GetScoped(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostgresApplicationRepository(db)
	now := time.Now().UTC()

	mock.ExpectQuery(`JOIN jobs j ON j.id = a.job_id\s+WHERE a.id = \$1`).
		WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows(append(append([]string{}, applicationCols...), "company_id")).
			AddRow(int64(4), int64(10), int64(3), "Accepted", now, int64(77)))

	got, err := repo.GetScoped(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, int64(77), got.JobCompanyID)
	assert.Equal(t, application.StatusAccepted, got.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplicationRepository_GetScopedNotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostgresApplicationRepository(db)

	mock.ExpectQuery(`FROM job_applications a`).WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows(append(append([]string{}, applicationCols...), "company_id")))

	_, err := repo.GetScoped(context.Background(), 4)
	assert.ErrorIs(t, err, application.ErrNotFound)
}

func TestApplicationRepository_UpdateStatus(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostgresApplicationRepository(db)

	mock.ExpectExec(`UPDATE job_applications SET status`).WithArgs(int64(4), "Rejected").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE job_applications SET status`).WithArgs(int64(5), "Rejected").WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, repo.UpdateStatus(context.Background(), 4, application.StatusRejected))
	assert.ErrorIs(t, repo.UpdateStatus(context.Background(), 5, application.StatusRejected), application.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplicationRepository_ListByCompany(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostgresApplicationRepository(db)
	now := time.Now().UTC()

	cols := append(append([]string{}, applicationCols...),
		"name", "email", "photo", "resume", "title", "location", "company_id", "company_name")
	mock.ExpectQuery(`WHERE j.company_id = \$1`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(int64(9), int64(10), int64(3), "Pending", now, "Ada", nil, nil, "cv.pdf", "Go Dev", "Remote", int64(1), "Acme"))

	got, err := repo.ListByCompany(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Ada", got[0].ApplicantName)
	assert.Nil(t, got[0].ApplicantEmail)
	require.NotNil(t, got[0].ResumeURL)
	assert.Equal(t, "Acme", got[0].CompanyName)
	assert.NoError(t, mock.ExpectationsWereMet())
}
