package repository

import (
	"context"
	"testing"
	"time"

	"job-portal/internal/domain/applicant"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var applicantCols = []string{"id", "external_id", "name", "email", "profile_photo_url", "resume_url", "created_at", "updated_at"}

func TestApplicantRepository_Upsert(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostgresApplicantRepository(db)
	now := time.Now().UTC()

	mock.ExpectQuery(`ON CONFLICT \(external_id\) DO UPDATE`).
		WithArgs("user_1", strPtr("Ada"), strPtr("ada@x.io"), nil, nil).
		WillReturnRows(sqlmock.NewRows(applicantCols).AddRow(int64(1), "user_1", "Ada", "ada@x.io", nil, nil, now, now))

	got, err := repo.Upsert(context.Background(), applicant.Upsert{ExternalID: "user_1", Name: strPtr("Ada"), Email: strPtr("ada@x.io")})
	require.NoError(t, err)
	assert.Equal(t, "Ada", got.Name)
	require.NotNil(t, got.Email)
	assert.Equal(t, "ada@x.io", *got.Email)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplicantRepository_UpsertEmailTaken(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostgresApplicantRepository(db)

	mock.ExpectQuery(`INSERT INTO applicants`).WillReturnError(uniqueViolation("applicants_email_key"))

	_, err := repo.Upsert(context.Background(), applicant.Upsert{ExternalID: "user_2", Email: strPtr("ada@x.io")})
	assert.ErrorIs(t, err, applicant.ErrEmailDuplicate)
}

func TestApplicantRepository_GetOrCreate(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostgresApplicantRepository(db)
	now := time.Now().UTC()

	mock.ExpectExec(`ON CONFLICT \(external_id\) DO NOTHING`).WithArgs("user_3").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`FROM applicants WHERE external_id = \$1`).
		WithArgs("user_3").
		WillReturnRows(sqlmock.NewRows(applicantCols).AddRow(int64(3), "user_3", "", nil, nil, nil, now, now))

	got, err := repo.GetOrCreate(context.Background(), "user_3")
	require.NoError(t, err)
	assert.Equal(t, int64(3), got.ID)
	assert.Nil(t, got.Email)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplicantRepository_DeleteByExternalID(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostgresApplicantRepository(db)

	mock.ExpectExec(`DELETE FROM applicants`).WithArgs("gone").WillReturnResult(sqlmock.NewResult(0, 0))

	deleted, err := repo.DeleteByExternalID(context.Background(), "gone")
	require.NoError(t, err)
	assert.False(t, deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}
