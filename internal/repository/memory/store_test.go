package memory

import (
	"context"
	"testing"

	"job-portal/internal/domain/applicant"
	"job-portal/internal/domain/application"
	"job-portal/internal/domain/company"
	"job-portal/internal/domain/job"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seed(t *testing.T, s *Store) (company.Company, job.Job, applicant.Applicant) {
	t.Helper()
	ctx := context.Background()

	c, err := s.Companies().Create(ctx, company.Company{Name: "Acme", Email: "hr@acme.io", PasswordHash: "h"})
	require.NoError(t, err)
	j, err := s.Jobs().Create(ctx, job.Job{Title: "Go Dev", Location: "Remote", Level: job.LevelSenior, CompanyID: c.ID, Category: "Eng", Visible: true})
	require.NoError(t, err)
	a, err := s.Applicants().GetOrCreate(ctx, "user_1")
	require.NoError(t, err)
	return c, j, a
}

func TestStore_CompanyDeleteCascades(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	c, j, a := seed(t, s)

	app, err := s.Applications().Create(ctx, j.ID, a.ID)
	require.NoError(t, err)

	require.NoError(t, s.Companies().Delete(ctx, c.ID))

	_, err = s.Jobs().GetByID(ctx, j.ID)
	assert.ErrorIs(t, err, job.ErrNotFound)
	_, err = s.Applications().GetScoped(ctx, app.ID)
	assert.ErrorIs(t, err, application.ErrNotFound)

	_, err = s.Applicants().GetByExternalID(ctx, "user_1")
	assert.NoError(t, err)
}

func TestStore_DuplicateApplication(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	_, j, a := seed(t, s)

	_, err := s.Applications().Create(ctx, j.ID, a.ID)
	require.NoError(t, err)
	_, err = s.Applications().Create(ctx, j.ID, a.ID)
	assert.ErrorIs(t, err, application.ErrDuplicate)

	listings, err := s.Jobs().ListByCompany(ctx, j.CompanyID)
	require.NoError(t, err)
	require.Len(t, listings, 1)
	assert.Equal(t, 1, listings[0].ApplicantCount)
}

func TestStore_ApplicantDeleteCascades(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	_, j, a := seed(t, s)

	_, err := s.Applications().Create(ctx, j.ID, a.ID)
	require.NoError(t, err)

	deleted, err := s.Applicants().DeleteByExternalID(ctx, a.ExternalID)
	require.NoError(t, err)
	assert.True(t, deleted)

	apps, err := s.Applications().ListByJob(ctx, j.ID)
	require.NoError(t, err)
	assert.Empty(t, apps)

	deleted, err = s.Applicants().DeleteByExternalID(ctx, a.ExternalID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestStore_UpsertKeepsUnsetFields(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	name, email := "Ada", "ada@x.io"

	_, err := s.Applicants().Upsert(ctx, applicant.Upsert{ExternalID: "u", Name: &name, Email: &email})
	require.NoError(t, err)

	newName := "Ada L."
	got, err := s.Applicants().Upsert(ctx, applicant.Upsert{ExternalID: "u", Name: &newName})
	require.NoError(t, err)
	assert.Equal(t, "Ada L.", got.Name)
	require.NotNil(t, got.Email)
	assert.Equal(t, "ada@x.io", *got.Email)

	_, err = s.Applicants().Upsert(ctx, applicant.Upsert{ExternalID: "other", Email: &email})
	assert.ErrorIs(t, err, applicant.ErrEmailDuplicate)
}

func TestStore_UpdateKeepsJobOwner(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	_, j, _ := seed(t, s)

	j.CompanyID = 999
	j.Title = "Renamed"
	got, err := s.Jobs().Update(ctx, j)
	require.NoError(t, err)
	assert.NotEqual(t, int64(999), got.CompanyID)
	assert.Equal(t, "Renamed", got.Title)
}

func TestStore_DistinctSkipsHiddenJobs(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	c, _, _ := seed(t, s)

	_, err := s.Jobs().Create(ctx, job.Job{Title: "Hidden", Location: "Oslo", Level: job.LevelBeginner, CompanyID: c.ID, Category: "Ops"})
	require.NoError(t, err)

	cats, err := s.Jobs().DistinctCategories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Eng"}, cats)

	locs, err := s.Jobs().DistinctLocations(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Remote"}, locs)
}
