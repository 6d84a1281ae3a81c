package application

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"job-portal/internal/authz"
	"job-portal/internal/domain/application"
	"job-portal/internal/domain/company"
	"job-portal/internal/domain/job"
	"job-portal/internal/domain/principal"
	"job-portal/internal/pkg/validate"
	"job-portal/internal/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type fixture struct {
	store   *memory.Store
	svc     *Service
	acme    company.Company
	beta    company.Company
	acmeJob job.Job
	betaJob job.Job
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()

	acme, err := store.Companies().Create(ctx, company.Company{Name: "Acme", Email: "a@acme.io", PasswordHash: "h"})
	require.NoError(t, err)
	beta, err := store.Companies().Create(ctx, company.Company{Name: "Beta", Email: "b@beta.io", PasswordHash: "h"})
	require.NoError(t, err)
	acmeJob, err := store.Jobs().Create(ctx, job.Job{Title: "Go Dev", Location: "Remote", Level: job.LevelSenior, CompanyID: acme.ID, Visible: true})
	require.NoError(t, err)
	betaJob, err := store.Jobs().Create(ctx, job.Job{Title: "Designer", Location: "Paris", Level: job.LevelBeginner, CompanyID: beta.ID, Visible: true})
	require.NoError(t, err)

	return fixture{
		store:   store,
		svc:     NewService(store.Applications(), store.Jobs(), store.Applicants(), authz.NewGuard(), nil),
		acme:    acme,
		beta:    beta,
		acmeJob: acmeJob,
		betaJob: betaJob,
	}
}

func TestApply(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	a, err := f.svc.Apply(ctx, "user_1", f.acmeJob.ID)
	require.NoError(t, err)
	assert.Equal(t, application.StatusPending, a.Status)

	_, err = f.svc.Apply(ctx, "user_1", f.acmeJob.ID)
	assert.ErrorIs(t, err, application.ErrDuplicate)

	_, err = f.svc.Apply(ctx, "user_2", f.acmeJob.ID)
	assert.NoError(t, err)

	mine, err := f.svc.ListForApplicant(ctx, "user_1")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "Go Dev", mine[0].JobTitle)
	assert.Equal(t, "Acme", mine[0].CompanyName)
}

func TestApply_HiddenOrMissingJob(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.store.Jobs().SetVisibility(ctx, f.acmeJob.ID, false))

	_, err := f.svc.Apply(ctx, "user_1", f.acmeJob.ID)
	assert.ErrorIs(t, err, job.ErrNotFound)
	_, err = f.svc.Apply(ctx, "user_1", 9999)
	assert.ErrorIs(t, err, job.ErrNotFound)
}

func TestUpdateStatus_Ownership(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	a, err := f.svc.Apply(ctx, "user_1", f.acmeJob.ID)
	require.NoError(t, err)

	err = f.svc.UpdateStatus(ctx, f.beta.PrincipalRef(), a.ID, "Accepted")
	assert.ErrorIs(t, err, authz.ErrNotFoundOrForbidden)
	err = f.svc.UpdateStatus(ctx, f.beta.PrincipalRef(), 9999, "Accepted")
	assert.ErrorIs(t, err, authz.ErrNotFoundOrForbidden)

	require.NoError(t, f.svc.UpdateStatus(ctx, f.acme.PrincipalRef(), a.ID, "Accepted"))
	require.NoError(t, f.svc.UpdateStatus(ctx, principal.Institution(77), a.ID, "Rejected"))
	// Transitions are unrestricted.
	require.NoError(t, f.svc.UpdateStatus(ctx, f.acme.PrincipalRef(), a.ID, "Pending"))

	got, err := f.store.Applications().GetScoped(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, application.StatusPending, got.Status)

	err = f.svc.UpdateStatus(ctx, principal.Ref{}, a.ID, "Accepted")
	assert.ErrorIs(t, err, authz.ErrDenied)
}

func TestUpdateStatus_InvalidValue(t *testing.T) {
	f := newFixture(t)

	err := f.svc.UpdateStatus(context.Background(), f.acme.PrincipalRef(), 1, "Hired")
	var verrs validate.Errors
	require.True(t, errors.As(err, &verrs))
	assert.Equal(t, "status", verrs[0].Field)
}

func TestListScoped(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Apply(ctx, "user_1", f.acmeJob.ID)
	require.NoError(t, err)
	_, err = f.svc.Apply(ctx, "user_1", f.betaJob.ID)
	require.NoError(t, err)

	acme, err := f.svc.ListScoped(ctx, f.acme.PrincipalRef())
	require.NoError(t, err)
	require.Len(t, acme, 1)
	assert.Equal(t, f.acme.ID, acme[0].CompanyID)

	all, err := f.svc.ListScoped(ctx, principal.Institution(1))
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestDeletingJobRemovesApplications(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	a, err := f.svc.Apply(ctx, "user_1", f.acmeJob.ID)
	require.NoError(t, err)
	require.NoError(t, f.store.Jobs().Delete(ctx, f.acmeJob.ID))

	err = f.svc.UpdateStatus(ctx, f.acme.PrincipalRef(), a.ID, "Accepted")
	assert.ErrorIs(t, err, authz.ErrNotFoundOrForbidden)

	mine, err := f.svc.ListForApplicant(ctx, "user_1")
	require.NoError(t, err)
	assert.Empty(t, mine)
}

func TestExport(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Apply(ctx, "user_1", f.acmeJob.ID)
	require.NoError(t, err)
	_, err = f.svc.Apply(ctx, "user_2", f.betaJob.ID)
	require.NoError(t, err)

	b, err := f.svc.Export(ctx, principal.Institution(1))
	require.NoError(t, err)

	wb, err := excelize.OpenReader(bytes.NewReader(b))
	require.NoError(t, err)
	defer func() { _ = wb.Close() }()
	rows, err := wb.GetRows("Applications")
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}
