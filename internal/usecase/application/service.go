// Package application handles job applications: applicants submit them,
// companies and institutions review them.
package application

import (
	"context"
	"errors"
	"fmt"

	"job-portal/internal/authz"
	"job-portal/internal/domain/applicant"
	"job-portal/internal/domain/application"
	"job-portal/internal/domain/job"
	"job-portal/internal/domain/principal"
	"job-portal/internal/infrastructure/export"
	"job-portal/internal/pkg/validate"

	"go.uber.org/zap"
)

var ErrInternal = errors.New("internal error")

type Service struct {
	apps       application.Repository
	jobs       job.Repository
	applicants applicant.Repository
	guard      authz.Guard
	logger     *zap.Logger
}

func NewService(apps application.Repository, jobs job.Repository, applicants applicant.Repository, guard authz.Guard, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{apps: apps, jobs: jobs, applicants: applicants, guard: guard, logger: logger}
}

// UpdateStatus sets any of the three statuses. The owner of the parent job is
// read together with the application.
func (s *Service) UpdateStatus(ctx context.Context, ref principal.Ref, id int64, rawStatus string) error {
	status, err := application.ParseStatus(rawStatus)
	if err != nil {
		return validate.Field("status", "Must be one of: Pending, Accepted, Rejected.")
	}
	if authz.Capability(ref, authz.OpMutateApplication) == authz.Deny {
		return authz.ErrDenied
	}

	scoped, err := s.apps.GetScoped(ctx, id)
	if err != nil {
		if errors.Is(err, application.ErrNotFound) {
			return authz.ErrNotFoundOrForbidden
		}
		return fmt.Errorf("%w: load application: %v", ErrInternal, err)
	}
	if err := s.guard.AuthorizeApplicationMutation(ref, scoped); err != nil {
		return err
	}

	if err := s.apps.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, application.ErrNotFound) {
			return authz.ErrNotFoundOrForbidden
		}
		return fmt.Errorf("%w: update status: %v", ErrInternal, err)
	}
	s.logger.Info("application status updated",
		zap.Int64("application_id", id),
		zap.String("status", string(status)),
		zap.Stringer("principal", ref),
	)
	return nil
}

// ListScoped returns applications to the caller's jobs, or all of them for an
// institution.
func (s *Service) ListScoped(ctx context.Context, ref principal.Ref) ([]application.Detail, error) {
	companyID, scoped, err := s.guard.ScopeCompanyID(ref, authz.OpReadScopedApplications)
	if err != nil {
		return nil, err
	}
	var out []application.Detail
	if scoped {
		out, err = s.apps.ListByCompany(ctx, companyID)
	} else {
		out, err = s.apps.ListAll(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: list applications: %v", ErrInternal, err)
	}
	return out, nil
}

func (s *Service) Export(ctx context.Context, ref principal.Ref) ([]byte, error) {
	rows, err := s.ListScoped(ctx, ref)
	if err != nil {
		return nil, err
	}
	b, err := export.ApplicationsXLSX(rows)
	if err != nil {
		return nil, fmt.Errorf("%w: export: %v", ErrInternal, err)
	}
	return b, nil
}

// Apply submits an application from the applicant identified by externalID,
// creating the applicant row on first use. Hidden jobs cannot be applied to.
func (s *Service) Apply(ctx context.Context, externalID string, jobID int64) (application.Application, error) {
	a, err := s.applicants.GetOrCreate(ctx, externalID)
	if err != nil {
		return application.Application{}, fmt.Errorf("%w: resolve applicant: %v", ErrInternal, err)
	}

	if _, err := s.jobs.GetVisible(ctx, jobID); err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return application.Application{}, job.ErrNotFound
		}
		return application.Application{}, fmt.Errorf("%w: load job: %v", ErrInternal, err)
	}

	created, err := s.apps.Create(ctx, jobID, a.ID)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrDuplicate):
			return application.Application{}, application.ErrDuplicate
		case errors.Is(err, job.ErrNotFound):
			return application.Application{}, job.ErrNotFound
		}
		return application.Application{}, fmt.Errorf("%w: create application: %v", ErrInternal, err)
	}
	s.logger.Info("application submitted", zap.Int64("application_id", created.ID), zap.Int64("job_id", jobID))
	return created, nil
}

func (s *Service) ListForApplicant(ctx context.Context, externalID string) ([]application.Detail, error) {
	a, err := s.applicants.GetOrCreate(ctx, externalID)
	if err != nil {
		return nil, fmt.Errorf("%w: resolve applicant: %v", ErrInternal, err)
	}
	out, err := s.apps.ListByApplicant(ctx, a.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: list applications: %v", ErrInternal, err)
	}
	return out, nil
}
