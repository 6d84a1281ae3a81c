package application

import (
	"context"
	"errors"
)

var (
	ErrNotFound  = errors.New("application not found")
	ErrDuplicate = errors.New("application already submitted for this job")
)

type Repository interface {
	// Create relies on the (job_id, applicant_id) unique constraint and returns
	// ErrDuplicate when it fires.
	Create(ctx context.Context, jobID, applicantID int64) (Application, error)
	GetScoped(ctx context.Context, id int64) (Scoped, error)
	UpdateStatus(ctx context.Context, id int64, status Status) error

	ListByJob(ctx context.Context, jobID int64) ([]Application, error)
	ListByCompany(ctx context.Context, companyID int64) ([]Detail, error)
	ListAll(ctx context.Context) ([]Detail, error)
	ListByApplicant(ctx context.Context, applicantID int64) ([]Detail, error)
}
