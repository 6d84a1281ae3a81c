package repository

import (
	"context"
	"fmt"

	"job-portal/internal/database"
	"job-portal/internal/domain/application"
	"job-portal/internal/domain/job"
)

const applicationColumns = `id, job_id, applicant_id, status, applied_at`

const detailSelect = `SELECT a.id, a.job_id, a.applicant_id, a.status, a.applied_at,
        p.name, p.email, p.profile_photo_url, p.resume_url,
        j.title, j.location, c.id, c.name
 FROM job_applications a
 JOIN jobs j ON j.id = a.job_id
 JOIN companies c ON c.id = j.company_id
 JOIN applicants p ON p.id = a.applicant_id`

type PostgresApplicationRepository struct {
	db database.DB
}

func NewPostgresApplicationRepository(db database.DB) *PostgresApplicationRepository {
	return &PostgresApplicationRepository{db: db}
}

func (r *PostgresApplicationRepository) Create(ctx context.Context, jobID, applicantID int64) (application.Application, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO job_applications (job_id, applicant_id, status)
		 VALUES ($1, $2, $3)
		 RETURNING `+applicationColumns,
		jobID, applicantID, string(application.StatusPending),
	)
	a, err := scanApplication(row)
	if err != nil {
		switch {
		case database.IsUniqueViolation(err, "job_applications_job_applicant_key"):
			return application.Application{}, fmt.Errorf("%w: %v", application.ErrDuplicate, err)
		case database.IsForeignKeyViolation(err):
			return application.Application{}, fmt.Errorf("%w: %v", job.ErrNotFound, err)
		}
		return application.Application{}, err
	}
	return a, nil
}

// GetScoped reads the application and its job owner in one statement.
func (r *PostgresApplicationRepository) GetScoped(ctx context.Context, id int64) (application.Scoped, error) {
	var (
		s      application.Scoped
		status string
	)
	err := r.db.QueryRow(ctx,
		`SELECT a.id, a.job_id, a.applicant_id, a.status, a.applied_at, j.company_id
		 FROM job_applications a
		 JOIN jobs j ON j.id = a.job_id
		 WHERE a.id = $1`,
		id,
	).Scan(&s.ID, &s.JobID, &s.ApplicantID, &status, &s.AppliedAt, &s.JobCompanyID)
	if err != nil {
		if database.IsNoRows(err) {
			return application.Scoped{}, application.ErrNotFound
		}
		return application.Scoped{}, err
	}
	s.Status = application.Status(status)
	return s, nil
}

func (r *PostgresApplicationRepository) UpdateStatus(ctx context.Context, id int64, status application.Status) error {
	n, err := r.db.Exec(ctx, `UPDATE job_applications SET status = $2 WHERE id = $1`, id, string(status))
	if err != nil {
		return err
	}
	if n == 0 {
		return application.ErrNotFound
	}
	return nil
}

func (r *PostgresApplicationRepository) ListByJob(ctx context.Context, jobID int64) ([]application.Application, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+applicationColumns+` FROM job_applications WHERE job_id = $1 ORDER BY applied_at DESC, id DESC`,
		jobID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]application.Application, 0)
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresApplicationRepository) ListByCompany(ctx context.Context, companyID int64) ([]application.Detail, error) {
	return r.details(ctx, detailSelect+` WHERE j.company_id = $1 ORDER BY a.applied_at DESC, a.id DESC`, companyID)
}

func (r *PostgresApplicationRepository) ListAll(ctx context.Context) ([]application.Detail, error) {
	return r.details(ctx, detailSelect+` ORDER BY a.applied_at DESC, a.id DESC`)
}

func (r *PostgresApplicationRepository) ListByApplicant(ctx context.Context, applicantID int64) ([]application.Detail, error) {
	return r.details(ctx, detailSelect+` WHERE a.applicant_id = $1 ORDER BY a.applied_at DESC, a.id DESC`, applicantID)
}

func (r *PostgresApplicationRepository) details(ctx context.Context, query string, args ...any) ([]application.Detail, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]application.Detail, 0)
	for rows.Next() {
		var (
			d      application.Detail
			status string
		)
		if err := rows.Scan(
			&d.ID, &d.JobID, &d.ApplicantID, &status, &d.AppliedAt,
			&d.ApplicantName, &d.ApplicantEmail, &d.ApplicantPhotoURL, &d.ResumeURL,
			&d.JobTitle, &d.JobLocation, &d.CompanyID, &d.CompanyName,
		); err != nil {
			return nil, err
		}
		d.Status = application.Status(status)
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanApplication(row database.Row) (application.Application, error) {
	var (
		a      application.Application
		status string
	)
	if err := row.Scan(&a.ID, &a.JobID, &a.ApplicantID, &status, &a.AppliedAt); err != nil {
		if database.IsNoRows(err) {
			return application.Application{}, application.ErrNotFound
		}
		return application.Application{}, err
	}
	a.Status = application.Status(status)
	return a, nil
}
