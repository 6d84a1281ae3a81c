package repository

import (
	"context"
	"fmt"

	"job-portal/internal/database"
	"job-portal/internal/domain/applicant"
)

const applicantColumns = `id, external_id, name, email, profile_photo_url, resume_url, created_at, updated_at`

type PostgresApplicantRepository struct {
	db database.DB
}

func NewPostgresApplicantRepository(db database.DB) *PostgresApplicantRepository {
	return &PostgresApplicantRepository{db: db}
}

// Upsert is keyed on external_id so webhook deliveries and lazy creation
// converge on one row however they interleave.
func (r *PostgresApplicantRepository) Upsert(ctx context.Context, in applicant.Upsert) (applicant.Applicant, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO applicants (external_id, name, email, profile_photo_url, resume_url)
		 VALUES ($1, COALESCE($2, ''), $3, $4, $5)
		 ON CONFLICT (external_id) DO UPDATE SET
		     name = COALESCE($2, applicants.name),
		     email = COALESCE($3, applicants.email),
		     profile_photo_url = COALESCE($4, applicants.profile_photo_url),
		     resume_url = COALESCE($5, applicants.resume_url),
		     updated_at = now()
		 RETURNING `+applicantColumns,
		in.ExternalID, in.Name, in.Email, in.ProfilePhotoURL, in.ResumeURL,
	)
	out, err := scanApplicant(row)
	if err != nil {
		if database.IsUniqueViolation(err, "applicants_email_key") {
			return applicant.Applicant{}, fmt.Errorf("%w: %v", applicant.ErrEmailDuplicate, err)
		}
		return applicant.Applicant{}, err
	}
	return out, nil
}

func (r *PostgresApplicantRepository) GetOrCreate(ctx context.Context, externalID string) (applicant.Applicant, error) {
	if _, err := r.db.Exec(ctx,
		`INSERT INTO applicants (external_id) VALUES ($1) ON CONFLICT (external_id) DO NOTHING`,
		externalID,
	); err != nil {
		return applicant.Applicant{}, err
	}
	return r.GetByExternalID(ctx, externalID)
}

func (r *PostgresApplicantRepository) GetByExternalID(ctx context.Context, externalID string) (applicant.Applicant, error) {
	return scanApplicant(r.db.QueryRow(ctx, `SELECT `+applicantColumns+` FROM applicants WHERE external_id = $1`, externalID))
}

func (r *PostgresApplicantRepository) DeleteByExternalID(ctx context.Context, externalID string) (bool, error) {
	n, err := r.db.Exec(ctx, `DELETE FROM applicants WHERE external_id = $1`, externalID)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func scanApplicant(row database.Row) (applicant.Applicant, error) {
	var a applicant.Applicant
	if err := row.Scan(&a.ID, &a.ExternalID, &a.Name, &a.Email, &a.ProfilePhotoURL, &a.ResumeURL, &a.CreatedAt, &a.UpdatedAt); err != nil {
		if database.IsNoRows(err) {
			return applicant.Applicant{}, applicant.ErrNotFound
		}
		return applicant.Applicant{}, err
	}
	return a, nil
}
