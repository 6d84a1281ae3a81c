package repository

import (
	"context"
	"fmt"

	"job-portal/internal/database"
	"job-portal/internal/domain/institution"
)

const institutionColumns = `id, name, email, password_hash, image_ref, address, phone, website, created_at, updated_at`

type PostgresInstitutionRepository struct {
	db database.DB
}

func NewPostgresInstitutionRepository(db database.DB) *PostgresInstitutionRepository {
	return &PostgresInstitutionRepository{db: db}
}

func (r *PostgresInstitutionRepository) Create(ctx context.Context, i institution.Institution) (institution.Institution, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO institutions (name, email, password_hash, image_ref, address, phone, website)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING `+institutionColumns,
		i.Name, i.Email, i.PasswordHash, i.ImageRef, i.Address, i.Phone, i.Website,
	)
	out, err := scanInstitution(row)
	if err != nil {
		return institution.Institution{}, mapInstitutionWriteError(err)
	}
	return out, nil
}

func (r *PostgresInstitutionRepository) GetByID(ctx context.Context, id int64) (institution.Institution, error) {
	return scanInstitution(r.db.QueryRow(ctx, `SELECT `+institutionColumns+` FROM institutions WHERE id = $1`, id))
}

func (r *PostgresInstitutionRepository) GetByEmail(ctx context.Context, email string) (institution.Institution, error) {
	return scanInstitution(r.db.QueryRow(ctx, `SELECT `+institutionColumns+` FROM institutions WHERE email = $1`, email))
}

func (r *PostgresInstitutionRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM institutions WHERE email = $1)`, email).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresInstitutionRepository) Update(ctx context.Context, i institution.Institution) (institution.Institution, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE institutions
		 SET name = $2, email = $3, password_hash = $4, image_ref = $5,
		     address = $6, phone = $7, website = $8, updated_at = now()
		 WHERE id = $1
		 RETURNING `+institutionColumns,
		i.ID, i.Name, i.Email, i.PasswordHash, i.ImageRef, i.Address, i.Phone, i.Website,
	)
	out, err := scanInstitution(row)
	if err != nil {
		return institution.Institution{}, mapInstitutionWriteError(err)
	}
	return out, nil
}

func scanInstitution(row database.Row) (institution.Institution, error) {
	var i institution.Institution
	if err := row.Scan(
		&i.ID, &i.Name, &i.Email, &i.PasswordHash, &i.ImageRef,
		&i.Address, &i.Phone, &i.Website, &i.CreatedAt, &i.UpdatedAt,
	); err != nil {
		if database.IsNoRows(err) {
			return institution.Institution{}, institution.ErrNotFound
		}
		return institution.Institution{}, err
	}
	return i, nil
}

func mapInstitutionWriteError(err error) error {
	if database.IsUniqueViolation(err, "institutions_email_key") {
		return fmt.Errorf("%w: %v", institution.ErrEmailDuplicate, err)
	}
	return err
}
