package repository

import (
	"context"
	"fmt"

	"job-portal/internal/database"
	"job-portal/internal/domain/company"
)

const companyColumns = `id, name, email, password_hash, image_ref, created_at, updated_at`

type PostgresCompanyRepository struct {
	db database.DB
}

func NewPostgresCompanyRepository(db database.DB) *PostgresCompanyRepository {
	return &PostgresCompanyRepository{db: db}
}

func (r *PostgresCompanyRepository) Create(ctx context.Context, c company.Company) (company.Company, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO companies (name, email, password_hash, image_ref)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+companyColumns,
		c.Name, c.Email, c.PasswordHash, c.ImageRef,
	)
	out, err := scanCompany(row)
	if err != nil {
		return company.Company{}, mapCompanyWriteError(err)
	}
	return out, nil
}

func (r *PostgresCompanyRepository) GetByID(ctx context.Context, id int64) (company.Company, error) {
	row := r.db.QueryRow(ctx, `SELECT `+companyColumns+` FROM companies WHERE id = $1`, id)
	return scanCompany(row)
}

func (r *PostgresCompanyRepository) GetByEmail(ctx context.Context, email string) (company.Company, error) {
	row := r.db.QueryRow(ctx, `SELECT `+companyColumns+` FROM companies WHERE email = $1`, email)
	return scanCompany(row)
}

func (r *PostgresCompanyRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM companies WHERE email = $1)`, email).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresCompanyRepository) Update(ctx context.Context, c company.Company) (company.Company, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE companies
		 SET name = $2, email = $3, password_hash = $4, image_ref = $5, updated_at = now()
		 WHERE id = $1
		 RETURNING `+companyColumns,
		c.ID, c.Name, c.Email, c.PasswordHash, c.ImageRef,
	)
	out, err := scanCompany(row)
	if err != nil {
		return company.Company{}, mapCompanyWriteError(err)
	}
	return out, nil
}

// Delete removes the company; jobs and their applications go with it.
func (r *PostgresCompanyRepository) Delete(ctx context.Context, id int64) error {
	n, err := r.db.Exec(ctx, `DELETE FROM companies WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return company.ErrNotFound
	}
	return nil
}

func (r *PostgresCompanyRepository) ListWithJobCounts(ctx context.Context) ([]company.Summary, error) {
	rows, err := r.db.Query(ctx,
		`SELECT c.id, c.name, c.email, c.password_hash, c.image_ref, c.created_at, c.updated_at,
		        COUNT(j.id)
		 FROM companies c
		 LEFT JOIN jobs j ON j.company_id = c.id
		 GROUP BY c.id
		 ORDER BY c.created_at DESC, c.id DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]company.Summary, 0)
	for rows.Next() {
		var s company.Summary
		if err := rows.Scan(
			&s.ID, &s.Name, &s.Email, &s.PasswordHash, &s.ImageRef, &s.CreatedAt, &s.UpdatedAt,
			&s.JobCount,
		); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanCompany(row database.Row) (company.Company, error) {
	var c company.Company
	if err := row.Scan(&c.ID, &c.Name, &c.Email, &c.PasswordHash, &c.ImageRef, &c.CreatedAt, &c.UpdatedAt); err != nil {
		if database.IsNoRows(err) {
			return company.Company{}, company.ErrNotFound
		}
		return company.Company{}, err
	}
	return c, nil
}

func mapCompanyWriteError(err error) error {
	if database.IsUniqueViolation(err, "companies_email_key") {
		return fmt.Errorf("%w: %v", company.ErrEmailDuplicate, err)
	}
	return err
}
