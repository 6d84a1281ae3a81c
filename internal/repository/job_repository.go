package repository

import (
	"context"
	"fmt"

	"job-portal/internal/database"
	"job-portal/internal/domain/company"
	"job-portal/internal/domain/job"
)

const jobColumns = `id, title, location, level, company_id, description, salary, category, visible, created_at`

const listingSelect = `SELECT j.id, j.title, j.location, j.level, j.company_id, j.description, j.salary,
        j.category, j.visible, j.created_at,
        c.id, c.name, c.email, c.image_ref,
        (SELECT COUNT(*) FROM job_applications a WHERE a.job_id = j.id)
 FROM jobs j
 JOIN companies c ON c.id = j.company_id`

type PostgresJobRepository struct {
	db database.DB
}

func NewPostgresJobRepository(db database.DB) *PostgresJobRepository {
	return &PostgresJobRepository{db: db}
}

func (r *PostgresJobRepository) Create(ctx context.Context, j job.Job) (job.Job, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO jobs (title, location, level, company_id, description, salary, category, visible)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING `+jobColumns,
		j.Title, j.Location, string(j.Level), j.CompanyID, j.Description, j.Salary, j.Category, j.Visible,
	)
	out, err := scanJob(row)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return job.Job{}, fmt.Errorf("%w: %v", company.ErrNotFound, err)
		}
		return job.Job{}, err
	}
	return out, nil
}

func (r *PostgresJobRepository) GetByID(ctx context.Context, id int64) (job.Job, error) {
	return scanJob(r.db.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id))
}

// Update writes every mutable column. company_id is never part of the SET list.
func (r *PostgresJobRepository) Update(ctx context.Context, j job.Job) (job.Job, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE jobs
		 SET title = $2, location = $3, level = $4, description = $5,
		     salary = $6, category = $7, visible = $8
		 WHERE id = $1
		 RETURNING `+jobColumns,
		j.ID, j.Title, j.Location, string(j.Level), j.Description, j.Salary, j.Category, j.Visible,
	)
	return scanJob(row)
}

func (r *PostgresJobRepository) SetVisibility(ctx context.Context, id int64, visible bool) error {
	n, err := r.db.Exec(ctx, `UPDATE jobs SET visible = $2 WHERE id = $1`, id, visible)
	if err != nil {
		return err
	}
	if n == 0 {
		return job.ErrNotFound
	}
	return nil
}

func (r *PostgresJobRepository) Delete(ctx context.Context, id int64) error {
	n, err := r.db.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return job.ErrNotFound
	}
	return nil
}

func (r *PostgresJobRepository) ListByCompany(ctx context.Context, companyID int64) ([]job.Listing, error) {
	return r.listings(ctx, listingSelect+` WHERE j.company_id = $1 ORDER BY j.created_at DESC, j.id DESC`, companyID)
}

func (r *PostgresJobRepository) ListAll(ctx context.Context) ([]job.Listing, error) {
	return r.listings(ctx, listingSelect+` ORDER BY j.created_at DESC, j.id DESC`)
}

func (r *PostgresJobRepository) ListVisible(ctx context.Context) ([]job.Listing, error) {
	return r.listings(ctx, listingSelect+` WHERE j.visible ORDER BY j.created_at DESC, j.id DESC`)
}

func (r *PostgresJobRepository) GetVisible(ctx context.Context, id int64) (job.Listing, error) {
	row := r.db.QueryRow(ctx, listingSelect+` WHERE j.id = $1 AND j.visible`, id)
	l, err := scanListing(row)
	if err != nil {
		if database.IsNoRows(err) {
			return job.Listing{}, job.ErrNotFound
		}
		return job.Listing{}, err
	}
	return l, nil
}

func (r *PostgresJobRepository) DistinctCategories(ctx context.Context) ([]string, error) {
	return r.strings(ctx, `SELECT DISTINCT category FROM jobs WHERE visible ORDER BY category`)
}

func (r *PostgresJobRepository) DistinctLocations(ctx context.Context) ([]string, error) {
	return r.strings(ctx, `SELECT DISTINCT location FROM jobs WHERE visible ORDER BY location`)
}

func (r *PostgresJobRepository) listings(ctx context.Context, query string, args ...any) ([]job.Listing, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]job.Listing, 0)
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresJobRepository) strings(ctx context.Context, query string) ([]string, error) {
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]string, 0)
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanJob(row database.Row) (job.Job, error) {
	var (
		j     job.Job
		level string
	)
	if err := row.Scan(
		&j.ID, &j.Title, &j.Location, &level, &j.CompanyID,
		&j.Description, &j.Salary, &j.Category, &j.Visible, &j.CreatedAt,
	); err != nil {
		if database.IsNoRows(err) {
			return job.Job{}, job.ErrNotFound
		}
		return job.Job{}, err
	}
	j.Level = job.Level(level)
	return j, nil
}

func scanListing(row database.Row) (job.Listing, error) {
	var (
		l     job.Listing
		level string
	)
	if err := row.Scan(
		&l.ID, &l.Title, &l.Location, &level, &l.CompanyID,
		&l.Description, &l.Salary, &l.Category, &l.Visible, &l.CreatedAt,
		&l.Company.ID, &l.Company.Name, &l.Company.Email, &l.Company.ImageRef,
		&l.ApplicantCount,
	); err != nil {
		return job.Listing{}, err
	}
	l.Level = job.Level(level)
	return l, nil
}
