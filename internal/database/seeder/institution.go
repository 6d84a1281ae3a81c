package seeder

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"job-portal/internal/database"
	"job-portal/internal/pkg/password"
)

var (
	ErrSeedInput      = errors.New("institution name and email are required")
	ErrSchemaMismatch = errors.New("institutions table is missing required columns")
)

// InstitutionSeeder creates the first institution account. An existing row
// with the same email is left untouched.
type InstitutionSeeder struct {
	InstitutionName string
	Email           string
	Password        string
}

func (InstitutionSeeder) Name() string { return "institution" }

func (s InstitutionSeeder) Run(ctx context.Context, db database.DB) (int64, error) {
	name := strings.TrimSpace(s.InstitutionName)
	email := strings.ToLower(strings.TrimSpace(s.Email))
	if name == "" || email == "" {
		return 0, ErrSeedInput
	}

	if err := checkInstitutionTable(ctx, db); err != nil {
		return 0, err
	}

	hash, err := password.Hash(s.Password)
	if err != nil {
		return 0, err
	}

	return db.Exec(ctx,
		`INSERT INTO institutions (name, email, password_hash) VALUES ($1, $2, $3)
		 ON CONFLICT (email) DO NOTHING`,
		name, email, hash,
	)
}

// checkInstitutionTable fails when migrations have not produced the columns
// the insert writes to.
func checkInstitutionTable(ctx context.Context, db database.DB) error {
	var present int
	err := db.QueryRow(ctx,
		`SELECT count(*) FROM information_schema.columns
		 WHERE table_schema = current_schema() AND table_name = 'institutions'
		   AND column_name IN ('id', 'name', 'email', 'password_hash')`,
	).Scan(&present)
	if err != nil {
		return fmt.Errorf("inspect institutions table: %w", err)
	}
	if present != 4 {
		return fmt.Errorf("%w: found %d of 4", ErrSchemaMismatch, present)
	}
	return nil
}
