package company

import (
	"time"

	"job-portal/internal/domain/principal"
	"job-portal/internal/pkg/password"
)

type Company struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	ImageRef     *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Summary is the institution-facing listing row.
type Summary struct {
	Company
	JobCount int
}

func (c Company) PrincipalRef() principal.Ref {
	return principal.Company(c.ID)
}

// SetPassword replaces the stored hash. Tokens already issued stay valid.
func (c *Company) SetPassword(raw string) error {
	hash, err := password.Hash(raw)
	if err != nil {
		return err
	}
	c.PasswordHash = hash
	return nil
}

func (c Company) CheckPassword(raw string) bool {
	return password.Check(c.PasswordHash, raw)
}

// Sanitized drops the hash before the value leaves the usecase layer.
func (c Company) Sanitized() Company {
	c.PasswordHash = ""
	return c
}
