package institution

import (
	"time"

	"job-portal/internal/domain/principal"
	"job-portal/internal/pkg/password"
)

type Institution struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	ImageRef     *string
	Address      *string
	Phone        *string
	Website      *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (i Institution) PrincipalRef() principal.Ref {
	return principal.Institution(i.ID)
}

func (i *Institution) SetPassword(raw string) error {
	hash, err := password.Hash(raw)
	if err != nil {
		return err
	}
	i.PasswordHash = hash
	return nil
}

func (i Institution) CheckPassword(raw string) bool {
	return password.Check(i.PasswordHash, raw)
}

func (i Institution) Sanitized() Institution {
	i.PasswordHash = ""
	return i
}
