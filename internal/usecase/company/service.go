// Package company serves a company's own profile.
package company

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"job-portal/internal/authz"
	"job-portal/internal/domain/company"
	"job-portal/internal/domain/principal"
	"job-portal/internal/pkg/validate"

	"go.uber.org/zap"
)

var ErrInternal = errors.New("internal error")

type ProfileInput struct {
	Name     *string
	ImageRef *string
}

type Service struct {
	companies company.Repository
	guard     authz.Guard
	logger    *zap.Logger
}

func NewService(companies company.Repository, guard authz.Guard, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{companies: companies, guard: guard, logger: logger}
}

func (s *Service) Profile(ctx context.Context, ref principal.Ref) (company.Company, error) {
	c, err := s.load(ctx, ref)
	if err != nil {
		return company.Company{}, err
	}
	return c.Sanitized(), nil
}

// UpdateProfile never touches email or password; those change through an
// institution.
func (s *Service) UpdateProfile(ctx context.Context, ref principal.Ref, in ProfileInput) (company.Company, error) {
	c, err := s.load(ctx, ref)
	if err != nil {
		return company.Company{}, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return company.Company{}, validate.Field("name", "This field may not be blank.")
		}
		c.Name = name
	}
	if in.ImageRef != nil {
		c.ImageRef = in.ImageRef
	}

	updated, err := s.companies.Update(ctx, c)
	if err != nil {
		return company.Company{}, fmt.Errorf("%w: update company: %v", ErrInternal, err)
	}
	return updated.Sanitized(), nil
}

func (s *Service) load(ctx context.Context, ref principal.Ref) (company.Company, error) {
	if err := s.guard.AuthorizeProfileRead(ref); err != nil {
		return company.Company{}, err
	}
	if !ref.IsCompany() {
		return company.Company{}, authz.ErrDenied
	}
	c, err := s.companies.GetByID(ctx, ref.ID())
	if err != nil {
		if errors.Is(err, company.ErrNotFound) {
			return company.Company{}, authz.ErrDenied
		}
		return company.Company{}, fmt.Errorf("%w: load company: %v", ErrInternal, err)
	}
	return c, nil
}
