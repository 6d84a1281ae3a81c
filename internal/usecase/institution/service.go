// Package institution serves the institution's own profile and its management
// of company accounts.
package institution

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"job-portal/internal/authz"
	"job-portal/internal/domain/company"
	"job-portal/internal/domain/institution"
	"job-portal/internal/domain/principal"
	"job-portal/internal/pkg/password"
	"job-portal/internal/pkg/validate"

	"go.uber.org/zap"
)

var (
	ErrInternal   = errors.New("internal error")
	ErrEmailTaken = errors.New("email already registered")
)

type ProfileInput struct {
	Name     *string
	Email    *string
	ImageRef *string
	Address  *string
	Phone    *string
	Website  *string
}

type CompanyInput struct {
	Name     string
	Email    string
	Password string
	ImageRef *string
}

type CompanyPatch struct {
	Name     *string
	Email    *string
	Password *string
}

type Service struct {
	institutions institution.Repository
	companies    company.Repository
	guard        authz.Guard
	logger       *zap.Logger
}

func NewService(institutions institution.Repository, companies company.Repository, guard authz.Guard, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{institutions: institutions, companies: companies, guard: guard, logger: logger}
}

func (s *Service) Profile(ctx context.Context, ref principal.Ref) (institution.Institution, error) {
	i, err := s.load(ctx, ref)
	if err != nil {
		return institution.Institution{}, err
	}
	return i.Sanitized(), nil
}

func (s *Service) UpdateProfile(ctx context.Context, ref principal.Ref, in ProfileInput) (institution.Institution, error) {
	i, err := s.load(ctx, ref)
	if err != nil {
		return institution.Institution{}, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return institution.Institution{}, validate.Field("name", "This field may not be blank.")
		}
		i.Name = name
	}
	if in.Email != nil {
		email := normalizeEmail(*in.Email)
		if email == "" {
			return institution.Institution{}, validate.Field("email", "Enter a valid email address.")
		}
		i.Email = email
	}
	if in.ImageRef != nil {
		i.ImageRef = in.ImageRef
	}
	if in.Address != nil {
		i.Address = in.Address
	}
	if in.Phone != nil {
		i.Phone = in.Phone
	}
	if in.Website != nil {
		i.Website = in.Website
	}

	updated, err := s.institutions.Update(ctx, i)
	if err != nil {
		if errors.Is(err, institution.ErrEmailDuplicate) {
			return institution.Institution{}, ErrEmailTaken
		}
		return institution.Institution{}, fmt.Errorf("%w: update institution: %v", ErrInternal, err)
	}
	return updated.Sanitized(), nil
}

func (s *Service) ListCompanies(ctx context.Context, ref principal.Ref) ([]company.Summary, error) {
	if err := s.guard.AuthorizeCompanyManagement(ref); err != nil {
		return nil, err
	}
	out, err := s.companies.ListWithJobCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list companies: %v", ErrInternal, err)
	}
	for i := range out {
		out[i].Company = out[i].Company.Sanitized()
	}
	return out, nil
}

func (s *Service) CreateCompany(ctx context.Context, ref principal.Ref, in CompanyInput) (company.Company, error) {
	if err := s.guard.AuthorizeCompanyManagement(ref); err != nil {
		return company.Company{}, err
	}

	c := company.Company{
		Name:     strings.TrimSpace(in.Name),
		Email:    normalizeEmail(in.Email),
		ImageRef: in.ImageRef,
	}
	if c.Name == "" {
		return company.Company{}, validate.Field("name", "This field is required.")
	}
	if c.Email == "" {
		return company.Company{}, validate.Field("email", "This field is required.")
	}
	if err := c.SetPassword(in.Password); err != nil {
		return company.Company{}, passwordError(err)
	}

	created, err := s.companies.Create(ctx, c)
	if err != nil {
		if errors.Is(err, company.ErrEmailDuplicate) {
			return company.Company{}, ErrEmailTaken
		}
		return company.Company{}, fmt.Errorf("%w: create company: %v", ErrInternal, err)
	}
	s.logger.Info("company created by institution",
		zap.Int64("company_id", created.ID),
		zap.Stringer("principal", ref),
	)
	return created.Sanitized(), nil
}

// UpdateCompany may reset the company's password. Tokens the company already
// holds stay valid until they expire.
func (s *Service) UpdateCompany(ctx context.Context, ref principal.Ref, id int64, in CompanyPatch) (company.Company, error) {
	if err := s.guard.AuthorizeCompanyManagement(ref); err != nil {
		return company.Company{}, err
	}

	c, err := s.companies.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, company.ErrNotFound) {
			return company.Company{}, company.ErrNotFound
		}
		return company.Company{}, fmt.Errorf("%w: load company: %v", ErrInternal, err)
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return company.Company{}, validate.Field("name", "This field may not be blank.")
		}
		c.Name = name
	}
	if in.Email != nil {
		email := normalizeEmail(*in.Email)
		if email == "" {
			return company.Company{}, validate.Field("email", "Enter a valid email address.")
		}
		c.Email = email
	}
	if in.Password != nil {
		if err := c.SetPassword(*in.Password); err != nil {
			return company.Company{}, passwordError(err)
		}
	}

	updated, err := s.companies.Update(ctx, c)
	if err != nil {
		switch {
		case errors.Is(err, company.ErrEmailDuplicate):
			return company.Company{}, ErrEmailTaken
		case errors.Is(err, company.ErrNotFound):
			return company.Company{}, company.ErrNotFound
		}
		return company.Company{}, fmt.Errorf("%w: update company: %v", ErrInternal, err)
	}
	return updated.Sanitized(), nil
}

// DeleteCompany removes the company together with its jobs and their
// applications.
func (s *Service) DeleteCompany(ctx context.Context, ref principal.Ref, id int64) error {
	if err := s.guard.AuthorizeCompanyManagement(ref); err != nil {
		return err
	}
	if err := s.companies.Delete(ctx, id); err != nil {
		if errors.Is(err, company.ErrNotFound) {
			return company.ErrNotFound
		}
		return fmt.Errorf("%w: delete company: %v", ErrInternal, err)
	}
	s.logger.Info("company deleted by institution", zap.Int64("company_id", id), zap.Stringer("principal", ref))
	return nil
}

func (s *Service) load(ctx context.Context, ref principal.Ref) (institution.Institution, error) {
	if err := s.guard.AuthorizeProfileRead(ref); err != nil {
		return institution.Institution{}, err
	}
	if !ref.IsInstitution() {
		return institution.Institution{}, authz.ErrDenied
	}
	i, err := s.institutions.GetByID(ctx, ref.ID())
	if err != nil {
		if errors.Is(err, institution.ErrNotFound) {
			return institution.Institution{}, authz.ErrDenied
		}
		return institution.Institution{}, fmt.Errorf("%w: load institution: %v", ErrInternal, err)
	}
	return i, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func passwordError(err error) error {
	if errors.Is(err, password.ErrInvalidPassword) {
		return validate.Field("password", "Ensure this field has 8 to 72 characters.")
	}
	return fmt.Errorf("%w: hash password: %v", ErrInternal, err)
}
