// Package auth runs the credential flows for companies and institutions and
// resolves verified token claims back to stored principals.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"job-portal/internal/domain/company"
	"job-portal/internal/domain/institution"
	"job-portal/internal/domain/principal"
	"job-portal/internal/pkg/jwt"
	"job-portal/internal/pkg/password"

	"go.uber.org/zap"
)

var (
	ErrDuplicateIdentity  = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInternal           = errors.New("internal error")
)

type CompanySignupInput struct {
	Name     string
	Email    string
	Password string
	ImageRef *string
}

type InstitutionSignupInput struct {
	Name     string
	Email    string
	Password string
	ImageRef *string
	Address  *string
	Phone    *string
	Website  *string
}

type LoginInput struct {
	Email    string
	Password string
}

type Session struct {
	Token     string
	ExpiresAt time.Time
}

type CompanySession struct {
	Company company.Company
	Session
}

type InstitutionSession struct {
	Institution institution.Institution
	Session
}

type Service struct {
	companies    company.Repository
	institutions institution.Repository
	tokens       jwt.Service
	logger       *zap.Logger
}

func NewService(companies company.Repository, institutions institution.Repository, tokens jwt.Service, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{companies: companies, institutions: institutions, tokens: tokens, logger: logger}
}

func (s *Service) SignupCompany(ctx context.Context, in CompanySignupInput) (CompanySession, error) {
	email := NormalizeEmail(in.Email)
	name := strings.TrimSpace(in.Name)
	if email == "" || name == "" {
		return CompanySession{}, ErrInvalidInput
	}

	exists, err := s.companies.ExistsByEmail(ctx, email)
	if err != nil {
		return CompanySession{}, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	if exists {
		return CompanySession{}, ErrDuplicateIdentity
	}

	c := company.Company{Name: name, Email: email, ImageRef: in.ImageRef}
	if err := c.SetPassword(in.Password); err != nil {
		return CompanySession{}, passwordError(err)
	}

	created, err := s.companies.Create(ctx, c)
	if err != nil {
		if errors.Is(err, company.ErrEmailDuplicate) {
			return CompanySession{}, ErrDuplicateIdentity
		}
		return CompanySession{}, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	sess, err := s.issue(created.PrincipalRef(), created.Email)
	if err != nil {
		return CompanySession{}, err
	}
	s.logger.Info("company registered", zap.Int64("company_id", created.ID))
	return CompanySession{Company: created.Sanitized(), Session: sess}, nil
}

func (s *Service) LoginCompany(ctx context.Context, in LoginInput) (CompanySession, error) {
	email := NormalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return CompanySession{}, ErrInvalidCredentials
	}

	c, err := s.companies.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, company.ErrNotFound) {
			password.Burn(in.Password)
			return CompanySession{}, ErrInvalidCredentials
		}
		return CompanySession{}, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	if !c.CheckPassword(in.Password) {
		return CompanySession{}, ErrInvalidCredentials
	}

	sess, err := s.issue(c.PrincipalRef(), c.Email)
	if err != nil {
		return CompanySession{}, err
	}
	return CompanySession{Company: c.Sanitized(), Session: sess}, nil
}

func (s *Service) SignupInstitution(ctx context.Context, in InstitutionSignupInput) (InstitutionSession, error) {
	email := NormalizeEmail(in.Email)
	name := strings.TrimSpace(in.Name)
	if email == "" || name == "" {
		return InstitutionSession{}, ErrInvalidInput
	}

	exists, err := s.institutions.ExistsByEmail(ctx, email)
	if err != nil {
		return InstitutionSession{}, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	if exists {
		return InstitutionSession{}, ErrDuplicateIdentity
	}

	i := institution.Institution{
		Name:     name,
		Email:    email,
		ImageRef: in.ImageRef,
		Address:  in.Address,
		Phone:    in.Phone,
		Website:  in.Website,
	}
	if err := i.SetPassword(in.Password); err != nil {
		return InstitutionSession{}, passwordError(err)
	}

	created, err := s.institutions.Create(ctx, i)
	if err != nil {
		if errors.Is(err, institution.ErrEmailDuplicate) {
			return InstitutionSession{}, ErrDuplicateIdentity
		}
		return InstitutionSession{}, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	sess, err := s.issue(created.PrincipalRef(), created.Email)
	if err != nil {
		return InstitutionSession{}, err
	}
	s.logger.Info("institution registered", zap.Int64("institution_id", created.ID))
	return InstitutionSession{Institution: created.Sanitized(), Session: sess}, nil
}

func (s *Service) LoginInstitution(ctx context.Context, in LoginInput) (InstitutionSession, error) {
	email := NormalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return InstitutionSession{}, ErrInvalidCredentials
	}

	i, err := s.institutions.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, institution.ErrNotFound) {
			password.Burn(in.Password)
			return InstitutionSession{}, ErrInvalidCredentials
		}
		return InstitutionSession{}, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	if !i.CheckPassword(in.Password) {
		return InstitutionSession{}, ErrInvalidCredentials
	}

	sess, err := s.issue(i.PrincipalRef(), i.Email)
	if err != nil {
		return InstitutionSession{}, err
	}
	return InstitutionSession{Institution: i.Sanitized(), Session: sess}, nil
}

func (s *Service) issue(ref principal.Ref, email string) (Session, error) {
	tok, claims, err := s.tokens.Issue(ref, email)
	if err != nil {
		return Session{}, fmt.Errorf("%w: issue token: %v", ErrInternal, err)
	}
	return Session{Token: tok, ExpiresAt: claims.ExpiresAt}, nil
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func passwordError(err error) error {
	if errors.Is(err, password.ErrInvalidPassword) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return fmt.Errorf("%w: %v", ErrInternal, err)
}
