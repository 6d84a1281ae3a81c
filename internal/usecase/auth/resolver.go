package auth

import (
	"context"
	"errors"
	"fmt"

	"job-portal/internal/domain/company"
	"job-portal/internal/domain/institution"
	"job-portal/internal/domain/principal"
	"job-portal/internal/pkg/jwt"
)

var (
	ErrPrincipalNotFound     = errors.New("principal not found")
	ErrPrincipalKindMismatch = errors.New("token issued for a different principal kind")
)

// Identity is the resolved caller. Exactly one of Company and Institution is
// populated, matching Ref.
type Identity struct {
	Ref         principal.Ref
	Company     company.Company
	Institution institution.Institution
}

func (i Identity) Email() string {
	switch {
	case i.Ref.IsCompany():
		return i.Company.Email
	case i.Ref.IsInstitution():
		return i.Institution.Email
	default:
		return ""
	}
}

// Resolver re-reads the principal on every request. Nothing is cached, so a
// deleted company stops authenticating immediately even with a live token.
type Resolver struct {
	companies    company.Repository
	institutions institution.Repository
}

func NewResolver(companies company.Repository, institutions institution.Repository) *Resolver {
	return &Resolver{companies: companies, institutions: institutions}
}

func (r *Resolver) ResolveCompany(ctx context.Context, claims jwt.Claims) (company.Company, error) {
	if !claims.Principal.IsCompany() {
		return company.Company{}, ErrPrincipalKindMismatch
	}
	c, err := r.companies.GetByID(ctx, claims.Principal.ID())
	if err != nil {
		if errors.Is(err, company.ErrNotFound) {
			return company.Company{}, ErrPrincipalNotFound
		}
		return company.Company{}, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return c, nil
}

func (r *Resolver) ResolveInstitution(ctx context.Context, claims jwt.Claims) (institution.Institution, error) {
	if !claims.Principal.IsInstitution() {
		return institution.Institution{}, ErrPrincipalKindMismatch
	}
	i, err := r.institutions.GetByID(ctx, claims.Principal.ID())
	if err != nil {
		if errors.Is(err, institution.ErrNotFound) {
			return institution.Institution{}, ErrPrincipalNotFound
		}
		return institution.Institution{}, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return i, nil
}

// Resolve requires the token to be of kind and loads the matching row.
func (r *Resolver) Resolve(ctx context.Context, claims jwt.Claims, kind principal.Kind) (Identity, error) {
	switch kind {
	case principal.KindCompany:
		c, err := r.ResolveCompany(ctx, claims)
		if err != nil {
			return Identity{}, err
		}
		return Identity{Ref: c.PrincipalRef(), Company: c.Sanitized()}, nil
	case principal.KindInstitution:
		i, err := r.ResolveInstitution(ctx, claims)
		if err != nil {
			return Identity{}, err
		}
		return Identity{Ref: i.PrincipalRef(), Institution: i.Sanitized()}, nil
	default:
		return Identity{}, ErrPrincipalKindMismatch
	}
}
