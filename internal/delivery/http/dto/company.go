package dto

import (
	"time"

	"job-portal/internal/domain/company"
)

type CompanySignupRequest struct {
	Name     string  `json:"name" validate:"required,max=200"`
	Email    string  `json:"email" validate:"required,email,max=254"`
	Password string  `json:"password" validate:"required,min=8,max=72"`
	ImageRef *string `json:"image_ref" validate:"omitempty,max=2048"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type CompanyProfileRequest struct {
	Name     *string `json:"name" validate:"omitempty,max=200"`
	ImageRef *string `json:"image_ref" validate:"omitempty,max=2048"`
}

// CompanyCreateRequest is used by institutions to open a company account.
type CompanyCreateRequest struct {
	Name     string  `json:"name" validate:"required,max=200"`
	Email    string  `json:"email" validate:"required,email,max=254"`
	Password string  `json:"password" validate:"required,min=8,max=72"`
	ImageRef *string `json:"image_ref" validate:"omitempty,max=2048"`
}

type CompanyUpdateRequest struct {
	Name     *string `json:"name" validate:"omitempty,max=200"`
	Email    *string `json:"email" validate:"omitempty,email,max=254"`
	Password *string `json:"password" validate:"omitempty,min=8,max=72"`
}

type CompanyResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	ImageRef  *string   `json:"image"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CompanySummaryResponse struct {
	CompanyResponse
	JobCount int `json:"job_count"`
}

func NewCompanyResponse(c company.Company) CompanyResponse {
	return CompanyResponse{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		ImageRef:  c.ImageRef,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func NewCompanySummaries(items []company.Summary) []CompanySummaryResponse {
	out := make([]CompanySummaryResponse, 0, len(items))
	for _, s := range items {
		out = append(out, CompanySummaryResponse{CompanyResponse: NewCompanyResponse(s.Company), JobCount: s.JobCount})
	}
	return out
}
