package dto

import (
	"time"

	"job-portal/internal/domain/job"
)

// Salary is bounded by the INTEGER column it is stored in.
type JobCreateRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	Location    string `json:"location" validate:"required,max=100"`
	Level       string `json:"level" validate:"required"`
	Description string `json:"description" validate:"required"`
	Salary      *int   `json:"salary" validate:"required,gte=0,lte=2147483647"`
	Category    string `json:"category" validate:"required,max=50"`
	Visible     *bool  `json:"is_visible"`
	CompanyID   *int64 `json:"company_id"`
}

type JobUpdateRequest struct {
	Title       *string `json:"title" validate:"omitempty,max=200"`
	Location    *string `json:"location" validate:"omitempty,max=100"`
	Level       *string `json:"level"`
	Description *string `json:"description"`
	Salary      *int    `json:"salary" validate:"omitempty,gte=0,lte=2147483647"`
	Category    *string `json:"category" validate:"omitempty,max=50"`
	Visible     *bool   `json:"is_visible"`
}

type VisibilityRequest struct {
	Visible *bool `json:"is_visible" validate:"required"`
}

type JobResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Location    string    `json:"location"`
	Level       string    `json:"level"`
	CompanyID   int64     `json:"company_id"`
	Description string    `json:"description"`
	Salary      int       `json:"salary"`
	Category    string    `json:"category"`
	Visible     bool      `json:"is_visible"`
	CreatedAt   time.Time `json:"created_at"`
}

type JobCompanyResponse struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	ImageRef *string `json:"image"`
}

type JobListingResponse struct {
	JobResponse
	Company        JobCompanyResponse `json:"company"`
	ApplicantCount int                `json:"applicant_count"`
}

func NewJobResponse(j job.Job) JobResponse {
	return JobResponse{
		ID:          j.ID,
		Title:       j.Title,
		Location:    j.Location,
		Level:       string(j.Level),
		CompanyID:   j.CompanyID,
		Description: j.Description,
		Salary:      j.Salary,
		Category:    j.Category,
		Visible:     j.Visible,
		CreatedAt:   j.CreatedAt,
	}
}

func NewJobListing(l job.Listing) JobListingResponse {
	return JobListingResponse{
		JobResponse: NewJobResponse(l.Job),
		Company: JobCompanyResponse{
			ID:       l.Company.ID,
			Name:     l.Company.Name,
			Email:    l.Company.Email,
			ImageRef: l.Company.ImageRef,
		},
		ApplicantCount: l.ApplicantCount,
	}
}

func NewJobListings(items []job.Listing) []JobListingResponse {
	out := make([]JobListingResponse, 0, len(items))
	for _, l := range items {
		out = append(out, NewJobListing(l))
	}
	return out
}
