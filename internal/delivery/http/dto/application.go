package dto

import (
	"time"

	"job-portal/internal/domain/application"
)

type StatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type ApplyRequest struct {
	JobID int64 `json:"job_id" validate:"required,gt=0"`
}

type ApplicationResponse struct {
	ID          int64     `json:"id"`
	JobID       int64     `json:"job_id"`
	ApplicantID int64     `json:"applicant_id"`
	Status      string    `json:"status"`
	AppliedAt   time.Time `json:"applied_at"`
}

type ApplicationDetailResponse struct {
	ApplicationResponse
	ApplicantName     string  `json:"applicant_name"`
	ApplicantEmail    *string `json:"applicant_email"`
	ApplicantPhotoURL *string `json:"applicant_photo"`
	ResumeURL         *string `json:"resume_link"`
	JobTitle          string  `json:"job_title"`
	JobLocation       string  `json:"job_location"`
	CompanyID         int64   `json:"company_id"`
	CompanyName       string  `json:"company_name"`
}

func NewApplicationResponse(a application.Application) ApplicationResponse {
	return ApplicationResponse{
		ID:          a.ID,
		JobID:       a.JobID,
		ApplicantID: a.ApplicantID,
		Status:      string(a.Status),
		AppliedAt:   a.AppliedAt,
	}
}

func NewApplicationDetails(items []application.Detail) []ApplicationDetailResponse {
	out := make([]ApplicationDetailResponse, 0, len(items))
	for _, d := range items {
		out = append(out, ApplicationDetailResponse{
			ApplicationResponse: NewApplicationResponse(d.Application),
			ApplicantName:       d.ApplicantName,
			ApplicantEmail:      d.ApplicantEmail,
			ApplicantPhotoURL:   d.ApplicantPhotoURL,
			ResumeURL:           d.ResumeURL,
			JobTitle:            d.JobTitle,
			JobLocation:         d.JobLocation,
			CompanyID:           d.CompanyID,
			CompanyName:         d.CompanyName,
		})
	}
	return out
}
