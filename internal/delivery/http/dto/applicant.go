package dto

import (
	"time"

	"job-portal/internal/domain/applicant"
)

type ApplicantProfileRequest struct {
	Name      *string `json:"name" validate:"omitempty,max=255"`
	Email     *string `json:"email" validate:"omitempty,email,max=254"`
	ResumeURL *string `json:"resume_link" validate:"omitempty,url"`
}

type ApplicantResponse struct {
	ID              int64     `json:"id"`
	ExternalID      string    `json:"clerk_id"`
	Name            string    `json:"name"`
	Email           *string   `json:"email"`
	ProfilePhotoURL *string   `json:"profile_photo"`
	ResumeURL       *string   `json:"resume_link"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func NewApplicantResponse(a applicant.Applicant) ApplicantResponse {
	return ApplicantResponse{
		ID:              a.ID,
		ExternalID:      a.ExternalID,
		Name:            a.Name,
		Email:           a.Email,
		ProfilePhotoURL: a.ProfilePhotoURL,
		ResumeURL:       a.ResumeURL,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}
