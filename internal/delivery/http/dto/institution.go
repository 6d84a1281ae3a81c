package dto

import (
	"time"

	"job-portal/internal/domain/institution"
)

type InstitutionSignupRequest struct {
	Name     string  `json:"name" validate:"required,max=200"`
	Email    string  `json:"email" validate:"required,email,max=254"`
	Password string  `json:"password" validate:"required,min=8,max=72"`
	ImageRef *string `json:"image_ref" validate:"omitempty,max=2048"`
	Address  *string `json:"address"`
	Phone    *string `json:"phone" validate:"omitempty,max=20"`
	Website  *string `json:"website" validate:"omitempty,url"`
}

type InstitutionProfileRequest struct {
	Name     *string `json:"name" validate:"omitempty,max=200"`
	Email    *string `json:"email" validate:"omitempty,email,max=254"`
	ImageRef *string `json:"image_ref" validate:"omitempty,max=2048"`
	Address  *string `json:"address"`
	Phone    *string `json:"phone" validate:"omitempty,max=20"`
	Website  *string `json:"website" validate:"omitempty,url"`
}

type InstitutionResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	ImageRef  *string   `json:"image"`
	Address   *string   `json:"address"`
	Phone     *string   `json:"phone"`
	Website   *string   `json:"website"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewInstitutionResponse(i institution.Institution) InstitutionResponse {
	return InstitutionResponse{
		ID:        i.ID,
		Name:      i.Name,
		Email:     i.Email,
		ImageRef:  i.ImageRef,
		Address:   i.Address,
		Phone:     i.Phone,
		Website:   i.Website,
		CreatedAt: i.CreatedAt,
		UpdatedAt: i.UpdatedAt,
	}
}
