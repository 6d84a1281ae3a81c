package handler

import (
	"errors"

	"job-portal/internal/delivery/http/dto"
	"job-portal/internal/delivery/http/middleware"
	"job-portal/internal/pkg/response"
	ucapplicant "job-portal/internal/usecase/applicant"

	"github.com/gofiber/fiber/v3"
)

// UserHandler serves the applicant's own profile. Callers are identified by
// the applicant middleware, not by a bearer token.
type UserHandler struct {
	uc *ucapplicant.Service
}

func NewUserHandler(uc *ucapplicant.Service) *UserHandler {
	return &UserHandler{uc: uc}
}

func (h *UserHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/profile", h.GetProfile)
	r.Put("/profile", h.UpdateProfile)
}

func (h *UserHandler) GetProfile(c fiber.Ctx) error {
	externalID, err := applicantID(c)
	if err != nil {
		return err
	}

	a, err := h.uc.Profile(c.Context(), externalID)
	if err != nil {
		return middleware.Internal(err)
	}
	return response.OK(c, response.MessageOK, dto.NewApplicantResponse(a))
}

func (h *UserHandler) UpdateProfile(c fiber.Ctx) error {
	externalID, err := applicantID(c)
	if err != nil {
		return err
	}

	var req dto.ApplicantProfileRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	a, err := h.uc.UpdateProfile(c.Context(), externalID, ucapplicant.ProfileInput{
		Name:      req.Name,
		Email:     req.Email,
		ResumeURL: req.ResumeURL,
	})
	if err != nil {
		if errors.Is(err, ucapplicant.ErrEmailTaken) {
			return middleware.NewAppError(fiber.StatusConflict, "Email already registered", nil, err)
		}
		return middleware.Internal(err)
	}
	return response.OK(c, "Profile updated successfully", dto.NewApplicantResponse(a))
}
