package handler

import (
	"job-portal/internal/delivery/http/dto"
	"job-portal/internal/pkg/response"
	uccompany "job-portal/internal/usecase/company"

	"github.com/gofiber/fiber/v3"
)

type CompanyHandler struct {
	uc *uccompany.Service
}

func NewCompanyHandler(uc *uccompany.Service) *CompanyHandler {
	return &CompanyHandler{uc: uc}
}

func (h *CompanyHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/profile", h.GetProfile)
	r.Put("/profile", h.UpdateProfile)
}

func (h *CompanyHandler) GetProfile(c fiber.Ctx) error {
	id, err := identity(c)
	if err != nil {
		return err
	}

	co, err := h.uc.Profile(c.Context(), id.Ref)
	if err != nil {
		return mapAccessError(err, "Company not found")
	}
	return response.OK(c, response.MessageOK, dto.NewCompanyResponse(co))
}

func (h *CompanyHandler) UpdateProfile(c fiber.Ctx) error {
	id, err := identity(c)
	if err != nil {
		return err
	}

	var req dto.CompanyProfileRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	co, err := h.uc.UpdateProfile(c.Context(), id.Ref, uccompany.ProfileInput{Name: req.Name, ImageRef: req.ImageRef})
	if err != nil {
		return mapAccessError(err, "Company not found")
	}
	return response.OK(c, "Profile updated successfully", dto.NewCompanyResponse(co))
}
