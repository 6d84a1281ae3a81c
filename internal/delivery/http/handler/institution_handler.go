package handler

import (
	"errors"

	"job-portal/internal/delivery/http/dto"
	"job-portal/internal/delivery/http/middleware"
	"job-portal/internal/domain/company"
	"job-portal/internal/pkg/response"
	ucinstitution "job-portal/internal/usecase/institution"

	"github.com/gofiber/fiber/v3"
)

type InstitutionHandler struct {
	uc *ucinstitution.Service
}

func NewInstitutionHandler(uc *ucinstitution.Service) *InstitutionHandler {
	return &InstitutionHandler{uc: uc}
}

func (h *InstitutionHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/profile", h.GetProfile)
	r.Put("/profile", h.UpdateProfile)

	r.Get("/companies", h.ListCompanies)
	r.Post("/companies", h.CreateCompany)
	r.Put("/companies/:id", h.UpdateCompany)
	r.Delete("/companies/:id", h.DeleteCompany)
}

func (h *InstitutionHandler) GetProfile(c fiber.Ctx) error {
	id, err := identity(c)
	if err != nil {
		return err
	}

	inst, err := h.uc.Profile(c.Context(), id.Ref)
	if err != nil {
		return mapAccessError(err, "Institution not found")
	}
	return response.OK(c, response.MessageOK, dto.NewInstitutionResponse(inst))
}

func (h *InstitutionHandler) UpdateProfile(c fiber.Ctx) error {
	id, err := identity(c)
	if err != nil {
		return err
	}

	var req dto.InstitutionProfileRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	inst, err := h.uc.UpdateProfile(c.Context(), id.Ref, ucinstitution.ProfileInput{
		Name:     req.Name,
		Email:    req.Email,
		ImageRef: req.ImageRef,
		Address:  req.Address,
		Phone:    req.Phone,
		Website:  req.Website,
	})
	if err != nil {
		return mapInstitutionError(err)
	}
	return response.OK(c, "Profile updated successfully", dto.NewInstitutionResponse(inst))
}

func (h *InstitutionHandler) ListCompanies(c fiber.Ctx) error {
	id, err := identity(c)
	if err != nil {
		return err
	}

	items, err := h.uc.ListCompanies(c.Context(), id.Ref)
	if err != nil {
		return mapInstitutionError(err)
	}
	return response.OK(c, response.MessageOK, dto.NewCompanySummaries(items))
}

func (h *InstitutionHandler) CreateCompany(c fiber.Ctx) error {
	id, err := identity(c)
	if err != nil {
		return err
	}

	var req dto.CompanyCreateRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	co, err := h.uc.CreateCompany(c.Context(), id.Ref, ucinstitution.CompanyInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		ImageRef: req.ImageRef,
	})
	if err != nil {
		return mapInstitutionError(err)
	}
	return response.Created(c, "Company created successfully", dto.NewCompanyResponse(co))
}

func (h *InstitutionHandler) UpdateCompany(c fiber.Ctx) error {
	id, err := identity(c)
	if err != nil {
		return err
	}
	companyID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req dto.CompanyUpdateRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	co, err := h.uc.UpdateCompany(c.Context(), id.Ref, companyID, ucinstitution.CompanyPatch{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return mapInstitutionError(err)
	}
	return response.OK(c, "Company updated successfully", dto.NewCompanyResponse(co))
}

func (h *InstitutionHandler) DeleteCompany(c fiber.Ctx) error {
	id, err := identity(c)
	if err != nil {
		return err
	}
	companyID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.DeleteCompany(c.Context(), id.Ref, companyID); err != nil {
		return mapInstitutionError(err)
	}
	return response.OK(c, "Company deleted successfully", nil)
}

func mapInstitutionError(err error) error {
	switch {
	case errors.Is(err, ucinstitution.ErrEmailTaken):
		return middleware.NewAppError(fiber.StatusConflict, "Email already registered", nil, err)
	case errors.Is(err, company.ErrNotFound):
		return middleware.NotFound("Company", err)
	default:
		return mapAccessError(err, "Company not found")
	}
}
