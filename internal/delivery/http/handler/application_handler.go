package handler

import (
	"errors"
	"fmt"
	"time"

	"job-portal/internal/delivery/http/dto"
	"job-portal/internal/delivery/http/middleware"
	"job-portal/internal/domain/application"
	"job-portal/internal/domain/job"
	"job-portal/internal/infrastructure/export"
	"job-portal/internal/pkg/response"
	ucapplication "job-portal/internal/usecase/application"

	"github.com/gofiber/fiber/v3"
)

const messageApplicationNotFound = "Application not found or not authorized"

type ApplicationHandler struct {
	uc *ucapplication.Service
}

func NewApplicationHandler(uc *ucapplication.Service) *ApplicationHandler {
	return &ApplicationHandler{uc: uc}
}

func (h *ApplicationHandler) RegisterCompanyRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/applications", h.ListScoped)
	r.Put("/applications/:id/status", h.UpdateStatus)
}

func (h *ApplicationHandler) RegisterInstitutionRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/applications", h.ListScoped)
	r.Get("/applications/export", h.Export)
	r.Put("/applications/:id/status", h.UpdateStatus)
}

// RegisterApplicantRoutes expects the applicant middleware on r.
func (h *ApplicationHandler) RegisterApplicantRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/applications", h.ListMine)
	r.Post("/applications", h.Apply)
}

func (h *ApplicationHandler) ListScoped(c fiber.Ctx) error {
	id, err := identity(c)
	if err != nil {
		return err
	}

	items, err := h.uc.ListScoped(c.Context(), id.Ref)
	if err != nil {
		return mapAccessError(err, messageApplicationNotFound)
	}
	return response.OK(c, response.MessageOK, dto.NewApplicationDetails(items))
}

func (h *ApplicationHandler) UpdateStatus(c fiber.Ctx) error {
	id, err := identity(c)
	if err != nil {
		return err
	}
	appID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req dto.StatusRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	if err := h.uc.UpdateStatus(c.Context(), id.Ref, appID, req.Status); err != nil {
		return mapAccessError(err, messageApplicationNotFound)
	}
	return response.OK(c, "Application status updated", fiber.Map{"id": appID, "status": req.Status})
}

func (h *ApplicationHandler) Export(c fiber.Ctx) error {
	id, err := identity(c)
	if err != nil {
		return err
	}

	b, err := h.uc.Export(c.Context(), id.Ref)
	if err != nil {
		return mapAccessError(err, messageApplicationNotFound)
	}

	name := fmt.Sprintf("applications-%s.xlsx", time.Now().UTC().Format("20060102"))
	c.Set(fiber.HeaderContentType, export.XLSXContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+name+`"`)
	return c.Status(fiber.StatusOK).Send(b)
}

func (h *ApplicationHandler) Apply(c fiber.Ctx) error {
	externalID, err := applicantID(c)
	if err != nil {
		return err
	}

	var req dto.ApplyRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	a, err := h.uc.Apply(c.Context(), externalID, req.JobID)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrDuplicate):
			return middleware.NewAppError(fiber.StatusConflict, "You have already applied for this job", nil, err)
		case errors.Is(err, job.ErrNotFound):
			return middleware.NotFound("Job", err)
		}
		return middleware.Internal(err)
	}
	return response.Created(c, "Application submitted successfully", dto.NewApplicationResponse(a))
}

func (h *ApplicationHandler) ListMine(c fiber.Ctx) error {
	externalID, err := applicantID(c)
	if err != nil {
		return err
	}

	items, err := h.uc.ListForApplicant(c.Context(), externalID)
	if err != nil {
		return middleware.Internal(err)
	}
	return response.OK(c, response.MessageOK, dto.NewApplicationDetails(items))
}
