package handler

import (
	"errors"

	"job-portal/internal/delivery/http/dto"
	"job-portal/internal/delivery/http/middleware"
	"job-portal/internal/domain/job"
	"job-portal/internal/pkg/response"
	ucjob "job-portal/internal/usecase/job"

	"github.com/gofiber/fiber/v3"
)

const messageJobNotFound = "Job not found or not authorized"

type JobHandler struct {
	uc *ucjob.Service
}

func NewJobHandler(uc *ucjob.Service) *JobHandler {
	return &JobHandler{uc: uc}
}

// RegisterCompanyRoutes mounts job management for companies, which may also
// post new jobs.
func (h *JobHandler) RegisterCompanyRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/jobs", h.ListScoped)
	r.Post("/jobs", h.Create)
	h.registerMutations(r)
}

func (h *JobHandler) RegisterInstitutionRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/jobs", h.ListScoped)
	h.registerMutations(r)
}

func (h *JobHandler) RegisterPublicRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/jobs", h.ListPublic)
	r.Get("/jobs/:id", h.GetPublic)
	r.Get("/categories", h.Categories)
	r.Get("/locations", h.Locations)
}

func (h *JobHandler) registerMutations(r fiber.Router) {
	r.Put("/jobs/:id", h.Update)
	r.Delete("/jobs/:id", h.Delete)
	r.Patch("/jobs/:id/visibility", h.SetVisibility)
}

func (h *JobHandler) ListScoped(c fiber.Ctx) error {
	id, err := identity(c)
	if err != nil {
		return err
	}

	items, err := h.uc.ListScoped(c.Context(), id.Ref)
	if err != nil {
		return mapAccessError(err, messageJobNotFound)
	}
	return response.OK(c, response.MessageOK, dto.NewJobListings(items))
}

func (h *JobHandler) Create(c fiber.Ctx) error {
	id, err := identity(c)
	if err != nil {
		return err
	}

	var req dto.JobCreateRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	j, err := h.uc.Create(c.Context(), id.Ref, ucjob.CreateInput{
		Title:       req.Title,
		Location:    req.Location,
		Level:       req.Level,
		Description: req.Description,
		Salary:      *req.Salary,
		Category:    req.Category,
		Visible:     req.Visible,
		CompanyID:   req.CompanyID,
	})
	if err != nil {
		return mapAccessError(err, messageJobNotFound)
	}
	return response.Created(c, "Job created successfully", dto.NewJobResponse(j))
}

func (h *JobHandler) Update(c fiber.Ctx) error {
	id, err := identity(c)
	if err != nil {
		return err
	}
	jobID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req dto.JobUpdateRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	j, err := h.uc.Update(c.Context(), id.Ref, jobID, ucjob.UpdateInput{
		Title:       req.Title,
		Location:    req.Location,
		Level:       req.Level,
		Description: req.Description,
		Salary:      req.Salary,
		Category:    req.Category,
		Visible:     req.Visible,
	})
	if err != nil {
		return mapAccessError(err, messageJobNotFound)
	}
	return response.OK(c, "Job updated successfully", dto.NewJobResponse(j))
}

func (h *JobHandler) Delete(c fiber.Ctx) error {
	id, err := identity(c)
	if err != nil {
		return err
	}
	jobID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.Delete(c.Context(), id.Ref, jobID); err != nil {
		return mapAccessError(err, messageJobNotFound)
	}
	return response.OK(c, "Job deleted successfully", nil)
}

func (h *JobHandler) SetVisibility(c fiber.Ctx) error {
	id, err := identity(c)
	if err != nil {
		return err
	}
	jobID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req dto.VisibilityRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	if err := h.uc.SetVisibility(c.Context(), id.Ref, jobID, *req.Visible); err != nil {
		return mapAccessError(err, messageJobNotFound)
	}
	return response.OK(c, "Job visibility updated", fiber.Map{"id": jobID, "is_visible": *req.Visible})
}

func (h *JobHandler) ListPublic(c fiber.Ctx) error {
	items, err := h.uc.ListPublic(c.Context())
	if err != nil {
		return middleware.Internal(err)
	}
	return response.OK(c, response.MessageOK, dto.NewJobListings(items))
}

func (h *JobHandler) GetPublic(c fiber.Ctx) error {
	jobID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	l, err := h.uc.GetPublic(c.Context(), jobID)
	if err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return middleware.NotFound("Job", err)
		}
		return middleware.Internal(err)
	}
	return response.OK(c, response.MessageOK, dto.NewJobListing(l))
}

func (h *JobHandler) Categories(c fiber.Ctx) error {
	out, err := h.uc.Categories(c.Context())
	if err != nil {
		return middleware.Internal(err)
	}
	return response.OK(c, response.MessageOK, out)
}

func (h *JobHandler) Locations(c fiber.Ctx) error {
	out, err := h.uc.Locations(c.Context())
	if err != nil {
		return middleware.Internal(err)
	}
	return response.OK(c, response.MessageOK, out)
}
