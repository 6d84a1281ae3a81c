package routes

import (
	"job-portal/internal/delivery/http/handler"
	"job-portal/internal/delivery/http/middleware"

	"github.com/gofiber/fiber/v3"
)

type Handlers struct {
	Health      *handler.HealthHandler
	Auth        *handler.AuthHandler
	Company     *handler.CompanyHandler
	Institution *handler.InstitutionHandler
	Job         *handler.JobHandler
	Application *handler.ApplicationHandler
	User        *handler.UserHandler
	Webhook     *handler.WebhookHandler
}

type Middlewares struct {
	Auth      *middleware.AuthMiddleware
	Applicant *middleware.ApplicantMiddleware
}

type Registry struct {
	h  Handlers
	mw Middlewares
}

func NewRegistry(h Handlers, mw Middlewares) *Registry {
	return &Registry{h: h, mw: mw}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	api := app.Group("/api")
	r.h.Health.RegisterRoutes(api)

	r.registerPublic(api)
	r.registerCompany(api)
	r.registerInstitution(api)
	r.registerApplicant(api)
}

func (r *Registry) registerPublic(api fiber.Router) {
	r.h.Job.RegisterPublicRoutes(api)
	r.h.Webhook.RegisterRoutes(api.Group("/clerk"))
}

// Credential routes are mounted before the protected group so they are
// matched without a token.
func (r *Registry) registerCompany(api fiber.Router) {
	r.h.Auth.RegisterCompanyRoutes(api.Group("/company"))

	protected := api.Group("/company", r.mw.Auth.RequireCompany())
	r.h.Company.RegisterRoutes(protected)
	r.h.Job.RegisterCompanyRoutes(protected)
	r.h.Application.RegisterCompanyRoutes(protected)
}

func (r *Registry) registerInstitution(api fiber.Router) {
	r.h.Auth.RegisterInstitutionRoutes(api.Group("/institution"))

	protected := api.Group("/institution", r.mw.Auth.RequireInstitution())
	r.h.Institution.RegisterRoutes(protected)
	r.h.Job.RegisterInstitutionRoutes(protected)
	r.h.Application.RegisterInstitutionRoutes(protected)
}

func (r *Registry) registerApplicant(api fiber.Router) {
	user := api.Group("/user", r.mw.Applicant.Middleware())
	r.h.User.RegisterRoutes(user)
	r.h.Application.RegisterApplicantRoutes(user)
}
