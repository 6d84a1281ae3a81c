package app

import (
	"fmt"
	"strings"
	"time"

	"job-portal/internal/authz"
	"job-portal/internal/delivery/http/handler"
	"job-portal/internal/delivery/http/middleware"
	"job-portal/internal/delivery/http/routes"
	"job-portal/internal/domain/applicant"
	"job-portal/internal/domain/application"
	"job-portal/internal/domain/company"
	"job-portal/internal/domain/institution"
	"job-portal/internal/domain/job"
	"job-portal/internal/infrastructure/cache"
	"job-portal/internal/infrastructure/webhook"
	"job-portal/internal/pkg/jwt"
	ucapplicant "job-portal/internal/usecase/applicant"
	ucapplication "job-portal/internal/usecase/application"
	ucauth "job-portal/internal/usecase/auth"
	uccompany "job-portal/internal/usecase/company"
	ucinstitution "job-portal/internal/usecase/institution"
	ucjob "job-portal/internal/usecase/job"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

// Deps is everything the HTTP application needs. The container fills it from
// Postgres and Redis; tests fill it from the in-memory store.
type Deps struct {
	Companies    company.Repository
	Institutions institution.Repository
	Applicants   applicant.Repository
	Jobs         job.Repository
	Applications application.Repository

	DB       handler.Pinger
	Cache    *cache.Redis
	CacheTTL time.Duration

	Tokens      jwt.Service
	Verifier    webhook.Verifier
	ProxySecret string

	AppName string
	Logger  *zap.Logger
}

type App struct {
	Fiber *fiber.App
}

func New(d Deps) *App {
	logger := d.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	f := fiber.New(fiber.Config{AppName: d.AppName})
	registerGlobalMiddleware(f, logger)

	guard := authz.NewGuard()

	var lookups ucjob.LookupCache
	var dedup ucapplicant.Deduper
	if d.Cache != nil {
		lookups = d.Cache
		dedup = d.Cache
	}

	authUC := ucauth.NewService(d.Companies, d.Institutions, d.Tokens, logger.Named("auth"))
	resolver := ucauth.NewResolver(d.Companies, d.Institutions)
	jobUC := ucjob.NewService(d.Jobs, guard, lookups, d.CacheTTL, logger.Named("job"))
	applicationUC := ucapplication.NewService(d.Applications, d.Jobs, d.Applicants, guard, logger.Named("application"))
	applicantUC := ucapplicant.NewService(d.Applicants, dedup, logger.Named("applicant"))
	companyUC := uccompany.NewService(d.Companies, guard, logger.Named("company"))
	institutionUC := ucinstitution.NewService(d.Institutions, d.Companies, guard, logger.Named("institution"))

	registry := routes.NewRegistry(
		routes.Handlers{
			Health:      handler.NewHealthHandler(d.DB),
			Auth:        handler.NewAuthHandler(authUC),
			Company:     handler.NewCompanyHandler(companyUC),
			Institution: handler.NewInstitutionHandler(institutionUC),
			Job:         handler.NewJobHandler(jobUC),
			Application: handler.NewApplicationHandler(applicationUC),
			User:        handler.NewUserHandler(applicantUC),
			Webhook:     handler.NewWebhookHandler(applicantUC, d.Verifier),
		},
		routes.Middlewares{
			Auth:      middleware.NewAuthMiddleware(d.Tokens, resolver),
			Applicant: middleware.NewApplicantMiddleware(d.ProxySecret),
		},
	)
	registry.Register(f)

	return &App{Fiber: f}
}

// Bootstrap builds the application over a connected container. The returned
// cleanup closes the container.
func Bootstrap(c *Container) (*App, func() error, error) {
	if c == nil {
		return nil, nil, fmt.Errorf("nil container")
	}
	return New(c.Deps()), c.Close, nil
}

func registerGlobalMiddleware(app *fiber.App, logger *zap.Logger) {
	if app == nil {
		return
	}

	app.Use(middleware.NewAccessLogMiddleware(logger.Named("http")).Middleware())
	app.Use(middleware.NewErrorMiddleware(logger.Named("http")).Middleware())
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
