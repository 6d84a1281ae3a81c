package app

import (
	"context"
	"time"

	"job-portal/internal/config"
	"job-portal/internal/database"
	dbpostgres "job-portal/internal/database/postgres"
	"job-portal/internal/infrastructure/cache"
	"job-portal/internal/infrastructure/webhook"
	"job-portal/internal/pkg/jwt"
	"job-portal/internal/repository"

	"go.uber.org/zap"
)

type Container struct {
	Config   config.Config
	DB       database.DB
	Cache    *cache.Redis
	Tokens   jwt.Service
	Verifier webhook.Verifier
	Logger   *zap.Logger
}

func NewContainer(cfg config.Config, logger *zap.Logger) (*Container, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	verifier, err := webhook.NewSvixVerifier(cfg.Webhook.ClerkSecret)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	return &Container{
		Config:   cfg,
		DB:       db,
		Cache:    cache.NewRedis(ctx, cfg.Redis, logger.Named("redis")),
		Tokens:   jwt.NewHMACService(cfg.JWT.Secret, cfg.JWT.ExpiresIn, cfg.App.AppName),
		Verifier: verifier,
		Logger:   logger,
	}, nil
}

func (c *Container) Deps() Deps {
	return Deps{
		Companies:    repository.NewPostgresCompanyRepository(c.DB),
		Institutions: repository.NewPostgresInstitutionRepository(c.DB),
		Applicants:   repository.NewPostgresApplicantRepository(c.DB),
		Jobs:         repository.NewPostgresJobRepository(c.DB),
		Applications: repository.NewPostgresApplicationRepository(c.DB),

		DB:       c.DB,
		Cache:    c.Cache,
		CacheTTL: c.Config.Redis.TTL,

		Tokens:      c.Tokens,
		Verifier:    c.Verifier,
		ProxySecret: c.Config.Applicant.ProxySecret,

		AppName: c.Config.App.AppName,
		Logger:  c.Logger,
	}
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.Cache != nil {
		_ = c.Cache.Close()
	}
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
