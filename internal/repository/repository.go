// Package repository holds the Postgres implementations of the domain
// repositories. Every query goes through database.DB so the same code runs on
// pgxpool in production and on database/sql under sqlmock.
package repository

import (
	"job-portal/internal/domain/applicant"
	"job-portal/internal/domain/application"
	"job-portal/internal/domain/company"
	"job-portal/internal/domain/institution"
	"job-portal/internal/domain/job"
)

var (
	_ company.Repository     = (*PostgresCompanyRepository)(nil)
	_ institution.Repository = (*PostgresInstitutionRepository)(nil)
	_ applicant.Repository   = (*PostgresApplicantRepository)(nil)
	_ job.Repository         = (*PostgresJobRepository)(nil)
	_ application.Repository = (*PostgresApplicationRepository)(nil)
)
