// Package job runs job postings for companies and institutions and serves
// the public board. Every mutation loads the current row and passes it
// through the ownership guard before writing.
package job

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"job-portal/internal/authz"
	"job-portal/internal/domain/job"
	"job-portal/internal/domain/principal"
	"job-portal/internal/pkg/validate"

	"go.uber.org/zap"
)

var ErrInternal = errors.New("internal error")

// MaxSalary is the largest value the salary column holds.
const MaxSalary = math.MaxInt32

const (
	messageBlank     = "This field may not be blank."
	messageLevel     = "Must be one of: Beginner, Intermediate, Senior."
	messageSalaryMin = "Ensure this value is greater than or equal to 0."
)

var messageSalaryMax = fmt.Sprintf("Ensure this value is less than or equal to %d.", MaxSalary)

type CreateInput struct {
	Title       string
	Location    string
	Level       string
	Description string
	Salary      int
	Category    string
	Visible     *bool
	// CompanyID is optional; when sent it must equal the caller.
	CompanyID *int64
}

type UpdateInput struct {
	Title       *string
	Location    *string
	Level       *string
	Description *string
	Salary      *int
	Category    *string
	Visible     *bool
}

type Service struct {
	jobs     job.Repository
	guard    authz.Guard
	cache    LookupCache
	cacheTTL time.Duration
	logger   *zap.Logger
}

func NewService(jobs job.Repository, guard authz.Guard, cache LookupCache, cacheTTL time.Duration, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{jobs: jobs, guard: guard, cache: cache, cacheTTL: cacheTTL, logger: logger}
}

func (s *Service) Create(ctx context.Context, ref principal.Ref, in CreateInput) (job.Job, error) {
	if err := s.guard.AuthorizeJobCreation(ref); err != nil {
		return job.Job{}, err
	}
	if in.CompanyID != nil && *in.CompanyID != ref.ID() {
		return job.Job{}, validate.Field("company_id", "Jobs can only be posted for the authenticated company.")
	}

	j := job.Job{
		Title:       strings.TrimSpace(in.Title),
		Location:    strings.TrimSpace(in.Location),
		CompanyID:   ref.ID(),
		Description: strings.TrimSpace(in.Description),
		Salary:      in.Salary,
		Category:    strings.TrimSpace(in.Category),
		Visible:     true,
	}

	var errs validate.Errors
	errs = requireText(errs, "title", j.Title)
	errs = requireText(errs, "location", j.Location)
	level, err := job.ParseLevel(in.Level)
	if err != nil {
		errs = append(errs, validate.FieldError{Field: "level", Message: messageLevel})
	}
	j.Level = level
	errs = requireText(errs, "description", j.Description)
	errs = checkSalary(errs, in.Salary)
	errs = requireText(errs, "category", j.Category)
	if len(errs) > 0 {
		return job.Job{}, errs
	}
	if in.Visible != nil {
		j.Visible = *in.Visible
	}

	created, err := s.jobs.Create(ctx, j)
	if err != nil {
		return job.Job{}, fmt.Errorf("%w: create job: %v", ErrInternal, err)
	}
	s.invalidateLookups(ctx)
	s.logger.Info("job created", zap.Int64("job_id", created.ID), zap.Stringer("principal", ref))
	return created, nil
}

// Update applies in to the job. Foreign and missing jobs both surface as
// authz.ErrNotFoundOrForbidden.
func (s *Service) Update(ctx context.Context, ref principal.Ref, id int64, in UpdateInput) (job.Job, error) {
	patch, err := in.patch()
	if err != nil {
		return job.Job{}, err
	}

	cur, err := s.loadForMutation(ctx, ref, id)
	if err != nil {
		return job.Job{}, err
	}
	if patch.IsEmpty() {
		return cur, nil
	}

	updated, err := s.jobs.Update(ctx, cur.Apply(patch))
	if err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return job.Job{}, authz.ErrNotFoundOrForbidden
		}
		return job.Job{}, fmt.Errorf("%w: update job: %v", ErrInternal, err)
	}
	s.invalidateLookups(ctx)
	return updated, nil
}

func (s *Service) SetVisibility(ctx context.Context, ref principal.Ref, id int64, visible bool) error {
	if _, err := s.loadForMutation(ctx, ref, id); err != nil {
		return err
	}
	if err := s.jobs.SetVisibility(ctx, id, visible); err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return authz.ErrNotFoundOrForbidden
		}
		return fmt.Errorf("%w: set visibility: %v", ErrInternal, err)
	}
	s.invalidateLookups(ctx)
	return nil
}

// Delete removes the job and, through the schema, its applications.
func (s *Service) Delete(ctx context.Context, ref principal.Ref, id int64) error {
	if _, err := s.loadForMutation(ctx, ref, id); err != nil {
		return err
	}
	if err := s.jobs.Delete(ctx, id); err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return authz.ErrNotFoundOrForbidden
		}
		return fmt.Errorf("%w: delete job: %v", ErrInternal, err)
	}
	s.invalidateLookups(ctx)
	s.logger.Info("job deleted", zap.Int64("job_id", id), zap.Stringer("principal", ref))
	return nil
}

// ListScoped returns the caller's own jobs for a company and every job for
// an institution.
func (s *Service) ListScoped(ctx context.Context, ref principal.Ref) ([]job.Listing, error) {
	companyID, scoped, err := s.guard.ScopeCompanyID(ref, authz.OpReadScopedJobs)
	if err != nil {
		return nil, err
	}
	var out []job.Listing
	if scoped {
		out, err = s.jobs.ListByCompany(ctx, companyID)
	} else {
		out, err = s.jobs.ListAll(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: list jobs: %v", ErrInternal, err)
	}
	return out, nil
}

func (s *Service) ListPublic(ctx context.Context) ([]job.Listing, error) {
	out, err := s.jobs.ListVisible(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list visible jobs: %v", ErrInternal, err)
	}
	return out, nil
}

// GetPublic hides invisible jobs behind job.ErrNotFound.
func (s *Service) GetPublic(ctx context.Context, id int64) (job.Listing, error) {
	l, err := s.jobs.GetVisible(ctx, id)
	if err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return job.Listing{}, job.ErrNotFound
		}
		return job.Listing{}, fmt.Errorf("%w: get job: %v", ErrInternal, err)
	}
	return l, nil
}

func (s *Service) Categories(ctx context.Context) ([]string, error) {
	return s.cachedLookup(ctx, CategoriesKey, s.jobs.DistinctCategories)
}

func (s *Service) Locations(ctx context.Context) ([]string, error) {
	return s.cachedLookup(ctx, LocationsKey, s.jobs.DistinctLocations)
}

func (s *Service) loadForMutation(ctx context.Context, ref principal.Ref, id int64) (job.Job, error) {
	if authz.Capability(ref, authz.OpMutateJob) == authz.Deny {
		return job.Job{}, authz.ErrDenied
	}
	cur, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return job.Job{}, authz.ErrNotFoundOrForbidden
		}
		return job.Job{}, fmt.Errorf("%w: load job: %v", ErrInternal, err)
	}
	if err := s.guard.AuthorizeJobMutation(ref, cur); err != nil {
		return job.Job{}, err
	}
	return cur, nil
}

func (s *Service) cachedLookup(ctx context.Context, key string, load func(context.Context) ([]string, error)) ([]string, error) {
	if s.cache != nil {
		var cached []string
		ok, err := s.cache.GetJSON(ctx, key, &cached)
		if err != nil {
			s.logger.Debug("lookup cache read failed", zap.String("key", key), zap.Error(err))
		}
		if ok {
			return cached, nil
		}
	}

	values, err := load(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInternal, key, err)
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, key, values, s.cacheTTL); err != nil {
			s.logger.Debug("lookup cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return values, nil
}

func (s *Service) invalidateLookups(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, CategoriesKey, LocationsKey); err != nil {
		s.logger.Warn("lookup cache invalidation failed", zap.Error(err))
	}
}

func (in UpdateInput) patch() (job.Patch, error) {
	p := job.Patch{
		Title:       trimmed(in.Title),
		Location:    trimmed(in.Location),
		Description: trimmed(in.Description),
		Salary:      in.Salary,
		Category:    trimmed(in.Category),
		Visible:     in.Visible,
	}

	var errs validate.Errors
	for _, f := range []struct {
		name  string
		value *string
	}{
		{"title", p.Title},
		{"location", p.Location},
		{"description", p.Description},
		{"category", p.Category},
	} {
		if f.value != nil {
			errs = requireText(errs, f.name, *f.value)
		}
	}
	if in.Level != nil {
		level, err := job.ParseLevel(*in.Level)
		if err != nil {
			errs = append(errs, validate.FieldError{Field: "level", Message: messageLevel})
		}
		p.Level = &level
	}
	if in.Salary != nil {
		errs = checkSalary(errs, *in.Salary)
	}
	if len(errs) > 0 {
		return job.Patch{}, errs
	}
	return p, nil
}

func trimmed(p *string) *string {
	if p == nil {
		return nil
	}
	v := strings.TrimSpace(*p)
	return &v
}

func requireText(errs validate.Errors, field, value string) validate.Errors {
	if value == "" {
		return append(errs, validate.FieldError{Field: field, Message: messageBlank})
	}
	return errs
}

func checkSalary(errs validate.Errors, salary int) validate.Errors {
	switch {
	case salary < 0:
		return append(errs, validate.FieldError{Field: "salary", Message: messageSalaryMin})
	case salary > MaxSalary:
		return append(errs, validate.FieldError{Field: "salary", Message: messageSalaryMax})
	}
	return errs
}
