package memory

import (
	"context"

	"job-portal/internal/domain/applicant"
	"job-portal/internal/domain/application"
	"job-portal/internal/domain/job"
)

type ApplicationRepo struct {
	s *Store
}

func (r *ApplicationRepo) Create(_ context.Context, jobID, applicantID int64) (application.Application, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.jobs[jobID]; !ok {
		return application.Application{}, job.ErrNotFound
	}
	if _, ok := r.s.applicants[applicantID]; !ok {
		return application.Application{}, applicant.ErrNotFound
	}
	for _, a := range r.s.applications {
		if a.JobID == jobID && a.ApplicantID == applicantID {
			return application.Application{}, application.ErrDuplicate
		}
	}
	a := application.Application{
		ID:          r.s.nextID(),
		JobID:       jobID,
		ApplicantID: applicantID,
		Status:      application.StatusPending,
		AppliedAt:   r.s.now(),
	}
	r.s.applications[a.ID] = a
	return a, nil
}

func (r *ApplicationRepo) GetScoped(_ context.Context, id int64) (application.Scoped, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	a, ok := r.s.applications[id]
	if !ok {
		return application.Scoped{}, application.ErrNotFound
	}
	j, ok := r.s.jobs[a.JobID]
	if !ok {
		return application.Scoped{}, application.ErrNotFound
	}
	return application.Scoped{Application: a, JobCompanyID: j.CompanyID}, nil
}

func (r *ApplicationRepo) UpdateStatus(_ context.Context, id int64, status application.Status) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	a, ok := r.s.applications[id]
	if !ok {
		return application.ErrNotFound
	}
	a.Status = status
	r.s.applications[id] = a
	return nil
}

func (r *ApplicationRepo) ListByJob(_ context.Context, jobID int64) ([]application.Application, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]application.Application, 0)
	for _, a := range r.s.applications {
		if a.JobID == jobID {
			out = append(out, a)
		}
	}
	newestFirst(out, func(a application.Application) int64 { return a.ID })
	return out, nil
}

func (r *ApplicationRepo) ListByCompany(_ context.Context, companyID int64) ([]application.Detail, error) {
	return r.details(func(a application.Application, j jobOwner) bool { return j.companyID == companyID }), nil
}

func (r *ApplicationRepo) ListAll(_ context.Context) ([]application.Detail, error) {
	return r.details(func(application.Application, jobOwner) bool { return true }), nil
}

func (r *ApplicationRepo) ListByApplicant(_ context.Context, applicantID int64) ([]application.Detail, error) {
	return r.details(func(a application.Application, _ jobOwner) bool { return a.ApplicantID == applicantID }), nil
}

type jobOwner struct {
	companyID int64
}

func (r *ApplicationRepo) details(keep func(application.Application, jobOwner) bool) []application.Detail {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]application.Detail, 0)
	for _, a := range r.s.applications {
		j, ok := r.s.jobs[a.JobID]
		if !ok {
			continue
		}
		if !keep(a, jobOwner{companyID: j.CompanyID}) {
			continue
		}
		p := r.s.applicants[a.ApplicantID]
		c := r.s.companies[j.CompanyID]
		out = append(out, application.Detail{
			Application:       a,
			ApplicantName:     p.Name,
			ApplicantEmail:    clone(p.Email),
			ApplicantPhotoURL: clone(p.ProfilePhotoURL),
			ResumeURL:         clone(p.ResumeURL),
			JobTitle:          j.Title,
			JobLocation:       j.Location,
			CompanyID:         c.ID,
			CompanyName:       c.Name,
		})
	}
	newestFirst(out, func(d application.Detail) int64 { return d.ID })
	return out
}
