package memory

import (
	"context"
	"sort"

	"job-portal/internal/domain/company"
	"job-portal/internal/domain/job"
)

type JobRepo struct {
	s *Store
}

func (r *JobRepo) Create(_ context.Context, j job.Job) (job.Job, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.companies[j.CompanyID]; !ok {
		return job.Job{}, company.ErrNotFound
	}
	j.ID = r.s.nextID()
	j.CreatedAt = r.s.now()
	r.s.jobs[j.ID] = j
	return j, nil
}

func (r *JobRepo) GetByID(_ context.Context, id int64) (job.Job, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	j, ok := r.s.jobs[id]
	if !ok {
		return job.Job{}, job.ErrNotFound
	}
	return j, nil
}

func (r *JobRepo) Update(_ context.Context, j job.Job) (job.Job, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	cur, ok := r.s.jobs[j.ID]
	if !ok {
		return job.Job{}, job.ErrNotFound
	}
	j.CompanyID = cur.CompanyID
	j.CreatedAt = cur.CreatedAt
	r.s.jobs[j.ID] = j
	return j, nil
}

func (r *JobRepo) SetVisibility(_ context.Context, id int64, visible bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	j, ok := r.s.jobs[id]
	if !ok {
		return job.ErrNotFound
	}
	j.Visible = visible
	r.s.jobs[id] = j
	return nil
}

func (r *JobRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.jobs[id]; !ok {
		return job.ErrNotFound
	}
	r.s.deleteJobLocked(id)
	return nil
}

func (r *JobRepo) ListByCompany(_ context.Context, companyID int64) ([]job.Listing, error) {
	return r.list(func(j job.Job) bool { return j.CompanyID == companyID }), nil
}

func (r *JobRepo) ListAll(_ context.Context) ([]job.Listing, error) {
	return r.list(func(job.Job) bool { return true }), nil
}

func (r *JobRepo) ListVisible(_ context.Context) ([]job.Listing, error) {
	return r.list(func(j job.Job) bool { return j.Visible }), nil
}

func (r *JobRepo) GetVisible(_ context.Context, id int64) (job.Listing, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	j, ok := r.s.jobs[id]
	if !ok || !j.Visible {
		return job.Listing{}, job.ErrNotFound
	}
	return r.s.listingLocked(j), nil
}

func (r *JobRepo) DistinctCategories(_ context.Context) ([]string, error) {
	return r.distinct(func(j job.Job) string { return j.Category }), nil
}

func (r *JobRepo) DistinctLocations(_ context.Context) ([]string, error) {
	return r.distinct(func(j job.Job) string { return j.Location }), nil
}

func (r *JobRepo) list(keep func(job.Job) bool) []job.Listing {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]job.Listing, 0)
	for _, j := range r.s.jobs {
		if keep(j) {
			out = append(out, r.s.listingLocked(j))
		}
	}
	newestFirst(out, func(l job.Listing) int64 { return l.ID })
	return out
}

func (r *JobRepo) distinct(field func(job.Job) string) []string {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	seen := map[string]struct{}{}
	out := make([]string, 0)
	for _, j := range r.s.jobs {
		if !j.Visible {
			continue
		}
		v := field(j)
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
