package memory

import (
	"context"

	"job-portal/internal/domain/company"
)

type CompanyRepo struct {
	s *Store
}

func (r *CompanyRepo) Create(_ context.Context, c company.Company) (company.Company, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.emailTakenLocked(c.Email, 0) {
		return company.Company{}, company.ErrEmailDuplicate
	}
	now := r.s.now()
	c.ID = r.s.nextID()
	c.ImageRef = clone(c.ImageRef)
	c.CreatedAt, c.UpdatedAt = now, now
	r.s.companies[c.ID] = c
	return c, nil
}

func (r *CompanyRepo) GetByID(_ context.Context, id int64) (company.Company, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	c, ok := r.s.companies[id]
	if !ok {
		return company.Company{}, company.ErrNotFound
	}
	return c, nil
}

func (r *CompanyRepo) GetByEmail(_ context.Context, email string) (company.Company, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, c := range r.s.companies {
		if c.Email == email {
			return c, nil
		}
	}
	return company.Company{}, company.ErrNotFound
}

func (r *CompanyRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.emailTakenLocked(email, 0), nil
}

func (r *CompanyRepo) Update(_ context.Context, c company.Company) (company.Company, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	cur, ok := r.s.companies[c.ID]
	if !ok {
		return company.Company{}, company.ErrNotFound
	}
	if r.emailTakenLocked(c.Email, c.ID) {
		return company.Company{}, company.ErrEmailDuplicate
	}
	c.ImageRef = clone(c.ImageRef)
	c.CreatedAt = cur.CreatedAt
	c.UpdatedAt = r.s.now()
	r.s.companies[c.ID] = c
	return c, nil
}

func (r *CompanyRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.companies[id]; !ok {
		return company.ErrNotFound
	}
	delete(r.s.companies, id)
	for jid, j := range r.s.jobs {
		if j.CompanyID == id {
			r.s.deleteJobLocked(jid)
		}
	}
	return nil
}

func (r *CompanyRepo) ListWithJobCounts(_ context.Context) ([]company.Summary, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	counts := map[int64]int{}
	for _, j := range r.s.jobs {
		counts[j.CompanyID]++
	}
	out := make([]company.Summary, 0, len(r.s.companies))
	for _, c := range r.s.companies {
		out = append(out, company.Summary{Company: c, JobCount: counts[c.ID]})
	}
	newestFirst(out, func(s company.Summary) int64 { return s.ID })
	return out, nil
}

func (r *CompanyRepo) emailTakenLocked(email string, except int64) bool {
	for _, c := range r.s.companies {
		if c.Email == email && c.ID != except {
			return true
		}
	}
	return false
}
