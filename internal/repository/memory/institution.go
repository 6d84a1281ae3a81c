package memory

import (
	"context"

	"job-portal/internal/domain/institution"
)

type InstitutionRepo struct {
	s *Store
}

func (r *InstitutionRepo) Create(_ context.Context, i institution.Institution) (institution.Institution, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.emailTakenLocked(i.Email, 0) {
		return institution.Institution{}, institution.ErrEmailDuplicate
	}
	now := r.s.now()
	i.ID = r.s.nextID()
	i.CreatedAt, i.UpdatedAt = now, now
	r.s.institutions[i.ID] = i
	return i, nil
}

func (r *InstitutionRepo) GetByID(_ context.Context, id int64) (institution.Institution, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	i, ok := r.s.institutions[id]
	if !ok {
		return institution.Institution{}, institution.ErrNotFound
	}
	return i, nil
}

func (r *InstitutionRepo) GetByEmail(_ context.Context, email string) (institution.Institution, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, i := range r.s.institutions {
		if i.Email == email {
			return i, nil
		}
	}
	return institution.Institution{}, institution.ErrNotFound
}

func (r *InstitutionRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.emailTakenLocked(email, 0), nil
}

func (r *InstitutionRepo) Update(_ context.Context, i institution.Institution) (institution.Institution, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	cur, ok := r.s.institutions[i.ID]
	if !ok {
		return institution.Institution{}, institution.ErrNotFound
	}
	if r.emailTakenLocked(i.Email, i.ID) {
		return institution.Institution{}, institution.ErrEmailDuplicate
	}
	i.CreatedAt = cur.CreatedAt
	i.UpdatedAt = r.s.now()
	r.s.institutions[i.ID] = i
	return i, nil
}

// Delete is not part of institution.Repository; tests use it to simulate a
// principal removed after its token was issued.
func (r *InstitutionRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.institutions[id]; !ok {
		return institution.ErrNotFound
	}
	delete(r.s.institutions, id)
	return nil
}

func (r *InstitutionRepo) emailTakenLocked(email string, except int64) bool {
	for _, i := range r.s.institutions {
		if i.Email == email && i.ID != except {
			return true
		}
	}
	return false
}
