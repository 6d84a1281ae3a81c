package memory

import (
	"context"

	"job-portal/internal/domain/applicant"
)

type ApplicantRepo struct {
	s *Store
}

func (r *ApplicantRepo) Upsert(_ context.Context, in applicant.Upsert) (applicant.Applicant, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	cur, exists := r.byExternalIDLocked(in.ExternalID)
	if !exists {
		cur = applicant.Applicant{ExternalID: in.ExternalID}
	}
	if in.Name != nil {
		cur.Name = *in.Name
	}
	if in.Email != nil {
		cur.Email = clone(in.Email)
	}
	if in.ProfilePhotoURL != nil {
		cur.ProfilePhotoURL = clone(in.ProfilePhotoURL)
	}
	if in.ResumeURL != nil {
		cur.ResumeURL = clone(in.ResumeURL)
	}
	if cur.Email != nil {
		for _, a := range r.s.applicants {
			if a.Email != nil && *a.Email == *cur.Email && a.ExternalID != cur.ExternalID {
				return applicant.Applicant{}, applicant.ErrEmailDuplicate
			}
		}
	}

	now := r.s.now()
	if !exists {
		cur.ID = r.s.nextID()
		cur.CreatedAt = now
	}
	cur.UpdatedAt = now
	r.s.applicants[cur.ID] = cur
	return cur, nil
}

func (r *ApplicantRepo) GetOrCreate(_ context.Context, externalID string) (applicant.Applicant, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if a, ok := r.byExternalIDLocked(externalID); ok {
		return a, nil
	}
	now := r.s.now()
	a := applicant.Applicant{ID: r.s.nextID(), ExternalID: externalID, CreatedAt: now, UpdatedAt: now}
	r.s.applicants[a.ID] = a
	return a, nil
}

func (r *ApplicantRepo) GetByExternalID(_ context.Context, externalID string) (applicant.Applicant, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	a, ok := r.byExternalIDLocked(externalID)
	if !ok {
		return applicant.Applicant{}, applicant.ErrNotFound
	}
	return a, nil
}

func (r *ApplicantRepo) DeleteByExternalID(_ context.Context, externalID string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	a, ok := r.byExternalIDLocked(externalID)
	if !ok {
		return false, nil
	}
	delete(r.s.applicants, a.ID)
	for id, app := range r.s.applications {
		if app.ApplicantID == a.ID {
			delete(r.s.applications, id)
		}
	}
	return true, nil
}

func (r *ApplicantRepo) byExternalIDLocked(externalID string) (applicant.Applicant, bool) {
	for _, a := range r.s.applicants {
		if a.ExternalID == externalID {
			return a, true
		}
	}
	return applicant.Applicant{}, false
}
