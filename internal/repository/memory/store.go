// Package memory keeps every table in process memory behind one lock. It
// enforces the same unique and cascade rules as the Postgres schema and backs
// usecase and HTTP tests.
package memory

import (
	"sort"
	"sync"
	"time"

	"job-portal/internal/domain/applicant"
	"job-portal/internal/domain/application"
	"job-portal/internal/domain/company"
	"job-portal/internal/domain/institution"
	"job-portal/internal/domain/job"
)

type Store struct {
	mu  sync.RWMutex
	seq int64
	now func() time.Time

	companies    map[int64]company.Company
	institutions map[int64]institution.Institution
	applicants   map[int64]applicant.Applicant
	jobs         map[int64]job.Job
	applications map[int64]application.Application
}

func NewStore() *Store {
	return &Store{
		now:          time.Now,
		companies:    map[int64]company.Company{},
		institutions: map[int64]institution.Institution{},
		applicants:   map[int64]applicant.Applicant{},
		jobs:         map[int64]job.Job{},
		applications: map[int64]application.Application{},
	}
}

func (s *Store) Companies() *CompanyRepo { return &CompanyRepo{s: s} }

func (s *Store) Institutions() *InstitutionRepo { return &InstitutionRepo{s: s} }

func (s *Store) Applicants() *ApplicantRepo { return &ApplicantRepo{s: s} }

func (s *Store) Jobs() *JobRepo { return &JobRepo{s: s} }

func (s *Store) Applications() *ApplicationRepo { return &ApplicationRepo{s: s} }

// nextID must be called with mu held.
func (s *Store) nextID() int64 {
	s.seq++
	return s.seq
}

// deleteJobLocked removes a job and its applications.
func (s *Store) deleteJobLocked(id int64) {
	delete(s.jobs, id)
	for aid, a := range s.applications {
		if a.JobID == id {
			delete(s.applications, aid)
		}
	}
}

func (s *Store) applicantCountLocked(jobID int64) int {
	n := 0
	for _, a := range s.applications {
		if a.JobID == jobID {
			n++
		}
	}
	return n
}

func (s *Store) listingLocked(j job.Job) job.Listing {
	c := s.companies[j.CompanyID]
	return job.Listing{
		Job: j,
		Company: job.CompanyRef{
			ID:       c.ID,
			Name:     c.Name,
			Email:    c.Email,
			ImageRef: clone(c.ImageRef),
		},
		ApplicantCount: s.applicantCountLocked(j.ID),
	}
}

func clone(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// newestFirst orders by id descending; ids are assigned in insertion order.
func newestFirst[T any](items []T, id func(T) int64) {
	sort.Slice(items, func(i, j int) bool { return id(items[i]) > id(items[j]) })
}

var (
	_ company.Repository     = (*CompanyRepo)(nil)
	_ institution.Repository = (*InstitutionRepo)(nil)
	_ applicant.Repository   = (*ApplicantRepo)(nil)
	_ job.Repository         = (*JobRepo)(nil)
	_ application.Repository = (*ApplicationRepo)(nil)
)
