package authz

import (
	"job-portal/internal/domain/application"
	"job-portal/internal/domain/job"
	"job-portal/internal/domain/principal"
)

// Guard is stateless; every decision is made from the rows passed in.
type Guard struct{}

func NewGuard() Guard {
	return Guard{}
}

func (Guard) AuthorizeJobCreation(ref principal.Ref) error {
	if Capability(ref, OpCreateJob) != Allow {
		return ErrDenied
	}
	return nil
}

func (g Guard) AuthorizeJobMutation(ref principal.Ref, j job.Job) error {
	return g.ownedBy(ref, OpMutateJob, j.CompanyID)
}

// AuthorizeApplicationMutation follows application -> job -> company using the
// owner id loaded alongside the application.
func (g Guard) AuthorizeApplicationMutation(ref principal.Ref, a application.Scoped) error {
	return g.ownedBy(ref, OpMutateApplication, a.JobCompanyID)
}

func (Guard) AuthorizeCompanyManagement(ref principal.Ref) error {
	if Capability(ref, OpManageCompany) != Allow {
		return ErrDenied
	}
	return nil
}

func (Guard) AuthorizeProfileRead(ref principal.Ref) error {
	if Capability(ref, OpReadOwnProfile) != Allow {
		return ErrDenied
	}
	return nil
}

// ScopeCompanyID tells list queries how to filter: scoped=false means unfiltered,
// otherwise rows must belong to companyID.
func (Guard) ScopeCompanyID(ref principal.Ref, op Operation) (companyID int64, scoped bool, err error) {
	switch Capability(ref, op) {
	case Allow:
		return 0, false, nil
	case MustOwn:
		if !ref.IsCompany() {
			return 0, false, ErrDenied
		}
		return ref.ID(), true, nil
	default:
		return 0, false, ErrDenied
	}
}

func (Guard) ownedBy(ref principal.Ref, op Operation, ownerCompanyID int64) error {
	switch Capability(ref, op) {
	case Allow:
		return nil
	case MustOwn:
		if ref.IsCompany() && ownerCompanyID == ref.ID() {
			return nil
		}
		return ErrNotFoundOrForbidden
	default:
		return ErrDenied
	}
}
