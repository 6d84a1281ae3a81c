// Package authz decides which principal may act on which job and application
// rows. The capability table is consulted first; MustOwn entries then defer to
// the ownership guard against freshly loaded rows.
package authz

import (
	"errors"

	"job-portal/internal/domain/principal"
)

var (
	// ErrDenied is a role-level refusal: the principal kind may never perform
	// the operation.
	ErrDenied = errors.New("operation not permitted for principal")
	// ErrNotFoundOrForbidden is returned for ownership failures so callers cannot
	// tell a foreign row from a missing one.
	ErrNotFoundOrForbidden = errors.New("resource not found")
)

type Operation int

const (
	OpCreateJob Operation = iota + 1
	OpMutateJob
	OpMutateApplication
	OpManageCompany
	OpReadOwnProfile
	OpReadScopedJobs
	OpReadScopedApplications
)

func (o Operation) String() string {
	switch o {
	case OpCreateJob:
		return "create_job"
	case OpMutateJob:
		return "mutate_job"
	case OpMutateApplication:
		return "mutate_application"
	case OpManageCompany:
		return "manage_company"
	case OpReadOwnProfile:
		return "read_own_profile"
	case OpReadScopedJobs:
		return "read_scoped_jobs"
	case OpReadScopedApplications:
		return "read_scoped_applications"
	default:
		return "unknown"
	}
}

type Rule int

const (
	Deny Rule = iota
	Allow
	MustOwn
)

func (r Rule) String() string {
	switch r {
	case Allow:
		return "allow"
	case MustOwn:
		return "must_own"
	default:
		return "deny"
	}
}

// Institutions hold a superset of company privileges over every company's
// rows, except job creation which needs a company to own the job.
var capabilities = map[Operation]map[principal.Kind]Rule{
	OpCreateJob: {
		principal.KindCompany:     Allow,
		principal.KindInstitution: Deny,
	},
	OpMutateJob: {
		principal.KindCompany:     MustOwn,
		principal.KindInstitution: Allow,
	},
	OpMutateApplication: {
		principal.KindCompany:     MustOwn,
		principal.KindInstitution: Allow,
	},
	OpManageCompany: {
		principal.KindCompany:     Deny,
		principal.KindInstitution: Allow,
	},
	OpReadOwnProfile: {
		principal.KindCompany:     Allow,
		principal.KindInstitution: Allow,
	},
	OpReadScopedJobs: {
		principal.KindCompany:     MustOwn,
		principal.KindInstitution: Allow,
	},
	OpReadScopedApplications: {
		principal.KindCompany:     MustOwn,
		principal.KindInstitution: Allow,
	},
}

// Capability returns Deny for anonymous principals and unknown operations.
func Capability(ref principal.Ref, op Operation) Rule {
	if ref.IsAnonymous() {
		return Deny
	}
	byKind, ok := capabilities[op]
	if !ok {
		return Deny
	}
	return byKind[ref.Kind()]
}
