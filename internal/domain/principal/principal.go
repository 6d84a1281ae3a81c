// Package principal identifies who is acting on a request. A Ref is a tagged
// union over the two token-bearing principal kinds; the zero Ref is anonymous.
package principal

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindCompany     Kind = "company"
	KindInstitution Kind = "institution"
)

var ErrUnknownKind = errors.New("unknown principal kind")

func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindCompany, KindInstitution:
		return Kind(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
}

// Ref carries the discriminant and id. Fields are unexported so a Ref can only
// be built through Company or Institution.
type Ref struct {
	kind Kind
	id   int64
}

func Company(id int64) Ref {
	return Ref{kind: KindCompany, id: id}
}

func Institution(id int64) Ref {
	return Ref{kind: KindInstitution, id: id}
}

func (r Ref) Kind() Kind { return r.kind }

func (r Ref) ID() int64 { return r.id }

func (r Ref) IsAnonymous() bool { return r.kind == "" || r.id <= 0 }

func (r Ref) IsCompany() bool { return r.kind == KindCompany && r.id > 0 }

func (r Ref) IsInstitution() bool { return r.kind == KindInstitution && r.id > 0 }

func (r Ref) String() string {
	if r.IsAnonymous() {
		return "anonymous"
	}
	return fmt.Sprintf("%s:%d", r.kind, r.id)
}

// Principal is implemented by the stored rows that can authenticate.
type Principal interface {
	PrincipalRef() Ref
}
