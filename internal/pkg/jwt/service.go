package jwt

import (
	"errors"
	"strconv"
	"time"

	"job-portal/internal/domain/principal"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenMalformed = errors.New("token malformed")
	ErrSigningConfig  = errors.New("token signing misconfigured")
)

// Claims is the verified token content. Principal is the only input to
// authorization; Email is informational and may be stale.
type Claims struct {
	Principal principal.Ref
	Email     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// wireClaims is the signed payload. Exactly one of CompanyID and InstitutionID
// is set and it must agree with PrincipalType.
type wireClaims struct {
	PrincipalType string `json:"principal_type"`
	CompanyID     *int64 `json:"company_id,omitempty"`
	InstitutionID *int64 `json:"institution_id,omitempty"`
	Email         string `json:"email"`

	jwtlib.RegisteredClaims
}

type Service interface {
	Issue(ref principal.Ref, email string) (string, Claims, error)
	Verify(token string) (Claims, error)
}

// HMACService signs HS256 tokens. It holds no mutable state after construction
// and is shared by every request.
type HMACService struct {
	secret    []byte
	expiresIn time.Duration
	issuer    string

	now func() time.Time
}

func NewHMACService(secret string, expiresIn time.Duration, issuer string) *HMACService {
	return &HMACService{
		secret:    []byte(secret),
		expiresIn: expiresIn,
		issuer:    issuer,
		now:       time.Now,
	}
}

// WithClock returns a copy that reads time from now. Used by tests.
func (s *HMACService) WithClock(now func() time.Time) *HMACService {
	cp := *s
	cp.now = now
	return &cp
}

func (s *HMACService) Issue(ref principal.Ref, email string) (string, Claims, error) {
	if len(s.secret) == 0 || s.expiresIn <= 0 {
		return "", Claims{}, ErrSigningConfig
	}
	if ref.IsAnonymous() {
		return "", Claims{}, principal.ErrUnknownKind
	}

	now := s.now().UTC().Truncate(time.Second)
	exp := now.Add(s.expiresIn)

	id := ref.ID()
	wc := wireClaims{
		PrincipalType: string(ref.Kind()),
		Email:         email,
		RegisteredClaims: jwtlib.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   string(ref.Kind()) + ":" + strconv.FormatInt(id, 10),
			IssuedAt:  jwtlib.NewNumericDate(now),
			ExpiresAt: jwtlib.NewNumericDate(exp),
		},
	}
	switch ref.Kind() {
	case principal.KindCompany:
		wc.CompanyID = &id
	case principal.KindInstitution:
		wc.InstitutionID = &id
	}

	signed, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, wc).SignedString(s.secret)
	if err != nil {
		return "", Claims{}, err
	}

	return signed, Claims{Principal: ref, Email: email, IssuedAt: now, ExpiresAt: exp}, nil
}

// Verify checks signature, algorithm and expiry. An expired payload reports
// ErrTokenExpired even when the signature does not verify.
func (s *HMACService) Verify(token string) (Claims, error) {
	if token == "" {
		return Claims{}, ErrTokenMalformed
	}

	p := jwtlib.NewParser(
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}),
		jwtlib.WithExpirationRequired(),
		jwtlib.WithTimeFunc(s.now),
	)

	var wc wireClaims
	tok, err := p.ParseWithClaims(token, &wc, func(*jwtlib.Token) (any, error) {
		if len(s.secret) == 0 {
			return nil, ErrSigningConfig
		}
		return s.secret, nil
	})
	if err != nil {
		if s.expiredPayload(token) {
			return Claims{}, ErrTokenExpired
		}
		return Claims{}, ErrTokenMalformed
	}
	if tok == nil || !tok.Valid || wc.ExpiresAt == nil {
		return Claims{}, ErrTokenMalformed
	}

	// The library treats exp as exclusive; the session ends at exp itself.
	if !s.now().Before(wc.ExpiresAt.Time) {
		return Claims{}, ErrTokenExpired
	}

	ref, err := wc.principal()
	if err != nil {
		return Claims{}, ErrTokenMalformed
	}

	c := Claims{Principal: ref, Email: wc.Email, ExpiresAt: wc.ExpiresAt.Time.UTC()}
	if wc.IssuedAt != nil {
		c.IssuedAt = wc.IssuedAt.Time.UTC()
	}
	return c, nil
}

func (s *HMACService) expiredPayload(token string) bool {
	var wc wireClaims
	if _, _, err := jwtlib.NewParser().ParseUnverified(token, &wc); err != nil {
		return false
	}
	if wc.ExpiresAt == nil {
		return false
	}
	return !s.now().Before(wc.ExpiresAt.Time)
}

func (wc wireClaims) principal() (principal.Ref, error) {
	kind, err := principal.ParseKind(wc.PrincipalType)
	if err != nil {
		return principal.Ref{}, err
	}

	switch kind {
	case principal.KindCompany:
		if wc.CompanyID == nil || wc.InstitutionID != nil || *wc.CompanyID <= 0 {
			return principal.Ref{}, ErrTokenMalformed
		}
		return principal.Company(*wc.CompanyID), nil
	case principal.KindInstitution:
		if wc.InstitutionID == nil || wc.CompanyID != nil || *wc.InstitutionID <= 0 {
			return principal.Ref{}, ErrTokenMalformed
		}
		return principal.Institution(*wc.InstitutionID), nil
	default:
		return principal.Ref{}, ErrTokenMalformed
	}
}
