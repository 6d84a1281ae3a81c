package jwt

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"job-portal/internal/domain/principal"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func newTestService(now time.Time) *HMACService {
	return NewHMACService(testSecret, 7*24*time.Hour, "job-portal").WithClock(fixedClock(now))
}

func TestIssueVerify_RoundTrip(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	svc := newTestService(now)

	for _, ref := range []principal.Ref{principal.Company(42), principal.Institution(7)} {
		tok, issued, err := svc.Issue(ref, "owner@example.com")
		require.NoError(t, err)
		assert.Equal(t, now.Add(7*24*time.Hour), issued.ExpiresAt)

		got, err := svc.Verify(tok)
		require.NoError(t, err)
		assert.Equal(t, ref, got.Principal)
		assert.Equal(t, "owner@example.com", got.Email)
		assert.Equal(t, issued.ExpiresAt, got.ExpiresAt)
		assert.Equal(t, now, got.IssuedAt)
	}
}

func TestVerify_PayloadShape(t *testing.T) {
	svc := newTestService(time.Now())
	tok, _, err := svc.Issue(principal.Company(5), "c@example.com")
	require.NoError(t, err)

	parts := strings.Split(tok, ".")
	require.Len(t, parts, 3)
	raw, err := base64.RawURLEncoding.DecodeString(parts[1])
	require.NoError(t, err)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(raw, &payload))
	assert.Equal(t, "company", payload["principal_type"])
	assert.EqualValues(t, 5, payload["company_id"])
	assert.NotContains(t, payload, "institution_id")
	assert.Contains(t, payload, "exp")
}

func TestVerify_Expired(t *testing.T) {
	issuedAt := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	tok, claims, err := newTestService(issuedAt).Issue(principal.Company(1), "a@example.com")
	require.NoError(t, err)

	_, err = newTestService(claims.ExpiresAt).Verify(tok)
	assert.ErrorIs(t, err, ErrTokenExpired, "exp itself is already expired")

	_, err = newTestService(claims.ExpiresAt.Add(time.Hour)).Verify(tok)
	assert.ErrorIs(t, err, ErrTokenExpired)

	_, err = newTestService(claims.ExpiresAt.Add(-time.Second)).Verify(tok)
	assert.NoError(t, err)
}

func TestVerify_ExpiredWinsOverBadSignature(t *testing.T) {
	issuedAt := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	other := NewHMACService("ffffffffffffffffffffffffffffffff", time.Hour, "x").WithClock(fixedClock(issuedAt))
	tok, _, err := other.Issue(principal.Institution(3), "i@example.com")
	require.NoError(t, err)

	_, err = newTestService(issuedAt.Add(2 * time.Hour)).Verify(tok)
	assert.ErrorIs(t, err, ErrTokenExpired)

	_, err = newTestService(issuedAt).Verify(tok)
	assert.ErrorIs(t, err, ErrTokenMalformed)
}

func TestVerify_Malformed(t *testing.T) {
	svc := newTestService(time.Now())

	for _, tok := range []string{"", "abc", "a.b.c", "eyJhbGciOiJIUzI1NiJ9.e30."} {
		_, err := svc.Verify(tok)
		assert.ErrorIs(t, err, ErrTokenMalformed, tok)
	}
}

func TestVerify_RejectsOtherAlgorithms(t *testing.T) {
	now := time.Now()
	id := int64(9)
	wc := wireClaims{
		PrincipalType: "company",
		CompanyID:     &id,
		RegisteredClaims: jwtlib.RegisteredClaims{
			ExpiresAt: jwtlib.NewNumericDate(now.Add(time.Hour)),
		},
	}

	none, err := jwtlib.NewWithClaims(jwtlib.SigningMethodNone, wc).SignedString(jwtlib.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = newTestService(now).Verify(none)
	assert.ErrorIs(t, err, ErrTokenMalformed)

	hs512, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS512, wc).SignedString([]byte(testSecret))
	require.NoError(t, err)
	_, err = newTestService(now).Verify(hs512)
	assert.ErrorIs(t, err, ErrTokenMalformed)
}

func TestVerify_DiscriminantMustMatchIDField(t *testing.T) {
	now := time.Now()
	id := int64(11)
	sign := func(wc wireClaims) string {
		wc.ExpiresAt = jwtlib.NewNumericDate(now.Add(time.Hour))
		s, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, wc).SignedString([]byte(testSecret))
		require.NoError(t, err)
		return s
	}
	svc := newTestService(now)

	cases := map[string]wireClaims{
		"institution type with company id": {PrincipalType: "institution", CompanyID: &id},
		"both ids":                         {PrincipalType: "company", CompanyID: &id, InstitutionID: &id},
		"no discriminant":                  {CompanyID: &id},
		"unknown discriminant":             {PrincipalType: "admin", CompanyID: &id},
		"no id":                            {PrincipalType: "company"},
	}
	for name, wc := range cases {
		_, err := svc.Verify(sign(wc))
		assert.ErrorIs(t, err, ErrTokenMalformed, name)
	}
}

func TestVerify_RequiresExpiry(t *testing.T) {
	id := int64(1)
	tok, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, wireClaims{PrincipalType: "company", CompanyID: &id}).
		SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = newTestService(time.Now()).Verify(tok)
	assert.ErrorIs(t, err, ErrTokenMalformed)
}

func TestIssue_Misconfigured(t *testing.T) {
	_, _, err := NewHMACService("", time.Hour, "").Issue(principal.Company(1), "")
	assert.ErrorIs(t, err, ErrSigningConfig)

	_, _, err = newTestService(time.Now()).Issue(principal.Ref{}, "")
	assert.Error(t, err)
}
