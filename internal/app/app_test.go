package app

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"job-portal/internal/domain/company"
	"job-portal/internal/domain/institution"
	"job-portal/internal/domain/job"
	"job-portal/internal/domain/principal"
	"job-portal/internal/infrastructure/export"
	"job-portal/internal/infrastructure/webhook"
	"job-portal/internal/pkg/jwt"
	"job-portal/internal/repository/memory"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	svix "github.com/svix/svix-webhooks/go"
)

const (
	testJWTSecret = "0123456789abcdef0123456789abcdef"
	proxySecret   = "proxy-shared-secret"
)

var testWebhookSecret = "whsec_" + base64.StdEncoding.EncodeToString([]byte("fedcba9876543210fedcba9876543210"))

type semanticResponse struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type testEnv struct {
	app    *fiber.App
	store  *memory.Store
	tokens *jwt.HMACService

	acme    company.Company
	beta    company.Company
	campus  institution.Institution
	acmeJob job.Job
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	store := memory.NewStore()
	tokens := jwt.NewHMACService(testJWTSecret, time.Hour, "job-portal-test")
	verifier, err := webhook.NewSvixVerifier(testWebhookSecret)
	require.NoError(t, err)

	env := &testEnv{store: store, tokens: tokens}

	env.acme, err = store.Companies().Create(ctx, company.Company{Name: "Acme", Email: "hr@acme.io", PasswordHash: "h"})
	require.NoError(t, err)
	env.beta, err = store.Companies().Create(ctx, company.Company{Name: "Beta", Email: "hr@beta.io", PasswordHash: "h"})
	require.NoError(t, err)
	env.campus, err = store.Institutions().Create(ctx, institution.Institution{Name: "Campus", Email: "ops@campus.edu", PasswordHash: "h"})
	require.NoError(t, err)
	env.acmeJob, err = store.Jobs().Create(ctx, job.Job{
		Title: "Go Developer", Location: "Jakarta", Level: job.LevelSenior,
		CompanyID: env.acme.ID, Category: "Engineering", Visible: true,
	})
	require.NoError(t, err)

	env.app = New(Deps{
		Companies:    store.Companies(),
		Institutions: store.Institutions(),
		Applicants:   store.Applicants(),
		Jobs:         store.Jobs(),
		Applications: store.Applications(),
		Tokens:       tokens,
		Verifier:     verifier,
		ProxySecret:  proxySecret,
	}).Fiber
	return env
}

func (e *testEnv) token(t *testing.T, ref principal.Ref) string {
	t.Helper()
	tok, _, err := e.tokens.Issue(ref, "")
	require.NoError(t, err)
	return tok
}

type reqOpt func(*http.Request)

func bearer(tok string) reqOpt {
	return func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+tok) }
}

func asApplicant(externalID string) reqOpt {
	return func(r *http.Request) {
		r.Header.Set("X-Clerk-User-Id", externalID)
		r.Header.Set("X-Proxy-Secret", proxySecret)
	}
}

func (e *testEnv) do(t *testing.T, method, path string, body any, opts ...reqOpt) (*http.Response, semanticResponse) {
	t.Helper()

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, o := range opts {
		o(req)
	}

	resp, err := e.app.Test(req, fiber.TestConfig{Timeout: 10 * time.Second})
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var sr semanticResponse
	_ = json.Unmarshal(raw, &sr)
	return resp, sr
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)

	resp, sr := env.do(t, http.MethodGet, "/api/health", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", sr.Message)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}

func TestBearer_MissingOrMalformed(t *testing.T) {
	env := newTestEnv(t)

	resp, sr := env.do(t, http.MethodGet, "/api/company/jobs", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Authorization header required", sr.Message)

	resp, sr = env.do(t, http.MethodGet, "/api/company/jobs", nil, func(r *http.Request) {
		r.Header.Set("Authorization", "Token abc")
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Authorization header required", sr.Message)

	resp, sr = env.do(t, http.MethodGet, "/api/company/jobs", nil, bearer("not.a.token"))
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Invalid token", sr.Message)
}

func TestBearer_Expired(t *testing.T) {
	env := newTestEnv(t)

	past := jwt.NewHMACService(testJWTSecret, time.Hour, "job-portal-test").
		WithClock(func() time.Time { return time.Now().Add(-2 * time.Hour) })
	tok, _, err := past.Issue(env.acme.PrincipalRef(), env.acme.Email)
	require.NoError(t, err)

	resp, sr := env.do(t, http.MethodGet, "/api/company/jobs", nil, bearer(tok))
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Token expired", sr.Message)
}

func TestBearer_KindConfusion(t *testing.T) {
	env := newTestEnv(t)

	// Institution and company share id space; the token kind still decides.
	resp, sr := env.do(t, http.MethodGet, "/api/company/jobs", nil, bearer(env.token(t, principal.Institution(env.acme.ID))))
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Invalid token", sr.Message)

	resp, _ = env.do(t, http.MethodGet, "/api/institution/jobs", nil, bearer(env.token(t, env.acme.PrincipalRef())))
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestBearer_DeletedPrincipal(t *testing.T) {
	env := newTestEnv(t)
	tok := env.token(t, env.beta.PrincipalRef())

	require.NoError(t, env.store.Companies().Delete(context.Background(), env.beta.ID))

	resp, sr := env.do(t, http.MethodGet, "/api/company/profile", nil, bearer(tok))
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Account not found", sr.Message)
}

func TestCompanySignupLogin(t *testing.T) {
	env := newTestEnv(t)

	resp, sr := env.do(t, http.MethodPost, "/api/company/signup", map[string]any{
		"name": "Gamma", "email": "HR@Gamma.io", "password": "gamma-password",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, sr.Message)

	var sess struct {
		Token   string `json:"token"`
		Company struct {
			ID    int64  `json:"id"`
			Email string `json:"email"`
		} `json:"company"`
	}
	require.NoError(t, json.Unmarshal(sr.Data, &sess))
	assert.NotEmpty(t, sess.Token)
	assert.Equal(t, "hr@gamma.io", sess.Company.Email)
	assert.NotContains(t, string(sr.Data), "password")

	resp, _ = env.do(t, http.MethodPost, "/api/company/signup", map[string]any{
		"name": "Gamma 2", "email": "hr@gamma.io", "password": "gamma-password",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp, sr = env.do(t, http.MethodPost, "/api/company/login", map[string]any{"email": "hr@gamma.io", "password": "gamma-password"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(sr.Data, &sess))

	resp, _ = env.do(t, http.MethodGet, "/api/company/profile", nil, bearer(sess.Token))
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Same credentials are not valid against the institution table.
	resp, sr = env.do(t, http.MethodPost, "/api/institution/login", map[string]any{"email": "hr@gamma.io", "password": "gamma-password"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Invalid email or password", sr.Message)
}

func TestSignup_ValidationErrors(t *testing.T) {
	env := newTestEnv(t)

	resp, sr := env.do(t, http.MethodPost, "/api/institution/signup", map[string]any{
		"name": "Campus 2", "email": "not-an-email", "password": "short",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Validation failed", sr.Message)

	var fields []struct {
		Field string `json:"field"`
	}
	require.NoError(t, json.Unmarshal(sr.Data, &fields))
	var names []string
	for _, f := range fields {
		names = append(names, f.Field)
	}
	assert.ElementsMatch(t, []string{"email", "password"}, names)
}

func TestJobOwnership(t *testing.T) {
	env := newTestEnv(t)
	path := "/api/company/jobs/" + strconv.FormatInt(env.acmeJob.ID, 10)
	betaTok := env.token(t, env.beta.PrincipalRef())

	foreign, foreignBody := env.do(t, http.MethodPut, path, map[string]any{"title": "Hijacked"}, bearer(betaTok))
	missing, missingBody := env.do(t, http.MethodPut, "/api/company/jobs/99999", map[string]any{"title": "Hijacked"}, bearer(betaTok))

	assert.Equal(t, http.StatusNotFound, foreign.StatusCode)
	assert.Equal(t, missing.StatusCode, foreign.StatusCode)
	assert.Equal(t, missingBody, foreignBody, "foreign and missing rows must be indistinguishable")
	assert.Equal(t, "Job not found or not authorized", foreignBody.Message)

	resp, _ := env.do(t, http.MethodDelete, path, nil, bearer(betaTok))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	got, err := env.store.Jobs().GetByID(context.Background(), env.acmeJob.ID)
	require.NoError(t, err)
	assert.Equal(t, "Go Developer", got.Title)

	resp, _ = env.do(t, http.MethodPut, path, map[string]any{"title": "Senior Go Developer"}, bearer(env.token(t, env.acme.PrincipalRef())))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestInstitutionActsOnAnyJob(t *testing.T) {
	env := newTestEnv(t)
	tok := env.token(t, env.campus.PrincipalRef())
	base := "/api/institution/jobs/" + strconv.FormatInt(env.acmeJob.ID, 10)

	resp, _ := env.do(t, http.MethodPatch, base+"/visibility", map[string]any{"is_visible": false}, bearer(tok))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = env.do(t, http.MethodGet, "/api/jobs/"+strconv.FormatInt(env.acmeJob.ID, 10), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode, "hidden jobs leave the public board")

	resp, sr := env.do(t, http.MethodGet, "/api/institution/jobs", nil, bearer(tok))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var jobs []map[string]any
	require.NoError(t, json.Unmarshal(sr.Data, &jobs))
	assert.Len(t, jobs, 1)

	resp, _ = env.do(t, http.MethodPost, "/api/institution/jobs", map[string]any{"title": "x"}, bearer(tok))
	assert.NotEqual(t, http.StatusCreated, resp.StatusCode)
}

func TestCreateJob_ForeignCompanyID(t *testing.T) {
	env := newTestEnv(t)

	resp, sr := env.do(t, http.MethodPost, "/api/company/jobs", map[string]any{
		"title": "Designer", "location": "Bandung", "level": "Beginner Level", "salary": 1000,
		"description": "Product design", "category": "Design",
		"company_id": env.beta.ID,
	}, bearer(env.token(t, env.acme.PrincipalRef())))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(sr.Data), "company_id")

	resp, sr = env.do(t, http.MethodPost, "/api/company/jobs", map[string]any{
		"title": "Designer", "location": "Bandung", "level": "Beginner Level", "salary": 1000,
		"description": "Product design", "category": "Design",
	}, bearer(env.token(t, env.acme.PrincipalRef())))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created struct {
		CompanyID int64  `json:"company_id"`
		Level     string `json:"level"`
	}
	require.NoError(t, json.Unmarshal(sr.Data, &created))
	assert.Equal(t, env.acme.ID, created.CompanyID)
	assert.Equal(t, "Beginner", created.Level)
}

func TestCreateJob_FieldValidation(t *testing.T) {
	env := newTestEnv(t)
	tok := bearer(env.token(t, env.acme.PrincipalRef()))

	resp, sr := env.do(t, http.MethodPost, "/api/company/jobs", map[string]any{
		"title": "Designer", "location": "Bandung", "level": "Beginner",
	}, tok)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	for _, field := range []string{"description", "salary", "category"} {
		assert.Contains(t, string(sr.Data), field)
	}

	resp, sr = env.do(t, http.MethodPost, "/api/company/jobs", map[string]any{
		"title": "   ", "location": "Bandung", "level": "Beginner", "salary": 1000,
		"description": "d", "category": "Design",
	}, tok)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(sr.Data), "may not be blank")

	resp, sr = env.do(t, http.MethodPost, "/api/company/jobs", map[string]any{
		"title": "Designer", "location": "Bandung", "level": "Beginner", "salary": 3000000000,
		"description": "d", "category": "Design",
	}, tok)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(sr.Data), "salary")

	path := "/api/company/jobs/" + strconv.FormatInt(env.acmeJob.ID, 10)
	resp, sr = env.do(t, http.MethodPut, path, map[string]any{"salary": 3000000000}, tok)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(sr.Data), "salary")
}

func TestApplicantFlow(t *testing.T) {
	env := newTestEnv(t)
	body := map[string]any{"job_id": env.acmeJob.ID}

	resp, sr := env.do(t, http.MethodPost, "/api/user/applications", body)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "User authentication required", sr.Message)

	resp, _ = env.do(t, http.MethodPost, "/api/user/applications", body, func(r *http.Request) {
		r.Header.Set("X-Clerk-User-Id", "user_1")
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "proxy secret is required when configured")

	resp, sr = env.do(t, http.MethodPost, "/api/user/applications", body, asApplicant("user_1"))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var app struct {
		ID     int64  `json:"id"`
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(sr.Data, &app))
	assert.Equal(t, "Pending", app.Status)

	resp, _ = env.do(t, http.MethodPost, "/api/user/applications", body, asApplicant("user_1"))
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	statusPath := "/api/company/applications/" + strconv.FormatInt(app.ID, 10) + "/status"
	resp, sr = env.do(t, http.MethodPut, statusPath, map[string]any{"status": "Accepted"}, bearer(env.token(t, env.beta.PrincipalRef())))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Application not found or not authorized", sr.Message)

	resp, _ = env.do(t, http.MethodPut, statusPath, map[string]any{"status": "Hired"}, bearer(env.token(t, env.acme.PrincipalRef())))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = env.do(t, http.MethodPut, statusPath, map[string]any{"status": "Accepted"}, bearer(env.token(t, env.acme.PrincipalRef())))
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, sr = env.do(t, http.MethodGet, "/api/user/applications", nil, asApplicant("user_1"))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(sr.Data), `"status":"Accepted"`)

	resp, sr = env.do(t, http.MethodGet, "/api/company/applications", nil, bearer(env.token(t, env.beta.PrincipalRef())))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `[]`, string(sr.Data))
}

func TestExport(t *testing.T) {
	env := newTestEnv(t)

	resp, _ := env.do(t, http.MethodPost, "/api/user/applications", map[string]any{"job_id": env.acmeJob.ID}, asApplicant("user_1"))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, _ = env.do(t, http.MethodGet, "/api/institution/applications/export", nil, bearer(env.token(t, env.campus.PrincipalRef())))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, export.XLSXContentType, resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), ".xlsx")

	resp, _ = env.do(t, http.MethodGet, "/api/company/applications/export", nil, bearer(env.token(t, env.acme.PrincipalRef())))
	assert.NotEqual(t, http.StatusOK, resp.StatusCode)
}

func signedWebhook(t *testing.T, msgID string, payload []byte) reqOpt {
	t.Helper()
	wh, err := svix.NewWebhook(testWebhookSecret)
	require.NoError(t, err)
	now := time.Now()
	sig, err := wh.Sign(msgID, now, payload)
	require.NoError(t, err)
	return func(r *http.Request) {
		r.Header.Set("svix-id", msgID)
		r.Header.Set("svix-timestamp", strconv.FormatInt(now.Unix(), 10))
		r.Header.Set("svix-signature", sig)
	}
}

func (e *testEnv) postRaw(t *testing.T, path string, payload []byte, opts ...reqOpt) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	for _, o := range opts {
		o(req)
	}
	resp, err := e.app.Test(req, fiber.TestConfig{Timeout: 10 * time.Second})
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func TestWebhook(t *testing.T) {
	env := newTestEnv(t)
	payload := []byte(`{"type":"user.created","data":{"id":"user_42","first_name":"Ada","last_name":"Lovelace",` +
		`"email_addresses":[{"id":"e1","email_address":"ada@example.com"}],"primary_email_address_id":"e1"}}`)

	resp := env.postRaw(t, "/api/clerk/webhook", payload)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = env.postRaw(t, "/api/clerk/webhook", []byte(`{"type":"user.deleted","data":{"id":"user_42"}}`), signedWebhook(t, "msg_1", payload))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = env.postRaw(t, "/api/clerk/webhook", payload, signedWebhook(t, "msg_2", payload))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"received"}`, string(body))

	a, err := env.store.Applicants().GetByExternalID(context.Background(), "user_42")
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", a.Name)
}

func TestInstitutionManagesCompanies(t *testing.T) {
	env := newTestEnv(t)
	tok := env.token(t, env.campus.PrincipalRef())

	resp, sr := env.do(t, http.MethodPost, "/api/institution/companies", map[string]any{
		"name": "Delta", "email": "hr@delta.io", "password": "delta-password",
	}, bearer(tok))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(sr.Data, &created))

	resp, _ = env.do(t, http.MethodGet, "/api/institution/companies", nil, bearer(env.token(t, env.acme.PrincipalRef())))
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = env.do(t, http.MethodDelete, "/api/institution/companies/"+strconv.FormatInt(env.acme.ID, 10), nil, bearer(tok))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = env.do(t, http.MethodGet, "/api/jobs/"+strconv.FormatInt(env.acmeJob.ID, 10), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode, "deleting a company removes its jobs")

	resp, _ = env.do(t, http.MethodDelete, "/api/institution/companies/99999", nil, bearer(tok))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestPublicLookups(t *testing.T) {
	env := newTestEnv(t)

	resp, sr := env.do(t, http.MethodGet, "/api/categories", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `["Engineering"]`, string(sr.Data))

	resp, sr = env.do(t, http.MethodGet, "/api/locations", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `["Jakarta"]`, string(sr.Data))
}
