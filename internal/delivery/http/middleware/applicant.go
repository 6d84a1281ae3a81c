package middleware

import (
	"crypto/subtle"
	"strings"

	"github.com/gofiber/fiber/v3"
)

const (
	HeaderApplicantID = "X-Clerk-User-Id"
	HeaderProxySecret = "X-Proxy-Secret"

	ctxApplicantIDKey = "applicant_external_id"

	MessageApplicantRequired = "User authentication required"
)

// ApplicantMiddleware trusts the applicant id forwarded by the fronting proxy.
// With a proxy secret configured, requests that do not carry it are refused.
type ApplicantMiddleware struct {
	proxySecret []byte
}

func NewApplicantMiddleware(proxySecret string) *ApplicantMiddleware {
	return &ApplicantMiddleware{proxySecret: []byte(proxySecret)}
}

func (m *ApplicantMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		if len(m.proxySecret) > 0 {
			got := []byte(c.Get(HeaderProxySecret))
			if subtle.ConstantTimeCompare(got, m.proxySecret) != 1 {
				return NewAppError(fiber.StatusUnauthorized, MessageApplicantRequired, nil, nil)
			}
		}

		externalID := strings.TrimSpace(c.Get(HeaderApplicantID))
		if externalID == "" {
			return NewAppError(fiber.StatusUnauthorized, MessageApplicantRequired, nil, nil)
		}

		c.Locals(ctxApplicantIDKey, externalID)
		return c.Next()
	}
}

func ApplicantIDFrom(c fiber.Ctx) (string, bool) {
	id, ok := c.Locals(ctxApplicantIDKey).(string)
	return id, ok && id != ""
}
