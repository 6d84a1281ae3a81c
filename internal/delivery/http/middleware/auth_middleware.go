package middleware

import (
	"context"
	"errors"
	"strings"

	"job-portal/internal/domain/principal"
	"job-portal/internal/pkg/jwt"
	"job-portal/internal/usecase/auth"

	"github.com/gofiber/fiber/v3"
)

const ctxIdentityKey = "identity"

const (
	MessageAuthHeaderRequired = "Authorization header required"
	MessageTokenExpired       = "Token expired"
	MessageInvalidToken       = "Invalid token"
	MessageAccountNotFound    = "Account not found"
)

type PrincipalResolver interface {
	Resolve(ctx context.Context, claims jwt.Claims, kind principal.Kind) (auth.Identity, error)
}

// AuthMiddleware verifies the bearer token and loads the principal it names.
// The principal row is read on every request.
type AuthMiddleware struct {
	jwt      jwt.Service
	resolver PrincipalResolver
}

func NewAuthMiddleware(jwtSvc jwt.Service, resolver PrincipalResolver) *AuthMiddleware {
	return &AuthMiddleware{jwt: jwtSvc, resolver: resolver}
}

func (m *AuthMiddleware) RequireCompany() fiber.Handler {
	return m.require(principal.KindCompany)
}

func (m *AuthMiddleware) RequireInstitution() fiber.Handler {
	return m.require(principal.KindInstitution)
}

func (m *AuthMiddleware) require(kind principal.Kind) fiber.Handler {
	return func(c fiber.Ctx) error {
		token, ok := bearerTokenFromHeader(c.Get("Authorization"))
		if !ok {
			return NewAppError(fiber.StatusUnauthorized, MessageAuthHeaderRequired, nil, nil)
		}

		claims, err := m.jwt.Verify(token)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				return NewAppError(fiber.StatusUnauthorized, MessageTokenExpired, nil, err)
			}
			return NewAppError(fiber.StatusUnauthorized, MessageInvalidToken, nil, err)
		}

		id, err := m.resolver.Resolve(c.Context(), claims, kind)
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrPrincipalKindMismatch):
				return NewAppError(fiber.StatusUnauthorized, MessageInvalidToken, nil, err)
			case errors.Is(err, auth.ErrPrincipalNotFound):
				return NewAppError(fiber.StatusUnauthorized, MessageAccountNotFound, nil, err)
			}
			return Internal(err)
		}

		c.Locals(ctxIdentityKey, id)
		return c.Next()
	}
}

// IdentityFrom returns the principal stored by AuthMiddleware.
func IdentityFrom(c fiber.Ctx) (auth.Identity, bool) {
	id, ok := c.Locals(ctxIdentityKey).(auth.Identity)
	if !ok || id.Ref.IsAnonymous() {
		return auth.Identity{}, false
	}
	return id, true
}

func bearerTokenFromHeader(authHeader string) (string, bool) {
	authHeader = strings.TrimSpace(authHeader)
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return "", false
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}

	return token, true
}
