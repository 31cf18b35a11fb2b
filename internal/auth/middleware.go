package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	apperrors "github.com/motorline/car-catalog/pkg/util"
)

const principalKey = "auth_principal"

// Middleware authenticates requests that present a bearer token.
//
// A missing or non-bearer Authorization header is not an error: the
// request continues unauthenticated and is rejected downstream by the
// route guards. A presented token that fails validation short-circuits
// the request instead of being silently dropped.
type Middleware struct {
	authn  *BearerAuthenticator
	logger *zap.Logger
}

// NewMiddleware constructs the request authentication filter.
func NewMiddleware(authn *BearerAuthenticator, logger *zap.Logger) *Middleware {
	return &Middleware{authn: authn, logger: logger}
}

// Handle extracts and validates the bearer token, installing the
// resulting principal in the request locals.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return c.Next()
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return c.Next()
	}

	if _, ok := PrincipalFromContext(c); ok {
		return c.Next()
	}

	principal, err := m.authn.Authenticate(parts[1])
	if err != nil {
		var formatErr *ClaimFormatError
		switch {
		case errors.Is(err, ErrSignatureInvalid):
			m.logger.Warn("rejected token with invalid signature", zap.String("ip", c.IP()))
			return apperrors.NewDomainError("INVALID_TOKEN_SIGNATURE", "invalid token signature", fiber.StatusUnauthorized, nil)
		case errors.As(err, &formatErr):
			return apperrors.NewValidationError(formatErr.Error(), nil)
		default:
			return apperrors.NewDomainError("TOKEN_VALIDATION_FAILED", "token validation failed", fiber.StatusUnauthorized, nil)
		}
	}

	c.Locals(principalKey, principal)
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated identity.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
