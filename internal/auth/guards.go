package auth

import (
	"github.com/gofiber/fiber/v2"

	apperrors "github.com/motorline/car-catalog/pkg/util"
)

// RequireAuthenticated ensures a principal has been established.
func RequireAuthenticated() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := PrincipalFromContext(c); !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		return c.Next()
	}
}

// RequireAuthority ensures the principal carries at least one of the
// named authorities (role or permission strings).
func RequireAuthority(names ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		for _, name := range names {
			if principal.HasAuthority(name) {
				return c.Next()
			}
		}
		return apperrors.NewForbidden("insufficient authority")
	}
}

// RequirePermission ensures the principal carries the named permission.
// Unlike RequireAuthority this consults the permission list only.
func RequirePermission(name string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if !principal.HasPermission(name) {
			return apperrors.NewForbidden("insufficient permission")
		}
		return c.Next()
	}
}
