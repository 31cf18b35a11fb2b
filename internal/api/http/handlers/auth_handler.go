package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/motorline/car-catalog/internal/api/dto"
	"github.com/motorline/car-catalog/internal/auth"
	"github.com/motorline/car-catalog/internal/service"
	apperrors "github.com/motorline/car-catalog/pkg/util"
)

// AuthHandler exposes login and token introspection.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Login POST /user/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Username == "" || req.Password == "" {
		return apperrors.NewValidationError("username and password required", nil)
	}

	pair, err := h.auth.Login(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.TokenResponse{Username: pair.Username, Token: pair.Token}})
}

// Authentication GET /user/authentication. The authentication filter
// has already validated the bearer token and installed the principal.
func (h *AuthHandler) Authentication(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	return c.JSON(fiber.Map{"data": dto.AuthenticationResponse{
		UserID:      principal.UserID,
		Username:    principal.Username,
		Roles:       principal.Roles,
		Permissions: principal.Permissions,
		Groups:      principal.Groups,
	}})
}
