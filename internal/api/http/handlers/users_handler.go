package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/motorline/car-catalog/internal/api/dto"
	"github.com/motorline/car-catalog/internal/service"
	apperrors "github.com/motorline/car-catalog/pkg/util"
)

// UsersHandler manages account endpoints.
type UsersHandler struct {
	access *service.AccessService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(accessService *service.AccessService) *UsersHandler {
	return &UsersHandler{access: accessService}
}

// CreateUser POST /user.
func (h *UsersHandler) CreateUser(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Username == "" || req.Password == "" {
		return apperrors.NewValidationError("username and password required", nil)
	}
	if len(req.Password) < 8 || len(req.Password) > 30 {
		return apperrors.NewValidationError("password must be 8-30 characters", nil)
	}

	user, err := h.access.CreateUser(c.UserContext(), service.CreateUserInput{
		Username:    req.Username,
		Password:    req.Password,
		Email:       req.Email,
		Name:        req.Name,
		Surname:     req.Surname,
		PhoneNumber: req.PhoneNumber,
		RoleIDs:     req.RoleIDs,
		GroupIDs:    req.GroupIDs,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewUserResponse(user)})
}

// DeleteUser DELETE /user/:username.
func (h *UsersHandler) DeleteUser(c *fiber.Ctx) error {
	username := c.Params("username")
	if username == "" {
		return apperrors.NewValidationError("username required", nil)
	}
	if err := h.access.DeleteUser(c.UserContext(), username); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// GetUserByID GET /user/id/:id.
func (h *UsersHandler) GetUserByID(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	user, err := h.access.GetUserByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewUserResponse(user)})
}

// GetUserByUsername GET /user/username/:username.
func (h *UsersHandler) GetUserByUsername(c *fiber.Ctx) error {
	user, err := h.access.GetUserByUsername(c.UserContext(), c.Params("username"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewUserResponse(user)})
}

// ListUsers GET /user.
func (h *UsersHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.access.ListUsers(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewUserResponses(users)})
}

// AddRoles PUT /user/add-role.
func (h *UsersHandler) AddRoles(c *fiber.Ctx) error {
	return h.updateRoles(c, true)
}

// RemoveRoles PUT /user/remove-role.
func (h *UsersHandler) RemoveRoles(c *fiber.Ctx) error {
	return h.updateRoles(c, false)
}

func (h *UsersHandler) updateRoles(c *fiber.Ctx, add bool) error {
	var req dto.UpdateUserRolesRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.UserID == 0 || len(req.RoleIDs) == 0 {
		return apperrors.NewValidationError("user_id and role_ids required", nil)
	}
	user, err := h.access.UpdateUserRoles(c.UserContext(), req.UserID, req.RoleIDs, add)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewUserResponse(user)})
}

// AddGroups PUT /user/add-group.
func (h *UsersHandler) AddGroups(c *fiber.Ctx) error {
	return h.updateGroups(c, true)
}

// RemoveGroups PUT /user/remove-group.
func (h *UsersHandler) RemoveGroups(c *fiber.Ctx) error {
	return h.updateGroups(c, false)
}

func (h *UsersHandler) updateGroups(c *fiber.Ctx, add bool) error {
	var req dto.UpdateUserGroupsRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.UserID == 0 || len(req.GroupIDs) == 0 {
		return apperrors.NewValidationError("user_id and group_ids required", nil)
	}
	user, err := h.access.UpdateUserGroups(c.UserContext(), req.UserID, req.GroupIDs, add)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewUserResponse(user)})
}
