package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/motorline/car-catalog/internal/api/dto"
	"github.com/motorline/car-catalog/internal/service"
	apperrors "github.com/motorline/car-catalog/pkg/util"
)

// AccessHandler manages role, permission and group endpoints.
type AccessHandler struct {
	access *service.AccessService
}

// NewAccessHandler constructs handler.
func NewAccessHandler(accessService *service.AccessService) *AccessHandler {
	return &AccessHandler{access: accessService}
}

// CreateRole POST /role.
func (h *AccessHandler) CreateRole(c *fiber.Ctx) error {
	var req dto.CreateRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Name) == "" {
		return apperrors.NewValidationError("name required", nil)
	}
	role, err := h.access.CreateRole(c.UserContext(), req.Name, req.PermissionIDs)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewRoleResponse(role)})
}

// DeleteRole DELETE /role/:name.
func (h *AccessHandler) DeleteRole(c *fiber.Ctx) error {
	if err := h.access.DeleteRole(c.UserContext(), c.Params("name")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// GetRoleByID GET /role/id/:id.
func (h *AccessHandler) GetRoleByID(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	role, err := h.access.GetRoleByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewRoleResponse(role)})
}

// GetRoleByName GET /role/name/:name.
func (h *AccessHandler) GetRoleByName(c *fiber.Ctx) error {
	role, err := h.access.GetRoleByName(c.UserContext(), c.Params("name"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewRoleResponse(role)})
}

// ListRoles GET /role.
func (h *AccessHandler) ListRoles(c *fiber.Ctx) error {
	roles, err := h.access.ListRoles(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewRoleResponses(roles)})
}

// AddRolePermissions PUT /role/add-permission.
func (h *AccessHandler) AddRolePermissions(c *fiber.Ctx) error {
	return h.updateRolePermissions(c, true)
}

// RemoveRolePermissions PUT /role/remove-permission.
func (h *AccessHandler) RemoveRolePermissions(c *fiber.Ctx) error {
	return h.updateRolePermissions(c, false)
}

func (h *AccessHandler) updateRolePermissions(c *fiber.Ctx, add bool) error {
	var req dto.UpdateRolePermissionsRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.RoleID == 0 || len(req.PermissionIDs) == 0 {
		return apperrors.NewValidationError("role_id and permission_ids required", nil)
	}
	role, err := h.access.UpdateRolePermissions(c.UserContext(), req.RoleID, req.PermissionIDs, add)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewRoleResponse(role)})
}

// CreatePermission POST /permission.
func (h *AccessHandler) CreatePermission(c *fiber.Ctx) error {
	name, err := parseNamedRequest(c)
	if err != nil {
		return err
	}
	permission, err := h.access.CreatePermission(c.UserContext(), name)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NamedResponse{ID: permission.ID, Name: permission.Name}})
}

// DeletePermission DELETE /permission/:name.
func (h *AccessHandler) DeletePermission(c *fiber.Ctx) error {
	if err := h.access.DeletePermission(c.UserContext(), c.Params("name")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// GetPermissionByID GET /permission/id/:id.
func (h *AccessHandler) GetPermissionByID(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	permission, err := h.access.GetPermissionByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NamedResponse{ID: permission.ID, Name: permission.Name}})
}

// GetPermissionByName GET /permission/name/:name.
func (h *AccessHandler) GetPermissionByName(c *fiber.Ctx) error {
	permission, err := h.access.GetPermissionByName(c.UserContext(), c.Params("name"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NamedResponse{ID: permission.ID, Name: permission.Name}})
}

// ListPermissions GET /permission.
func (h *AccessHandler) ListPermissions(c *fiber.Ctx) error {
	permissions, err := h.access.ListPermissions(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewPermissionResponses(permissions)})
}

// CreateGroup POST /group.
func (h *AccessHandler) CreateGroup(c *fiber.Ctx) error {
	name, err := parseNamedRequest(c)
	if err != nil {
		return err
	}
	group, err := h.access.CreateGroup(c.UserContext(), name)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NamedResponse{ID: group.ID, Name: group.Name}})
}

// DeleteGroup DELETE /group/:name.
func (h *AccessHandler) DeleteGroup(c *fiber.Ctx) error {
	if err := h.access.DeleteGroup(c.UserContext(), c.Params("name")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// GetGroupByID GET /group/id/:id.
func (h *AccessHandler) GetGroupByID(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	group, err := h.access.GetGroupByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NamedResponse{ID: group.ID, Name: group.Name}})
}

// GetGroupByName GET /group/name/:name.
func (h *AccessHandler) GetGroupByName(c *fiber.Ctx) error {
	group, err := h.access.GetGroupByName(c.UserContext(), c.Params("name"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NamedResponse{ID: group.ID, Name: group.Name}})
}

// ListGroups GET /group.
func (h *AccessHandler) ListGroups(c *fiber.Ctx) error {
	groups, err := h.access.ListGroups(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewGroupResponses(groups)})
}

func parseNamedRequest(c *fiber.Ctx) (string, error) {
	var req dto.CreateNamedRequest
	if err := c.BodyParser(&req); err != nil {
		return "", apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Name) == "" {
		return "", apperrors.NewValidationError("name required", nil)
	}
	return req.Name, nil
}
