package dto

import (
	"time"

	"github.com/motorline/car-catalog/internal/domain"
)

// CreateUserRequest payload for account creation.
type CreateUserRequest struct {
	Username    string  `json:"username"`
	Password    string  `json:"password"`
	Email       string  `json:"email"`
	Name        string  `json:"name"`
	Surname     string  `json:"surname"`
	PhoneNumber string  `json:"phone_number"`
	RoleIDs     []int64 `json:"role_ids"`
	GroupIDs    []int64 `json:"group_ids"`
}

// UserResponse response shape for accounts; the password hash never
// leaves the server.
type UserResponse struct {
	ID                int64            `json:"id"`
	Username          string           `json:"username"`
	Email             string           `json:"email"`
	Name              string           `json:"name"`
	Surname           string           `json:"surname"`
	PhoneNumber       string           `json:"phone_number"`
	PasswordExpiresAt time.Time        `json:"password_expires_at"`
	Roles             []RoleResponse   `json:"roles"`
	Groups            []NamedResponse  `json:"groups"`
}

// NewUserResponse maps a user.
func NewUserResponse(user *domain.User) UserResponse {
	resp := UserResponse{
		ID:                user.ID,
		Username:          user.Username,
		Email:             user.Email,
		Name:              user.Name,
		Surname:           user.Surname,
		PhoneNumber:       user.PhoneNumber,
		PasswordExpiresAt: user.PasswordExpiresAt,
		Roles:             make([]RoleResponse, 0, len(user.Roles)),
		Groups:            make([]NamedResponse, 0, len(user.Groups)),
	}
	for i := range user.Roles {
		resp.Roles = append(resp.Roles, NewRoleResponse(&user.Roles[i]))
	}
	for _, group := range user.Groups {
		resp.Groups = append(resp.Groups, NamedResponse{ID: group.ID, Name: group.Name})
	}
	return resp
}

// NewUserResponses maps a user list.
func NewUserResponses(users []domain.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, NewUserResponse(&users[i]))
	}
	return out
}

// UpdateUserRolesRequest links or unlinks roles on a user.
type UpdateUserRolesRequest struct {
	UserID  int64   `json:"user_id"`
	RoleIDs []int64 `json:"role_ids"`
}

// UpdateUserGroupsRequest links or unlinks groups on a user.
type UpdateUserGroupsRequest struct {
	UserID   int64   `json:"user_id"`
	GroupIDs []int64 `json:"group_ids"`
}

// CreateRoleRequest payload.
type CreateRoleRequest struct {
	Name          string  `json:"name"`
	PermissionIDs []int64 `json:"permission_ids"`
}

// RoleResponse response shape for roles.
type RoleResponse struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Permissions []NamedResponse `json:"permissions"`
}

// NewRoleResponse maps a role.
func NewRoleResponse(role *domain.Role) RoleResponse {
	resp := RoleResponse{
		ID:          role.ID,
		Name:        role.Name,
		Permissions: make([]NamedResponse, 0, len(role.Permissions)),
	}
	for _, permission := range role.Permissions {
		resp.Permissions = append(resp.Permissions, NamedResponse{ID: permission.ID, Name: permission.Name})
	}
	return resp
}

// NewRoleResponses maps a role list.
func NewRoleResponses(roles []domain.Role) []RoleResponse {
	out := make([]RoleResponse, 0, len(roles))
	for i := range roles {
		out = append(out, NewRoleResponse(&roles[i]))
	}
	return out
}

// UpdateRolePermissionsRequest links or unlinks permissions on a role.
type UpdateRolePermissionsRequest struct {
	RoleID        int64   `json:"role_id"`
	PermissionIDs []int64 `json:"permission_ids"`
}

// CreateNamedRequest payload for permission and group creation.
type CreateNamedRequest struct {
	Name string `json:"name"`
}

// NamedResponse is the shared id/name response shape.
type NamedResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// NewPermissionResponses maps a permission list.
func NewPermissionResponses(permissions []domain.Permission) []NamedResponse {
	out := make([]NamedResponse, 0, len(permissions))
	for _, permission := range permissions {
		out = append(out, NamedResponse{ID: permission.ID, Name: permission.Name})
	}
	return out
}

// NewGroupResponses maps a group list.
func NewGroupResponses(groups []domain.Group) []NamedResponse {
	out := make([]NamedResponse, 0, len(groups))
	for _, group := range groups {
		out = append(out, NamedResponse{ID: group.ID, Name: group.Name})
	}
	return out
}
