package service

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/motorline/car-catalog/internal/auth"
	"github.com/motorline/car-catalog/internal/domain"
	"github.com/motorline/car-catalog/internal/repository"
	apperrors "github.com/motorline/car-catalog/pkg/util"
)

// Passwords age out after ninety days; expired ones still authenticate
// but are reported so clients can force a change.
const passwordValidity = 90 * 24 * time.Hour

// CreateUserInput carries the fields for account creation.
type CreateUserInput struct {
	Username    string
	Password    string
	Email       string
	Name        string
	Surname     string
	PhoneNumber string
	RoleIDs     []int64
	GroupIDs    []int64
}

// AccessService manages users, roles, permissions and groups.
type AccessService struct {
	users       repository.UserRepository
	roles       repository.RoleRepository
	permissions repository.PermissionRepository
	groups      repository.GroupRepository
	bcryptCost  int
}

// NewAccessService builds the service.
func NewAccessService(users repository.UserRepository, roles repository.RoleRepository, permissions repository.PermissionRepository, groups repository.GroupRepository, bcryptCost int) *AccessService {
	return &AccessService{
		users:       users,
		roles:       roles,
		permissions: permissions,
		groups:      groups,
		bcryptCost:  bcryptCost,
	}
}

// CreateUser registers an account and links any requested memberships.
func (s *AccessService) CreateUser(ctx context.Context, input CreateUserInput) (*domain.User, error) {
	if _, err := s.users.GetByUsername(ctx, input.Username); err == nil {
		return nil, apperrors.NewConflict("user already exists", map[string]any{"username": input.Username})
	} else if err != pgx.ErrNoRows {
		return nil, err
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:          input.Username,
		PasswordHash:      hash,
		Email:             input.Email,
		Name:              input.Name,
		Surname:           input.Surname,
		PhoneNumber:       input.PhoneNumber,
		PasswordExpiresAt: time.Now().Add(passwordValidity),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	for _, roleID := range input.RoleIDs {
		if err := s.users.AddRole(ctx, user.ID, roleID); err != nil {
			return nil, err
		}
	}
	for _, groupID := range input.GroupIDs {
		if err := s.users.AddGroup(ctx, user.ID, groupID); err != nil {
			return nil, err
		}
	}
	return s.users.GetByID(ctx, user.ID)
}

// DeleteUser removes an account; membership edges cascade.
func (s *AccessService) DeleteUser(ctx context.Context, username string) error {
	if err := s.users.DeleteByUsername(ctx, username); err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("user", map[string]any{"username": username})
		}
		return err
	}
	return nil
}

// GetUserByID fetches a user by id.
func (s *AccessService) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err == pgx.ErrNoRows {
		return nil, apperrors.NewNotFound("user", map[string]any{"id": id})
	}
	return user, err
}

// GetUserByUsername fetches a user by username.
func (s *AccessService) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err == pgx.ErrNoRows {
		return nil, apperrors.NewNotFound("user", map[string]any{"username": username})
	}
	return user, err
}

// ListUsers returns all users.
func (s *AccessService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

// UpdateUserRoles links or unlinks roles on a user.
func (s *AccessService) UpdateUserRoles(ctx context.Context, userID int64, roleIDs []int64, add bool) (*domain.User, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("user", map[string]any{"id": userID})
		}
		return nil, err
	}
	for _, roleID := range roleIDs {
		if _, err := s.roles.GetByID(ctx, roleID); err != nil {
			if err == pgx.ErrNoRows {
				return nil, apperrors.NewNotFound("role", map[string]any{"id": roleID})
			}
			return nil, err
		}
		var err error
		if add {
			err = s.users.AddRole(ctx, userID, roleID)
		} else {
			err = s.users.RemoveRole(ctx, userID, roleID)
		}
		if err != nil {
			return nil, err
		}
	}
	return s.users.GetByID(ctx, userID)
}

// UpdateUserGroups links or unlinks groups on a user.
func (s *AccessService) UpdateUserGroups(ctx context.Context, userID int64, groupIDs []int64, add bool) (*domain.User, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("user", map[string]any{"id": userID})
		}
		return nil, err
	}
	for _, groupID := range groupIDs {
		if _, err := s.groups.GetByID(ctx, groupID); err != nil {
			if err == pgx.ErrNoRows {
				return nil, apperrors.NewNotFound("group", map[string]any{"id": groupID})
			}
			return nil, err
		}
		var err error
		if add {
			err = s.users.AddGroup(ctx, userID, groupID)
		} else {
			err = s.users.RemoveGroup(ctx, userID, groupID)
		}
		if err != nil {
			return nil, err
		}
	}
	return s.users.GetByID(ctx, userID)
}

// CreateRole registers a role with an optional permission set.
func (s *AccessService) CreateRole(ctx context.Context, name string, permissionIDs []int64) (*domain.Role, error) {
	if _, err := s.roles.GetByName(ctx, name); err == nil {
		return nil, apperrors.NewConflict("role already exists", map[string]any{"name": name})
	} else if err != pgx.ErrNoRows {
		return nil, err
	}

	role := &domain.Role{Name: name}
	for _, permissionID := range permissionIDs {
		permission, err := s.permissions.GetByID(ctx, permissionID)
		if err != nil {
			if err == pgx.ErrNoRows {
				return nil, apperrors.NewNotFound("permission", map[string]any{"id": permissionID})
			}
			return nil, err
		}
		role.Permissions = append(role.Permissions, *permission)
	}
	if err := s.roles.Create(ctx, role); err != nil {
		return nil, err
	}
	return s.roles.GetByID(ctx, role.ID)
}

// DeleteRole removes a role by name; user links cascade.
func (s *AccessService) DeleteRole(ctx context.Context, name string) error {
	if err := s.roles.DeleteByName(ctx, name); err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("role", map[string]any{"name": name})
		}
		return err
	}
	return nil
}

// GetRoleByID fetches a role by id.
func (s *AccessService) GetRoleByID(ctx context.Context, id int64) (*domain.Role, error) {
	role, err := s.roles.GetByID(ctx, id)
	if err == pgx.ErrNoRows {
		return nil, apperrors.NewNotFound("role", map[string]any{"id": id})
	}
	return role, err
}

// GetRoleByName fetches a role by name.
func (s *AccessService) GetRoleByName(ctx context.Context, name string) (*domain.Role, error) {
	role, err := s.roles.GetByName(ctx, name)
	if err == pgx.ErrNoRows {
		return nil, apperrors.NewNotFound("role", map[string]any{"name": name})
	}
	return role, err
}

// ListRoles returns all roles.
func (s *AccessService) ListRoles(ctx context.Context) ([]domain.Role, error) {
	return s.roles.List(ctx)
}

// UpdateRolePermissions links or unlinks permissions on a role.
func (s *AccessService) UpdateRolePermissions(ctx context.Context, roleID int64, permissionIDs []int64, add bool) (*domain.Role, error) {
	if _, err := s.roles.GetByID(ctx, roleID); err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("role", map[string]any{"id": roleID})
		}
		return nil, err
	}
	for _, permissionID := range permissionIDs {
		if _, err := s.permissions.GetByID(ctx, permissionID); err != nil {
			if err == pgx.ErrNoRows {
				return nil, apperrors.NewNotFound("permission", map[string]any{"id": permissionID})
			}
			return nil, err
		}
		var err error
		if add {
			err = s.roles.AddPermission(ctx, roleID, permissionID)
		} else {
			err = s.roles.RemovePermission(ctx, roleID, permissionID)
		}
		if err != nil {
			return nil, err
		}
	}
	return s.roles.GetByID(ctx, roleID)
}

// CreatePermission registers a permission name.
func (s *AccessService) CreatePermission(ctx context.Context, name string) (*domain.Permission, error) {
	if _, err := s.permissions.GetByName(ctx, name); err == nil {
		return nil, apperrors.NewConflict("permission already exists", map[string]any{"name": name})
	} else if err != pgx.ErrNoRows {
		return nil, err
	}
	permission := &domain.Permission{Name: name}
	if err := s.permissions.Create(ctx, permission); err != nil {
		return nil, err
	}
	return permission, nil
}

// DeletePermission removes a permission by name; role links cascade.
func (s *AccessService) DeletePermission(ctx context.Context, name string) error {
	if err := s.permissions.DeleteByName(ctx, name); err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("permission", map[string]any{"name": name})
		}
		return err
	}
	return nil
}

// GetPermissionByID fetches a permission by id.
func (s *AccessService) GetPermissionByID(ctx context.Context, id int64) (*domain.Permission, error) {
	permission, err := s.permissions.GetByID(ctx, id)
	if err == pgx.ErrNoRows {
		return nil, apperrors.NewNotFound("permission", map[string]any{"id": id})
	}
	return permission, err
}

// GetPermissionByName fetches a permission by name.
func (s *AccessService) GetPermissionByName(ctx context.Context, name string) (*domain.Permission, error) {
	permission, err := s.permissions.GetByName(ctx, name)
	if err == pgx.ErrNoRows {
		return nil, apperrors.NewNotFound("permission", map[string]any{"name": name})
	}
	return permission, err
}

// ListPermissions returns all permissions.
func (s *AccessService) ListPermissions(ctx context.Context) ([]domain.Permission, error) {
	return s.permissions.List(ctx)
}

// CreateGroup registers a group name.
func (s *AccessService) CreateGroup(ctx context.Context, name string) (*domain.Group, error) {
	if _, err := s.groups.GetByName(ctx, name); err == nil {
		return nil, apperrors.NewConflict("group already exists", map[string]any{"name": name})
	} else if err != pgx.ErrNoRows {
		return nil, err
	}
	group := &domain.Group{Name: name}
	if err := s.groups.Create(ctx, group); err != nil {
		return nil, err
	}
	return group, nil
}

// DeleteGroup removes a group by name; user links cascade.
func (s *AccessService) DeleteGroup(ctx context.Context, name string) error {
	if err := s.groups.DeleteByName(ctx, name); err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("group", map[string]any{"name": name})
		}
		return err
	}
	return nil
}

// GetGroupByID fetches a group by id.
func (s *AccessService) GetGroupByID(ctx context.Context, id int64) (*domain.Group, error) {
	group, err := s.groups.GetByID(ctx, id)
	if err == pgx.ErrNoRows {
		return nil, apperrors.NewNotFound("group", map[string]any{"id": id})
	}
	return group, err
}

// GetGroupByName fetches a group by name.
func (s *AccessService) GetGroupByName(ctx context.Context, name string) (*domain.Group, error) {
	group, err := s.groups.GetByName(ctx, name)
	if err == pgx.ErrNoRows {
		return nil, apperrors.NewNotFound("group", map[string]any{"name": name})
	}
	return group, err
}

// ListGroups returns all groups.
func (s *AccessService) ListGroups(ctx context.Context) ([]domain.Group, error) {
	return s.groups.List(ctx)
}
