package service

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/motorline/car-catalog/internal/auth"
	"github.com/motorline/car-catalog/internal/domain"
)

type stubRoleRepo struct {
	seq   int64
	roles map[int64]*domain.Role
}

func (r *stubRoleRepo) Create(_ context.Context, role *domain.Role) error {
	r.seq++
	role.ID = r.seq
	r.roles[role.ID] = role
	return nil
}

func (r *stubRoleRepo) DeleteByName(_ context.Context, name string) error {
	for id, role := range r.roles {
		if role.Name == name {
			delete(r.roles, id)
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (r *stubRoleRepo) GetByID(_ context.Context, id int64) (*domain.Role, error) {
	role, ok := r.roles[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return role, nil
}

func (r *stubRoleRepo) GetByName(_ context.Context, name string) (*domain.Role, error) {
	for _, role := range r.roles {
		if role.Name == name {
			return role, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *stubRoleRepo) List(_ context.Context) ([]domain.Role, error) {
	out := make([]domain.Role, 0, len(r.roles))
	for _, role := range r.roles {
		out = append(out, *role)
	}
	return out, nil
}

func (r *stubRoleRepo) AddPermission(_ context.Context, roleID, permissionID int64) error {
	role, ok := r.roles[roleID]
	if !ok {
		return pgx.ErrNoRows
	}
	role.Permissions = append(role.Permissions, domain.Permission{ID: permissionID})
	return nil
}

func (r *stubRoleRepo) RemovePermission(_ context.Context, roleID, permissionID int64) error {
	role, ok := r.roles[roleID]
	if !ok {
		return pgx.ErrNoRows
	}
	kept := role.Permissions[:0]
	for _, permission := range role.Permissions {
		if permission.ID != permissionID {
			kept = append(kept, permission)
		}
	}
	role.Permissions = kept
	return nil
}

type stubPermissionRepo struct {
	seq         int64
	permissions map[int64]*domain.Permission
}

func (r *stubPermissionRepo) Create(_ context.Context, permission *domain.Permission) error {
	r.seq++
	permission.ID = r.seq
	r.permissions[permission.ID] = permission
	return nil
}

func (r *stubPermissionRepo) DeleteByName(_ context.Context, name string) error {
	for id, permission := range r.permissions {
		if permission.Name == name {
			delete(r.permissions, id)
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (r *stubPermissionRepo) GetByID(_ context.Context, id int64) (*domain.Permission, error) {
	permission, ok := r.permissions[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return permission, nil
}

func (r *stubPermissionRepo) GetByName(_ context.Context, name string) (*domain.Permission, error) {
	for _, permission := range r.permissions {
		if permission.Name == name {
			return permission, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *stubPermissionRepo) List(_ context.Context) ([]domain.Permission, error) {
	out := make([]domain.Permission, 0, len(r.permissions))
	for _, permission := range r.permissions {
		out = append(out, *permission)
	}
	return out, nil
}

type stubGroupRepo struct {
	seq    int64
	groups map[int64]*domain.Group
}

func (r *stubGroupRepo) Create(_ context.Context, group *domain.Group) error {
	r.seq++
	group.ID = r.seq
	r.groups[group.ID] = group
	return nil
}

func (r *stubGroupRepo) DeleteByName(_ context.Context, name string) error {
	for id, group := range r.groups {
		if group.Name == name {
			delete(r.groups, id)
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (r *stubGroupRepo) GetByID(_ context.Context, id int64) (*domain.Group, error) {
	group, ok := r.groups[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return group, nil
}

func (r *stubGroupRepo) GetByName(_ context.Context, name string) (*domain.Group, error) {
	for _, group := range r.groups {
		if group.Name == name {
			return group, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *stubGroupRepo) List(_ context.Context) ([]domain.Group, error) {
	out := make([]domain.Group, 0, len(r.groups))
	for _, group := range r.groups {
		out = append(out, *group)
	}
	return out, nil
}

func newAccessFixture(t *testing.T) *AccessService {
	t.Helper()
	return NewAccessService(
		&stubUserRepo{users: map[string]*domain.User{}},
		&stubRoleRepo{roles: map[int64]*domain.Role{}},
		&stubPermissionRepo{permissions: map[int64]*domain.Permission{}},
		&stubGroupRepo{groups: map[int64]*domain.Group{}},
		4,
	)
}

func TestCreateUserHashesPassword(t *testing.T) {
	svc := newAccessFixture(t)
	ctx := context.Background()

	user, err := svc.CreateUser(ctx, CreateUserInput{
		Username: "alice",
		Password: "s3cret-pass",
		Email:    "alice@example.com",
	})
	require.NoError(t, err)
	require.NotZero(t, user.ID)
	assert.NotEqual(t, "s3cret-pass", user.PasswordHash)
	assert.NoError(t, auth.ComparePassword(user.PasswordHash, "s3cret-pass"))
	assert.False(t, user.PasswordExpiresAt.IsZero())
}

func TestCreateUserRejectsDuplicateUsername(t *testing.T) {
	svc := newAccessFixture(t)
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, CreateUserInput{Username: "alice", Password: "s3cret-pass"})
	require.NoError(t, err)

	_, err = svc.CreateUser(ctx, CreateUserInput{Username: "alice", Password: "other-pass"})
	assertDomainCode(t, err, "CONFLICT")
}

func TestDeleteUserUnknown(t *testing.T) {
	svc := newAccessFixture(t)
	err := svc.DeleteUser(context.Background(), "nobody")
	assertDomainCode(t, err, "NOT_FOUND")
}

func TestCreateRoleValidatesPermissions(t *testing.T) {
	svc := newAccessFixture(t)
	ctx := context.Background()

	_, err := svc.CreateRole(ctx, "ADMIN", []int64{99})
	assertDomainCode(t, err, "NOT_FOUND")

	permission, err := svc.CreatePermission(ctx, domain.PermissionGetCar)
	require.NoError(t, err)

	role, err := svc.CreateRole(ctx, "ADMIN", []int64{permission.ID})
	require.NoError(t, err)
	require.Len(t, role.Permissions, 1)

	_, err = svc.CreateRole(ctx, "ADMIN", nil)
	assertDomainCode(t, err, "CONFLICT")
}

func TestCreatePermissionRejectsDuplicate(t *testing.T) {
	svc := newAccessFixture(t)
	ctx := context.Background()

	_, err := svc.CreatePermission(ctx, domain.PermissionGetCar)
	require.NoError(t, err)

	_, err = svc.CreatePermission(ctx, domain.PermissionGetCar)
	assertDomainCode(t, err, "CONFLICT")
}

func TestGroupLifecycle(t *testing.T) {
	svc := newAccessFixture(t)
	ctx := context.Background()

	group, err := svc.CreateGroup(ctx, "engineering")
	require.NoError(t, err)

	fetched, err := svc.GetGroupByName(ctx, "engineering")
	require.NoError(t, err)
	assert.Equal(t, group.ID, fetched.ID)

	require.NoError(t, svc.DeleteGroup(ctx, "engineering"))
	err = svc.DeleteGroup(ctx, "engineering")
	assertDomainCode(t, err, "NOT_FOUND")
}

func TestUpdateRolePermissions(t *testing.T) {
	svc := newAccessFixture(t)
	ctx := context.Background()

	permission, err := svc.CreatePermission(ctx, domain.PermissionGetCar)
	require.NoError(t, err)
	role, err := svc.CreateRole(ctx, "VIEWER", nil)
	require.NoError(t, err)

	updated, err := svc.UpdateRolePermissions(ctx, role.ID, []int64{permission.ID}, true)
	require.NoError(t, err)
	require.Len(t, updated.Permissions, 1)

	updated, err = svc.UpdateRolePermissions(ctx, role.ID, []int64{permission.ID}, false)
	require.NoError(t, err)
	assert.Empty(t, updated.Permissions)

	_, err = svc.UpdateRolePermissions(ctx, 99, []int64{permission.ID}, true)
	assertDomainCode(t, err, "NOT_FOUND")
}
