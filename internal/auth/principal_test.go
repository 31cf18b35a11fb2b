package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/motorline/car-catalog/internal/domain"
)

func TestPrincipalAuthorities(t *testing.T) {
	p := &Principal{
		Roles:       []string{"ADMIN"},
		Permissions: []string{"PERMISSON_GET_CAR"},
	}
	assert.Equal(t, []string{"ADMIN", "PERMISSON_GET_CAR"}, p.Authorities())
	assert.True(t, p.HasAuthority("ADMIN"))
	assert.True(t, p.HasAuthority("PERMISSON_GET_CAR"))
	assert.False(t, p.HasAuthority("PERMISSON_DELETE_CAR"))
	assert.False(t, p.HasAuthority(""))
}

func TestPrincipalHasPermission(t *testing.T) {
	p := &Principal{
		Roles:       []string{"ADMIN"},
		Permissions: []string{"PERMISSON_GET_CAR"},
	}
	assert.True(t, p.HasPermission("PERMISSON_GET_CAR"))
	assert.False(t, p.HasPermission("PERMISSON_DELETE_CAR"))
	// Role names never satisfy permission checks.
	assert.False(t, p.HasPermission("ADMIN"))
	assert.False(t, p.HasPermission(""))

	assert.True(t, p.HasPermissionOn(struct{}{}, "PERMISSON_GET_CAR"))
	assert.False(t, p.HasPermissionOn(struct{}{}, "PERMISSON_DELETE_CAR"))
}

func TestNilPrincipal(t *testing.T) {
	var p *Principal
	assert.Nil(t, p.Authorities())
	assert.False(t, p.HasAuthority("ADMIN"))
	assert.False(t, p.HasPermission("PERMISSON_GET_CAR"))
}

func TestIdentityFromUser(t *testing.T) {
	user := &domain.User{
		ID:       7,
		Username: "alice",
		Roles: []domain.Role{
			{Name: "ADMIN", Permissions: []domain.Permission{
				{Name: domain.PermissionCreateCar},
				{Name: domain.PermissionGetCar},
			}},
			{Name: "VIEWER", Permissions: []domain.Permission{
				{Name: domain.PermissionGetCar},
			}},
		},
		Groups: []domain.Group{{Name: "engineering"}},
	}

	identity := IdentityFromUser(user)
	assert.Equal(t, int64(7), identity.UserID)
	assert.Equal(t, "alice", identity.Username)
	assert.Equal(t, []string{"ADMIN", "VIEWER"}, identity.Roles)
	// Permissions shared across roles appear once.
	assert.Equal(t, []string{domain.PermissionCreateCar, domain.PermissionGetCar}, identity.Permissions)
	assert.Equal(t, []string{"engineering"}, identity.Groups)
}
