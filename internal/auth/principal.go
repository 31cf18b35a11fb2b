package auth

import (
	"github.com/motorline/car-catalog/internal/domain"
)

// Principal is the request-scoped authenticated identity. Both the
// bearer filter and the login flow produce this same shape, so
// permission checks behave identically regardless of which path
// established the authentication.
type Principal struct {
	UserID      int64
	Username    string
	Roles       []string
	Permissions []string
	Groups      []string
}

// Authorities returns role names followed by permission names.
func (p *Principal) Authorities() []string {
	if p == nil {
		return nil
	}
	authorities := make([]string, 0, len(p.Roles)+len(p.Permissions))
	authorities = append(authorities, p.Roles...)
	return append(authorities, p.Permissions...)
}

// HasAuthority reports whether the principal carries the named role or
// permission.
func (p *Principal) HasAuthority(name string) bool {
	if p == nil || name == "" {
		return false
	}
	for _, authority := range p.Authorities() {
		if authority == name {
			return true
		}
	}
	return false
}

// HasPermission evaluates a named permission against the principal's
// permission list only; role names never satisfy a permission check.
func (p *Principal) HasPermission(name string) bool {
	if p == nil || name == "" {
		return false
	}
	for _, permission := range p.Permissions {
		if permission == name {
			return true
		}
	}
	return false
}

// HasPermissionOn is the target-object-scoped variant. Permissions in
// this system are global, so the target is ignored.
func (p *Principal) HasPermissionOn(_ any, name string) bool {
	return p.HasPermission(name)
}

// IdentityFromUser flattens a hydrated user into the claim bundle
// embedded in issued tokens.
func IdentityFromUser(user *domain.User) Identity {
	return Identity{
		UserID:      user.ID,
		Username:    user.Username,
		Roles:       user.RoleNames(),
		Permissions: user.PermissionNames(),
		Groups:      user.GroupNames(),
	}
}
