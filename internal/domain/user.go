package domain

import "time"

// User is an operator account with role and group memberships.
type User struct {
	ID                int64
	Username          string
	PasswordHash      string
	Email             string
	Name              string
	Surname           string
	PhoneNumber       string
	PasswordExpiresAt time.Time
	Roles             []Role
	Groups            []Group
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// RoleNames returns the user's role names in stored order.
func (u *User) RoleNames() []string {
	names := make([]string, 0, len(u.Roles))
	for _, role := range u.Roles {
		names = append(names, role.Name)
	}
	return names
}

// PermissionNames flattens the distinct permission names across all roles.
func (u *User) PermissionNames() []string {
	seen := make(map[string]struct{})
	var names []string
	for _, role := range u.Roles {
		for _, perm := range role.Permissions {
			if _, ok := seen[perm.Name]; ok {
				continue
			}
			seen[perm.Name] = struct{}{}
			names = append(names, perm.Name)
		}
	}
	return names
}

// GroupNames returns the user's group names in stored order.
func (u *User) GroupNames() []string {
	names := make([]string, 0, len(u.Groups))
	for _, group := range u.Groups {
		names = append(names, group.Name)
	}
	return names
}
