package domain

// Role is a named bundle of permissions granted to users.
type Role struct {
	ID          int64
	Name        string
	Permissions []Permission
}
