package domain

// Permission is a named fine-grained authority.
type Permission struct {
	ID   int64
	Name string
}

// Seeded permission names. The historical misspelling is load-bearing:
// issued tokens and stored rows use it.
const (
	PermissionCreateCar   = "PERMISSON_CREATE_CAR"
	PermissionGetCar      = "PERMISSON_GET_CAR"
	PermissionEditCar     = "PERMISSON_EDIT_CAR"
	PermissionDeleteCar   = "PERMISSON_DELETE_CAR"
	PermissionCreateBrand = "PERMISSON_CREATE_BRAND"
	PermissionGetBrand    = "PERMISSON_GET_BRAND"
	PermissionEditBrand   = "PERMISSON_EDIT_BRAND"
	PermissionDeleteBrand = "PERMISSON_DELETE_BRAND"
	PermissionCreateUser  = "PERMISSON_CREATE_USER"
	PermissionDeleteUser  = "PERMISSON_DELETE_USER"
)
