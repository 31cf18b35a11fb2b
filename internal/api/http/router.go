package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/motorline/car-catalog/internal/api/http/handlers"
	"github.com/motorline/car-catalog/internal/auth"
	"github.com/motorline/car-catalog/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Users          *handlers.UsersHandler
	Cars           *handlers.CarsHandler
	Brands         *handlers.BrandsHandler
	Images         *handlers.ImagesHandler
	Access         *handlers.AccessHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes. The authentication filter runs on
// every route; guards decide per route what the caller must hold.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Use(cfg.AuthMiddleware.Handle)

	user := app.Group("/user")
	user.Post("/login", cfg.Auth.Login)
	user.Get("/authentication", auth.RequireAuthenticated(), cfg.Auth.Authentication)
	user.Post("/", auth.RequireAuthority(domain.PermissionCreateUser), cfg.Users.CreateUser)
	user.Get("/", auth.RequireAuthenticated(), cfg.Users.ListUsers)
	user.Get("/id/:id", auth.RequireAuthenticated(), cfg.Users.GetUserByID)
	user.Get("/username/:username", auth.RequireAuthenticated(), cfg.Users.GetUserByUsername)
	user.Put("/add-role", auth.RequireAuthority(domain.PermissionCreateUser), cfg.Users.AddRoles)
	user.Put("/remove-role", auth.RequireAuthority(domain.PermissionCreateUser), cfg.Users.RemoveRoles)
	user.Put("/add-group", auth.RequireAuthority(domain.PermissionCreateUser), cfg.Users.AddGroups)
	user.Put("/remove-group", auth.RequireAuthority(domain.PermissionCreateUser), cfg.Users.RemoveGroups)
	user.Delete("/:username", auth.RequireAuthority(domain.PermissionDeleteUser), cfg.Users.DeleteUser)

	car := app.Group("/car")
	car.Post("/", auth.RequireAuthority(domain.PermissionCreateCar), cfg.Cars.CreateCar)
	car.Get("/", auth.RequireAuthority(domain.PermissionGetCar), cfg.Cars.ListCars)
	car.Get("/byPage", auth.RequireAuthority(domain.PermissionGetCar), cfg.Cars.ListCarsByPage)
	car.Get("/:id", auth.RequireAuthority(domain.PermissionGetCar), cfg.Cars.GetCar)
	car.Put("/:id", auth.RequireAuthority(domain.PermissionEditCar), cfg.Cars.UpdateCar)
	car.Delete("/:id", auth.RequireAuthority(domain.PermissionDeleteCar), cfg.Cars.DeleteCar)

	brand := app.Group("/brand")
	brand.Post("/", auth.RequireAuthority(domain.PermissionCreateBrand), cfg.Brands.CreateBrand)
	brand.Get("/", auth.RequireAuthority(domain.PermissionGetBrand), cfg.Brands.ListBrands)
	brand.Get("/id/:id", auth.RequireAuthority(domain.PermissionGetBrand), cfg.Brands.GetBrand)
	brand.Put("/:id", auth.RequireAuthority(domain.PermissionEditBrand), cfg.Brands.UpdateBrand)
	brand.Delete("/:id", auth.RequireAuthority(domain.PermissionDeleteBrand), cfg.Brands.DeleteBrand)

	image := app.Group("/image", auth.RequireAuthenticated())
	image.Post("/", cfg.Images.UploadImage)
	image.Get("/", cfg.Images.ListImages)
	image.Put("/:id", cfg.Images.UpdateImage)
	image.Delete("/:id", cfg.Images.DeleteImage)

	role := app.Group("/role", auth.RequireAuthenticated())
	role.Post("/", cfg.Access.CreateRole)
	role.Get("/", cfg.Access.ListRoles)
	role.Get("/id/:id", cfg.Access.GetRoleByID)
	role.Get("/name/:name", cfg.Access.GetRoleByName)
	role.Put("/add-permission", cfg.Access.AddRolePermissions)
	role.Put("/remove-permission", cfg.Access.RemoveRolePermissions)
	role.Delete("/:name", cfg.Access.DeleteRole)

	permission := app.Group("/permission", auth.RequireAuthenticated())
	permission.Post("/", cfg.Access.CreatePermission)
	permission.Get("/", cfg.Access.ListPermissions)
	permission.Get("/id/:id", cfg.Access.GetPermissionByID)
	permission.Get("/name/:name", cfg.Access.GetPermissionByName)
	permission.Delete("/:name", cfg.Access.DeletePermission)

	group := app.Group("/group", auth.RequireAuthenticated())
	group.Post("/", cfg.Access.CreateGroup)
	group.Get("/", cfg.Access.ListGroups)
	group.Get("/id/:id", cfg.Access.GetGroupByID)
	group.Get("/name/:name", cfg.Access.GetGroupByName)
	group.Delete("/:name", cfg.Access.DeleteGroup)
}
