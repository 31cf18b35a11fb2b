package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/motorline/car-catalog/internal/api/dto"
	"github.com/motorline/car-catalog/internal/repository"
	"github.com/motorline/car-catalog/internal/service"
	apperrors "github.com/motorline/car-catalog/pkg/util"
)

const releaseDateLayout = "2006-01-02"

// CarsHandler manages catalog listing endpoints.
type CarsHandler struct {
	catalog *service.CatalogService
}

// NewCarsHandler constructs handler.
func NewCarsHandler(catalogService *service.CatalogService) *CarsHandler {
	return &CarsHandler{catalog: catalogService}
}

// CreateCar POST /car.
func (h *CarsHandler) CreateCar(c *fiber.Ctx) error {
	input, err := parseCarRequest(c)
	if err != nil {
		return err
	}
	car, err := h.catalog.CreateCar(c.UserContext(), input)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewCarResponse(car)})
}

// UpdateCar PUT /car/:id.
func (h *CarsHandler) UpdateCar(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	input, err := parseCarRequest(c)
	if err != nil {
		return err
	}
	car, err := h.catalog.UpdateCar(c.UserContext(), id, input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewCarResponse(car)})
}

// DeleteCar DELETE /car/:id.
func (h *CarsHandler) DeleteCar(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.catalog.DeleteCar(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// GetCar GET /car/:id.
func (h *CarsHandler) GetCar(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	car, err := h.catalog.GetCar(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewCarResponse(car)})
}

// ListCars GET /car.
func (h *CarsHandler) ListCars(c *fiber.Ctx) error {
	cars, err := h.catalog.ListCars(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewCarResponses(cars)})
}

// ListCarsByPage GET /car/byPage.
func (h *CarsHandler) ListCarsByPage(c *fiber.Ctx) error {
	filter, err := parseCarFilter(c)
	if err != nil {
		return err
	}
	cars, total, err := h.catalog.ListCarsPage(c.UserContext(), filter)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.CarPageResponse{
		Items:      dto.NewCarResponses(cars),
		TotalItems: total,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
	}})
}

func parseCarRequest(c *fiber.Ctx) (service.CarInput, error) {
	var req dto.CarRequest
	if err := c.BodyParser(&req); err != nil {
		return service.CarInput{}, apperrors.NewValidationError("invalid payload", nil)
	}
	if req.BrandID == 0 || req.Specification == "" {
		return service.CarInput{}, apperrors.NewValidationError("brand_id and specification required", nil)
	}
	releaseDate, err := time.Parse(releaseDateLayout, req.ReleaseDate)
	if err != nil {
		return service.CarInput{}, apperrors.NewValidationError("release_date must be yyyy-mm-dd", nil)
	}
	return service.CarInput{
		BrandID:       req.BrandID,
		Specification: req.Specification,
		EngineLiter:   req.EngineLiter,
		IsNew:         req.IsNew,
		Price:         req.Price,
		ReleaseDate:   releaseDate,
		ImageID:       req.ImageID,
	}, nil
}

func parseCarFilter(c *fiber.Ctx) (repository.CarFilter, error) {
	filter := repository.CarFilter{
		SortBy:   c.Query("sortBy", "id"),
		SortDir:  c.Query("sortDir", "asc"),
		Page:     parseInt(c.Query("page"), 1),
		PageSize: parseInt(c.Query("pageSize"), 20),
	}
	if v := c.Query("brand"); v != "" {
		filter.Brand = &v
	}
	if v := c.Query("specification"); v != "" {
		filter.Specification = &v
	}
	if v := c.Query("searchTerm"); v != "" {
		filter.SearchTerm = &v
	}
	if v := c.Query("engineLiter"); v != "" {
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return filter, apperrors.NewValidationError("engineLiter must be numeric", nil)
		}
		filter.EngineLiter = &parsed
	}
	if v := c.Query("isNew"); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return filter, apperrors.NewValidationError("isNew must be boolean", nil)
		}
		filter.IsNew = &parsed
	}
	var err error
	if filter.MinPrice, err = queryFloat(c, "minPrice"); err != nil {
		return filter, err
	}
	if filter.MaxPrice, err = queryFloat(c, "maxPrice"); err != nil {
		return filter, err
	}
	if filter.MinDate, err = queryDate(c, "minDate"); err != nil {
		return filter, err
	}
	if filter.MaxDate, err = queryDate(c, "maxDate"); err != nil {
		return filter, err
	}
	return filter, nil
}

func queryFloat(c *fiber.Ctx, name string) (*float64, error) {
	v := c.Query(name)
	if v == "" {
		return nil, nil
	}
	parsed, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil, apperrors.NewValidationError(name+" must be numeric", nil)
	}
	return &parsed, nil
}

func queryDate(c *fiber.Ctx, name string) (*time.Time, error) {
	v := c.Query(name)
	if v == "" {
		return nil, nil
	}
	parsed, err := time.Parse(releaseDateLayout, v)
	if err != nil {
		return nil, apperrors.NewValidationError(name+" must be yyyy-mm-dd", nil)
	}
	return &parsed, nil
}

func parseID(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError(name+" must be a positive integer", nil)
	}
	return id, nil
}

func parseInt(val string, def int) int {
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}
