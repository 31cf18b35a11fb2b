package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/motorline/car-catalog/internal/api/dto"
	"github.com/motorline/car-catalog/internal/service"
	apperrors "github.com/motorline/car-catalog/pkg/util"
)

// BrandsHandler manages brand endpoints.
type BrandsHandler struct {
	catalog *service.CatalogService
}

// NewBrandsHandler constructs handler.
func NewBrandsHandler(catalogService *service.CatalogService) *BrandsHandler {
	return &BrandsHandler{catalog: catalogService}
}

// CreateBrand POST /brand.
func (h *BrandsHandler) CreateBrand(c *fiber.Ctx) error {
	var req dto.CreateBrandRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Name) == "" {
		return apperrors.NewValidationError("name required", nil)
	}
	brand, err := h.catalog.CreateBrand(c.UserContext(), req.Name)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewBrandResponse(brand)})
}

// UpdateBrand PUT /brand/:id.
func (h *BrandsHandler) UpdateBrand(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req dto.CreateBrandRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Name) == "" {
		return apperrors.NewValidationError("name required", nil)
	}
	brand, err := h.catalog.UpdateBrand(c.UserContext(), id, req.Name)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewBrandResponse(brand)})
}

// DeleteBrand DELETE /brand/:id.
func (h *BrandsHandler) DeleteBrand(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.catalog.DeleteBrand(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// GetBrand GET /brand/id/:id.
func (h *BrandsHandler) GetBrand(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	brand, err := h.catalog.GetBrand(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewBrandResponse(brand)})
}

// ListBrands GET /brand.
func (h *BrandsHandler) ListBrands(c *fiber.Ctx) error {
	brands, err := h.catalog.ListBrands(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewBrandResponses(brands)})
}
