package handlers

import (
	"io"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/motorline/car-catalog/internal/api/dto"
	"github.com/motorline/car-catalog/internal/service"
	apperrors "github.com/motorline/car-catalog/pkg/util"
)

// ImagesHandler manages image upload endpoints.
type ImagesHandler struct {
	catalog *service.CatalogService
}

// NewImagesHandler constructs handler.
func NewImagesHandler(catalogService *service.CatalogService) *ImagesHandler {
	return &ImagesHandler{catalog: catalogService}
}

// UploadImage POST /image (multipart field "file").
func (h *ImagesHandler) UploadImage(c *fiber.Ctx) error {
	filename, data, err := readUpload(c)
	if err != nil {
		return err
	}
	image, err := h.catalog.UploadImage(c.UserContext(), filename, data)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewImageResponse(image)})
}

// UpdateImage PUT /image/:id (multipart field "file").
func (h *ImagesHandler) UpdateImage(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	filename, data, err := readUpload(c)
	if err != nil {
		return err
	}
	image, err := h.catalog.UpdateImage(c.UserContext(), id, filename, data)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewImageResponse(image)})
}

// DeleteImage DELETE /image/:id.
func (h *ImagesHandler) DeleteImage(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.catalog.DeleteImage(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// ListImages GET /image.
func (h *ImagesHandler) ListImages(c *fiber.Ctx) error {
	images, err := h.catalog.ListImages(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewImageResponses(images)})
}

func readUpload(c *fiber.Ctx) (string, []byte, error) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return "", nil, apperrors.NewValidationError("multipart file field required", nil)
	}
	file, err := fileHeader.Open()
	if err != nil {
		return "", nil, apperrors.NewValidationError("failed to load file", nil)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return "", nil, apperrors.NewInternalError(err)
	}
	return fileHeader.Filename, data, nil
}
