package dto

import (
	"time"

	"github.com/motorline/car-catalog/internal/domain"
)

// CreateBrandRequest payload.
type CreateBrandRequest struct {
	Name string `json:"name"`
}

// BrandResponse response shape for brands.
type BrandResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// NewBrandResponse maps a brand.
func NewBrandResponse(brand *domain.Brand) BrandResponse {
	return BrandResponse{ID: brand.ID, Name: brand.Name}
}

// NewBrandResponses maps a brand list.
func NewBrandResponses(brands []domain.Brand) []BrandResponse {
	out := make([]BrandResponse, 0, len(brands))
	for i := range brands {
		out = append(out, NewBrandResponse(&brands[i]))
	}
	return out
}

// ImageResponse response shape for uploaded images.
type ImageResponse struct {
	ID       int64  `json:"id"`
	Filename string `json:"filename"`
	FullPath string `json:"full_path"`
}

// NewImageResponse maps an image.
func NewImageResponse(image *domain.Image) ImageResponse {
	return ImageResponse{ID: image.ID, Filename: image.Filename, FullPath: image.FullPath}
}

// NewImageResponses maps an image list.
func NewImageResponses(images []domain.Image) []ImageResponse {
	out := make([]ImageResponse, 0, len(images))
	for i := range images {
		out = append(out, NewImageResponse(&images[i]))
	}
	return out
}

// CarRequest payload for creating or updating a listing. ReleaseDate
// uses yyyy-mm-dd.
type CarRequest struct {
	BrandID       int64   `json:"brand_id"`
	Specification string  `json:"specification"`
	EngineLiter   float64 `json:"engine_liter"`
	IsNew         bool    `json:"is_new"`
	Price         float64 `json:"price"`
	ReleaseDate   string  `json:"release_date"`
	ImageID       *int64  `json:"image_id"`
}

// CarResponse response shape for listings.
type CarResponse struct {
	ID            int64          `json:"id"`
	Brand         BrandResponse  `json:"brand"`
	Specification string         `json:"specification"`
	EngineLiter   float64        `json:"engine_liter"`
	IsNew         bool           `json:"is_new"`
	Price         float64        `json:"price"`
	ReleaseDate   string         `json:"release_date"`
	Image         *ImageResponse `json:"image,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// NewCarResponse maps a car with its joined brand and image.
func NewCarResponse(car *domain.Car) CarResponse {
	resp := CarResponse{
		ID:            car.ID,
		Specification: car.Specification,
		EngineLiter:   car.EngineLiter,
		IsNew:         car.IsNew,
		Price:         car.Price,
		ReleaseDate:   car.ReleaseDate.Format("2006-01-02"),
		CreatedAt:     car.CreatedAt,
		UpdatedAt:     car.UpdatedAt,
	}
	if car.Brand != nil {
		resp.Brand = NewBrandResponse(car.Brand)
	} else {
		resp.Brand = BrandResponse{ID: car.BrandID}
	}
	if car.Image != nil {
		image := NewImageResponse(car.Image)
		resp.Image = &image
	}
	return resp
}

// NewCarResponses maps a car list.
func NewCarResponses(cars []domain.Car) []CarResponse {
	out := make([]CarResponse, 0, len(cars))
	for i := range cars {
		out = append(out, NewCarResponse(&cars[i]))
	}
	return out
}

// CarPageResponse wraps a filtered page with its total match count.
type CarPageResponse struct {
	Items      []CarResponse `json:"items"`
	TotalItems int64         `json:"total_items"`
	Page       int           `json:"page"`
	PageSize   int           `json:"page_size"`
}
