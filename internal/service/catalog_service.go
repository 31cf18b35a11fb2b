package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/motorline/car-catalog/internal/domain"
	"github.com/motorline/car-catalog/internal/events"
	"github.com/motorline/car-catalog/internal/repository"
	"github.com/motorline/car-catalog/internal/storage"
	apperrors "github.com/motorline/car-catalog/pkg/util"
)

// CarInput carries create/update fields for a car listing.
type CarInput struct {
	BrandID       int64
	Specification string
	EngineLiter   float64
	IsNew         bool
	Price         float64
	ReleaseDate   time.Time
	ImageID       *int64
}

// CatalogService manages cars, brands and images.
type CatalogService struct {
	cars       repository.CarRepository
	brands     repository.BrandRepository
	images     repository.ImageRepository
	files      *storage.ImageStore
	dispatcher events.Dispatcher
}

// NewCatalogService builds the service.
func NewCatalogService(cars repository.CarRepository, brands repository.BrandRepository, images repository.ImageRepository, files *storage.ImageStore, dispatcher events.Dispatcher) *CatalogService {
	return &CatalogService{
		cars:       cars,
		brands:     brands,
		images:     images,
		files:      files,
		dispatcher: dispatcher,
	}
}

// CreateBrand registers a new brand name.
func (s *CatalogService) CreateBrand(ctx context.Context, name string) (*domain.Brand, error) {
	if _, err := s.brands.GetByName(ctx, name); err == nil {
		return nil, apperrors.NewConflict("brand already exists", map[string]any{"name": name})
	} else if err != pgx.ErrNoRows {
		return nil, err
	}

	brand := &domain.Brand{Name: name}
	if err := s.brands.Create(ctx, brand); err != nil {
		return nil, err
	}
	s.publish(ctx, events.EventBrandCreated, events.BrandPayload{BrandID: brand.ID, Name: brand.Name})
	return brand, nil
}

// UpdateBrand renames a brand.
func (s *CatalogService) UpdateBrand(ctx context.Context, id int64, name string) (*domain.Brand, error) {
	brand, err := s.brands.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("brand", map[string]any{"id": id})
		}
		return nil, err
	}
	brand.Name = name
	if err := s.brands.Update(ctx, brand); err != nil {
		return nil, err
	}
	return brand, nil
}

// DeleteBrand removes a brand.
func (s *CatalogService) DeleteBrand(ctx context.Context, id int64) error {
	brand, err := s.brands.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("brand", map[string]any{"id": id})
		}
		return err
	}
	if err := s.brands.Delete(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, events.EventBrandDeleted, events.BrandPayload{BrandID: brand.ID, Name: brand.Name})
	return nil
}

// GetBrand fetches a brand by id.
func (s *CatalogService) GetBrand(ctx context.Context, id int64) (*domain.Brand, error) {
	brand, err := s.brands.GetByID(ctx, id)
	if err == pgx.ErrNoRows {
		return nil, apperrors.NewNotFound("brand", map[string]any{"id": id})
	}
	return brand, err
}

// ListBrands returns all brands.
func (s *CatalogService) ListBrands(ctx context.Context) ([]domain.Brand, error) {
	return s.brands.List(ctx)
}

// UploadImage stores the file on disk and records it. Re-uploading a
// file that resolved to an already-recorded path returns the existing
// row.
func (s *CatalogService) UploadImage(ctx context.Context, filename string, data []byte) (*domain.Image, error) {
	stored, fullPath, err := s.files.Save(filename, data)
	if err != nil {
		if err == storage.ErrEmptyFile {
			return nil, apperrors.NewValidationError("failed to load file: file is empty", nil)
		}
		return nil, err
	}

	if existing, err := s.images.GetByFullPath(ctx, fullPath); err == nil {
		return existing, nil
	} else if err != pgx.ErrNoRows {
		return nil, err
	}

	image := &domain.Image{Filename: stored, FullPath: fullPath}
	if err := s.images.Create(ctx, image); err != nil {
		return nil, err
	}
	return image, nil
}

// UpdateImage replaces the stored file for an image record.
func (s *CatalogService) UpdateImage(ctx context.Context, id int64, filename string, data []byte) (*domain.Image, error) {
	image, err := s.images.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("image", map[string]any{"id": id})
		}
		return nil, err
	}

	stored, fullPath, err := s.files.Save(filename, data)
	if err != nil {
		if err == storage.ErrEmptyFile {
			return nil, apperrors.NewValidationError("failed to load file: file is empty", nil)
		}
		return nil, err
	}

	oldPath := image.FullPath
	image.Filename = stored
	image.FullPath = fullPath
	if err := s.images.Update(ctx, image); err != nil {
		return nil, err
	}
	_ = s.files.Remove(oldPath)
	return image, nil
}

// DeleteImage removes the record and its file.
func (s *CatalogService) DeleteImage(ctx context.Context, id int64) error {
	image, err := s.images.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("image", map[string]any{"id": id})
		}
		return err
	}
	if err := s.images.Delete(ctx, id); err != nil {
		return err
	}
	return s.files.Remove(image.FullPath)
}

// ListImages returns all image records.
func (s *CatalogService) ListImages(ctx context.Context) ([]domain.Image, error) {
	return s.images.List(ctx)
}

// CreateCar adds a listing after verifying its references exist.
func (s *CatalogService) CreateCar(ctx context.Context, input CarInput) (*domain.Car, error) {
	brand, err := s.brands.GetByID(ctx, input.BrandID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("brand", map[string]any{"id": input.BrandID})
		}
		return nil, err
	}
	if input.ImageID != nil {
		if _, err := s.images.GetByID(ctx, *input.ImageID); err != nil {
			if err == pgx.ErrNoRows {
				return nil, apperrors.NewNotFound("image", map[string]any{"id": *input.ImageID})
			}
			return nil, err
		}
	}

	car := &domain.Car{
		BrandID:       input.BrandID,
		Specification: input.Specification,
		EngineLiter:   input.EngineLiter,
		IsNew:         input.IsNew,
		Price:         input.Price,
		ReleaseDate:   input.ReleaseDate,
		ImageID:       input.ImageID,
	}
	if err := s.cars.Create(ctx, car); err != nil {
		return nil, err
	}
	car.Brand = brand

	s.publish(ctx, events.EventCarCreated, events.CarPayload{CarID: car.ID, BrandID: brand.ID, Brand: brand.Name})
	return car, nil
}

// UpdateCar modifies an existing listing.
func (s *CatalogService) UpdateCar(ctx context.Context, id int64, input CarInput) (*domain.Car, error) {
	car, err := s.cars.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("car", map[string]any{"id": id})
		}
		return nil, err
	}
	if _, err := s.brands.GetByID(ctx, input.BrandID); err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("brand", map[string]any{"id": input.BrandID})
		}
		return nil, err
	}

	car.BrandID = input.BrandID
	car.Specification = input.Specification
	car.EngineLiter = input.EngineLiter
	car.IsNew = input.IsNew
	car.Price = input.Price
	car.ReleaseDate = input.ReleaseDate
	car.ImageID = input.ImageID
	if err := s.cars.Update(ctx, car); err != nil {
		return nil, err
	}

	updated, err := s.cars.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events.EventCarUpdated, events.CarPayload{CarID: updated.ID, BrandID: updated.BrandID})
	return updated, nil
}

// DeleteCar removes a listing.
func (s *CatalogService) DeleteCar(ctx context.Context, id int64) error {
	car, err := s.cars.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("car", map[string]any{"id": id})
		}
		return err
	}
	if err := s.cars.Delete(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, events.EventCarDeleted, events.CarPayload{CarID: car.ID, BrandID: car.BrandID})
	return nil
}

// GetCar fetches a single listing.
func (s *CatalogService) GetCar(ctx context.Context, id int64) (*domain.Car, error) {
	car, err := s.cars.GetByID(ctx, id)
	if err == pgx.ErrNoRows {
		return nil, apperrors.NewNotFound("car", map[string]any{"id": id})
	}
	return car, err
}

// ListCars returns all listings.
func (s *CatalogService) ListCars(ctx context.Context) ([]domain.Car, error) {
	return s.cars.List(ctx)
}

// ListCarsPage returns a filtered page plus the total match count.
func (s *CatalogService) ListCarsPage(ctx context.Context, filter repository.CarFilter) ([]domain.Car, int64, error) {
	return s.cars.ListPage(ctx, filter)
}

func (s *CatalogService) publish(ctx context.Context, eventType events.EventType, payload any) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}
