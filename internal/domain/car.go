package domain

import "time"

// Car is a catalog listing.
type Car struct {
	ID            int64
	BrandID       int64
	Brand         *Brand
	Specification string
	EngineLiter   float64
	IsNew         bool
	Price         float64
	ReleaseDate   time.Time
	ImageID       *int64
	Image         *Image
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
