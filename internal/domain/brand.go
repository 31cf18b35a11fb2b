package domain

import "time"

// Brand is a car manufacturer known to the catalog.
type Brand struct {
	ID        int64
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
