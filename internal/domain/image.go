package domain

import "time"

// Image is an uploaded file referenced by catalog entries.
type Image struct {
	ID        int64
	Filename  string
	FullPath  string
	CreatedAt time.Time
}
