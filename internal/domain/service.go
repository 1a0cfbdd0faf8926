package domain

import "time"

// Service is a bookable diagnostic test from the lab catalog.
// Prices are stored in the smallest currency unit.
type Service struct {
	ID          string
	Name        string
	Description string
	Price       int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
