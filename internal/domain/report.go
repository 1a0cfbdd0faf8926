package domain

import "time"

// Report is the result document metadata attached to a booking. The file
// itself lives in object storage under FileKey.
type Report struct {
	ID           string
	BookingID    string
	FileKey      string
	Notes        string
	UploadedByID string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
