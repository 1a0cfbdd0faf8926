package dto

import (
	"time"

	"github.com/impulse-lab/lab-booking-service/internal/domain"
)

// UploadReportRequest payload to record report metadata.
type UploadReportRequest struct {
	BookingID string `json:"booking_id"`
	FileKey   string `json:"file_key"`
	Notes     string `json:"notes"`
}

// PresignUploadRequest payload to generate an upload URL.
type PresignUploadRequest struct {
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
}

// ReportResponse is the report metadata shape.
type ReportResponse struct {
	ID        string    `json:"id"`
	BookingID string    `json:"booking_id"`
	FileKey   string    `json:"file_key"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// NewReportResponse maps a domain report.
func NewReportResponse(report *domain.Report) ReportResponse {
	return ReportResponse{
		ID:        report.ID,
		BookingID: report.BookingID,
		FileKey:   report.FileKey,
		Notes:     report.Notes,
		CreatedAt: report.CreatedAt,
	}
}
