package events

import (
	"time"

	"github.com/impulse-lab/lab-booking-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered   EventType = "user_registered"
	EventBookingCreated   EventType = "booking_created"
	EventBookingConfirmed EventType = "booking_confirmed"
	EventBookingCancelled EventType = "booking_cancelled"
	EventReportUploaded   EventType = "report_uploaded"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	SubjectID string      `json:"subject_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	Name     string              `json:"name"`
	Email    string              `json:"email"`
	Provider domain.AuthProvider `json:"provider"`
}

// BookingCreatedPayload payload.
type BookingCreatedPayload struct {
	UserID     string     `json:"user_id"`
	Total      int64      `json:"total"`
	SampleDate *time.Time `json:"sample_date,omitempty"`
}

// BookingConfirmedPayload payload.
type BookingConfirmedPayload struct {
	UserID   string `json:"user_id"`
	Provider string `json:"provider"`
}

// BookingCancelledPayload payload.
type BookingCancelledPayload struct {
	UserID string `json:"user_id"`
}

// ReportUploadedPayload payload.
type ReportUploadedPayload struct {
	BookingID string `json:"booking_id"`
	FileKey   string `json:"file_key"`
}
