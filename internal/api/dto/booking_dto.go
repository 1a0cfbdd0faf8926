package dto

import (
	"time"

	"github.com/impulse-lab/lab-booking-service/internal/domain"
)

// CreateBookingRequest payload for new bookings.
type CreateBookingRequest struct {
	ServiceIDs []string   `json:"services"`
	SampleDate *time.Time `json:"sample_date"`
}

// UpdateBookingRequest payload for booking changes.
type UpdateBookingRequest struct {
	SampleDate *time.Time `json:"sample_date"`
}

// BookingLineResponse is one booked service with its sold price.
type BookingLineResponse struct {
	ServiceID   string `json:"service_id"`
	ServiceName string `json:"service_name"`
	Price       int64  `json:"price"`
}

// PaymentResponse is booking payment state.
type PaymentResponse struct {
	Paid              bool    `json:"paid"`
	Provider          *string `json:"provider,omitempty"`
	ProviderPaymentID *string `json:"provider_payment_id,omitempty"`
}

// BookingResponse is the booking shape.
type BookingResponse struct {
	ID         string                `json:"id"`
	UserID     string                `json:"user_id"`
	Lines      []BookingLineResponse `json:"services"`
	Total      int64                 `json:"total"`
	Status     domain.BookingStatus  `json:"status"`
	SampleDate *time.Time            `json:"sample_date,omitempty"`
	Payment    PaymentResponse       `json:"payment"`
	CreatedAt  time.Time             `json:"created_at"`
	UpdatedAt  time.Time             `json:"updated_at"`
}

// NewBookingResponse maps a domain booking.
func NewBookingResponse(booking *domain.Booking) BookingResponse {
	lines := make([]BookingLineResponse, 0, len(booking.Lines))
	for _, line := range booking.Lines {
		lines = append(lines, BookingLineResponse{
			ServiceID:   line.ServiceID,
			ServiceName: line.ServiceName,
			Price:       line.Price,
		})
	}
	return BookingResponse{
		ID:         booking.ID,
		UserID:     booking.UserID,
		Lines:      lines,
		Total:      booking.Total,
		Status:     booking.Status,
		SampleDate: booking.SampleDate,
		Payment: PaymentResponse{
			Paid:              booking.Payment.Paid,
			Provider:          booking.Payment.Provider,
			ProviderPaymentID: booking.Payment.ProviderPaymentID,
		},
		CreatedAt: booking.CreatedAt,
		UpdatedAt: booking.UpdatedAt,
	}
}
