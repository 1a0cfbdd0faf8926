package domain

import "time"

// BookingStatus enumerates the linear booking lifecycle.
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// BookingLine is one catalog service captured at booking time with the
// price it was sold at.
type BookingLine struct {
	ServiceID   string
	ServiceName string
	Price       int64
}

// PaymentInfo tracks provider payment state attached to a booking.
type PaymentInfo struct {
	Paid              bool
	Provider          *string
	ProviderPaymentID *string
}

// Booking is the aggregate for a set of tests ordered by a user.
type Booking struct {
	ID         string
	UserID     string
	Lines      []BookingLine
	Total      int64
	Status     BookingStatus
	SampleDate *time.Time
	Payment    PaymentInfo
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
