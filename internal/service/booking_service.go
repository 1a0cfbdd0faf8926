package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/impulse-lab/lab-booking-service/internal/auth"
	"github.com/impulse-lab/lab-booking-service/internal/domain"
	"github.com/impulse-lab/lab-booking-service/internal/events"
	"github.com/impulse-lab/lab-booking-service/internal/repository"
	apperrors "github.com/impulse-lab/lab-booking-service/pkg/util"
)

// BookingService coordinates the booking lifecycle.
type BookingService struct {
	bookings   repository.BookingRepository
	services   repository.ServiceRepository
	dispatcher events.Dispatcher
}

// NewBookingService constructs the service.
func NewBookingService(bookings repository.BookingRepository, services repository.ServiceRepository, dispatcher events.Dispatcher) *BookingService {
	return &BookingService{bookings: bookings, services: services, dispatcher: dispatcher}
}

// BookingCreateInput describes booking creation payload.
type BookingCreateInput struct {
	ServiceIDs []string
	SampleDate *time.Time
}

// BookingUpdateInput describes the fields a booking owner may change.
type BookingUpdateInput struct {
	SampleDate *time.Time
}

// Create books a set of catalog services for a user. The total is computed
// server-side from current catalog prices; the lines capture the sold price.
func (s *BookingService) Create(ctx context.Context, userID string, input BookingCreateInput) (*domain.Booking, error) {
	if len(input.ServiceIDs) == 0 {
		return nil, apperrors.NewValidationError("no services selected")
	}

	services, err := s.services.GetByIDs(ctx, input.ServiceIDs)
	if err != nil {
		return nil, err
	}
	if len(services) != len(uniqueIDs(input.ServiceIDs)) {
		return nil, apperrors.NewValidationError("unknown service selected")
	}

	var total int64
	lines := make([]domain.BookingLine, 0, len(services))
	for _, svc := range services {
		total += svc.Price
		lines = append(lines, domain.BookingLine{
			ServiceID:   svc.ID,
			ServiceName: svc.Name,
			Price:       svc.Price,
		})
	}

	booking := &domain.Booking{
		UserID:     userID,
		Lines:      lines,
		Total:      total,
		Status:     domain.BookingStatusPending,
		SampleDate: input.SampleDate,
	}
	if err := s.bookings.Create(ctx, booking); err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventBookingCreated, booking.ID, events.BookingCreatedPayload{
		UserID:     booking.UserID,
		Total:      booking.Total,
		SampleDate: booking.SampleDate,
	})
	return booking, nil
}

// List returns all bookings for admins and the caller's own otherwise.
func (s *BookingService) List(ctx context.Context, principal *auth.Principal) ([]domain.Booking, error) {
	if principal.IsAdmin() {
		return s.bookings.ListAll(ctx)
	}
	return s.bookings.ListByUser(ctx, principal.UserID)
}

// Get returns a single booking, restricted to its owner or an admin.
func (s *BookingService) Get(ctx context.Context, principal *auth.Principal, id string) (*domain.Booking, error) {
	booking, err := s.loadOwned(ctx, principal, id)
	if err != nil {
		return nil, err
	}
	return booking, nil
}

// Update changes owner-editable fields on a booking.
func (s *BookingService) Update(ctx context.Context, principal *auth.Principal, id string, input BookingUpdateInput) (*domain.Booking, error) {
	booking, err := s.loadOwned(ctx, principal, id)
	if err != nil {
		return nil, err
	}
	if booking.Status == domain.BookingStatusCancelled {
		return nil, apperrors.NewValidationError("booking is cancelled")
	}

	if input.SampleDate != nil {
		booking.SampleDate = input.SampleDate
	}
	if err := s.bookings.Update(ctx, booking); err != nil {
		return nil, err
	}
	return booking, nil
}

// Cancel marks a booking cancelled.
func (s *BookingService) Cancel(ctx context.Context, principal *auth.Principal, id string) error {
	booking, err := s.loadOwned(ctx, principal, id)
	if err != nil {
		return err
	}

	booking.Status = domain.BookingStatusCancelled
	if err := s.bookings.Update(ctx, booking); err != nil {
		return err
	}

	s.publish(ctx, events.EventBookingCancelled, booking.ID, events.BookingCancelledPayload{UserID: booking.UserID})
	return nil
}

// Stats aggregates booking totals for the admin dashboard.
func (s *BookingService) Stats(ctx context.Context) (*repository.BookingStats, error) {
	return s.bookings.Stats(ctx)
}

func (s *BookingService) loadOwned(ctx context.Context, principal *auth.Principal, id string) (*domain.Booking, error) {
	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("booking")
		}
		return nil, err
	}
	if !principal.IsAdmin() && booking.UserID != principal.UserID {
		return nil, apperrors.NewForbidden("not your booking")
	}
	return booking, nil
}

func (s *BookingService) publish(ctx context.Context, eventType events.EventType, bookingID string, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		SubjectID: bookingID,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}

func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
