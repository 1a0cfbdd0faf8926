package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/impulse-lab/lab-booking-service/internal/auth"
	"github.com/impulse-lab/lab-booking-service/internal/domain"
	"github.com/impulse-lab/lab-booking-service/internal/events"
	"github.com/impulse-lab/lab-booking-service/internal/provider"
	"github.com/impulse-lab/lab-booking-service/internal/repository"
	apperrors "github.com/impulse-lab/lab-booking-service/pkg/util"
)

const (
	paymentProviderStripe   = "stripe"
	paymentProviderRazorpay = "razorpay"
)

// PaymentService creates payment intents with external providers and applies
// webhook outcomes to bookings.
type PaymentService struct {
	bookings      repository.BookingRepository
	stripe        provider.StripeCheckout
	razorpay      provider.RazorpayOrders
	dispatcher    events.Dispatcher
	webhookSecret string
}

// PaymentDependencies bundles collaborators for the payment service.
type PaymentDependencies struct {
	BookingRepo repository.BookingRepository
	Stripe      provider.StripeCheckout
	Razorpay    provider.RazorpayOrders
	Dispatcher  events.Dispatcher
}

// NewPaymentService constructs the service.
func NewPaymentService(webhookSecret string, deps PaymentDependencies) *PaymentService {
	return &PaymentService{
		bookings:      deps.BookingRepo,
		stripe:        deps.Stripe,
		razorpay:      deps.Razorpay,
		dispatcher:    deps.Dispatcher,
		webhookSecret: webhookSecret,
	}
}

// CreateStripeCheckout opens a hosted checkout session for a booking and
// records the session as the pending provider payment.
func (s *PaymentService) CreateStripeCheckout(ctx context.Context, principal *auth.Principal, bookingID string) (string, error) {
	booking, err := s.loadOwned(ctx, principal, bookingID)
	if err != nil {
		return "", err
	}
	if booking.Payment.Paid {
		return "", apperrors.NewValidationError("booking already paid")
	}

	sessionID, url, err := s.stripe.CreateCheckoutSession(ctx, booking)
	if err != nil {
		return "", apperrors.NewUpstreamFailure("payment provider unavailable", err)
	}

	providerName := paymentProviderStripe
	booking.Payment.Provider = &providerName
	booking.Payment.ProviderPaymentID = &sessionID
	if err := s.bookings.Update(ctx, booking); err != nil {
		return "", err
	}
	return url, nil
}

// CreateRazorpayOrder opens a provider order for a booking total.
func (s *PaymentService) CreateRazorpayOrder(ctx context.Context, principal *auth.Principal, bookingID, currency string) (*provider.RazorpayOrder, error) {
	booking, err := s.loadOwned(ctx, principal, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.Payment.Paid {
		return nil, apperrors.NewValidationError("booking already paid")
	}
	if currency == "" {
		currency = "INR"
	}

	order, err := s.razorpay.CreateOrder(ctx, booking.Total, currency)
	if err != nil {
		return nil, apperrors.NewUpstreamFailure("payment provider unavailable", err)
	}

	providerName := paymentProviderRazorpay
	booking.Payment.Provider = &providerName
	booking.Payment.ProviderPaymentID = &order.OrderID
	if err := s.bookings.Update(ctx, booking); err != nil {
		return nil, err
	}
	return order, nil
}

// WebhookInput is the provider callback payload.
type WebhookInput struct {
	Signature         string
	ProviderPaymentID string
	Status            string
}

// HandleWebhook verifies the shared-secret signature and flips booking
// payment state. A paid callback confirms the booking; anything else drops
// it back to pending.
func (s *PaymentService) HandleWebhook(ctx context.Context, input WebhookInput) error {
	if subtle.ConstantTimeCompare([]byte(input.Signature), []byte(s.webhookSecret)) != 1 {
		return apperrors.NewUnauthorized("invalid signature")
	}

	booking, err := s.bookings.GetByProviderPaymentID(ctx, input.ProviderPaymentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("booking")
		}
		return err
	}

	if input.Status == "paid" {
		booking.Payment.Paid = true
		booking.Status = domain.BookingStatusConfirmed
	} else {
		booking.Status = domain.BookingStatusPending
	}
	if err := s.bookings.Update(ctx, booking); err != nil {
		return err
	}

	if booking.Payment.Paid && s.dispatcher != nil {
		providerName := ""
		if booking.Payment.Provider != nil {
			providerName = *booking.Payment.Provider
		}
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventBookingConfirmed,
			SubjectID: booking.ID,
			Timestamp: time.Now(),
			Payload: events.BookingConfirmedPayload{
				UserID:   booking.UserID,
				Provider: providerName,
			},
		})
	}
	return nil
}

func (s *PaymentService) loadOwned(ctx context.Context, principal *auth.Principal, bookingID string) (*domain.Booking, error) {
	booking, err := s.bookings.GetByID(ctx, bookingID)
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
