package service

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/impulse-lab/lab-booking-service/internal/auth"
	"github.com/impulse-lab/lab-booking-service/internal/domain"
	"github.com/impulse-lab/lab-booking-service/internal/events"
	"github.com/impulse-lab/lab-booking-service/internal/provider"
	apperrors "github.com/impulse-lab/lab-booking-service/pkg/util"
)

func TestStripeCheckoutRecordsPendingPayment(t *testing.T) {
	bookings := new(mockBookingRepo)
	stripe := new(mockStripeCheckout)
	svc := NewPaymentService("hook-secret", PaymentDependencies{BookingRepo: bookings, Stripe: stripe})

	bookings.On("GetByID", mock.Anything, "booking-1").
		Return(&domain.Booking{ID: "booking-1", UserID: "user-1", Total: 1700}, nil)
	stripe.On("CreateCheckoutSession", mock.Anything, mock.AnythingOfType("*domain.Booking")).
		Return("cs_123", "https://checkout.stripe.com/cs_123", nil)
	bookings.On("Update", mock.Anything, mock.MatchedBy(func(b *domain.Booking) bool {
		return b.Payment.Provider != nil && *b.Payment.Provider == "stripe" &&
			b.Payment.ProviderPaymentID != nil && *b.Payment.ProviderPaymentID == "cs_123" &&
			!b.Payment.Paid
	})).Return(nil)

	url, err := svc.CreateStripeCheckout(context.Background(), &auth.Principal{UserID: "user-1", Role: domain.RoleUser}, "booking-1")
	require.NoError(t, err)
	assert.Equal(t, "https://checkout.stripe.com/cs_123", url)
	bookings.AssertExpectations(t)
}

func TestStripeCheckoutAlreadyPaid(t *testing.T) {
	bookings := new(mockBookingRepo)
	svc := NewPaymentService("hook-secret", PaymentDependencies{BookingRepo: bookings})

	bookings.On("GetByID", mock.Anything, "booking-1").
		Return(&domain.Booking{ID: "booking-1", UserID: "user-1", Payment: domain.PaymentInfo{Paid: true}}, nil)

	_, err := svc.CreateStripeCheckout(context.Background(), &auth.Principal{UserID: "user-1", Role: domain.RoleUser}, "booking-1")
	require.Error(t, err)
	assert.Equal(t, 400, apperrors.ToDomainError(err).HTTPStatus)
}

func TestStripeCheckoutNotOwner(t *testing.T) {
	bookings := new(mockBookingRepo)
	svc := NewPaymentService("hook-secret", PaymentDependencies{BookingRepo: bookings})

	bookings.On("GetByID", mock.Anything, "booking-1").
		Return(&domain.Booking{ID: "booking-1", UserID: "user-1"}, nil)

	_, err := svc.CreateStripeCheckout(context.Background(), &auth.Principal{UserID: "user-2", Role: domain.RoleUser}, "booking-1")
	require.Error(t, err)
	assert.Equal(t, 403, apperrors.ToDomainError(err).HTTPStatus)
}

func TestStripeCheckoutProviderFailure(t *testing.T) {
	bookings := new(mockBookingRepo)
	stripe := new(mockStripeCheckout)
	svc := NewPaymentService("hook-secret", PaymentDependencies{BookingRepo: bookings, Stripe: stripe})

	bookings.On("GetByID", mock.Anything, "booking-1").
		Return(&domain.Booking{ID: "booking-1", UserID: "user-1"}, nil)
	stripe.On("CreateCheckoutSession", mock.Anything, mock.Anything).Return("", "", assert.AnError)

	_, err := svc.CreateStripeCheckout(context.Background(), &auth.Principal{UserID: "user-1", Role: domain.RoleUser}, "booking-1")
	require.Error(t, err)
	assert.Equal(t, 500, apperrors.ToDomainError(err).HTTPStatus)
	bookings.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestRazorpayOrderDefaultsCurrency(t *testing.T) {
	bookings := new(mockBookingRepo)
	razorpay := new(mockRazorpayOrders)
	svc := NewPaymentService("hook-secret", PaymentDependencies{BookingRepo: bookings, Razorpay: razorpay})

	bookings.On("GetByID", mock.Anything, "booking-1").
		Return(&domain.Booking{ID: "booking-1", UserID: "user-1", Total: 1700}, nil)
	razorpay.On("CreateOrder", mock.Anything, int64(1700), "INR").
		Return(&provider.RazorpayOrder{OrderID: "order_123", Amount: 1700, Currency: "INR"}, nil)
	bookings.On("Update", mock.Anything, mock.AnythingOfType("*domain.Booking")).Return(nil)

	order, err := svc.CreateRazorpayOrder(context.Background(), &auth.Principal{UserID: "user-1", Role: domain.RoleUser}, "booking-1", "")
	require.NoError(t, err)
	assert.Equal(t, "order_123", order.OrderID)
}

func TestWebhookRejectsBadSignature(t *testing.T) {
	bookings := new(mockBookingRepo)
	svc := NewPaymentService("hook-secret", PaymentDependencies{BookingRepo: bookings})

	err := svc.HandleWebhook(context.Background(), WebhookInput{
		Signature:         "wrong-secret",
		ProviderPaymentID: "cs_123",
		Status:            "paid",
	})
	require.Error(t, err)
	assert.Equal(t, 401, apperrors.ToDomainError(err).HTTPStatus)
	bookings.AssertNotCalled(t, "GetByProviderPaymentID", mock.Anything, mock.Anything)
}

func TestWebhookPaidConfirmsBooking(t *testing.T) {
	bookings := new(mockBookingRepo)
	dispatcher := &recordingDispatcher{}
	svc := NewPaymentService("hook-secret", PaymentDependencies{BookingRepo: bookings, Dispatcher: dispatcher})

	providerName := "stripe"
	sessionID := "cs_123"
	bookings.On("GetByProviderPaymentID", mock.Anything, "cs_123").
		Return(&domain.Booking{
			ID:     "booking-1",
			UserID: "user-1",
			Status: domain.BookingStatusPending,
			Payment: domain.PaymentInfo{
				Provider:          &providerName,
				ProviderPaymentID: &sessionID,
			},
		}, nil)
	bookings.On("Update", mock.Anything, mock.MatchedBy(func(b *domain.Booking) bool {
		return b.Payment.Paid && b.Status == domain.BookingStatusConfirmed
	})).Return(nil)

	err := svc.HandleWebhook(context.Background(), WebhookInput{
		Signature:         "hook-secret",
		ProviderPaymentID: "cs_123",
		Status:            "paid",
	})
	require.NoError(t, err)
	assert.Equal(t, []events.EventType{events.EventBookingConfirmed}, dispatcher.eventTypes())
}

func TestWebhookFailedDropsToPending(t *testing.T) {
	bookings := new(mockBookingRepo)
	dispatcher := &recordingDispatcher{}
	svc := NewPaymentService("hook-secret", PaymentDependencies{BookingRepo: bookings, Dispatcher: dispatcher})

	bookings.On("GetByProviderPaymentID", mock.Anything, "cs_123").
		Return(&domain.Booking{ID: "booking-1", Status: domain.BookingStatusPending}, nil)
	bookings.On("Update", mock.Anything, mock.MatchedBy(func(b *domain.Booking) bool {
		return !b.Payment.Paid && b.Status == domain.BookingStatusPending
	})).Return(nil)

	err := svc.HandleWebhook(context.Background(), WebhookInput{
		Signature:         "hook-secret",
		ProviderPaymentID: "cs_123",
		Status:            "failed",
	})
	require.NoError(t, err)
	assert.Empty(t, dispatcher.eventTypes())
}

func TestWebhookUnknownPayment(t *testing.T) {
	bookings := new(mockBookingRepo)
	svc := NewPaymentService("hook-secret", PaymentDependencies{BookingRepo: bookings})

	bookings.On("GetByProviderPaymentID", mock.Anything, "cs_unknown").Return(nil, pgx.ErrNoRows)

	err := svc.HandleWebhook(context.Background(), WebhookInput{
		Signature:         "hook-secret",
		ProviderPaymentID: "cs_unknown",
		Status:            "paid",
	})
	require.Error(t, err)
	assert.Equal(t, 404, apperrors.ToDomainError(err).HTTPStatus)
}
