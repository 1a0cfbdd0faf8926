package provider

import (
	"context"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"

	"github.com/impulse-lab/lab-booking-service/internal/config"
	"github.com/impulse-lab/lab-booking-service/internal/domain"
)

// StripeCheckout creates hosted checkout sessions for bookings.
type StripeCheckout interface {
	CreateCheckoutSession(ctx context.Context, booking *domain.Booking) (sessionID, url string, err error)
}

type stripeCheckout struct {
	api        *client.API
	successURL string
	cancelURL  string
}

// NewStripeCheckout builds the Stripe-backed implementation.
func NewStripeCheckout(cfg config.PaymentConfig) StripeCheckout {
	api := &client.API{}
	api.Init(cfg.StripeSecretKey, nil)
	return &stripeCheckout{
		api:        api,
		successURL: cfg.StripeSuccessURL,
		cancelURL:  cfg.StripeCancelURL,
	}
}

func (s *stripeCheckout) CreateCheckoutSession(ctx context.Context, booking *domain.Booking) (string, string, error) {
	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(booking.Lines))
	for _, line := range booking.Lines {
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency: stripe.String(string(stripe.CurrencyUSD)),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(line.ServiceName),
				},
				UnitAmount: stripe.Int64(line.Price),
			},
			Quantity: stripe.Int64(1),
		})
	}

	params := &stripe.CheckoutSessionParams{
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems:          lineItems,
		SuccessURL:         stripe.String(s.successURL + "?bookingId=" + booking.ID),
		CancelURL:          stripe.String(s.cancelURL),
	}
	params.Context = ctx

	sess, err := s.api.CheckoutSessions.New(params)
	if err != nil {
		return "", "", err
	}
	return sess.ID, sess.URL, nil
}
