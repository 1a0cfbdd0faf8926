package dto

// StripeCheckoutRequest payload to open a checkout session.
type StripeCheckoutRequest struct {
	BookingID string `json:"booking_id"`
}

// RazorpayOrderRequest payload to open a provider order.
type RazorpayOrderRequest struct {
	BookingID string `json:"booking_id"`
	Currency  string `json:"currency"`
}

// WebhookRequest is the provider callback payload.
type WebhookRequest struct {
	ProviderPaymentID string `json:"provider_payment_id"`
	Status            string `json:"status"`
}
