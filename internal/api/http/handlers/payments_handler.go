package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/impulse-lab/lab-booking-service/internal/api/dto"
	"github.com/impulse-lab/lab-booking-service/internal/auth"
	"github.com/impulse-lab/lab-booking-service/internal/service"
	apperrors "github.com/impulse-lab/lab-booking-service/pkg/util"
)

// PaymentsHandler manages payment intent endpoints and the provider webhook.
type PaymentsHandler struct {
	payments *service.PaymentService
}

// NewPaymentsHandler constructs handler.
func NewPaymentsHandler(paymentService *service.PaymentService) *PaymentsHandler {
	return &PaymentsHandler{payments: paymentService}
}

// StripeCheckout handles POST /payments/stripe/checkout.
func (h *PaymentsHandler) StripeCheckout(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.StripeCheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	if req.BookingID == "" {
		return apperrors.NewValidationError("booking_id required")
	}

	url, err := h.payments.CreateStripeCheckout(c.Context(), principal, req.BookingID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"url": url})
}

// RazorpayOrder handles POST /payments/razorpay/order.
func (h *PaymentsHandler) RazorpayOrder(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.RazorpayOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	if req.BookingID == "" {
		return apperrors.NewValidationError("booking_id required")
	}

	order, err := h.payments.CreateRazorpayOrder(c.Context(), principal, req.BookingID, req.Currency)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"order_id": order.OrderID,
		"amount":   order.Amount,
		"currency": order.Currency,
	})
}

// Webhook handles POST /payments/webhook. Authenticated by a shared-secret
// signature header rather than a bearer token.
func (h *PaymentsHandler) Webhook(c *fiber.Ctx) error {
	var req dto.WebhookRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}

	err := h.payments.HandleWebhook(c.Context(), service.WebhookInput{
		Signature:         c.Get("X-Payment-Signature"),
		ProviderPaymentID: req.ProviderPaymentID,
		Status:            req.Status,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"ok": true})
}
