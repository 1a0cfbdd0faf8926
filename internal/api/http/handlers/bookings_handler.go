package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/impulse-lab/lab-booking-service/internal/api/dto"
	"github.com/impulse-lab/lab-booking-service/internal/auth"
	"github.com/impulse-lab/lab-booking-service/internal/service"
	apperrors "github.com/impulse-lab/lab-booking-service/pkg/util"
)

// BookingsHandler manages booking endpoints.
type BookingsHandler struct {
	bookings *service.BookingService
}

// NewBookingsHandler constructs handler.
func NewBookingsHandler(bookingService *service.BookingService) *BookingsHandler {
	return &BookingsHandler{bookings: bookingService}
}

// Create handles POST /bookings.
func (h *BookingsHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.CreateBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}

	booking, err := h.bookings.Create(c.Context(), principal.UserID, service.BookingCreateInput{
		ServiceIDs: req.ServiceIDs,
		SampleDate: req.SampleDate,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewBookingResponse(booking)})
}

// List handles GET /bookings. Admins see every booking, users their own.
func (h *BookingsHandler) List(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	bookings, err := h.bookings.List(c.Context(), principal)
	if err != nil {
		return err
	}

	items := make([]dto.BookingResponse, 0, len(bookings))
	for i := range bookings {
		items = append(items, dto.NewBookingResponse(&bookings[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Get handles GET /bookings/:id.
func (h *BookingsHandler) Get(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	booking, err := h.bookings.Get(c.Context(), principal, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewBookingResponse(booking)})
}

// Update handles PUT /bookings/:id.
func (h *BookingsHandler) Update(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.UpdateBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}

	booking, err := h.bookings.Update(c.Context(), principal, c.Params("id"), service.BookingUpdateInput{
		SampleDate: req.SampleDate,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewBookingResponse(booking)})
}

// Cancel handles DELETE /bookings/:id.
func (h *BookingsHandler) Cancel(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	if err := h.bookings.Cancel(c.Context(), principal, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "booking cancelled successfully"})
}
