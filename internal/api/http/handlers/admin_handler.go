package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/impulse-lab/lab-booking-service/internal/service"
)

// AdminHandler exposes the admin dashboard endpoints.
type AdminHandler struct {
	bookings *service.BookingService
}

// NewAdminHandler constructs handler.
func NewAdminHandler(bookingService *service.BookingService) *AdminHandler {
	return &AdminHandler{bookings: bookingService}
}

// Stats handles GET /admin/stats.
func (h *AdminHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.bookings.Stats(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"total_bookings": stats.TotalBookings,
		"revenue":        stats.Revenue,
	})
}
