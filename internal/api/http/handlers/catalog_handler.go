package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/impulse-lab/lab-booking-service/internal/api/dto"
	"github.com/impulse-lab/lab-booking-service/internal/service"
	apperrors "github.com/impulse-lab/lab-booking-service/pkg/util"
)

// CatalogHandler manages the diagnostic test catalog endpoints.
type CatalogHandler struct {
	catalog *service.CatalogService
}

// NewCatalogHandler constructs handler.
func NewCatalogHandler(catalogService *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalogService}
}

// List handles GET /services. Public route.
func (h *CatalogHandler) List(c *fiber.Ctx) error {
	services, err := h.catalog.List(c.Context())
	if err != nil {
		return err
	}

	items := make([]dto.ServiceResponse, 0, len(services))
	for i := range services {
		items = append(items, dto.NewServiceResponse(&services[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Create handles POST /services. Admin only.
func (h *CatalogHandler) Create(c *fiber.Ctx) error {
	var req dto.ServiceRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}

	svc, err := h.catalog.Create(c.Context(), service.ServiceInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewServiceResponse(svc)})
}

// Update handles PUT /services/:id. Admin only.
func (h *CatalogHandler) Update(c *fiber.Ctx) error {
	var req dto.ServiceRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}

	svc, err := h.catalog.Update(c.Context(), c.Params("id"), service.ServiceInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewServiceResponse(svc)})
}

// Delete handles DELETE /services/:id. Admin only.
func (h *CatalogHandler) Delete(c *fiber.Ctx) error {
	if err := h.catalog.Delete(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "service deleted successfully"})
}
