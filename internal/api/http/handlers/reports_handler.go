package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/impulse-lab/lab-booking-service/internal/api/dto"
	"github.com/impulse-lab/lab-booking-service/internal/auth"
	"github.com/impulse-lab/lab-booking-service/internal/service"
	apperrors "github.com/impulse-lab/lab-booking-service/pkg/util"
)

// ReportsHandler manages report metadata and presigned URL endpoints.
type ReportsHandler struct {
	reports *service.ReportService
}

// NewReportsHandler constructs handler.
func NewReportsHandler(reportService *service.ReportService) *ReportsHandler {
	return &ReportsHandler{reports: reportService}
}

// Upload handles POST /reports. Admin only.
func (h *ReportsHandler) Upload(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.UploadReportRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}

	report, err := h.reports.Upload(c.Context(), principal.UserID, req.BookingID, req.FileKey, req.Notes)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewReportResponse(report)})
}

// List handles GET /reports with an optional booking_id filter.
func (h *ReportsHandler) List(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	reports, err := h.reports.List(c.Context(), principal, c.Query("booking_id"))
	if err != nil {
		return err
	}

	items := make([]dto.ReportResponse, 0, len(reports))
	for i := range reports {
		items = append(items, dto.NewReportResponse(&reports[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// PresignUpload handles POST /reports/presign/upload. Admin only.
func (h *ReportsHandler) PresignUpload(c *fiber.Ctx) error {
	var req dto.PresignUploadRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}

	uploadURL, fileKey, err := h.reports.PresignUpload(c.Context(), req.FileName, req.ContentType)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"upload_url": uploadURL,
		"file_key":   fileKey,
	})
}

// PresignDownload handles GET /reports/:id/download-url.
func (h *ReportsHandler) PresignDownload(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	url, err := h.reports.PresignDownload(c.Context(), principal, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"url": url})
}
