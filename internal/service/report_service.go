package service

import (
	"context"
	"errors"
	"fmt"
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

// ReportService manages report metadata and presigned file URLs.
type ReportService struct {
	reports    repository.ReportRepository
	bookings   repository.BookingRepository
	store      provider.ObjectStore
	dispatcher events.Dispatcher
}

// ReportDependencies bundles collaborators for the report service.
type ReportDependencies struct {
	ReportRepo  repository.ReportRepository
	BookingRepo repository.BookingRepository
	Store       provider.ObjectStore
	Dispatcher  events.Dispatcher
}

// NewReportService constructs the service.
func NewReportService(deps ReportDependencies) *ReportService {
	return &ReportService{
		reports:    deps.ReportRepo,
		bookings:   deps.BookingRepo,
		store:      deps.Store,
		dispatcher: deps.Dispatcher,
	}
}

// Upload records report metadata against an existing booking.
func (s *ReportService) Upload(ctx context.Context, uploadedByID, bookingID, fileKey, notes string) (*domain.Report, error) {
	if bookingID == "" || fileKey == "" {
		return nil, apperrors.NewValidationError("booking_id and file_key required")
	}

	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewValidationError("invalid booking")
		}
		return nil, err
	}

	report := &domain.Report{
		BookingID:    booking.ID,
		FileKey:      fileKey,
		Notes:        notes,
		UploadedByID: uploadedByID,
	}
	if err := s.reports.Create(ctx, report); err != nil {
		return nil, err
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventReportUploaded,
			SubjectID: report.ID,
			Timestamp: time.Now(),
			Payload: events.ReportUploadedPayload{
				BookingID: report.BookingID,
				FileKey:   report.FileKey,
			},
		})
	}
	return report, nil
}

// List returns reports visible to the caller: everything for admins, only
// reports on the caller's own bookings otherwise. An optional booking filter
// narrows either view.
func (s *ReportService) List(ctx context.Context, principal *auth.Principal, bookingID string) ([]domain.Report, error) {
	if bookingID != "" {
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
		return s.reports.ListByBooking(ctx, bookingID)
	}

	if principal.IsAdmin() {
		return s.reports.ListAll(ctx)
	}
	return s.reports.ListByBookingOwner(ctx, principal.UserID)
}

// PresignUpload returns a time-limited URL to upload a report file, plus the
// storage key the metadata should reference.
func (s *ReportService) PresignUpload(ctx context.Context, fileName, contentType string) (uploadURL, fileKey string, err error) {
	if fileName == "" || contentType == "" {
		return "", "", apperrors.NewValidationError("file_name and content_type required")
	}

	fileKey = fmt.Sprintf("reports/%d-%s", time.Now().UnixMilli(), fileName)
	uploadURL, err = s.store.PresignUpload(ctx, fileKey, contentType)
	if err != nil {
		return "", "", apperrors.NewUpstreamFailure("failed to generate upload url", err)
	}
	return uploadURL, fileKey, nil
}

// PresignDownload returns a time-limited URL for a report file the caller is
// allowed to read.
func (s *ReportService) PresignDownload(ctx context.Context, principal *auth.Principal, reportID string) (string, error) {
	report, err := s.reports.GetByID(ctx, reportID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperrors.NewNotFound("report")
		}
		return "", err
	}

	if !principal.IsAdmin() {
		booking, err := s.bookings.GetByID(ctx, report.BookingID)
		if err != nil {
			return "", err
		}
		if booking.UserID != principal.UserID {
			return "", apperrors.NewForbidden("not your report")
		}
	}

	url, err := s.store.PresignDownload(ctx, report.FileKey)
	if err != nil {
		return "", apperrors.NewUpstreamFailure("failed to generate download url", err)
	}
	return url, nil
}
