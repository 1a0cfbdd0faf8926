package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/impulse-lab/lab-booking-service/internal/domain"
)

// ReportRepository defines persistence access for report metadata.
type ReportRepository interface {
	Create(ctx context.Context, report *domain.Report) error
	GetByID(ctx context.Context, id string) (*domain.Report, error)
	ListByBooking(ctx context.Context, bookingID string) ([]domain.Report, error)
	ListAll(ctx context.Context) ([]domain.Report, error)
	ListByBookingOwner(ctx context.Context, userID string) ([]domain.Report, error)
}

type reportRepository struct {
	pool *pgxpool.Pool
}

// NewReportRepository returns a Postgres-backed implementation.
func NewReportRepository(pool *pgxpool.Pool) ReportRepository {
	return &reportRepository{pool: pool}
}

func (r *reportRepository) Create(ctx context.Context, report *domain.Report) error {
	const query = `
        INSERT INTO reports (booking_id, file_key, notes, uploaded_by)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		report.BookingID,
		report.FileKey,
		report.Notes,
		report.UploadedByID,
	).Scan(&report.ID, &report.CreatedAt, &report.UpdatedAt)
}

const reportColumns = `id, booking_id, file_key, notes, uploaded_by, created_at, updated_at`

func (r *reportRepository) GetByID(ctx context.Context, id string) (*domain.Report, error) {
	query := `SELECT ` + reportColumns + ` FROM reports WHERE id=$1`
	return scanReport(r.pool.QueryRow(ctx, query, id))
}

func (r *reportRepository) ListByBooking(ctx context.Context, bookingID string) ([]domain.Report, error) {
	query := `SELECT ` + reportColumns + ` FROM reports WHERE booking_id=$1 ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectReports(rows)
}

func (r *reportRepository) ListAll(ctx context.Context) ([]domain.Report, error) {
	query := `SELECT ` + reportColumns + ` FROM reports ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectReports(rows)
}

// ListByBookingOwner returns reports whose booking belongs to the given user.
func (r *reportRepository) ListByBookingOwner(ctx context.Context, userID string) ([]domain.Report, error) {
	const query = `
        SELECT r.id, r.booking_id, r.file_key, r.notes, r.uploaded_by, r.created_at, r.updated_at
        FROM reports r
        JOIN bookings b ON b.id = r.booking_id
        WHERE b.user_id=$1
        ORDER BY r.created_at DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectReports(rows)
}

func collectReports(rows pgx.Rows) ([]domain.Report, error) {
	reports := make([]domain.Report, 0)
	for rows.Next() {
		report, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, *report)
	}
	return reports, rows.Err()
}

func scanReport(row pgx.Row) (*domain.Report, error) {
	var report domain.Report
	if err := row.Scan(
		&report.ID,
		&report.BookingID,
		&report.FileKey,
		&report.Notes,
		&report.UploadedByID,
		&report.CreatedAt,
		&report.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &report, nil
}
