package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/impulse-lab/lab-booking-service/internal/domain"
)

// BookingStats aggregates totals for the admin dashboard.
type BookingStats struct {
	TotalBookings int64
	Revenue       int64
}

// BookingRepository defines persistence access for bookings and their lines.
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	Update(ctx context.Context, booking *domain.Booking) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	GetByProviderPaymentID(ctx context.Context, providerPaymentID string) (*domain.Booking, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Booking, error)
	ListAll(ctx context.Context) ([]domain.Booking, error)
	Stats(ctx context.Context) (*BookingStats, error)
}

type bookingRepository struct {
	pool *pgxpool.Pool
}

// NewBookingRepository returns a Postgres-backed implementation.
func NewBookingRepository(pool *pgxpool.Pool) BookingRepository {
	return &bookingRepository{pool: pool}
}

func (r *bookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const insertBooking = `
        INSERT INTO bookings (user_id, total, status, sample_date)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at, updated_at`

	if err := tx.QueryRow(ctx, insertBooking,
		booking.UserID,
		booking.Total,
		booking.Status,
		booking.SampleDate,
	).Scan(&booking.ID, &booking.CreatedAt, &booking.UpdatedAt); err != nil {
		return err
	}

	const insertLine = `
        INSERT INTO booking_lines (booking_id, service_id, service_name, price)
        VALUES ($1, $2, $3, $4)`

	for _, line := range booking.Lines {
		if _, err := tx.Exec(ctx, insertLine, booking.ID, line.ServiceID, line.ServiceName, line.Price); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *bookingRepository) Update(ctx context.Context, booking *domain.Booking) error {
	const query = `
        UPDATE bookings SET status=$1, sample_date=$2, payment_paid=$3,
            payment_provider=$4, payment_provider_payment_id=$5, updated_at=NOW()
        WHERE id=$6`

	cmd, err := r.pool.Exec(ctx, query,
		booking.Status,
		booking.SampleDate,
		booking.Payment.Paid,
		booking.Payment.Provider,
		booking.Payment.ProviderPaymentID,
		booking.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *bookingRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM bookings WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

const bookingColumns = `
    id, user_id, total, status, sample_date, payment_paid,
    payment_provider, payment_provider_payment_id, created_at, updated_at`

func (r *bookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id=$1`
	booking, err := scanBooking(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}
	if err := r.loadLines(ctx, booking); err != nil {
		return nil, err
	}
	return booking, nil
}

func (r *bookingRepository) GetByProviderPaymentID(ctx context.Context, providerPaymentID string) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE payment_provider_payment_id=$1`
	booking, err := scanBooking(r.pool.QueryRow(ctx, query, providerPaymentID))
	if err != nil {
		return nil, err
	}
	if err := r.loadLines(ctx, booking); err != nil {
		return nil, err
	}
	return booking, nil
}

func (r *bookingRepository) ListByUser(ctx context.Context, userID string) ([]domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE user_id=$1 ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.collectBookings(ctx, rows)
}

func (r *bookingRepository) ListAll(ctx context.Context) ([]domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.collectBookings(ctx, rows)
}

// Stats counts bookings and sums paid revenue.
func (r *bookingRepository) Stats(ctx context.Context) (*BookingStats, error) {
	const query = `
        SELECT COUNT(*), COALESCE(SUM(total) FILTER (WHERE payment_paid), 0)
        FROM bookings`

	var stats BookingStats
	if err := r.pool.QueryRow(ctx, query).Scan(&stats.TotalBookings, &stats.Revenue); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (r *bookingRepository) loadLines(ctx context.Context, booking *domain.Booking) error {
	const query = `
        SELECT service_id, service_name, price
        FROM booking_lines WHERE booking_id=$1`

	rows, err := r.pool.Query(ctx, query, booking.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var line domain.BookingLine
		if err := rows.Scan(&line.ServiceID, &line.ServiceName, &line.Price); err != nil {
			return err
		}
		booking.Lines = append(booking.Lines, line)
	}
	return rows.Err()
}

func (r *bookingRepository) collectBookings(ctx context.Context, rows pgx.Rows) ([]domain.Booking, error) {
	bookings := make([]domain.Booking, 0)
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *booking)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range bookings {
		if err := r.loadLines(ctx, &bookings[i]); err != nil {
			return nil, err
		}
	}
	return bookings, nil
}

func scanBooking(row pgx.Row) (*domain.Booking, error) {
	var booking domain.Booking
	if err := row.Scan(
		&booking.ID,
		&booking.UserID,
		&booking.Total,
		&booking.Status,
		&booking.SampleDate,
		&booking.Payment.Paid,
		&booking.Payment.Provider,
		&booking.Payment.ProviderPaymentID,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &booking, nil
}
