package repository

import (
	"context"
	"errors"
	"fmt"

	"garage-backend/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// bookingRepository implements the BookingRepository interface for walk-in
// rental-car bookings.
type bookingRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewBookingRepository creates a new PostgreSQL-backed booking repository.
func NewBookingRepository(pool *pgxpool.Pool, logger zerolog.Logger) BookingRepository {
	return &bookingRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "booking").Logger(),
	}
}

const bookingColumns = `booking_id, order_id, registration_number, start_time,
	end_time, booked_by, status, submission_time, created_at, updated_at`

// Create inserts a standalone booking and returns the generated id.
func (r *bookingRepository) Create(ctx context.Context, booking *model.Booking) (model.BookingID, error) {
	query := `
		INSERT INTO rent_car_bookings (order_id, registration_number, start_time,
			end_time, booked_by, status, submission_time, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING booking_id
	`

	var id int64
	err := r.pool.QueryRow(ctx, query,
		orderArg(booking.OrderID), booking.RegistrationNumber,
		booking.Start, booking.End, employeeArg(booking.BookedBy),
		string(booking.Status), booking.SubmissionTime,
		booking.CreatedAt, booking.UpdatedAt,
	).Scan(&id)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to create booking")
		return 0, classify(err, "failed to create booking")
	}

	r.logger.Debug().Int64("booking_id", id).Msg("booking created")
	return model.BookingID(id), nil
}

// GetByID retrieves a booking, or nil when it does not exist.
func (r *bookingRepository) GetByID(ctx context.Context, id model.BookingID) (*model.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM rent_car_bookings WHERE booking_id = $1`

	booking, err := scanBooking(r.pool.QueryRow(ctx, query, id.Int64()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Int64("booking_id", id.Int64()).Msg("booking not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("booking_id", id.Int64()).Msg("failed to query booking")
		return nil, fmt.Errorf("failed to query booking: %w", err)
	}

	return booking, nil
}

// List retrieves bookings ordered by id with limit/offset paging.
func (r *bookingRepository) List(ctx context.Context, limit, offset int) ([]model.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM rent_car_bookings ORDER BY booking_id LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query bookings")
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}
	defer rows.Close()

	var bookings []model.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan booking row")
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, *booking)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating booking rows")
		return nil, fmt.Errorf("error iterating bookings: %w", err)
	}

	return bookings, nil
}

// UpdateStatus sets the booking status. Returns false when the booking does
// not exist.
func (r *bookingRepository) UpdateStatus(ctx context.Context, id model.BookingID, status model.BookingStatus) (bool, error) {
	query := `UPDATE rent_car_bookings SET status = $2, updated_at = NOW() WHERE booking_id = $1`

	tag, err := r.pool.Exec(ctx, query, id.Int64(), string(status))
	if err != nil {
		r.logger.Error().Err(err).Int64("booking_id", id.Int64()).Msg("failed to update booking status")
		return false, classify(err, "failed to update booking status")
	}

	return tag.RowsAffected() > 0, nil
}

// Delete removes a booking. Returns false when it did not exist.
func (r *bookingRepository) Delete(ctx context.Context, id model.BookingID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM rent_car_bookings WHERE booking_id = $1`, id.Int64())
	if err != nil {
		r.logger.Error().Err(err).Int64("booking_id", id.Int64()).Msg("failed to delete booking")
		return false, classify(err, "failed to delete booking")
	}

	return tag.RowsAffected() > 0, nil
}

// scanBooking reads one booking from a row in bookingColumns order.
func scanBooking(row pgx.Row) (*model.Booking, error) {
	var (
		booking  model.Booking
		id       int64
		orderID  *int64
		bookedBy *int64
		status   string
	)
	err := row.Scan(
		&id, &orderID, &booking.RegistrationNumber, &booking.Start,
		&booking.End, &bookedBy, &status, &booking.SubmissionTime,
		&booking.CreatedAt, &booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.ID = model.BookingID(id)
	booking.Status = model.BookingStatus(status)
	if orderID != nil {
		order := model.OrderID(*orderID)
		booking.OrderID = &order
	}
	if bookedBy != nil {
		employee := model.EmployeeID(*bookedBy)
		booking.BookedBy = &employee
	}

	return &booking, nil
}
