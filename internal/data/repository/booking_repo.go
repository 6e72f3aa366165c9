package repository

import (
	"context"
	"errors"
	"fmt"

	"barber-booking/internal/data/entity"
	"barber-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// ErrDuplicateSlot is returned by Create when another active booking already
// holds the same (booking_date, booking_time). It maps the partial unique
// index on the bookings table; the insert itself is the conflict check.
var ErrDuplicateSlot = errors.New("time slot already booked")

type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindByDate(ctx context.Context, date string) ([]*entity.Booking, error)
	FindAll(ctx context.Context, limit, offset int) ([]*entity.Booking, error)
	CountAll(ctx context.Context) (int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.BookingStatus) error
	Delete(ctx context.Context, id uuid.UUID) error

	// Availability queries
	ListBookedTimes(ctx context.Context, date string) ([]string, error)
	HasConflict(ctx context.Context, date, timeLabel string) (bool, error)
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	query := `
		INSERT INTO bookings (id, name, email, phone, service, booking_date, booking_time, notes, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.db.Exec(ctx, query,
		booking.ID,
		booking.Name,
		booking.Email,
		booking.Phone,
		booking.Service,
		booking.BookingDate,
		booking.BookingTime,
		booking.Notes,
		booking.Status,
		booking.CreatedAt,
		booking.UpdatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			r.log.Warn("Booking insert lost slot race",
				zap.String("booking_date", booking.BookingDate),
				zap.String("booking_time", booking.BookingTime),
			)
			return ErrDuplicateSlot
		}
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("booking_date", booking.BookingDate),
			zap.String("booking_time", booking.BookingTime),
		)
		return fmt.Errorf("create booking %s %s: %w", booking.BookingDate, booking.BookingTime, err)
	}

	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `
		SELECT id, name, email, phone, service, booking_date, booking_time, notes, status, created_at, updated_at
		FROM bookings
		WHERE id = $1
	`

	var booking entity.Booking
	err := r.db.QueryRow(ctx, query, id).Scan(
		&booking.ID,
		&booking.Name,
		&booking.Email,
		&booking.Phone,
		&booking.Service,
		&booking.BookingDate,
		&booking.BookingTime,
		&booking.Notes,
		&booking.Status,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id.String(), err)
	}

	return &booking, nil
}

func (r *bookingRepository) FindByDate(ctx context.Context, date string) ([]*entity.Booking, error) {
	query := `
		SELECT id, name, email, phone, service, booking_date, booking_time, notes, status, created_at, updated_at
		FROM bookings
		WHERE booking_date = $1
		ORDER BY booking_time
	`

	rows, err := r.db.Query(ctx, query, date)
	if err != nil {
		r.log.Error("Failed to find bookings by date",
			zap.Error(err),
			zap.String("booking_date", date),
		)
		return nil, fmt.Errorf("find bookings by date %s: %w", date, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

func (r *bookingRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.Booking, error) {
	query := `
		SELECT id, name, email, phone, service, booking_date, booking_time, notes, status, created_at, updated_at
		FROM bookings
		ORDER BY booking_date, booking_time
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		r.log.Error("Failed to list bookings",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

func (r *bookingRepository) CountAll(ctx context.Context) (int64, error) {
	query := `SELECT COUNT(*) FROM bookings`

	var count int64
	err := r.db.QueryRow(ctx, query).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count bookings", zap.Error(err))
		return 0, fmt.Errorf("count bookings: %w", err)
	}

	return count, nil
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.BookingStatus) error {
	query := `UPDATE bookings SET status = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, status)
	if err != nil {
		r.log.Error("Failed to update booking status",
			zap.Error(err),
			zap.String("booking_id", id.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update booking %s status to %s: %w", id.String(), string(status), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s: %w", id.String(), ErrNotFound)
	}

	return nil
}

func (r *bookingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM bookings WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete booking",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return fmt.Errorf("delete booking %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s: %w", id.String(), ErrNotFound)
	}

	return nil
}

func (r *bookingRepository) ListBookedTimes(ctx context.Context, date string) ([]string, error) {
	query := `
		SELECT booking_time
		FROM bookings
		WHERE booking_date = $1 AND status IN ('pending', 'confirmed')
		ORDER BY booking_time
	`

	rows, err := r.db.Query(ctx, query, date)
	if err != nil {
		r.log.Error("Failed to list booked times",
			zap.Error(err),
			zap.String("booking_date", date),
		)
		return nil, fmt.Errorf("list booked times for %s: %w", date, err)
	}
	defer rows.Close()

	var times []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			r.log.Error("Failed to scan booked time", zap.Error(err))
			return nil, fmt.Errorf("scan booked time: %w", err)
		}
		times = append(times, t)
	}

	return times, nil
}

func (r *bookingRepository) HasConflict(ctx context.Context, date, timeLabel string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM bookings
			WHERE booking_date = $1 AND booking_time = $2 AND status IN ('pending', 'confirmed')
		)
	`

	var exists bool
	err := r.db.QueryRow(ctx, query, date, timeLabel).Scan(&exists)
	if err != nil {
		r.log.Error("Failed to check booking conflict",
			zap.Error(err),
			zap.String("booking_date", date),
			zap.String("booking_time", timeLabel),
		)
		return false, fmt.Errorf("check conflict %s %s: %w", date, timeLabel, err)
	}

	return exists, nil
}

func scanBookings(rows pgx.Rows) ([]*entity.Booking, error) {
	var bookings []*entity.Booking
	for rows.Next() {
		var booking entity.Booking
		err := rows.Scan(
			&booking.ID,
			&booking.Name,
			&booking.Email,
			&booking.Phone,
			&booking.Service,
			&booking.BookingDate,
			&booking.BookingTime,
			&booking.Notes,
			&booking.Status,
			&booking.CreatedAt,
			&booking.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, &booking)
	}
	return bookings, nil
}
