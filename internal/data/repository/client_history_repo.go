package repository

import (
	"context"
	"fmt"

	"barber-booking/internal/data/entity"
	"barber-booking/pkg/database"

	"go.uber.org/zap"
)

type ClientHistoryRepository interface {
	Create(ctx context.Context, record *entity.ClientHistory) error
	FindByEmail(ctx context.Context, email string) ([]*entity.ClientHistory, error)
}

type clientHistoryRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewClientHistoryRepository(db database.PgxIface, log *zap.Logger) ClientHistoryRepository {
	return &clientHistoryRepository{
		db:  db,
		log: log.With(zap.String("repository", "client_history")),
	}
}

func (r *clientHistoryRepository) Create(ctx context.Context, record *entity.ClientHistory) error {
	query := `
		INSERT INTO client_history (booking_id, name, email, phone, service, date, time, notes, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		record.BookingID,
		record.Name,
		record.Email,
		record.Phone,
		record.Service,
		record.Date,
		record.Time,
		record.Notes,
		record.Status,
	).Scan(&record.ID, &record.CreatedAt)

	if err != nil {
		r.log.Error("Failed to archive booking",
			zap.Error(err),
			zap.String("booking_id", record.BookingID.String()),
		)
		return fmt.Errorf("archive booking %s: %w", record.BookingID.String(), err)
	}

	return nil
}

func (r *clientHistoryRepository) FindByEmail(ctx context.Context, email string) ([]*entity.ClientHistory, error) {
	query := `
		SELECT id, booking_id, name, email, phone, service, date, time, notes, status, created_at
		FROM client_history
		WHERE email = $1
		ORDER BY date DESC, time DESC
	`

	rows, err := r.db.Query(ctx, query, email)
	if err != nil {
		r.log.Error("Failed to find client history",
			zap.Error(err),
			zap.String("email", email),
		)
		return nil, fmt.Errorf("find client history for %s: %w", email, err)
	}
	defer rows.Close()

	var records []*entity.ClientHistory
	for rows.Next() {
		var rec entity.ClientHistory
		err := rows.Scan(
			&rec.ID,
			&rec.BookingID,
			&rec.Name,
			&rec.Email,
			&rec.Phone,
			&rec.Service,
			&rec.Date,
			&rec.Time,
			&rec.Notes,
			&rec.Status,
			&rec.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan client history row", zap.Error(err))
			return nil, fmt.Errorf("scan client history row: %w", err)
		}
		records = append(records, &rec)
	}

	return records, nil
}
