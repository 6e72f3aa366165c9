package repository

import (
	"context"
	"fmt"

	"barber-booking/internal/data/entity"
	"barber-booking/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type AvailabilityRepository interface {
	FindByDate(ctx context.Context, date string) (*entity.AvailabilityOverride, error)
	FindAll(ctx context.Context) ([]*entity.AvailabilityOverride, error)
	Create(ctx context.Context, override *entity.AvailabilityOverride) error
	Update(ctx context.Context, override *entity.AvailabilityOverride) error
	Delete(ctx context.Context, id int64) error
}

type availabilityRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewAvailabilityRepository(db database.PgxIface, log *zap.Logger) AvailabilityRepository {
	return &availabilityRepository{
		db:  db,
		log: log.With(zap.String("repository", "availability")),
	}
}

func (r *availabilityRepository) FindByDate(ctx context.Context, date string) (*entity.AvailabilityOverride, error) {
	query := `
		SELECT id, date, start_time, end_time, available, slot_interval, is_special_day, special_day_name, created_at
		FROM availability
		WHERE date = $1
	`

	var o entity.AvailabilityOverride
	err := r.db.QueryRow(ctx, query, date).Scan(
		&o.ID,
		&o.Date,
		&o.StartTime,
		&o.EndTime,
		&o.Available,
		&o.SlotInterval,
		&o.IsSpecialDay,
		&o.SpecialDayName,
		&o.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find availability override",
			zap.Error(err),
			zap.String("date", date),
		)
		return nil, fmt.Errorf("find availability for %s: %w", date, err)
	}

	return &o, nil
}

func (r *availabilityRepository) FindAll(ctx context.Context) ([]*entity.AvailabilityOverride, error) {
	query := `
		SELECT id, date, start_time, end_time, available, slot_interval, is_special_day, special_day_name, created_at
		FROM availability
		ORDER BY date, start_time
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to list availability overrides", zap.Error(err))
		return nil, fmt.Errorf("list availability: %w", err)
	}
	defer rows.Close()

	var overrides []*entity.AvailabilityOverride
	for rows.Next() {
		var o entity.AvailabilityOverride
		err := rows.Scan(
			&o.ID,
			&o.Date,
			&o.StartTime,
			&o.EndTime,
			&o.Available,
			&o.SlotInterval,
			&o.IsSpecialDay,
			&o.SpecialDayName,
			&o.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan availability row", zap.Error(err))
			return nil, fmt.Errorf("scan availability row: %w", err)
		}
		overrides = append(overrides, &o)
	}

	return overrides, nil
}

func (r *availabilityRepository) Create(ctx context.Context, override *entity.AvailabilityOverride) error {
	query := `
		INSERT INTO availability (date, start_time, end_time, available, slot_interval, is_special_day, special_day_name, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		override.Date,
		override.StartTime,
		override.EndTime,
		override.Available,
		override.SlotInterval,
		override.IsSpecialDay,
		override.SpecialDayName,
	).Scan(&override.ID, &override.CreatedAt)

	if err != nil {
		r.log.Error("Failed to create availability override",
			zap.Error(err),
			zap.String("date", override.Date),
		)
		return fmt.Errorf("create availability for %s: %w", override.Date, err)
	}

	return nil
}

func (r *availabilityRepository) Update(ctx context.Context, override *entity.AvailabilityOverride) error {
	query := `
		UPDATE availability
		SET date = $2, start_time = $3, end_time = $4, available = $5,
		    slot_interval = $6, is_special_day = $7, special_day_name = $8
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		override.ID,
		override.Date,
		override.StartTime,
		override.EndTime,
		override.Available,
		override.SlotInterval,
		override.IsSpecialDay,
		override.SpecialDayName,
	)

	if err != nil {
		r.log.Error("Failed to update availability override",
			zap.Error(err),
			zap.Int64("id", override.ID),
		)
		return fmt.Errorf("update availability %d: %w", override.ID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("availability %d: %w", override.ID, ErrNotFound)
	}

	return nil
}

func (r *availabilityRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM availability WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete availability override",
			zap.Error(err),
			zap.Int64("id", id),
		)
		return fmt.Errorf("delete availability %d: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("availability %d: %w", id, ErrNotFound)
	}

	return nil
}
