package repository

import (
	"context"
	"fmt"

	"barber-booking/internal/data/entity"
	"barber-booking/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type RecurringRuleRepository interface {
	FindByDayOfWeek(ctx context.Context, dayOfWeek int) (*entity.RecurringRule, error)
	FindAll(ctx context.Context) ([]*entity.RecurringRule, error)
	Create(ctx context.Context, rule *entity.RecurringRule) error
	Update(ctx context.Context, rule *entity.RecurringRule) error
	Delete(ctx context.Context, id int64) error
}

type recurringRuleRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewRecurringRuleRepository(db database.PgxIface, log *zap.Logger) RecurringRuleRepository {
	return &recurringRuleRepository{
		db:  db,
		log: log.With(zap.String("repository", "recurring_rule")),
	}
}

func (r *recurringRuleRepository) FindByDayOfWeek(ctx context.Context, dayOfWeek int) (*entity.RecurringRule, error) {
	query := `
		SELECT id, day_of_week, start_time, end_time, available, created_at
		FROM recurring_availability
		WHERE day_of_week = $1
	`

	var rule entity.RecurringRule
	err := r.db.QueryRow(ctx, query, dayOfWeek).Scan(
		&rule.ID,
		&rule.DayOfWeek,
		&rule.StartTime,
		&rule.EndTime,
		&rule.Available,
		&rule.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find recurring rule",
			zap.Error(err),
			zap.Int("day_of_week", dayOfWeek),
		)
		return nil, fmt.Errorf("find recurring rule for weekday %d: %w", dayOfWeek, err)
	}

	return &rule, nil
}

func (r *recurringRuleRepository) FindAll(ctx context.Context) ([]*entity.RecurringRule, error) {
	query := `
		SELECT id, day_of_week, start_time, end_time, available, created_at
		FROM recurring_availability
		ORDER BY day_of_week
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to list recurring rules", zap.Error(err))
		return nil, fmt.Errorf("list recurring rules: %w", err)
	}
	defer rows.Close()

	var rules []*entity.RecurringRule
	for rows.Next() {
		var rule entity.RecurringRule
		err := rows.Scan(
			&rule.ID,
			&rule.DayOfWeek,
			&rule.StartTime,
			&rule.EndTime,
			&rule.Available,
			&rule.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan recurring rule row", zap.Error(err))
			return nil, fmt.Errorf("scan recurring rule row: %w", err)
		}
		rules = append(rules, &rule)
	}

	return rules, nil
}

func (r *recurringRuleRepository) Create(ctx context.Context, rule *entity.RecurringRule) error {
	query := `
		INSERT INTO recurring_availability (day_of_week, start_time, end_time, available, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		rule.DayOfWeek,
		rule.StartTime,
		rule.EndTime,
		rule.Available,
	).Scan(&rule.ID, &rule.CreatedAt)

	if err != nil {
		r.log.Error("Failed to create recurring rule",
			zap.Error(err),
			zap.Int("day_of_week", rule.DayOfWeek),
		)
		return fmt.Errorf("create recurring rule for weekday %d: %w", rule.DayOfWeek, err)
	}

	return nil
}

func (r *recurringRuleRepository) Update(ctx context.Context, rule *entity.RecurringRule) error {
	query := `
		UPDATE recurring_availability
		SET day_of_week = $2, start_time = $3, end_time = $4, available = $5
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		rule.ID,
		rule.DayOfWeek,
		rule.StartTime,
		rule.EndTime,
		rule.Available,
	)

	if err != nil {
		r.log.Error("Failed to update recurring rule",
			zap.Error(err),
			zap.Int64("id", rule.ID),
		)
		return fmt.Errorf("update recurring rule %d: %w", rule.ID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("recurring rule %d: %w", rule.ID, ErrNotFound)
	}

	return nil
}

func (r *recurringRuleRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM recurring_availability WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete recurring rule",
			zap.Error(err),
			zap.Int64("id", id),
		)
		return fmt.Errorf("delete recurring rule %d: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("recurring rule %d: %w", id, ErrNotFound)
	}

	return nil
}
