package repository

import (
	"context"
	"fmt"

	"barber-booking/internal/data/entity"
	"barber-booking/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ServiceRepository interface {
	FindAll(ctx context.Context) ([]*entity.Service, error)
	FindByName(ctx context.Context, name string) (*entity.Service, error)
	Create(ctx context.Context, service *entity.Service) error
	Update(ctx context.Context, service *entity.Service) error
	Delete(ctx context.Context, id int64) error
}

type serviceRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewServiceRepository(db database.PgxIface, log *zap.Logger) ServiceRepository {
	return &serviceRepository{
		db:  db,
		log: log.With(zap.String("repository", "service")),
	}
}

func (r *serviceRepository) FindAll(ctx context.Context) ([]*entity.Service, error) {
	query := `SELECT id, name, description, price FROM services ORDER BY id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to list services", zap.Error(err))
		return nil, fmt.Errorf("list services: %w", err)
	}
	defer rows.Close()

	var services []*entity.Service
	for rows.Next() {
		var svc entity.Service
		if err := rows.Scan(&svc.ID, &svc.Name, &svc.Description, &svc.Price); err != nil {
			r.log.Error("Failed to scan service row", zap.Error(err))
			return nil, fmt.Errorf("scan service row: %w", err)
		}
		services = append(services, &svc)
	}

	return services, nil
}

func (r *serviceRepository) FindByName(ctx context.Context, name string) (*entity.Service, error) {
	query := `SELECT id, name, description, price FROM services WHERE name = $1`

	var svc entity.Service
	err := r.db.QueryRow(ctx, query, name).Scan(&svc.ID, &svc.Name, &svc.Description, &svc.Price)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find service by name",
			zap.Error(err),
			zap.String("name", name),
		)
		return nil, fmt.Errorf("find service %s: %w", name, err)
	}

	return &svc, nil
}

func (r *serviceRepository) Create(ctx context.Context, service *entity.Service) error {
	query := `
		INSERT INTO services (name, description, price)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query, service.Name, service.Description, service.Price).Scan(&service.ID)
	if err != nil {
		r.log.Error("Failed to create service",
			zap.Error(err),
			zap.String("name", service.Name),
		)
		return fmt.Errorf("create service %s: %w", service.Name, err)
	}

	return nil
}

func (r *serviceRepository) Update(ctx context.Context, service *entity.Service) error {
	query := `UPDATE services SET name = $2, description = $3, price = $4 WHERE id = $1`

	result, err := r.db.Exec(ctx, query, service.ID, service.Name, service.Description, service.Price)
	if err != nil {
		r.log.Error("Failed to update service",
			zap.Error(err),
			zap.Int64("id", service.ID),
		)
		return fmt.Errorf("update service %d: %w", service.ID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("service %d: %w", service.ID, ErrNotFound)
	}

	return nil
}

func (r *serviceRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM services WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete service",
			zap.Error(err),
			zap.Int64("id", id),
		)
		return fmt.Errorf("delete service %d: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("service %d: %w", id, ErrNotFound)
	}

	return nil
}
