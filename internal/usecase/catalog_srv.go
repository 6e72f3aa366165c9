package usecase

import (
	"context"
	"errors"
	"fmt"

	"barber-booking/internal/data/entity"
	"barber-booking/internal/data/repository"
	"barber-booking/internal/dto/request"
	"barber-booking/internal/dto/response"
	"barber-booking/pkg/utils"

	"go.uber.org/zap"
)

type CatalogService interface {
	ListServices(ctx context.Context) ([]response.ServiceResponse, error)
	CreateService(ctx context.Context, req *request.ServiceRequest) (*response.ServiceResponse, error)
	UpdateService(ctx context.Context, id int64, req *request.ServiceRequest) (*response.ServiceResponse, error)
	DeleteService(ctx context.Context, id int64) error
}

type catalogService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewCatalogService(repo *repository.Repository, log *zap.Logger) CatalogService {
	return &catalogService{
		repo: repo,
		log:  log.With(zap.String("service", "catalog")),
	}
}

func (s *catalogService) ListServices(ctx context.Context) ([]response.ServiceResponse, error) {
	services, err := s.repo.Service.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}

	result := make([]response.ServiceResponse, len(services))
	for i, svc := range services {
		result[i] = response.ServiceToResponse(svc)
	}
	return result, nil
}

func (s *catalogService) CreateService(ctx context.Context, req *request.ServiceRequest) (*response.ServiceResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	existing, err := s.repo.Service.FindByName(ctx, req.Name)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: service %q already exists", ErrValidation, req.Name)
	}

	service := &entity.Service{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
	}
	if err := s.repo.Service.Create(ctx, service); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}

	s.log.Info("Service created", zap.String("name", service.Name))

	resp := response.ServiceToResponse(service)
	return &resp, nil
}

func (s *catalogService) UpdateService(ctx context.Context, id int64, req *request.ServiceRequest) (*response.ServiceResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	service := &entity.Service{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
	}
	if err := s.repo.Service.Update(ctx, service); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: service %d", ErrNotFound, id)
		}
		return nil, fmt.Errorf("update service %d: %w", id, err)
	}

	s.log.Info("Service updated", zap.Int64("id", id), zap.String("name", service.Name))

	resp := response.ServiceToResponse(service)
	return &resp, nil
}

func (s *catalogService) DeleteService(ctx context.Context, id int64) error {
	if err := s.repo.Service.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: service %d", ErrNotFound, id)
		}
		return fmt.Errorf("delete service %d: %w", id, err)
	}

	s.log.Info("Service deleted", zap.Int64("id", id))
	return nil
}
