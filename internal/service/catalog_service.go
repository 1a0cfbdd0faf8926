package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/impulse-lab/lab-booking-service/internal/domain"
	"github.com/impulse-lab/lab-booking-service/internal/persistence"
	"github.com/impulse-lab/lab-booking-service/internal/repository"
	apperrors "github.com/impulse-lab/lab-booking-service/pkg/util"
)

const (
	catalogCacheKey = "catalog:services"
	catalogCacheTTL = 5 * time.Minute
)

// CatalogService manages the diagnostic test catalog. The public listing is
// cached in Redis and invalidated on every admin write.
type CatalogService struct {
	services repository.ServiceRepository
	cache    *persistence.Redis
	logger   *zap.Logger
}

// NewCatalogService constructs the service.
func NewCatalogService(services repository.ServiceRepository, cache *persistence.Redis, logger *zap.Logger) *CatalogService {
	return &CatalogService{services: services, cache: cache, logger: logger}
}

// ServiceInput describes catalog create/update payloads.
type ServiceInput struct {
	Name        string
	Description string
	Price       int64
}

// List returns the full catalog, serving from cache when possible.
func (s *CatalogService) List(ctx context.Context) ([]domain.Service, error) {
	if cached, ok := s.cachedList(ctx); ok {
		return cached, nil
	}

	services, err := s.services.List(ctx)
	if err != nil {
		return nil, err
	}

	s.storeList(ctx, services)
	return services, nil
}

// Create adds a catalog entry.
func (s *CatalogService) Create(ctx context.Context, input ServiceInput) (*domain.Service, error) {
	if input.Name == "" || input.Price <= 0 {
		return nil, apperrors.NewValidationError("name and positive price required")
	}

	svc := &domain.Service{
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
	}
	if err := s.services.Create(ctx, svc); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return svc, nil
}

// Update modifies a catalog entry.
func (s *CatalogService) Update(ctx context.Context, id string, input ServiceInput) (*domain.Service, error) {
	svc, err := s.services.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("service")
		}
		return nil, err
	}

	if input.Name != "" {
		svc.Name = input.Name
	}
	if input.Description != "" {
		svc.Description = input.Description
	}
	if input.Price > 0 {
		svc.Price = input.Price
	}
	if err := s.services.Update(ctx, svc); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return svc, nil
}

// Delete removes a catalog entry.
func (s *CatalogService) Delete(ctx context.Context, id string) error {
	if err := s.services.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("service")
		}
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *CatalogService) cachedList(ctx context.Context) ([]domain.Service, bool) {
	if s.cache == nil || s.cache.Client == nil {
		return nil, false
	}
	raw, err := s.cache.Client.Get(ctx, catalogCacheKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Warn("catalog cache read failed", zap.Error(err))
		}
		return nil, false
	}
	var services []domain.Service
	if err := json.Unmarshal(raw, &services); err != nil {
		return nil, false
	}
	return services, true
}

func (s *CatalogService) storeList(ctx context.Context, services []domain.Service) {
	if s.cache == nil || s.cache.Client == nil {
		return
	}
	raw, err := json.Marshal(services)
	if err != nil {
		return
	}
	if err := s.cache.Client.Set(ctx, catalogCacheKey, raw, catalogCacheTTL).Err(); err != nil {
		s.logger.Warn("catalog cache write failed", zap.Error(err))
	}
}

func (s *CatalogService) invalidate(ctx context.Context) {
	if s.cache == nil || s.cache.Client == nil {
		return
	}
	if err := s.cache.Client.Del(ctx, catalogCacheKey).Err(); err != nil {
		s.logger.Warn("catalog cache invalidation failed", zap.Error(err))
	}
}
