package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"modamart/internal/caching"
	"modamart/internal/models"
	"modamart/internal/repositories"
)

const statusCatalogTTL = 12 * time.Hour

// StatusCatalogService serves the order-status catalog, cache-first.
// The catalog changes only by migration, so a stale read is harmless.
type StatusCatalogService interface {
	ListStatusTypes(ctx context.Context) ([]models.OrderStatusType, error)
	Catalog(ctx context.Context) (models.StatusCatalog, error)
}

type statusCatalogService struct {
	statusTypeRepo repositories.StatusTypeRepository
	cache          caching.CacheService
}

func NewStatusCatalogService(statusTypeRepo repositories.StatusTypeRepository, cache caching.CacheService) StatusCatalogService {
	return &statusCatalogService{
		statusTypeRepo: statusTypeRepo,
		cache:          cache,
	}
}

func (s *statusCatalogService) ListStatusTypes(ctx context.Context) ([]models.OrderStatusType, error) {
	cached, err := s.cache.GetStatusTypes(ctx)
	if err != nil {
		log.Printf("WARN: status type cache read failed: %v", err)
	}
	if cached != nil {
		return cached, nil
	}

	types, err := s.statusTypeRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list order status types: %w", err)
	}

	if err := s.cache.SetStatusTypes(ctx, types, statusCatalogTTL); err != nil {
		log.Printf("WARN: status type cache write failed: %v", err)
	}
	return types, nil
}

func (s *statusCatalogService) Catalog(ctx context.Context) (models.StatusCatalog, error) {
	types, err := s.ListStatusTypes(ctx)
	if err != nil {
		return nil, err
	}
	return models.NewStatusCatalog(types), nil
}
