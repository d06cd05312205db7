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

const dashboardTTL = 15 * time.Minute

// DashboardService serves per-seller operational counts, cache-first. The
// scheduler calls RefreshAll so sellers usually hit warm entries.
type DashboardService interface {
	SellerDashboard(ctx context.Context, sellerID int64) (*models.SellerDashboard, error)
	RefreshAll(ctx context.Context) error
}

type dashboardService struct {
	dashboardRepo repositories.DashboardRepository
	cache         caching.CacheService
}

func NewDashboardService(dashboardRepo repositories.DashboardRepository, cache caching.CacheService) DashboardService {
	return &dashboardService{
		dashboardRepo: dashboardRepo,
		cache:         cache,
	}
}

func (s *dashboardService) SellerDashboard(ctx context.Context, sellerID int64) (*models.SellerDashboard, error) {
	cached, err := s.cache.GetSellerDashboard(ctx, sellerID)
	if err != nil {
		log.Printf("WARN: dashboard cache read failed for seller %d: %v", sellerID, err)
	}
	if cached != nil {
		return cached, nil
	}

	dashboard, err := s.dashboardRepo.SellerCounts(ctx, sellerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load dashboard for seller %d: %w", sellerID, err)
	}

	if err := s.cache.SetSellerDashboard(ctx, dashboard, dashboardTTL); err != nil {
		log.Printf("WARN: dashboard cache write failed for seller %d: %v", sellerID, err)
	}
	return dashboard, nil
}

// RefreshAll recomputes and re-caches the dashboard for every seller. One
// seller failing does not stop the rest.
func (s *dashboardService) RefreshAll(ctx context.Context) error {
	sellerIDs, err := s.dashboardRepo.ListSellerIDs(ctx)
	if err != nil {
		return fmt.Errorf("failed to list sellers: %w", err)
	}

	var failed int
	for _, sellerID := range sellerIDs {
		dashboard, err := s.dashboardRepo.SellerCounts(ctx, sellerID)
		if err != nil {
			log.Printf("WARN: dashboard refresh failed for seller %d: %v", sellerID, err)
			failed++
			continue
		}
		if err := s.cache.SetSellerDashboard(ctx, dashboard, dashboardTTL); err != nil {
			log.Printf("WARN: dashboard cache write failed for seller %d: %v", sellerID, err)
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("dashboard refresh: %d of %d sellers failed", failed, len(sellerIDs))
	}
	return nil
}
