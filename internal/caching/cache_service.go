package caching

import (
	"context"
	"encoding/json"
	"log"
	"strconv"
	"time"

	"modamart/internal/models"

	"github.com/redis/go-redis/v9"
)

// CacheService caches the two pieces of cross-request read state: the
// immutable status-type catalog and the per-seller dashboard aggregates.
// A miss is (nil, nil); callers fall through to the store.
type CacheService interface {
	GetStatusTypes(ctx context.Context) ([]models.OrderStatusType, error)
	SetStatusTypes(ctx context.Context, types []models.OrderStatusType, ttl time.Duration) error

	GetSellerDashboard(ctx context.Context, sellerID int64) (*models.SellerDashboard, error)
	SetSellerDashboard(ctx context.Context, dashboard *models.SellerDashboard, ttl time.Duration) error
}

type redisCacheService struct {
	client *redis.Client
}

func NewRedisCacheService(addr, password string, db int) CacheService {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if pingErr := client.Ping(context.Background()).Err(); pingErr != nil {
		log.Printf("WARN: Redis ping failed on initialization: %v (address: %s)", pingErr, addr)
	}

	return &redisCacheService{client: client}
}

const statusTypesKey = "modamart:order_status_types"

func sellerDashboardKey(sellerID int64) string {
	return "modamart:dashboard:seller:" + strconv.FormatInt(sellerID, 10)
}

func (r *redisCacheService) GetStatusTypes(ctx context.Context) ([]models.OrderStatusType, error) {
	data, err := r.client.Get(ctx, statusTypesKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // cache miss
		}
		return nil, err
	}

	var types []models.OrderStatusType
	if err := json.Unmarshal(data, &types); err != nil {
		return nil, err
	}
	return types, nil
}

func (r *redisCacheService) SetStatusTypes(ctx context.Context, types []models.OrderStatusType, ttl time.Duration) error {
	data, err := json.Marshal(types)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, statusTypesKey, data, ttl).Err()
}

func (r *redisCacheService) GetSellerDashboard(ctx context.Context, sellerID int64) (*models.SellerDashboard, error) {
	data, err := r.client.Get(ctx, sellerDashboardKey(sellerID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // cache miss
		}
		return nil, err
	}

	var dashboard models.SellerDashboard
	if err := json.Unmarshal(data, &dashboard); err != nil {
		return nil, err
	}
	return &dashboard, nil
}

func (r *redisCacheService) SetSellerDashboard(ctx context.Context, dashboard *models.SellerDashboard, ttl time.Duration) error {
	data, err := json.Marshal(dashboard)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, sellerDashboardKey(dashboard.SellerID), data, ttl).Err()
}

// NopCache is the no-Redis fallback used in tests and local runs.
type NopCache struct{}

func (NopCache) GetStatusTypes(ctx context.Context) ([]models.OrderStatusType, error) {
	return nil, nil
}

func (NopCache) SetStatusTypes(ctx context.Context, types []models.OrderStatusType, ttl time.Duration) error {
	return nil
}

func (NopCache) GetSellerDashboard(ctx context.Context, sellerID int64) (*models.SellerDashboard, error) {
	return nil, nil
}

func (NopCache) SetSellerDashboard(ctx context.Context, dashboard *models.SellerDashboard, ttl time.Duration) error {
	return nil
}

var _ CacheService = NopCache{}
