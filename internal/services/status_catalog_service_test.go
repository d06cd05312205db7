package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"modamart/internal/caching"
	"modamart/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockStatusTypeRepository struct {
	mock.Mock
}

func (m *MockStatusTypeRepository) List(ctx context.Context) ([]models.OrderStatusType, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.OrderStatusType), args.Error(1)
}

// recordingCache remembers what was written and serves it back.
type recordingCache struct {
	caching.NopCache
	statusTypes []models.OrderStatusType
	writes      int
}

func (r *recordingCache) GetStatusTypes(ctx context.Context) ([]models.OrderStatusType, error) {
	return r.statusTypes, nil
}

func (r *recordingCache) SetStatusTypes(ctx context.Context, types []models.OrderStatusType, ttl time.Duration) error {
	r.statusTypes = types
	r.writes++
	return nil
}

func TestListStatusTypes_CacheMissLoadsAndCaches(t *testing.T) {
	repo := new(MockStatusTypeRepository)
	cache := &recordingCache{}
	service := NewStatusCatalogService(repo, cache)

	types := []models.OrderStatusType{
		{ID: models.StatusPaymentComplete, Name: "PAYMENT_COMPLETE"},
		{ID: models.StatusPreparing, Name: "PREPARING"},
	}
	repo.On("List", mock.Anything).Return(types, nil).Once()

	got, err := service.ListStatusTypes(context.Background())
	require.NoError(t, err)
	assert.Equal(t, types, got)
	assert.Equal(t, 1, cache.writes)

	// Second call is served from the cache.
	got, err = service.ListStatusTypes(context.Background())
	require.NoError(t, err)
	assert.Equal(t, types, got)
	repo.AssertNumberOfCalls(t, "List", 1)
}

func TestListStatusTypes_RepoErrorPropagates(t *testing.T) {
	repo := new(MockStatusTypeRepository)
	service := NewStatusCatalogService(repo, caching.NopCache{})

	repo.On("List", mock.Anything).Return(nil, errors.New("connection refused"))

	_, err := service.ListStatusTypes(context.Background())
	assert.Error(t, err)
}

func TestCatalog_IndexesById(t *testing.T) {
	repo := new(MockStatusTypeRepository)
	service := NewStatusCatalogService(repo, caching.NopCache{})

	repo.On("List", mock.Anything).Return([]models.OrderStatusType{
		{ID: models.StatusShipping, Name: "SHIPPING"},
	}, nil)

	catalog, err := service.Catalog(context.Background())
	require.NoError(t, err)
	assert.True(t, catalog.Contains(models.StatusShipping))
	assert.False(t, catalog.Contains(99))
}
