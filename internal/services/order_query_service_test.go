package services

import (
	"context"
	"testing"
	"time"

	"modamart/internal/common"
	"modamart/internal/models"

	pgx "github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Search(ctx context.Context, filter *models.OrderSearchFilter) ([]models.OrderRow, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]models.OrderRow), args.Get(1).(int64), args.Error(2)
}

func (m *MockOrderRepository) GetDetailByNumber(ctx context.Context, detailOrderNumber string) (*models.OrderDetailRow, error) {
	args := m.Called(ctx, detailOrderNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.OrderDetailRow), args.Error(1)
}

func (m *MockOrderRepository) LockDetailStatus(ctx context.Context, tx pgx.Tx, detailID int64) (int64, error) {
	args := m.Called(ctx, tx, detailID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) UpdateDetailStatus(ctx context.Context, tx pgx.Tx, detailID, statusID int64) error {
	args := m.Called(ctx, tx, detailID, statusID)
	return args.Error(0)
}

type MockHistoryRepository struct {
	mock.Mock
}

func (m *MockHistoryRepository) InsertSnapshot(ctx context.Context, tx pgx.Tx, detailID, accountID int64) error {
	args := m.Called(ctx, tx, detailID, accountID)
	return args.Error(0)
}

func (m *MockHistoryRepository) ListByDetailNumber(ctx context.Context, detailOrderNumber string) ([]models.HistoryRow, error) {
	args := m.Called(ctx, detailOrderNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.HistoryRow), args.Error(1)
}

func (m *MockHistoryRepository) ListByDateRange(ctx context.Context, start, end time.Time) ([]models.OrderDetailHistory, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.OrderDetailHistory), args.Error(1)
}

type OrderQueryServiceTestSuite struct {
	suite.Suite
	orderRepo   *MockOrderRepository
	historyRepo *MockHistoryRepository
	service     OrderQueryService
	context     context.Context
}

func (suite *OrderQueryServiceTestSuite) SetupTest() {
	suite.orderRepo = new(MockOrderRepository)
	suite.historyRepo = new(MockHistoryRepository)
	suite.service = NewOrderQueryService(suite.orderRepo, suite.historyRepo, fixedCatalog{})
	suite.context = context.Background()
}

func TestOrderQueryServiceTestSuite(t *testing.T) {
	suite.Run(t, new(OrderQueryServiceTestSuite))
}

func datePtr(year int, month time.Month, day int) *time.Time {
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &d
}

func (suite *OrderQueryServiceTestSuite) TestListOrders_RequiresStatus() {
	_, err := suite.service.ListOrders(suite.context, &models.OrderSearchFilter{})

	var validationErr *common.ValidationError
	require.ErrorAs(suite.T(), err, &validationErr)
	assert.Equal(suite.T(), "order_status_id", validationErr.Field)
	suite.orderRepo.AssertNotCalled(suite.T(), "Search")
}

func (suite *OrderQueryServiceTestSuite) TestListOrders_EndDateBecomesExclusiveBound() {
	filter := &models.OrderSearchFilter{
		StatusID:  models.StatusPreparing,
		StartDate: datePtr(2026, 8, 1),
		EndDate:   datePtr(2026, 8, 20),
	}

	suite.orderRepo.On("Search", suite.context, mock.MatchedBy(func(f *models.OrderSearchFilter) bool {
		return f.EndDate != nil && f.EndDate.Equal(time.Date(2026, 8, 21, 0, 0, 0, 0, time.UTC))
	})).Return([]models.OrderRow{}, int64(0), nil)

	_, err := suite.service.ListOrders(suite.context, filter)
	assert.NoError(suite.T(), err)
	suite.orderRepo.AssertExpectations(suite.T())
}

func (suite *OrderQueryServiceTestSuite) TestListOrders_SameDayRangeIsValid() {
	filter := &models.OrderSearchFilter{
		StatusID:  models.StatusPreparing,
		StartDate: datePtr(2026, 8, 20),
		EndDate:   datePtr(2026, 8, 20),
	}

	suite.orderRepo.On("Search", suite.context, mock.Anything).
		Return([]models.OrderRow{}, int64(0), nil)

	_, err := suite.service.ListOrders(suite.context, filter)
	assert.NoError(suite.T(), err)
}

func (suite *OrderQueryServiceTestSuite) TestListOrders_InvertedRangeFailsBeforeQuery() {
	filter := &models.OrderSearchFilter{
		StatusID:  models.StatusPreparing,
		StartDate: datePtr(2026, 8, 21),
		EndDate:   datePtr(2026, 8, 20),
	}

	_, err := suite.service.ListOrders(suite.context, filter)

	var validationErr *common.ValidationError
	require.ErrorAs(suite.T(), err, &validationErr)
	assert.Equal(suite.T(), "date_range", validationErr.Field)
	suite.orderRepo.AssertNotCalled(suite.T(), "Search")
}

func (suite *OrderQueryServiceTestSuite) TestListOrders_ShapesRowsAndDerivesTotals() {
	createdAt := time.Date(2026, 8, 20, 10, 30, 0, 0, time.UTC)
	rows := []models.OrderRow{
		{
			CreatedAt:         createdAt,
			OrderNumber:       "ORD-1",
			DetailOrderNumber: "ORD-1-1",
			BrandName:         "Acme",
			ProductTitle:      "Linen Shirt",
			DiscountRate:      0.1,
			SizeName:          "M",
			ColorName:         "White",
			Quantity:          3,
			OrderUsername:     "jdoe",
			OrdererPhone:      "010-1111-2222",
			Price:             19900,
			StatusName:        "PREPARING",
		},
	}

	suite.orderRepo.On("Search", suite.context, mock.Anything).
		Return(rows, int64(57), nil)

	result, err := suite.service.ListOrders(suite.context, &models.OrderSearchFilter{StatusID: models.StatusPreparing})
	require.NoError(suite.T(), err)

	assert.Equal(suite.T(), int64(57), result.TotalCount)
	require.Len(suite.T(), result.OrderList, 1)
	item := result.OrderList[0]
	assert.Equal(suite.T(), "2026-08-20 10:30:00", item.OrderCreatedAt)
	assert.Equal(suite.T(), "Linen Shirt", item.ProductName)
	// 19900 * 0.9 * 3 = 53730
	assert.Equal(suite.T(), int64(53730), item.TotalPrice)
}

func (suite *OrderQueryServiceTestSuite) TestGetOrder_NotFound() {
	suite.orderRepo.On("GetDetailByNumber", suite.context, "MISSING").
		Return(nil, nil)

	_, err := suite.service.GetOrder(suite.context, "MISSING")

	var notFoundErr *common.NotFoundError
	require.ErrorAs(suite.T(), err, &notFoundErr)
	suite.historyRepo.AssertNotCalled(suite.T(), "ListByDetailNumber")
}

func (suite *OrderQueryServiceTestSuite) TestGetOrder_RequiresDetailNumber() {
	_, err := suite.service.GetOrder(suite.context, "  ")

	var validationErr *common.ValidationError
	require.ErrorAs(suite.T(), err, &validationErr)
	suite.orderRepo.AssertNotCalled(suite.T(), "GetDetailByNumber")
}

func (suite *OrderQueryServiceTestSuite) TestGetOrder_ShapesDetailAndHistory() {
	createdAt := time.Date(2026, 8, 19, 18, 0, 0, 0, time.UTC)
	memoRequest := "leave at the door"
	presetMemo := "call on arrival"

	row := &models.OrderDetailRow{
		OrderNumber:         "ORD-1",
		CreatedAt:           createdAt,
		DetailOrderNumber:   "ORD-1-1",
		StatusName:          "SHIPPING",
		OrdererPhone:        "010-1111-2222",
		OrderUsername:       "jdoe",
		ProductID:           77,
		OptionID:            5,
		Price:               19900,
		DiscountRate:        0.15,
		ProductTitle:        "Linen Shirt",
		BrandName:           "Acme",
		Color:               "White",
		Size:                "M",
		Quantity:            2,
		UserID:              31,
		Recipient:           "Jane Doe",
		ZipCode:             "04524",
		Address:             "12 Main St",
		DetailAddress:       "Apt 3B",
		RecipientPhone:      "010-3333-4444",
		DeliveryMemo:        &presetMemo,
		DeliveryMemoRequest: &memoRequest,
	}

	suite.orderRepo.On("GetDetailByNumber", suite.context, "ORD-1-1").Return(row, nil)
	suite.historyRepo.On("ListByDetailNumber", suite.context, "ORD-1-1").Return([]models.HistoryRow{
		{UpdatedAt: createdAt, StatusName: "PAYMENT_COMPLETE"},
		{UpdatedAt: createdAt.Add(24 * time.Hour), StatusName: "PREPARING"},
	}, nil)

	result, err := suite.service.GetOrder(suite.context, "ORD-1-1")
	require.NoError(suite.T(), err)

	detail := result.OrderDetail
	assert.Equal(suite.T(), "12 Main St Apt 3B", detail.Address)
	assert.Equal(suite.T(), 15, detail.DiscountRate)
	// 19900 * 0.85 = 16915
	assert.Equal(suite.T(), int64(16915), detail.DiscountedPrice)
	// 19900 * 0.85 * 2 = 33830
	assert.Equal(suite.T(), int64(33830), detail.TotalPrice)
	assert.Equal(suite.T(), "jdoe", detail.OrdererName)
	// buyer's free-form request wins over the preset memo
	require.NotNil(suite.T(), detail.DeliveryMemo)
	assert.Equal(suite.T(), "leave at the door", *detail.DeliveryMemo)

	require.Len(suite.T(), result.OrderHistory, 2)
	assert.Equal(suite.T(), "PAYMENT_COMPLETE", result.OrderHistory[0].OrderStatusType)
	assert.Equal(suite.T(), "2026-08-20 18:00:00", result.OrderHistory[1].UpdateTime)
}
