package services

import (
	"context"
	"fmt"
	"time"

	"modamart/internal/common"
	"modamart/internal/models"
	"modamart/internal/repositories"
)

const timestampLayout = "2006-01-02 15:04:05"

// OrderQueryService serves the admin read side: the filtered order list with
// its consistent total, the single-order view with its status trace, and the
// status-type catalog.
type OrderQueryService interface {
	ListOrders(ctx context.Context, filter *models.OrderSearchFilter) (*models.OrderListResult, error)
	GetOrder(ctx context.Context, detailOrderNumber string) (*models.OrderDetailResult, error)
	ListStatusTypes(ctx context.Context) ([]models.OrderStatusType, error)
}

type orderQueryService struct {
	orderRepo   repositories.OrderRepository
	historyRepo repositories.HistoryRepository
	catalog     StatusCatalogService
}

func NewOrderQueryService(orderRepo repositories.OrderRepository, historyRepo repositories.HistoryRepository, catalog StatusCatalogService) OrderQueryService {
	return &orderQueryService{
		orderRepo:   orderRepo,
		historyRepo: historyRepo,
		catalog:     catalog,
	}
}

// normalizeDateRange widens an inclusive end date to an exclusive bound on
// the following midnight, then rejects ranges where the start does not
// precede it. Equal start and end dates mean "that whole day" and pass.
func normalizeDateRange(filter *models.OrderSearchFilter) error {
	if filter.EndDate != nil {
		exclusive := filter.EndDate.AddDate(0, 0, 1)
		filter.EndDate = &exclusive
	}
	if filter.StartDate != nil && filter.EndDate != nil && !filter.StartDate.Before(*filter.EndDate) {
		return common.NewValidationError("date_range", "start_date must not be after end_date")
	}
	return nil
}

func (s *orderQueryService) ListOrders(ctx context.Context, filter *models.OrderSearchFilter) (*models.OrderListResult, error) {
	if filter.StatusID == 0 {
		return nil, common.NewValidationError("order_status_id", "order_status_id is required")
	}

	if err := normalizeDateRange(filter); err != nil {
		return nil, err
	}

	page, limit, err := common.ValidatePaginationParams(filter.Page, filter.Limit)
	if err != nil {
		return nil, common.NewValidationError("page", err.Error())
	}
	filter.Page = page
	filter.Limit = limit

	rows, total, err := s.orderRepo.Search(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to search orders: %w", err)
	}

	items := make([]models.OrderListItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, models.OrderListItem{
			OrderCreatedAt:    row.CreatedAt.Format(timestampLayout),
			OrderNumber:       row.OrderNumber,
			OrderDetailNumber: row.DetailOrderNumber,
			BrandName:         row.BrandName,
			ProductName:       row.ProductTitle,
			Color:             row.ColorName,
			Size:              row.SizeName,
			Quantity:          row.Quantity,
			OrderUsername:     row.OrderUsername,
			OrdererPhone:      row.OrdererPhone,
			OrderStatusType:   row.StatusName,
			TotalPrice:        LineTotal(row.Price, row.DiscountRate, row.Quantity),
		})
	}

	return &models.OrderListResult{OrderList: items, TotalCount: total}, nil
}

func (s *orderQueryService) GetOrder(ctx context.Context, detailOrderNumber string) (*models.OrderDetailResult, error) {
	if err := common.ValidateRequiredString(detailOrderNumber, "detail_order_number"); err != nil {
		return nil, common.NewValidationError("detail_order_number", err.Error())
	}

	row, err := s.orderRepo.GetDetailByNumber(ctx, detailOrderNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to get order detail: %w", err)
	}
	if row == nil {
		return nil, common.NewNotFoundError("order")
	}

	historyRows, err := s.historyRepo.ListByDetailNumber(ctx, detailOrderNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to list order history: %w", err)
	}

	history := make([]models.HistoryEntry, 0, len(historyRows))
	for _, h := range historyRows {
		history = append(history, models.HistoryEntry{
			UpdateTime:      h.UpdatedAt.Format(timestampLayout),
			OrderStatusType: h.StatusName,
		})
	}

	return &models.OrderDetailResult{
		OrderDetail:  shapeDetailView(row),
		OrderHistory: history,
	}, nil
}

func shapeDetailView(row *models.OrderDetailRow) models.OrderDetailView {
	// The buyer's free-form request wins over the preset memo when both exist.
	memo := row.DeliveryMemo
	if row.DeliveryMemoRequest != nil && *row.DeliveryMemoRequest != "" {
		memo = row.DeliveryMemoRequest
	}

	address := row.Address
	if row.DetailAddress != "" {
		address = row.Address + " " + row.DetailAddress
	}

	return models.OrderDetailView{
		OrderNumber:       row.OrderNumber,
		OrderDetailNumber: row.DetailOrderNumber,
		OrderCreatedAt:    row.CreatedAt.Format(timestampLayout),
		OrderStatusType:   row.StatusName,
		OrdererPhone:      row.OrdererPhone,
		OrdererName:       row.OrderUsername,
		ProductID:         row.ProductID,
		Price:             row.Price,
		DiscountRate:      DiscountPercent(row.DiscountRate),
		DiscountedPrice:   DiscountedUnitPrice(row.Price, row.DiscountRate),
		TotalPrice:        LineTotal(row.Price, row.DiscountRate, row.Quantity),
		ProductName:       row.ProductTitle,
		BrandName:         row.BrandName,
		Color:             row.Color,
		Size:              row.Size,
		Quantity:          row.Quantity,
		UserID:            row.UserID,
		Recipient:         row.Recipient,
		ZipCode:           row.ZipCode,
		Address:           address,
		RecipientPhone:    row.RecipientPhone,
		DeliveryMemo:      memo,
	}
}

func (s *orderQueryService) ListStatusTypes(ctx context.Context) ([]models.OrderStatusType, error) {
	return s.catalog.ListStatusTypes(ctx)
}

// ParseSearchDate parses a YYYY-MM-DD query value into the filter's UTC
// midnight representation.
func ParseSearchDate(value string) (*time.Time, error) {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
