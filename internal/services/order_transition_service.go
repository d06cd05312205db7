package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"modamart/internal/common"
	"modamart/internal/models"
	"modamart/internal/repositories"

	"github.com/jackc/pgx/v5"
)

// OrderTransitionService applies batches of status changes. The whole batch
// runs in one transaction: every admitted change commits together with its
// history snapshot, and any persistence failure rolls all of them back.
// Validation rejections are not failures; they come back as data.
type OrderTransitionService interface {
	PatchStatuses(ctx context.Context, changes []models.StatusChangeRequest, actingAccountID int64) ([]models.RejectedChange, error)
}

type orderTransitionService struct {
	db          repositories.DB
	orderRepo   repositories.OrderRepository
	historyRepo repositories.HistoryRepository
	catalog     StatusCatalogService
}

func NewOrderTransitionService(db repositories.DB, orderRepo repositories.OrderRepository, historyRepo repositories.HistoryRepository, catalog StatusCatalogService) OrderTransitionService {
	return &orderTransitionService{
		db:          db,
		orderRepo:   orderRepo,
		historyRepo: historyRepo,
		catalog:     catalog,
	}
}

func (s *orderTransitionService) PatchStatuses(ctx context.Context, changes []models.StatusChangeRequest, actingAccountID int64) ([]models.RejectedChange, error) {
	if len(changes) == 0 {
		return nil, common.NewValidationError("order_list", "order_list must not be empty")
	}

	catalog, err := s.catalog.Catalog(ctx)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			log.Printf("WARN: rollback failed: %v", rbErr)
		}
	}()

	var rejected []models.RejectedChange
	reject := func(change models.StatusChangeRequest, reason string) {
		rejected = append(rejected, models.RejectedChange{StatusChangeRequest: change, Reason: reason})
	}

	for _, change := range changes {
		currentStatus, err := s.orderRepo.LockDetailStatus(ctx, tx, change.OrdersDetailID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				reject(change, models.ReasonNotFound)
				continue
			}
			return nil, fmt.Errorf("failed to lock order detail %d: %w", change.OrdersDetailID, err)
		}

		if !catalog.Contains(change.OrderStatusTypeID) {
			reject(change, models.ReasonUnknownStatus)
			continue
		}

		if !CanTransition(currentStatus, change.OrderStatusTypeID) {
			reject(change, models.ReasonIllegalTransition)
			continue
		}

		if err := s.orderRepo.UpdateDetailStatus(ctx, tx, change.OrdersDetailID, change.OrderStatusTypeID); err != nil {
			return nil, fmt.Errorf("failed to update order detail %d: %w", change.OrdersDetailID, err)
		}
		if err := s.historyRepo.InsertSnapshot(ctx, tx, change.OrdersDetailID, actingAccountID); err != nil {
			return nil, fmt.Errorf("failed to record history for order detail %d: %w", change.OrdersDetailID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit status changes: %w", err)
	}
	return rejected, nil
}
