package repositories

import (
	"context"
	"fmt"
	"time"

	"modamart/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// HistoryRepository appends and reads the order-detail audit trail. The
// table is append-only: there is deliberately no update or delete method.
type HistoryRepository interface {
	// InsertSnapshot appends one history row for the detail, snapshotting
	// its current status, address and price together with the acting
	// account. Callers run it inside the same transaction as the status
	// update, after the update has been executed.
	InsertSnapshot(ctx context.Context, tx pgx.Tx, detailID, accountID int64) error
	ListByDetailNumber(ctx context.Context, detailOrderNumber string) ([]models.HistoryRow, error)
	// ListByDateRange returns every history row with start <= updated_at < end.
	ListByDateRange(ctx context.Context, start, end time.Time) ([]models.OrderDetailHistory, error)
}

type historyRepo struct {
	db DB
}

func NewHistoryRepo(db DB) HistoryRepository {
	return &historyRepo{db: db}
}

func (r *historyRepo) InsertSnapshot(ctx context.Context, tx pgx.Tx, detailID, accountID int64) error {
	query := `
		INSERT INTO order_detail_history (id, order_detail_id, order_status_type_id, address_id, modify_account_id, price, updated_at)
		SELECT $1, id, order_status_type_id, address_id, $2, price, NOW()
		FROM orders_detail
		WHERE id = $3
	`

	tag, err := tx.Exec(ctx, query, uuid.New(), accountID, detailID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() != 1 {
		return fmt.Errorf("insert history for detail %d: %d rows affected", detailID, tag.RowsAffected())
	}
	return nil
}

func (r *historyRepo) ListByDetailNumber(ctx context.Context, detailOrderNumber string) ([]models.HistoryRow, error) {
	query := `
		SELECT odh.updated_at, ost.name AS order_status_type
		FROM orders_detail d
		INNER JOIN order_detail_history odh ON odh.order_detail_id = d.id
		INNER JOIN order_status_type ost ON ost.id = odh.order_status_type_id
		WHERE d.detail_order_number = $1
		ORDER BY odh.updated_at
	`

	rows, err := r.db.Query(ctx, query, detailOrderNumber)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var history []models.HistoryRow
	for rows.Next() {
		var row models.HistoryRow
		if err := rows.Scan(&row.UpdatedAt, &row.StatusName); err != nil {
			return nil, err
		}
		history = append(history, row)
	}
	return history, rows.Err()
}

func (r *historyRepo) ListByDateRange(ctx context.Context, start, end time.Time) ([]models.OrderDetailHistory, error) {
	query := `
		SELECT id, order_detail_id, order_status_type_id, address_id, modify_account_id, price, updated_at
		FROM order_detail_history
		WHERE updated_at >= $1 AND updated_at < $2
		ORDER BY updated_at
	`

	rows, err := r.db.Query(ctx, query, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var history []models.OrderDetailHistory
	for rows.Next() {
		var row models.OrderDetailHistory
		if err := rows.Scan(
			&row.ID,
			&row.OrderDetailID,
			&row.OrderStatusTypeID,
			&row.AddressID,
			&row.ModifyAccountID,
			&row.Price,
			&row.UpdatedAt,
		); err != nil {
			return nil, err
		}
		history = append(history, row)
	}
	return history, rows.Err()
}
