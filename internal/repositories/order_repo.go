package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"modamart/internal/models"

	"github.com/jackc/pgx/v5"
)

type OrderRepository interface {
	// Search runs the filtered list query and the matching count query.
	// Both are built from the same predicate set, so the returned total is
	// exactly the cardinality of the unpaginated row set.
	Search(ctx context.Context, filter *models.OrderSearchFilter) ([]models.OrderRow, int64, error)
	GetDetailByNumber(ctx context.Context, detailOrderNumber string) (*models.OrderDetailRow, error)
	// LockDetailStatus reads the detail's current status under FOR UPDATE so
	// it stays valid until the surrounding transaction commits.
	LockDetailStatus(ctx context.Context, tx pgx.Tx, detailID int64) (int64, error)
	UpdateDetailStatus(ctx context.Context, tx pgx.Tx, detailID, statusID int64) error
}

type orderRepo struct {
	db DB
}

func NewOrderRepo(db DB) OrderRepository {
	return &orderRepo{db: db}
}

// orderSearchBase is the fixed join shared by the list and count queries.
const orderSearchBase = `
	FROM orders o
	INNER JOIN orders_detail d ON o.id = d.order_id
	INNER JOIN products p ON p.id = d.product_id
	INNER JOIN sellers s ON s.id = p.seller_id
	INNER JOIN options op ON op.id = d.option_id
	INNER JOIN users u ON u.id = o.user_id
	INNER JOIN colors c ON c.id = op.color_id
	INNER JOIN sizes si ON si.id = op.size_id
	INNER JOIN order_status_type ost ON ost.id = d.order_status_type_id
`

// buildSearchPredicates turns the filter into one WHERE clause plus its
// argument list. Search appends the result to both queries unchanged; that is
// what keeps the count consistent with the rows.
func buildSearchPredicates(filter *models.OrderSearchFilter) (string, []any) {
	clauses := []string{"d.order_status_type_id = $1"}
	args := []any{filter.StatusID}

	add := func(expr string, value any) {
		args = append(args, value)
		clauses = append(clauses, fmt.Sprintf(expr, len(args)))
	}

	if filter.StartDate != nil {
		add("o.created_at >= $%d", *filter.StartDate)
	}
	if filter.EndDate != nil {
		add("o.created_at < $%d", *filter.EndDate)
	}
	if filter.SellerID != nil {
		add("s.id = $%d", *filter.SellerID)
	}
	if filter.OrderNumber != nil {
		add("o.order_number = $%d", *filter.OrderNumber)
	}
	if filter.DetailOrderNumber != nil {
		add("d.detail_order_number = $%d", *filter.DetailOrderNumber)
	}
	if filter.OrdererUsername != nil {
		add("o.order_username = $%d", *filter.OrdererUsername)
	}
	if filter.OrdererPhone != nil {
		add("u.phone = $%d", *filter.OrdererPhone)
	}
	if filter.ProductTitle != nil {
		add("p.title = $%d", *filter.ProductTitle)
	}

	return " WHERE " + strings.Join(clauses, " AND "), args
}

func (r *orderRepo) Search(ctx context.Context, filter *models.OrderSearchFilter) ([]models.OrderRow, int64, error) {
	where, args := buildSearchPredicates(filter)

	countQuery := `SELECT COUNT(*)` + orderSearchBase + where
	var total int64
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count orders: %w", err)
	}
	if total == 0 {
		return []models.OrderRow{}, 0, nil
	}

	listQuery := `SELECT
		o.created_at,
		o.order_number,
		d.detail_order_number,
		s.brand_name,
		p.title,
		p.discount_rate,
		si.name AS size_name,
		c.name AS color_name,
		d.quantity,
		o.order_username,
		u.phone AS orderer_phone,
		d.price,
		ost.name AS order_status_type` +
		orderSearchBase + where +
		fmt.Sprintf(` ORDER BY o.created_at DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)

	listArgs := append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := r.db.Query(ctx, listQuery, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var results []models.OrderRow
	for rows.Next() {
		var row models.OrderRow
		if err := rows.Scan(
			&row.CreatedAt,
			&row.OrderNumber,
			&row.DetailOrderNumber,
			&row.BrandName,
			&row.ProductTitle,
			&row.DiscountRate,
			&row.SizeName,
			&row.ColorName,
			&row.Quantity,
			&row.OrderUsername,
			&row.OrdererPhone,
			&row.Price,
			&row.StatusName,
		); err != nil {
			return nil, 0, err
		}
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return results, total, nil
}

func (r *orderRepo) GetDetailByNumber(ctx context.Context, detailOrderNumber string) (*models.OrderDetailRow, error) {
	query := `SELECT
		o.order_number,
		o.created_at,
		d.detail_order_number,
		ost.name AS order_status_type,
		u.phone AS orderer_phone,
		o.order_username,
		p.id AS product_id,
		op.id AS option_id,
		d.price,
		p.discount_rate,
		p.title,
		s.brand_name,
		c.name AS color,
		si.name AS size,
		d.quantity,
		u.id AS user_id,
		ad.recipient,
		ad.zip_code,
		ad.address,
		ad.detail_address,
		ad.phone AS recipient_phone,
		dm.name AS delivery_memo,
		o.delivery_memo_request
	FROM orders_detail d
	INNER JOIN orders o ON o.id = d.order_id
	INNER JOIN products p ON p.id = d.product_id
	INNER JOIN options op ON op.id = d.option_id
	INNER JOIN users u ON u.id = o.user_id
	INNER JOIN sellers s ON s.id = p.seller_id
	INNER JOIN address ad ON ad.id = d.address_id
	LEFT JOIN delivery_memo dm ON dm.id = o.delivery_memo_id
	INNER JOIN colors c ON c.id = op.color_id
	INNER JOIN sizes si ON si.id = op.size_id
	INNER JOIN order_status_type ost ON ost.id = d.order_status_type_id
	WHERE d.detail_order_number = $1`

	row := &models.OrderDetailRow{}
	err := r.db.QueryRow(ctx, query, detailOrderNumber).Scan(
		&row.OrderNumber,
		&row.CreatedAt,
		&row.DetailOrderNumber,
		&row.StatusName,
		&row.OrdererPhone,
		&row.OrderUsername,
		&row.ProductID,
		&row.OptionID,
		&row.Price,
		&row.DiscountRate,
		&row.ProductTitle,
		&row.BrandName,
		&row.Color,
		&row.Size,
		&row.Quantity,
		&row.UserID,
		&row.Recipient,
		&row.ZipCode,
		&row.Address,
		&row.DetailAddress,
		&row.RecipientPhone,
		&row.DeliveryMemo,
		&row.DeliveryMemoRequest,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return row, nil
}

func (r *orderRepo) LockDetailStatus(ctx context.Context, tx pgx.Tx, detailID int64) (int64, error) {
	query := `SELECT order_status_type_id FROM orders_detail WHERE id = $1 FOR UPDATE`

	var statusID int64
	if err := tx.QueryRow(ctx, query, detailID).Scan(&statusID); err != nil {
		return 0, err
	}
	return statusID, nil
}

func (r *orderRepo) UpdateDetailStatus(ctx context.Context, tx pgx.Tx, detailID, statusID int64) error {
	query := `UPDATE orders_detail SET order_status_type_id = $1 WHERE id = $2`

	tag, err := tx.Exec(ctx, query, statusID, detailID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() != 1 {
		return fmt.Errorf("update detail %d status: %d rows affected", detailID, tag.RowsAffected())
	}
	return nil
}
